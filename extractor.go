package vkrtext

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/headings"
	"github.com/korpuslab/vkrtext/layout"
	"github.com/korpuslab/vkrtext/model"
	"github.com/korpuslab/vkrtext/reader"
	"github.com/korpuslab/vkrtext/record"
	"github.com/korpuslab/vkrtext/titlepage"
	"github.com/korpuslab/vkrtext/toc"
)

// ErrNoSections means the document opened fine but no section produced any
// paragraphs. Such a document is skipped rather than emitted.
var ErrNoSections = errors.New("vkrtext: no recoverable sections")

// document is the page-level access Parse needs. *reader.Document satisfies
// it; tests substitute synthetic documents.
type document interface {
	NumPages() int
	PageText(pageIndex int) (string, error)
	PageBlocks(pageIndex int) ([]model.Block, error)
	PageSpans(pageIndex int) ([]model.Span, error)
	PageDim(pageIndex int) model.PageDim
	Size() int64
	Close() error
}

// Extractor provides a fluent interface for turning one PDF into a record.
// Each configuration method returns a new Extractor instance, making chains
// safe to share and reuse.
type Extractor struct {
	// Source
	filename string
	doc      document

	// Lifecycle
	ownsDoc   bool
	docOpened bool

	// Configuration
	cfg  config.Config
	meta record.Metadata
	log  *zap.Logger

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a copy of the Extractor so configuration methods never
// mutate their receiver.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		doc:       e.doc,
		ownsDoc:   e.ownsDoc,
		docOpened: e.docOpened,
		cfg:       e.cfg,
		meta:      e.meta,
		log:       e.log,
		err:       e.err,
		warnings:  append([]Warning(nil), e.warnings...),
	}
}

// WithConfig replaces the default configuration.
func (e *Extractor) WithConfig(cfg config.Config) *Extractor {
	newExt := e.clone()
	newExt.cfg = cfg
	return newExt
}

// WithLogger attaches a logger for per-stage diagnostics. Without one the
// extractor is silent.
func (e *Extractor) WithLogger(log *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.log = log
	return newExt
}

// Metadata sets the document metadata carried into the emitted record.
// A missing title or year is recovered from the title page during Parse.
func (e *Extractor) Metadata(meta record.Metadata) *Extractor {
	newExt := e.clone()
	newExt.meta = meta
	return newExt
}

// ensureDoc opens the document if not already open.
func (e *Extractor) ensureDoc() error {
	if e.docOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("vkrtext: no filename specified")
	}
	doc, err := reader.Open(e.filename)
	if err != nil {
		return err
	}
	e.doc = doc
	e.ownsDoc = true
	e.docOpened = true
	return nil
}

// Close releases the document when the Extractor opened it itself. It is
// safe to call multiple times.
func (e *Extractor) Close() error {
	if e.ownsDoc && e.doc != nil {
		err := e.doc.Close()
		e.doc = nil
		e.ownsDoc = false
		return err
	}
	return nil
}

func (e *Extractor) logger() *zap.Logger {
	if e.log == nil {
		return zap.NewNop()
	}
	return e.log
}

func (e *Extractor) warnf(op string, page int, format string, args ...any) {
	e.warnings = append(e.warnings, Warning{Op: op, Page: page, Message: fmt.Sprintf(format, args...)})
}

// Parse runs the full pipeline and returns the document's record.
//
// An implausibly small source file yields an empty record and a nil error:
// the document is skipped, not failed. A document where the Introduction
// produced no paragraphs returns ErrNoSections. A missing Review section is
// a warning, not an error; the record then carries the Introduction alone.
//
// When the Extractor owns its document, Parse closes it.
func (e *Extractor) Parse() (record.DocumentRecord, []Warning, error) {
	if e.err != nil {
		return record.DocumentRecord{}, nil, e.err
	}
	if err := e.ensureDoc(); err != nil {
		return record.DocumentRecord{}, nil, err
	}
	if e.ownsDoc {
		defer e.Close()
	}
	log := e.logger()

	if e.doc.Size() < e.cfg.MinPDFBytes {
		log.Debug("skipping undersized document",
			zap.String("file", e.filename), zap.Int64("bytes", e.doc.Size()))
		return record.DocumentRecord{}, e.warnings, nil
	}

	meta := e.meta
	if meta.Title == "" || meta.Year == "" {
		title, year, err := titlepage.Extract(e.doc)
		if err != nil {
			e.warnf("titlepage", 0, "title page not readable: %v", err)
		}
		if meta.Title == "" {
			meta.Title = title
		}
		if meta.Year == "" {
			meta.Year = year
		}
	}

	intro, review, repair, err := e.resolveSections()
	if err != nil {
		return record.DocumentRecord{}, e.warnings, err
	}
	log.Debug("sections resolved",
		zap.String("file", e.filename),
		zap.Int("intro_start", intro.Start),
		zap.Bool("fallback", repair))

	introParas := e.collectSection(intro, repair)
	if len(introParas) == 0 {
		return record.DocumentRecord{}, e.warnings, ErrNoSections
	}

	rec := record.DocumentRecord{
		Meta:     meta,
		Sections: []record.Section{{Key: intro.Title, Paragraphs: introParas}},
	}
	if review != nil {
		if paras := e.collectSection(*review, repair); len(paras) > 0 {
			rec.Sections = append(rec.Sections, record.Section{Key: review.Title, Paragraphs: paras})
		} else {
			e.warnf("layout", review.Start, "review section %q produced no paragraphs", review.Title)
		}
	}
	return rec, e.warnings, nil
}

// WriteTo parses the document and persists the record into dir. Documents
// skipped by Parse (undersized file, no recoverable sections) produce no
// file and no error; path is empty in that case.
func (e *Extractor) WriteTo(dir string) (string, []Warning, error) {
	rec, warnings, err := e.Parse()
	if errors.Is(err, ErrNoSections) {
		return "", warnings, nil
	}
	if err != nil {
		return "", warnings, err
	}
	path, err := record.Write(dir, rec)
	return path, warnings, err
}

// resolveSections runs the tiered resolution chain. The primary tier reads
// the table of contents; any recoverable failure there drops to the heading
// scanner, which also switches the layout filter into encoding-repair mode.
// Returned ranges are in zero-based document page indices; review is nil
// when only the Introduction was found.
func (e *Extractor) resolveSections() (intro model.SectionRange, review *model.SectionRange, repair bool, err error) {
	intro, review, tocErr := e.resolveFromToc()
	if tocErr == nil {
		return intro, review, false, nil
	}
	if errors.Is(tocErr, toc.ErrSectionNotFound) {
		// A parsed TOC with no plausible Introduction is conclusive; the
		// heading scanner would only rediscover the same front matter.
		return model.SectionRange{}, nil, false, tocErr
	}
	e.warnf("toc", -1, "falling back to heading scan: %v", tocErr)

	intro, review, err = e.resolveFromHeadings()
	if err != nil {
		return model.SectionRange{}, nil, false, err
	}
	return intro, review, true, nil
}

// resolveFromToc resolves section ranges via the table of contents and
// converts them from printed page numbers to document page indices.
func (e *Extractor) resolveFromToc() (model.SectionRange, *model.SectionRange, error) {
	tocIdx, err := toc.Locate(e.doc, e.cfg)
	if err != nil {
		return model.SectionRange{}, nil, err
	}
	tocPrinted, err := toc.ResolvePrintedPage(e.doc, tocIdx, e.cfg)
	if err != nil {
		return model.SectionRange{}, nil, err
	}
	blocks, err := e.doc.PageBlocks(tocIdx)
	if err != nil {
		return model.SectionRange{}, nil, fmt.Errorf("%w: %v", toc.ErrNoEntries, err)
	}
	entries, err := toc.ParseEntries(blocks, e.cfg)
	if err != nil {
		return model.SectionRange{}, nil, err
	}
	entries = toc.DropSelfReferences(entries, tocIdx, tocPrinted)
	// Every entry pointing back at the TOC page means nothing usable was
	// parsed; that is a no-TOC condition, not a missing Introduction, and
	// must reach the heading scanner.
	if len(entries) == 0 {
		return model.SectionRange{}, nil, toc.ErrNoEntries
	}

	introIdx, intro, err := toc.IntroductionRange(entries, e.cfg)
	if err != nil {
		return model.SectionRange{}, nil, err
	}
	intro = toPhysical(intro, tocIdx, tocPrinted)

	rev, err := toc.ReviewRange(entries, introIdx, e.cfg)
	if err != nil {
		e.warnf("toc", tocIdx, "review section not listed: %v", err)
		return intro, nil, nil
	}
	rev = toPhysical(rev, tocIdx, tocPrinted)
	return intro, &rev, nil
}

// resolveFromHeadings is the secondary tier: direct scanning for bold or
// numbered headings, trying each configured keyword in order.
func (e *Extractor) resolveFromHeadings() (model.SectionRange, *model.SectionRange, error) {
	sc := headings.NewScanner(e.cfg)

	var intro model.SectionRange
	found := false
	var lastErr error
	for _, kw := range e.cfg.IntroKeywords {
		rng, err := sc.FindSection(e.doc, kw)
		if err == nil {
			intro, found = rng, true
			break
		}
		lastErr = err
	}
	if !found {
		return model.SectionRange{}, nil, lastErr
	}

	for _, kw := range e.cfg.ReviewKeywords {
		rng, err := sc.FindSection(e.doc, kw)
		if err == nil {
			return intro, &rng, nil
		}
	}
	e.warnf("headings", -1, "no review heading found")
	return intro, nil, nil
}

// toPhysical maps a printed-page range onto document page indices.
func toPhysical(rng model.SectionRange, tocIdx, tocPrinted int) model.SectionRange {
	out := model.SectionRange{Title: rng.Title, Start: toc.PhysicalPage(rng.Start, tocIdx, tocPrinted)}
	if rng.End != nil {
		end := toc.PhysicalPage(*rng.End, tocIdx, tocPrinted)
		out.End = &end
	}
	return out
}

// collectSection filters and reassembles the pages of one section into
// paragraphs. Filter and assembler state carries across the section's pages
// and nowhere further.
func (e *Extractor) collectSection(rng model.SectionRange, repair bool) []string {
	f := layout.NewFilter(e.cfg, repair)
	asm := layout.NewAssembler(e.cfg)
	for _, p := range rng.Pages(e.doc.NumPages() - 1) {
		blocks, err := e.doc.PageBlocks(p)
		if err != nil {
			e.warnf("layout", p, "page skipped: %v", err)
			continue
		}
		dim := e.doc.PageDim(p)
		asm.AppendPage(f.FilterPage(blocks, dim), dim)
	}
	return asm.Finish()
}
