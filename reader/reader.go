package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/korpuslab/vkrtext/model"
)

// ErrNoText indicates a page with no extractable text runs.
var ErrNoText = errors.New("reader: page has no text")

// Default page dimensions (US letter at 72 dpi) used when a page carries no
// readable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Document is an opened PDF. All page indices on its methods are zero-based.
type Document struct {
	file *os.File
	r    *pdf.Reader
	size int64
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reader: stat %s: %w", path, err)
	}
	return &Document{file: f, r: r, size: info.Size()}, nil
}

// FromReaderAt opens a PDF from an in-memory or remote byte source.
// The caller keeps ownership of ra; Close is a no-op for such documents.
func FromReaderAt(ra io.ReaderAt, size int64) (*Document, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("reader: parsing document: %w", err)
	}
	return &Document{r: r, size: size}, nil
}

// Close releases the underlying file. It is safe to call multiple times.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Size returns the byte size of the source document.
func (d *Document) Size() int64 {
	return d.size
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return d.r.NumPage()
}

// PageDim returns the dimensions of the given page, falling back to letter
// size when the page has no readable MediaBox.
func (d *Document) PageDim(pageIndex int) model.PageDim {
	dim := model.PageDim{Width: defaultPageWidth, Height: defaultPageHeight}
	p := d.r.Page(pageIndex + 1)
	if p.V.IsNull() {
		return dim
	}
	mb := p.V.Key("MediaBox")
	if mb.Kind() == pdf.Array && mb.Len() >= 4 {
		w := mb.Index(2).Float64() - mb.Index(0).Float64()
		h := mb.Index(3).Float64() - mb.Index(1).Float64()
		if w > 0 && h > 0 {
			dim.Width, dim.Height = w, h
		}
	}
	return dim
}

// PageSpans extracts the raw text runs of a page as spans. The library can
// panic on damaged content streams, so extraction is wrapped and a damaged
// page surfaces as an error rather than a crash.
func (d *Document) PageSpans(pageIndex int) (spans []model.Span, err error) {
	defer func() {
		if r := recover(); r != nil {
			spans = nil
			err = fmt.Errorf("reader: page %d: damaged content stream: %v", pageIndex, r)
		}
	}()

	p := d.r.Page(pageIndex + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("reader: page %d out of range", pageIndex)
	}

	texts := p.Content().Text
	spans = make([]model.Span, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		spans = append(spans, model.Span{
			Text: t.S,
			Font: t.Font,
			Size: t.FontSize,
			BBox: model.NewBBox(t.X, t.Y, t.X+t.W, t.Y+t.FontSize),
		})
	}
	if len(spans) == 0 {
		return nil, ErrNoText
	}
	return spans, nil
}

// PageBlocks extracts a page's spans and groups them into layout blocks.
func (d *Document) PageBlocks(pageIndex int) ([]model.Block, error) {
	spans, err := d.PageSpans(pageIndex)
	if err != nil {
		return nil, err
	}
	return GroupBlocks(spans), nil
}

// PageText returns the plain text of a page: block texts joined by blank
// lines, in top-to-bottom order.
func (d *Document) PageText(pageIndex int) (string, error) {
	blocks, err := d.PageBlocks(pageIndex)
	if err != nil {
		return "", err
	}
	out := ""
	for i, b := range blocks {
		if i > 0 {
			out += "\n\n"
		}
		out += b.Text()
	}
	return out, nil
}
