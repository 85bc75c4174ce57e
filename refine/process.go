package refine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/korpuslab/vkrtext/record"
)

// Section keys of a refined record, in order.
const (
	RoleIntroduction = "введение"
	RoleReview       = "обзор"
)

// ProcessFile refines one persisted record from pathIn into pathOut.
//
// Undersized files and records with no section keys are skipped silently.
// A section that refines to fewer than MinParagraphCount paragraphs rejects
// the whole document: nothing is written and no error is returned. When a
// record carries more than two section keys, every section past the first
// competes for the review role and the last one wins.
func ProcessFile(seg *Segmenter, pathIn, pathOut string) error {
	info, err := os.Stat(pathIn)
	if err != nil {
		return fmt.Errorf("refine: stat %s: %w", pathIn, err)
	}
	if info.Size() < MinFileSize {
		return nil
	}

	rec, err := record.Read(pathIn)
	if err != nil {
		return err
	}
	if len(rec.Sections) == 0 {
		return nil
	}

	out := record.DocumentRecord{Meta: rec.Meta}
	for idx, sec := range rec.Sections {
		role := RoleReview
		if idx == 0 {
			role = RoleIntroduction
		}

		var sents []string
		for j, blk := range sec.Paragraphs {
			isLast := j == len(sec.Paragraphs)-1
			sents = append(sents, CleanBlock(seg, blk, isLast)...)
		}

		paras := TrimTrailing(BucketSentences(CoalesceLists(sents)))
		if len(paras) < MinParagraphCount {
			return nil
		}
		// Third and later sections all map onto the review role. Overwriting
		// keeps the last one and the output free of duplicate keys.
		replaced := false
		for i := range out.Sections {
			if out.Sections[i].Key == role {
				out.Sections[i].Paragraphs = paras
				replaced = true
				break
			}
		}
		if !replaced {
			out.Sections = append(out.Sections, record.Section{Key: role, Paragraphs: paras})
		}
	}

	data, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("refine: marshal %s: %w", pathIn, err)
	}
	if err := os.MkdirAll(filepath.Dir(pathOut), 0o755); err != nil {
		return fmt.Errorf("refine: mkdir for %s: %w", pathOut, err)
	}
	if err := os.WriteFile(pathOut, data, 0o644); err != nil {
		return fmt.Errorf("refine: write %s: %w", pathOut, err)
	}
	return nil
}

// ProcessDir refines every .json record in inDir into outDir. Per-file
// failures are logged and do not stop the batch.
func ProcessDir(inDir, outDir string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	seg, err := NewSegmenter()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("refine: create output dir %s: %w", outDir, err)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("refine: read input dir %s: %w", inDir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		in := filepath.Join(inDir, e.Name())
		out := filepath.Join(outDir, e.Name())
		if err := ProcessFile(seg, in, out); err != nil {
			log.Warn("skipping record", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		log.Debug("processed record", zap.String("file", e.Name()))
	}
	return nil
}
