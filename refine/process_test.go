package refine

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/korpuslab/vkrtext/record"
)

// rawSection fabricates enough filter-proof raw text to survive bucketing
// with several paragraphs.
func rawSection(sentenceCount int) []string {
	var blocks []string
	for i := 0; i < sentenceCount; i += 3 {
		blocks = append(blocks, sentence(250)+" "+sentence(250)+" "+sentence(250))
	}
	return blocks
}

func writeRecord(t *testing.T, path string, rec record.DocumentRecord) {
	t.Helper()
	data, err := rec.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestProcessFile_RenamesAndBuckets(t *testing.T) {
	seg := newTestSegmenter(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out", "in.json")

	writeRecord(t, in, record.DocumentRecord{
		Meta: record.Metadata{Title: "Работа", Year: "2023", Topic: "Лингвистика"},
		Sections: []record.Section{
			{Key: "введение", Paragraphs: rawSection(12)},
			{Key: "обзор подходов к анализу", Paragraphs: rawSection(12)},
		},
	})

	if err := ProcessFile(seg, in, out); err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	got, err := record.Read(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got.Meta.Title != "Работа" {
		t.Errorf("metadata lost: %+v", got.Meta)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got.Sections))
	}
	if got.Sections[0].Key != RoleIntroduction || got.Sections[1].Key != RoleReview {
		t.Errorf("sections not renamed: %q, %q", got.Sections[0].Key, got.Sections[1].Key)
	}
	for _, sec := range got.Sections {
		if len(sec.Paragraphs) < MinParagraphCount {
			t.Errorf("section %q has %d paragraphs", sec.Key, len(sec.Paragraphs))
		}
	}
}

func TestProcessFile_ExtraSectionsShareReviewRole(t *testing.T) {
	seg := newTestSegmenter(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")

	extra := []string{
		sentence(400) + " " + sentence(420),
		sentence(440) + " " + sentence(460),
	}
	writeRecord(t, in, record.DocumentRecord{
		Meta: record.Metadata{Title: "Работа", Year: "2023", Topic: "Лингвистика"},
		Sections: []record.Section{
			{Key: "введение", Paragraphs: rawSection(12)},
			{Key: "обзор подходов к анализу", Paragraphs: rawSection(12)},
			{Key: "методы исследования", Paragraphs: extra},
		},
	})

	if err := ProcessFile(seg, in, out); err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	got, err := record.Read(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got.Sections))
	}
	if got.Sections[0].Key != RoleIntroduction || got.Sections[1].Key != RoleReview {
		t.Errorf("unexpected keys: %q, %q", got.Sections[0].Key, got.Sections[1].Key)
	}
	// The last of the competing sections wins the review role.
	want := refineSection(seg, extra)
	if !reflect.DeepEqual(got.Sections[1].Paragraphs, want) {
		t.Errorf("review does not hold the last section's paragraphs:\n got %q\nwant %q", got.Sections[1].Paragraphs, want)
	}
}

func TestProcessFile_RejectsThinSection(t *testing.T) {
	seg := newTestSegmenter(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")

	// Three sentences bucket into a single paragraph: below the minimum
	// paragraph count, so the whole document is dropped.
	writeRecord(t, in, record.DocumentRecord{
		Meta: record.Metadata{Title: "Работа", Year: "2023", Topic: "Лингвистика"},
		Sections: []record.Section{
			{Key: "введение", Paragraphs: rawSection(3)},
		},
	})

	if err := ProcessFile(seg, in, out); err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("rejected document must produce no output file")
	}
}

func TestProcessFile_SkipsSmallFile(t *testing.T) {
	seg := newTestSegmenter(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")

	if err := os.WriteFile(in, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ProcessFile(seg, in, out); err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("undersized file must be a no-op")
	}
}

func TestProcessDir_IsolatesFailures(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	writeRecord(t, filepath.Join(inDir, "good.json"), record.DocumentRecord{
		Meta: record.Metadata{Title: "Работа", Year: "2023", Topic: "Лингвистика"},
		Sections: []record.Section{
			{Key: "введение", Paragraphs: rawSection(12)},
		},
	})
	// Malformed but large enough to pass the size gate.
	broken := "{" + strings.Repeat("x", 2048)
	if err := os.WriteFile(filepath.Join(inDir, "broken.json"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inDir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ProcessDir(inDir, outDir, zap.NewNop()); err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "good.json")); err != nil {
		t.Errorf("good record not processed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "broken.json")); !os.IsNotExist(err) {
		t.Error("broken record must not produce output")
	}
}
