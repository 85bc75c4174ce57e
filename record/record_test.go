package record

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleRecord() DocumentRecord {
	return DocumentRecord{
		Meta: Metadata{
			Title: "Автоматическое выделение структуры документа",
			Year:  "2023",
			Topic: "Компьютерная лингвистика",
		},
		Sections: []Section{
			{Key: "введение", Paragraphs: []string{"Первый абзац.", "Второй абзац."}},
			{Key: "обзор литературы", Paragraphs: []string{"Абзац обзора."}},
		},
	}
}

func TestMarshalKeyOrder(t *testing.T) {
	data, err := sampleRecord().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	s := string(data)

	order := []string{`"заголовок"`, `"год"`, `"тема"`, `"введение"`, `"обзор литературы"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		if idx < 0 {
			t.Fatalf("key %s missing from %s", key, s)
		}
		if idx < last {
			t.Errorf("key %s out of order", key)
		}
		last = idx
	}
	if strings.Contains(s, `"id"`) || strings.Contains(s, `"код_темы"`) {
		t.Error("empty optional keys must be omitted")
	}
}

func TestMarshalOptionalID_First(t *testing.T) {
	rec := sampleRecord()
	rec.Meta.ID = "123456"
	data, err := rec.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	s := string(data)
	if strings.Index(s, `"id"`) > strings.Index(s, `"заголовок"`) {
		t.Errorf("id must precede the title: %s", s)
	}
}

func TestRoundTrip(t *testing.T) {
	rec := sampleRecord()
	rec.Meta.TopicCode = "09.03.04"

	data, err := rec.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var got DocumentRecord
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got.Meta != rec.Meta {
		t.Errorf("metadata mismatch: %+v vs %+v", got.Meta, rec.Meta)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got.Sections))
	}
	if got.Sections[0].Key != "введение" || got.Sections[1].Key != "обзор литературы" {
		t.Errorf("section order not preserved: %q, %q", got.Sections[0].Key, got.Sections[1].Key)
	}
	if got.Sections[0].Paragraphs[1] != "Второй абзац." {
		t.Errorf("paragraphs mismatch: %q", got.Sections[0].Paragraphs[1])
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	var rec DocumentRecord
	if err := rec.UnmarshalJSON([]byte(`{"заголовок": truncated`)); err == nil {
		t.Fatal("expected an error for malformed input")
	}
	if err := rec.UnmarshalJSON([]byte(`[1, 2, 3]`)); err == nil {
		t.Fatal("expected an error for a non-object record")
	}
}

func TestFilename(t *testing.T) {
	a := Filename("Заголовок", "2023")
	b := Filename("Заголовок", "2023")
	c := Filename("Заголовок", "2024")

	if a != b {
		t.Error("same inputs must give the same name")
	}
	if a == c {
		t.Error("different years must give different names")
	}
	if !strings.HasSuffix(a, ".json") || len(a) != 32+len(".json") {
		t.Errorf("unexpected filename shape: %q", a)
	}
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	rec := sampleRecord()

	path, err := Write(dir, rec)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != Filename(rec.Meta.Title, rec.Meta.Year) {
		t.Errorf("unexpected path %q", path)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Meta.Title != rec.Meta.Title || len(got.Sections) != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestWrite_SkipsEmptyRecord(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, DocumentRecord{Meta: Metadata{Title: "x", Year: "2023"}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != "" {
		t.Errorf("expected no file for a sectionless record, got %q", path)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory should be empty, found %d entries", len(entries))
	}
}
