package headings

import (
	"errors"
	"testing"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/model"
)

type fakeSpans struct {
	pages [][]model.Span
}

func (f *fakeSpans) NumPages() int { return len(f.pages) }

func (f *fakeSpans) PageSpans(i int) ([]model.Span, error) {
	return f.pages[i], nil
}

func span(text, font string) model.Span {
	return model.Span{Text: text, Font: font, Size: 12, BBox: model.NewBBox(70, 700, 500, 712)}
}

func body(text string) model.Span { return span(text, "TimesNewRomanPSMT") }
func bold(text string) model.Span { return span(text, "TimesNewRomanPS-BoldMT") }

func TestRepairEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		// "Ââåäåíèå" is "Введение" decoded as Latin-1 instead of cp1251.
		{name: "mojibake repaired", in: "Ââåäåíèå", want: "Введение"},
		{name: "ascii unchanged", in: "Chapter 1", want: "Chapter 1"},
		{name: "cyrillic passes through", in: "Введение", want: "Введение"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairEncoding(tt.in); got != tt.want {
				t.Errorf("RepairEncoding(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindSection_BoldHeading(t *testing.T) {
	doc := &fakeSpans{pages: [][]model.Span{
		{body("Титульный лист")},
		{bold("Введение"), body("Текст введения начинается здесь.")},
		{body("Продолжение введения без заголовков")},
		{bold("Обзор литературы"), body("Текст обзора.")},
	}}
	sc := NewScanner(config.Default())

	rng, err := sc.FindSection(doc, "введение")
	if err != nil {
		t.Fatalf("FindSection: %v", err)
	}
	if rng.Start != 1 {
		t.Errorf("start: expected 1, got %d", rng.Start)
	}
	if rng.End == nil || *rng.End != 2 {
		t.Errorf("end: expected 2, got %v", rng.End)
	}
}

func TestFindSection_NumberedHeading(t *testing.T) {
	doc := &fakeSpans{pages: [][]model.Span{
		{body("2 Обзор литературы"), body("Текст обзора без жирных шрифтов.")},
		{body("Обычный текст")},
	}}
	sc := NewScanner(config.Default())

	rng, err := sc.FindSection(doc, "обзор")
	if err != nil {
		t.Fatalf("FindSection: %v", err)
	}
	if rng.Start != 0 {
		t.Errorf("start: expected 0, got %d", rng.Start)
	}
	if rng.End != nil {
		t.Errorf("expected open end, got %v", *rng.End)
	}
}

func TestFindSection_RepairedHeading(t *testing.T) {
	// The heading arrives mojibaked; the scanner must repair before matching.
	doc := &fakeSpans{pages: [][]model.Span{
		{bold("Ââåäåíèå")},
	}}
	sc := NewScanner(config.Default())

	rng, err := sc.FindSection(doc, "введение")
	if err != nil {
		t.Fatalf("FindSection: %v", err)
	}
	if rng.Start != 0 {
		t.Errorf("start: expected 0, got %d", rng.Start)
	}
}

func TestFindSection_NotFound(t *testing.T) {
	doc := &fakeSpans{pages: [][]model.Span{
		{body("Просто текст, нигде нет заголовков.")},
	}}
	sc := NewScanner(config.Default())

	_, err := sc.FindSection(doc, "введение")
	if !errors.Is(err, ErrHeadingNotFound) {
		t.Fatalf("expected ErrHeadingNotFound, got %v", err)
	}
}
