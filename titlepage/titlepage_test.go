package titlepage

import (
	"testing"

	"github.com/korpuslab/vkrtext/model"
)

type fakePage struct {
	spans []model.Span
	dim   model.PageDim
}

func (f *fakePage) NumPages() int { return 1 }

func (f *fakePage) PageSpans(int) ([]model.Span, error) { return f.spans, nil }

func (f *fakePage) PageDim(int) model.PageDim { return f.dim }

func span(text string, size, x, y, w float64) model.Span {
	return model.Span{
		Text: text,
		Font: "TimesNewRomanPSMT",
		Size: size,
		BBox: model.NewBBox(x, y, x+w, y+size),
	}
}

func TestExtract(t *testing.T) {
	// Centered two-line title in the largest font, year at the page bottom.
	doc := &fakePage{
		dim: model.PageDim{Width: 600, Height: 800},
		spans: []model.Span{
			span("Санкт-Петербургский государственный университет", 14, 100, 760, 400),
			span("Автоматическое выделение", 18, 150, 500, 300),
			span("структуры документа", 18, 170, 470, 260),
			span("Научный руководитель: д.ф.-м.н. И. И. Иванов", 12, 100, 300, 400),
			span("Санкт-Петербург, 2023", 12, 220, 60, 160),
		},
	}

	title, year, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if title != "Автоматическое выделение структуры документа" {
		t.Errorf("title: got %q", title)
	}
	if year != "2023" {
		t.Errorf("year: got %q", year)
	}
}

func TestExtract_YearOutsideBottomBand(t *testing.T) {
	doc := &fakePage{
		dim: model.PageDim{Width: 600, Height: 800},
		spans: []model.Span{
			span("Выпускная работа 2021 года", 16, 150, 500, 300),
		},
	}
	_, year, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if year != "2021" {
		t.Errorf("year: got %q", year)
	}
}

func TestExtract_EmptyPage(t *testing.T) {
	doc := &fakePage{
		dim:   model.PageDim{Width: 600, Height: 800},
		spans: []model.Span{span("   ", 12, 100, 400, 50)},
	}
	if _, _, err := Extract(doc); err != ErrEmptyPage {
		t.Fatalf("expected ErrEmptyPage, got %v", err)
	}
}
