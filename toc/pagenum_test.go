package toc

import (
	"errors"
	"testing"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/model"
)

// numberedPage is a page whose only band content is its printed page number
// near the bottom edge.
func numberedPage(nums ...string) []model.Block {
	var blocks []model.Block
	blocks = append(blocks, textBlock(90, 500, "Обычный текст страницы, ничего интересного."))
	for i, n := range nums {
		blocks = append(blocks, textBlock(280+float64(i)*20, 40, n))
	}
	return blocks
}

func TestPageNumberCandidates_BandOnly(t *testing.T) {
	doc := newFakeDoc([]model.Block{
		textBlock(90, 500, "В 2019 году было проведено 12 экспериментов."),
		textBlock(280, 40, "7"),
	})
	cands := PageNumberCandidates(doc, 0, config.Default())
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(cands), cands)
	}
	if cands[0].Num != 7 {
		t.Errorf("expected 7, got %d", cands[0].Num)
	}
}

func TestResolvePrintedPage(t *testing.T) {
	tests := []struct {
		name    string
		tocNums []string
		next    []string
		want    int
		wantErr error
	}{
		{name: "single candidate trusted", tocNums: []string{"3"}, next: []string{"4"}, want: 3},
		{name: "no candidate uses next minus one", tocNums: nil, next: []string{"4"}, want: 3},
		{name: "several candidates one next", tocNums: []string{"2", "17"}, next: []string{"3"}, want: 2},
		{name: "several candidates paired", tocNums: []string{"2", "17"}, next: []string{"3", "99"}, want: 2},
		{name: "no pairing possible", tocNums: []string{"2", "17"}, next: []string{"40", "99"}, wantErr: ErrAmbiguousPageNumber},
		{name: "nothing anywhere", tocNums: nil, next: nil, wantErr: ErrAmbiguousPageNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newFakeDoc(numberedPage(tt.tocNums...), numberedPage(tt.next...))
			got, err := ResolvePrintedPage(doc, 0, config.Default())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePrintedPage: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestPhysicalPage(t *testing.T) {
	// TOC is document page 1 printed as 2; printed page 3 is document page 2.
	if got := PhysicalPage(3, 1, 2); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}
