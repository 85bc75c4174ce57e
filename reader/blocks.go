package reader

import (
	"sort"

	"github.com/korpuslab/vkrtext/model"
)

// Grouping tolerances. Lines are joined when their baselines sit within half
// a font size of each other; a new block starts when the vertical gap between
// consecutive lines exceeds 1.5 line heights.
const (
	lineTolerance     = 0.5
	blockGapThreshold = 1.5
)

// GroupBlocks groups raw spans into lines and lines into layout blocks.
// The result is ordered top to bottom; spans within a line are ordered left
// to right.
func GroupBlocks(spans []model.Span) []model.Block {
	lines := groupLines(spans)
	if len(lines) == 0 {
		return nil
	}

	var blocks []model.Block
	current := model.Block{Lines: []model.Line{lines[0]}, BBox: lines[0].BBox}

	for i := 1; i < len(lines); i++ {
		prev := lines[i-1]
		curr := lines[i]

		gap := prev.BBox.Bottom() - curr.BBox.Top()
		avgHeight := (prev.BBox.Height() + curr.BBox.Height()) / 2

		if gap > avgHeight*blockGapThreshold {
			blocks = append(blocks, current)
			current = model.Block{Lines: []model.Line{curr}, BBox: curr.BBox}
			continue
		}
		current.Lines = append(current.Lines, curr)
		current.BBox = current.BBox.Union(curr.BBox)
	}
	blocks = append(blocks, current)

	return blocks
}

// groupLines clusters spans by baseline and orders the clusters top to bottom.
func groupLines(spans []model.Span) []model.Line {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]model.Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].BBox.Y0 - sorted[j].BBox.Y0
		tol := (sorted[i].Size + sorted[j].Size) / 2 * lineTolerance
		if yDiff > tol || yDiff < -tol {
			return yDiff > 0 // higher on the page first
		}
		return sorted[i].BBox.X0 < sorted[j].BBox.X0
	})

	var lines []model.Line
	current := model.Line{Spans: []model.Span{sorted[0]}, BBox: sorted[0].BBox}

	for _, sp := range sorted[1:] {
		last := current.Spans[len(current.Spans)-1]
		tol := (sp.Size + last.Size) / 2 * lineTolerance
		if diff := last.BBox.Y0 - sp.BBox.Y0; diff <= tol && diff >= -tol {
			current.Spans = append(current.Spans, sp)
			current.BBox = current.BBox.Union(sp.BBox)
			continue
		}
		lines = append(lines, current)
		current = model.Line{Spans: []model.Span{sp}, BBox: sp.BBox}
	}
	lines = append(lines, current)

	for i := range lines {
		sort.SliceStable(lines[i].Spans, func(a, b int) bool {
			return lines[i].Spans[a].BBox.X0 < lines[i].Spans[b].BBox.X0
		})
	}

	return lines
}
