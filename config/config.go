// Package config holds the keyword lists and empirical thresholds that drive
// section resolution and layout filtering. The values are process-wide
// constants discovered by tuning against real thesis archives; they are
// modeled as an immutable struct injected into each component so individual
// heuristics can be tested and tuned independently of the algorithms.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable used by the extraction pipeline. Construct it
// with Default and override fields via YAML when a corpus needs different
// keywords. A zero Config is not usable.
type Config struct {
	// TocKeywords mark a page as the table of contents on their own
	TocKeywords []string `yaml:"toc_keywords"`

	// IntroKeywords identify the Introduction section (lowercased substring match)
	IntroKeywords []string `yaml:"intro_keywords"`

	// ConclusionKeywords back the TOC heuristic: a page listing both an
	// introduction and a conclusion keyword is treated as a full TOC listing
	ConclusionKeywords []string `yaml:"conclusion_keywords"`

	// ReviewKeywords identify the Literature Review / Research Survey section
	ReviewKeywords []string `yaml:"review_keywords"`

	// NotReviewKeywords exclude bibliography-style sections from review matching
	NotReviewKeywords []string `yaml:"not_review_keywords"`

	// GoalKeywords drive the review fallback: the entry after a goals/tasks
	// section is taken as the review section
	GoalKeywords []string `yaml:"goal_keywords"`

	// CaptionPrefix rejects figure caption lines ("рис.")
	CaptionPrefix string `yaml:"caption_prefix"`

	// MaxIntroPrintedPage is the sanity bound on the Introduction's printed
	// page number; front matter deeper than this is implausible
	MaxIntroPrintedPage int `yaml:"max_intro_printed_page"`

	// PageNumberBand is the fraction of page height at the top and bottom
	// where printed page numbers are expected
	PageNumberBand float64 `yaml:"page_number_band"`

	// FontSizeDiffThreshold is the tolerated deviation of a block's average
	// font size from the page's dominant size
	FontSizeDiffThreshold float64 `yaml:"font_size_diff_threshold"`

	// MinBlockChars drops blocks shorter than this (newlines stripped) unless
	// a continuation signal exempts them
	MinBlockChars int `yaml:"min_block_chars"`

	// MinBlockWidthRatio drops blocks narrower than this fraction of the page
	// width (multi-column sidebars, caption columns)
	MinBlockWidthRatio float64 `yaml:"min_block_width_ratio"`

	// CaptionMaxChars is the maximum length of a caption candidate in the
	// median-gap pass
	CaptionMaxChars int `yaml:"caption_max_chars"`

	// CenterToleranceRatio is the allowed offset of a block center from the
	// page center, as a fraction of page width
	CenterToleranceRatio float64 `yaml:"center_tolerance_ratio"`

	// MinCyrillicRatio is the minimum share of Cyrillic letters among a
	// block's alphabetic characters
	MinCyrillicRatio float64 `yaml:"min_cyrillic_ratio"`

	// GapMultiplier flags a vertical gap as unusually large when it exceeds
	// this multiple of the page's median block gap
	GapMultiplier float64 `yaml:"gap_multiplier"`

	// LeftMarginX is the X threshold under which a block counts as starting
	// at the left margin (hyphen continuation exemption)
	LeftMarginX float64 `yaml:"left_margin_x"`

	// MinPDFBytes skips source files too small to be a real thesis
	MinPDFBytes int64 `yaml:"min_pdf_bytes"`
}

// Default returns the tuned configuration used in production runs.
func Default() Config {
	return Config{
		TocKeywords:           []string{"Оглавление", "Содержание"},
		IntroKeywords:         []string{"введение", "вступление"},
		ConclusionKeywords:    []string{"Заключение"},
		ReviewKeywords:        []string{"обзор", "литератур", "исследований"},
		NotReviewKeywords:     []string{"список литературы"},
		GoalKeywords:          []string{"постановка", "задач", "цель"},
		CaptionPrefix:         "рис.",
		MaxIntroPrintedPage:   10,
		PageNumberBand:        0.1,
		FontSizeDiffThreshold: 1.0,
		MinBlockChars:         15,
		MinBlockWidthRatio:    0.5,
		CaptionMaxChars:       60,
		CenterToleranceRatio:  0.7,
		MinCyrillicRatio:      0.5,
		GapMultiplier:         2.5,
		LeftMarginX:           90,
		MinPDFBytes:           10 * 1024,
	}
}

// FromYAML overlays YAML content onto the default configuration. Only fields
// present in the document are overridden.
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing yaml: %w", err)
	}
	return cfg, nil
}

// Load reads a YAML configuration file and overlays it onto the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return FromYAML(data)
}
