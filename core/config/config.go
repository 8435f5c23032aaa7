// Package config holds the classification tables and thresholds used by
// the pipeline. The built-in defaults are loaded once at startup; a YAML
// file can replace any table or threshold wholesale.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is one document-type category with its match patterns.
// The same patterns apply to both the filename and the lower-cased
// content. Order matters: ties between content scores resolve to the
// earlier category.
type Category struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// TagRule adds a content tag when its pattern matches the document text.
type TagRule struct {
	Tag     string `yaml:"tag"`
	Pattern string `yaml:"pattern"`
}

// Slides holds the thresholds of the slides-vs-text format heuristic.
type Slides struct {
	MaxAvgChars         float64 `yaml:"max_avg_chars"`
	MinPages            int     `yaml:"min_pages"`
	BulletMinPages      int     `yaml:"bullet_min_pages"`
	NumberedMaxAvgChars float64 `yaml:"numbered_max_avg_chars"`
}

// Heading holds the heading-classifier limits and keyword table.
type Heading struct {
	MaxLength int      `yaml:"max_length"`
	Keywords  []string `yaml:"keywords"`
}

// Lengths holds the word-count thresholds for the length tags.
type Lengths struct {
	BriefMaxWords         int `yaml:"brief_max_words"`
	ComprehensiveMinWords int `yaml:"comprehensive_min_words"`
}

// Config bundles all classification tables and thresholds.
type Config struct {
	Categories []Category `yaml:"categories"`
	TagRules   []TagRule  `yaml:"tag_rules"`
	Slides     Slides     `yaml:"slides"`
	Heading    Heading    `yaml:"heading"`
	Lengths    Lengths    `yaml:"lengths"`
}

// Default returns the built-in tables and thresholds.
//
// Go's regexp \b is an ASCII word boundary, so patterns whose boundary
// falls on a non-ASCII letter spell the boundary out with a rune class.
func Default() *Config {
	return &Config{
		Categories: []Category{
			{Name: "lecture", Patterns: []string{
				`\blecture\b`, `\bslide\b`, `\blesson\b`, `\bchapter\s+\d+`,
				`\bcourse\b`, `\bsyllabus\b`, `\bsemester\b`,
				`\bföreläsning`, `\bintroduktion`, `\bintro\b`, `\bkurs\b`,
				`\bvorlesung\b`, `\beinführung\b`,
				`\bcours\b`, `\bconférence\b`,
				`\bclase\b`, `\blección\b`,
			}},
			{Name: "instructions", Patterns: []string{
				`\binstruction`, `\bhow\s+to\b`, `\bguide\b`, `\bmanual\b`,
				`\bstep\s+\d+`, `\bprocedure\b`, `\btutorial\b`,
				`\binstruktion`, `\bhandledning\b`,
				`\banleitung\b`, `\bhandbuch\b`,
				`\bmanuel\b`,
			}},
			{Name: "workshop", Patterns: []string{
				`\bworkshop\b`, `\btraining\b`, `\bexercise\b`, `\bhands-on`,
				`\bactivity\b`, `\bpractical\b`,
				`\bverkstad\b`, `(?:^|[^\p{L}\p{N}_])övning`, `\butbildning\b`,
				`(?:^|[^\p{L}\p{N}_])übung\b`,
				`\batelier\b`, `\bexercice\b`,
			}},
			{Name: "report", Patterns: []string{
				`\breport\b`, `\banalysis\b`, `\bfindings\b`, `\bsummary\b`,
				`\bconclusion\b`, `\babstract\b`,
				`\brapport\b`, `\banalys\b`, `\bsammanfattning\b`,
				`\bbericht\b`, `\banalyse\b`,
			}},
			{Name: "form", Patterns: []string{
				`\bform\b`, `\bapplication\b`, `\bfill\s+out`, `\bsubmit\b`,
				`\bsignature\b`,
				`\bformulär(?:[^\p{L}\p{N}_]|$)`, `\bansökan\b`,
				`\bformular\b`, `\bantrag\b`,
				`\bformulaire\b`,
			}},
			{Name: "presentation", Patterns: []string{
				`\bpresentation\b`, `\bslideshow\b`, `\boverview\b`, `\bagenda\b`,
				`(?:^|[^\p{L}\p{N}_])översikt\b`,
				`\bpräsentation\b`, `(?:^|[^\p{L}\p{N}_])übersicht\b`,
				`\bprésentation\b`,
			}},
			{Name: "article", Patterns: []string{
				`\barticle\b`, `\bpaper\b`, `\bjournal\b`, `\bpublication\b`,
				`\bresearch\b`,
				`\bartikel\b`, `\buppsats\b`, `\bforskning\b`,
				`\bforschung\b`,
				`\brecherche\b`,
			}},
			{Name: "brochure", Patterns: []string{
				`\bbrochure\b`, `\bflyer\b`, `\bpamphlet\b`, `\bpromotional\b`,
				`\bbroschyr\b`, `\bflygblad\b`,
				`\bbroschüre\b`, `\bflugblatt\b`,
				`\bprospectus\b`,
			}},
		},
		TagRules: []TagRule{
			{Tag: "visual-content", Pattern: `\b(diagram|figure|chart|graph|image)\b`},
			{Tag: "tabular-data", Pattern: `\b(table|column|row)\b`},
			{Tag: "technical-content", Pattern: `\b(code|programming|function|class|variable)\b`},
			{Tag: "mathematical-content", Pattern: `\b(equation|formula|theorem|proof)\b`},
			{Tag: "academic", Pattern: `\b(reference|citation|bibliography)\b`},
		},
		Slides: Slides{
			MaxAvgChars:         600,
			MinPages:            3,
			BulletMinPages:      5,
			NumberedMaxAvgChars: 800,
		},
		Heading: Heading{
			MaxLength: 100,
			Keywords: []string{
				"introduction", "background", "method", "result", "discussion",
				"conclusion", "summary", "overview", "chapter", "section",
				"föreläsning", "introduktion", "bakgrund", "metod", "resultat",
				"diskussion", "sammanfattning", "översikt", "kapitel",
			},
		},
		Lengths: Lengths{
			BriefMaxWords:         500,
			ComprehensiveMinWords: 5000,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// Tables present in the file replace the corresponding default table;
// absent keys keep their defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize restores defaults for zeroed thresholds so a partial
// override file cannot disable a heuristic by accident.
func (c *Config) normalize() {
	def := Default()
	if c.Slides.MaxAvgChars <= 0 {
		c.Slides.MaxAvgChars = def.Slides.MaxAvgChars
	}
	if c.Slides.MinPages <= 0 {
		c.Slides.MinPages = def.Slides.MinPages
	}
	if c.Slides.BulletMinPages <= 0 {
		c.Slides.BulletMinPages = def.Slides.BulletMinPages
	}
	if c.Slides.NumberedMaxAvgChars <= 0 {
		c.Slides.NumberedMaxAvgChars = def.Slides.NumberedMaxAvgChars
	}
	if c.Heading.MaxLength <= 0 {
		c.Heading.MaxLength = def.Heading.MaxLength
	}
	if len(c.Heading.Keywords) == 0 {
		c.Heading.Keywords = def.Heading.Keywords
	}
	if len(c.Categories) == 0 {
		c.Categories = def.Categories
	}
	if len(c.TagRules) == 0 {
		c.TagRules = def.TagRules
	}
	if c.Lengths.BriefMaxWords <= 0 {
		c.Lengths.BriefMaxWords = def.Lengths.BriefMaxWords
	}
	if c.Lengths.ComprehensiveMinWords <= 0 {
		c.Lengths.ComprehensiveMinWords = def.Lengths.ComprehensiveMinWords
	}
}
