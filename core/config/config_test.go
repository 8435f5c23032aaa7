package config

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestDefaultCategoryOrder(t *testing.T) {
	cfg := Default()

	want := []string{
		"lecture", "instructions", "workshop", "report",
		"form", "presentation", "article", "brochure",
	}
	if len(cfg.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cfg.Categories))
	}
	for i, name := range want {
		if cfg.Categories[i].Name != name {
			t.Errorf("category %d: expected %q, got %q", i, name, cfg.Categories[i].Name)
		}
	}
}

func TestDefaultPatternsCompile(t *testing.T) {
	cfg := Default()

	for _, cat := range cfg.Categories {
		for _, p := range cat.Patterns {
			if _, err := regexp.Compile("(?i)" + p); err != nil {
				t.Errorf("category %s pattern %q does not compile: %v", cat.Name, p, err)
			}
		}
	}
	for _, rule := range cfg.TagRules {
		if _, err := regexp.Compile("(?i)" + rule.Pattern); err != nil {
			t.Errorf("tag rule %s pattern %q does not compile: %v", rule.Tag, rule.Pattern, err)
		}
	}
}

func TestNonASCIIBoundaries(t *testing.T) {
	// \b is ASCII-only in Go regexps, so patterns anchored on non-ASCII
	// letters carry explicit boundary classes. Check they still match
	// whole words and reject embedded occurrences.
	cases := []struct {
		pattern string
		match   string
		reject  string
	}{
		{`(?:^|[^\p{L}\p{N}_])övning`, "en övning i veckan", "prövning"},
		{`(?:^|[^\p{L}\p{N}_])übung\b`, "die übung beginnt", "verübungen"},
		{`\bformulär(?:[^\p{L}\p{N}_]|$)`, "fyll i formulär nu", "formulärets"},
		{`(?:^|[^\p{L}\p{N}_])översikt\b`, "en översikt av", "processöversikt"},
		{`(?:^|[^\p{L}\p{N}_])übersicht\b`, "die übersicht zeigt", "gesamtübersicht"},
	}
	for _, tc := range cases {
		re := regexp.MustCompile("(?i)" + tc.pattern)
		if !re.MatchString(tc.match) {
			t.Errorf("pattern %q should match %q", tc.pattern, tc.match)
		}
		if re.MatchString(tc.reject) {
			t.Errorf("pattern %q should not match %q", tc.pattern, tc.reject)
		}
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with empty path failed: %v", err)
	}
	if len(cfg.Categories) != 8 {
		t.Errorf("expected default categories, got %d", len(cfg.Categories))
	}
	if cfg.Heading.MaxLength != 100 {
		t.Errorf("expected default heading max length 100, got %d", cfg.Heading.MaxLength)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tagpipe.yaml")
	content := `
categories:
  - name: memo
    patterns:
      - '\bmemo\b'
slides:
  min_pages: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Categories) != 1 || cfg.Categories[0].Name != "memo" {
		t.Errorf("categories not replaced by override: %+v", cfg.Categories)
	}
	if cfg.Slides.MinPages != 10 {
		t.Errorf("expected overridden min_pages 10, got %d", cfg.Slides.MinPages)
	}
	// Untouched sections keep their defaults.
	if cfg.Slides.MaxAvgChars != 600 {
		t.Errorf("expected default max_avg_chars 600, got %v", cfg.Slides.MaxAvgChars)
	}
	if len(cfg.Heading.Keywords) == 0 {
		t.Error("heading keywords should keep defaults")
	}
	if cfg.Lengths.BriefMaxWords != 500 {
		t.Errorf("expected default brief threshold 500, got %d", cfg.Lengths.BriefMaxWords)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
