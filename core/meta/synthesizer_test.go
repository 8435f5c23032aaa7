package meta

import (
	"strings"
	"testing"

	"github.com/erik-winther/tagpipe/core"
)

func TestTitleEmbeddedWins(t *testing.T) {
	s := New()
	doc := &core.Document{Filename: "x.pdf", Pages: []string{"Content Line"}}

	title, src, ok := s.Title(Embedded{Title: "Official Title"}, doc)
	if !ok || title != "Official Title" || src != core.SourceEmbedded {
		t.Errorf("got (%q, %v, %v)", title, src, ok)
	}
}

func TestTitleFromFirstLine(t *testing.T) {
	s := New()
	doc := &core.Document{
		Filename: "notes.pdf",
		Pages:    []string{"\n  Quarterly Review 2024  \nsecond line"},
	}

	title, src, ok := s.Title(Embedded{}, doc)
	if !ok || title != "Quarterly Review 2024" || src != core.SourceContent {
		t.Errorf("got (%q, %v, %v)", title, src, ok)
	}
}

func TestTitleLongFirstLineFallsBackToFilename(t *testing.T) {
	s := New()
	doc := &core.Document{
		Filename: "Lecture_01-intro.pdf",
		Pages:    []string{strings.Repeat("x", 120)},
	}

	title, src, ok := s.Title(Embedded{}, doc)
	if !ok || title != "Lecture 01 Intro" || src != core.SourceFilename {
		t.Errorf("got (%q, %v, %v)", title, src, ok)
	}
}

func TestTitleDegrades(t *testing.T) {
	s := New()

	title, src, ok := s.Title(Embedded{}, &core.Document{})
	if ok || title != "" || src != core.SourceDefault {
		t.Errorf("got (%q, %v, %v)", title, src, ok)
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"annual_report.pdf", "Annual Report"},
		{"my-summer-vacation.pdf", "My Summer Vacation"},
		{"UPPER_CASE.pdf", "Upper Case"},
		{"already titled.pdf", "Already Titled"},
	}
	for _, tt := range tests {
		if got := TitleFromFilename(tt.filename); got != tt.expected {
			t.Errorf("TitleFromFilename(%q) = %q, expected %q", tt.filename, got, tt.expected)
		}
	}
}

func TestAuthorEmbeddedWins(t *testing.T) {
	s := New()

	author, src, ok := s.Author(Embedded{Author: "  Jane Doe  "}, &core.Document{})
	if !ok || author != "Jane Doe" || src != core.SourceEmbedded {
		t.Errorf("got (%q, %v, %v)", author, src, ok)
	}
}

func TestAuthorFromContent(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		page     string
		expected string
	}{
		{"english prefix", "ANNUAL REPORT\nBy: John Smith", "John Smith"},
		{"swedish prefix", "Rubrik\nav Anna Svensson", "Anna Svensson"},
		{"german prefix", "Titel\nvon Hans Müller", "Hans Müller"},
		{"bare capitalized name", "Report 2024\nAnna Svensson", "Anna Svensson"},
		{"prefix stripped from bare match", "Titel\nAv Anna Svensson", "Anna Svensson"},
		{"near email", "Heading\nJohn Smith <john@example.com>", "John Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &core.Document{Pages: []string{tt.page}}
			author, src, ok := s.Author(Embedded{}, doc)
			if !ok || author != tt.expected {
				t.Errorf("got (%q, %v), expected %q", author, ok, tt.expected)
			}
			if src != core.SourceContent {
				t.Errorf("expected content source, got %v", src)
			}
		})
	}
}

func TestAuthorLowercaseNameNotMatched(t *testing.T) {
	s := New()
	doc := &core.Document{Pages: []string{"rubrik\nanna svensson"}}

	author, src, ok := s.Author(Embedded{}, doc)
	if ok || author != "" || src != core.SourceDefault {
		t.Errorf("got (%q, %v, %v), expected degradation", author, src, ok)
	}
}

func TestAuthorScansOnlyFirstTenLines(t *testing.T) {
	s := New()
	page := strings.Repeat("sjunde stycket fortsätter nedan\n", 10) + "By: Jane Doe"
	doc := &core.Document{Pages: []string{page}}

	if _, _, ok := s.Author(Embedded{}, doc); ok {
		t.Error("author beyond line 10 should not be found")
	}
}

func TestSubject(t *testing.T) {
	s := New()

	subject, src, ok := s.Subject("report", []string{"report", "text-document", "visual-content", "brief"})
	if !ok || src != core.SourceContent {
		t.Fatalf("got (%v, %v)", src, ok)
	}
	want := "Report - report, text-document, visual-content"
	if subject != want {
		t.Errorf("expected %q, got %q", want, subject)
	}
}

func TestKeywords(t *testing.T) {
	s := New()

	keywords, _, ok := s.Keywords([]string{"lecture", "slides", "brief"})
	if !ok || keywords != "lecture, slides, brief" {
		t.Errorf("got (%q, %v)", keywords, ok)
	}
}

func TestLanguageDefault(t *testing.T) {
	s := New()

	code, src, ok := s.Language(core.LanguageEstimate{})
	if ok || code != "en" || src != core.SourceDefault {
		t.Errorf("got (%q, %v, %v)", code, src, ok)
	}
}

func TestSynthesizeOverridesWin(t *testing.T) {
	s := New()
	in := Input{
		Doc:      &core.Document{Filename: "input.pdf", Pages: []string{"INFERRED TITLE\nBy: Someone Else"}},
		DocType:  "report",
		Tags:     []string{"report", "text-document"},
		Language: core.LanguageEstimate{Primary: "sv"},
		Overrides: Overrides{
			Title:    "Chosen Title",
			Language: "de",
		},
	}

	md := s.Synthesize(in)

	if md.Title != "Chosen Title" || md.Sources["title"] != core.SourceOverride {
		t.Errorf("title = %q source %v", md.Title, md.Sources["title"])
	}
	if md.Language != "de" || md.Sources["language"] != core.SourceOverride {
		t.Errorf("language = %q source %v", md.Language, md.Sources["language"])
	}
	if md.Author != "Someone Else" || md.Sources["author"] != core.SourceContent {
		t.Errorf("author = %q source %v", md.Author, md.Sources["author"])
	}
	if md.Subject != "Report - report, text-document" {
		t.Errorf("subject = %q", md.Subject)
	}
	if md.Keywords != "report, text-document" {
		t.Errorf("keywords = %q", md.Keywords)
	}
}

func TestSynthesizeDegradesPerField(t *testing.T) {
	s := New()
	in := Input{
		Doc:     &core.Document{Filename: "scan.pdf"},
		DocType: "document",
		Tags:    []string{"document", "text-document"},
	}

	md := s.Synthesize(in)

	if md.Title != "Scan" || md.Sources["title"] != core.SourceFilename {
		t.Errorf("title = %q source %v", md.Title, md.Sources["title"])
	}
	if md.Author != "" || md.Sources["author"] != core.SourceDefault {
		t.Errorf("author = %q source %v", md.Author, md.Sources["author"])
	}
	if md.Language != "en" || md.Sources["language"] != core.SourceDefault {
		t.Errorf("language = %q source %v", md.Language, md.Sources["language"])
	}
}
