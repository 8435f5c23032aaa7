// Package meta synthesizes the accessibility metadata record: title,
// author, subject, keywords and language, each with its provenance.
// Every field degrades independently, so a failed extraction never
// aborts the pipeline.
package meta

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erik-winther/tagpipe/core"
)

// Author lines are matched against these patterns in order: explicit
// multilingual prefixes first, then a bare capitalized-name pattern,
// then a name-next-to-email pattern. The bare-name pattern is case
// sensitive on purpose.
var authorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:by|author|written by|presenter|instructor)[\s:]+(.+?)$`),
	regexp.MustCompile(`(?i)^(?:av|författare|föreläsare)[\s:]+(.+?)$`),
	regexp.MustCompile(`(?i)^(?:von|autor|verfasser)[\s:]+(.+?)$`),
	regexp.MustCompile(`(?i)^(?:par|auteur)[\s:]+(.+?)$`),
	regexp.MustCompile(`^([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)$`),
	regexp.MustCompile(`(?i)^(.+?)\s*[<(]?[\w.-]+@[\w.-]+[>)]?$`),
}

var (
	authorPrefixRe = regexp.MustCompile(`(?i)^(?:by|av|von|par|author|författare)[\s:]+`)
	letterRe       = regexp.MustCompile(`[A-Za-zÀ-ÿ]`)
)

const (
	maxTitleLength  = 100
	authorScanLines = 10
	minAuthorRunes  = 2
	maxAuthorRunes  = 50
	subjectTagCount = 3
)

// Embedded holds metadata already present in the document.
type Embedded struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Language string
}

// Overrides holds user-supplied field values. Empty means unset.
type Overrides struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Language string
}

// Input bundles everything the synthesizer works from.
type Input struct {
	Doc       *core.Document
	Embedded  Embedded
	DocType   string
	Tags      []string
	Language  core.LanguageEstimate
	Overrides Overrides
}

// Synthesizer builds metadata records. It is stateless.
type Synthesizer struct{}

// New creates a Synthesizer.
func New() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize combines the inputs into one metadata record. Overrides
// win over every inference; each remaining field falls back through
// its own chain and records where its value came from.
func (s *Synthesizer) Synthesize(in Input) core.Metadata {
	md := core.Metadata{Sources: make(map[string]core.FieldSource, 5)}

	assign := func(field string, override string, infer func() (string, core.FieldSource, bool)) string {
		if override != "" {
			md.Sources[field] = core.SourceOverride
			return override
		}
		value, src, _ := infer()
		md.Sources[field] = src
		return value
	}

	md.Title = assign("title", in.Overrides.Title, func() (string, core.FieldSource, bool) {
		return s.Title(in.Embedded, in.Doc)
	})
	md.Author = assign("author", in.Overrides.Author, func() (string, core.FieldSource, bool) {
		return s.Author(in.Embedded, in.Doc)
	})
	md.Subject = assign("subject", in.Overrides.Subject, func() (string, core.FieldSource, bool) {
		return s.Subject(in.DocType, in.Tags)
	})
	md.Keywords = assign("keywords", in.Overrides.Keywords, func() (string, core.FieldSource, bool) {
		return s.Keywords(in.Tags)
	})
	md.Language = assign("language", in.Overrides.Language, func() (string, core.FieldSource, bool) {
		return s.Language(in.Language)
	})
	return md
}

// Title resolves the document title: embedded metadata first, then the
// first line of page one when it is short enough, then the filename
// with separators replaced and words title-cased.
func (s *Synthesizer) Title(embedded Embedded, doc *core.Document) (string, core.FieldSource, bool) {
	if embedded.Title != "" {
		return embedded.Title, core.SourceEmbedded, true
	}
	if lines := firstPageLines(doc); len(lines) > 0 {
		if utf8.RuneCountInString(lines[0]) < maxTitleLength {
			return lines[0], core.SourceContent, true
		}
	}
	if doc != nil && doc.Filename != "" {
		return TitleFromFilename(doc.Filename), core.SourceFilename, true
	}
	return "", core.SourceDefault, false
}

// Author resolves the document author: embedded metadata first, then a
// scan of the first lines of page one against the author patterns.
// When nothing matches the field degrades to empty.
func (s *Synthesizer) Author(embedded Embedded, doc *core.Document) (string, core.FieldSource, bool) {
	if a := strings.TrimSpace(embedded.Author); a != "" {
		return a, core.SourceEmbedded, true
	}
	if author, ok := findAuthor(firstPageLines(doc)); ok {
		return author, core.SourceContent, true
	}
	return "", core.SourceDefault, false
}

// Subject synthesizes "{DocType} - {first three tags}".
func (s *Synthesizer) Subject(docType string, tags []string) (string, core.FieldSource, bool) {
	if docType == "" {
		return "", core.SourceDefault, false
	}
	head := tags
	if len(head) > subjectTagCount {
		head = head[:subjectTagCount]
	}
	return titleCase(docType) + " - " + strings.Join(head, ", "), core.SourceContent, true
}

// Keywords joins all tags with commas.
func (s *Synthesizer) Keywords(tags []string) (string, core.FieldSource, bool) {
	if len(tags) == 0 {
		return "", core.SourceDefault, false
	}
	return strings.Join(tags, ", "), core.SourceContent, true
}

// Language takes the detector's primary estimate, defaulting to
// English when the estimate is empty.
func (s *Synthesizer) Language(est core.LanguageEstimate) (string, core.FieldSource, bool) {
	if est.Primary == "" {
		return "en", core.SourceDefault, false
	}
	return est.Primary, core.SourceContent, true
}

// TitleFromFilename turns a file name into a displayable title:
// extension dropped, separators replaced by spaces, words title-cased.
func TitleFromFilename(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	return titleCase(stem)
}

// findAuthor scans the first lines of a page for an author mention.
func findAuthor(lines []string) (string, bool) {
	if len(lines) > authorScanLines {
		lines = lines[:authorScanLines]
	}
	for _, line := range lines {
		length := utf8.RuneCountInString(line)
		if length < 3 || length > 100 {
			continue
		}
		for _, re := range authorPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			author := strings.TrimSpace(m[1])
			if n := utf8.RuneCountInString(author); n < minAuthorRunes || n > maxAuthorRunes {
				continue
			}
			if !letterRe.MatchString(author) {
				continue
			}
			author = strings.TrimSpace(authorPrefixRe.ReplaceAllString(author, ""))
			return author, true
		}
	}
	return "", false
}

// firstPageLines returns the trimmed, non-empty lines of page one.
func firstPageLines(doc *core.Document) []string {
	if doc == nil || len(doc.Pages) == 0 {
		return nil
	}
	var lines []string
	for _, raw := range strings.Split(doc.Pages[0], "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// titleCase upper-cases the first letter of every word, where a word
// starts after any non-letter, and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToTitle(r))
			prevLetter = true
		}
	}
	return b.String()
}
