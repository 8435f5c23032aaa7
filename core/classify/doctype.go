package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/config"
)

// Format labels for the slides-vs-text heuristic.
const (
	FormatSlides = "slides"
	FormatText   = "text-document"
)

// DefaultDocType is returned when neither filename nor content match
// any category.
const DefaultDocType = "document"

var (
	bulletRe   = regexp.MustCompile(`(?m)(^|\n)\s*[•\-*◦▪]\s+`)
	numberedRe = regexp.MustCompile(`(?m)(^|\n)\s*\d+[\.)]\s+`)
)

type category struct {
	name     string
	patterns []*regexp.Regexp
}

type tagRule struct {
	tag string
	re  *regexp.Regexp
}

// DocTypeClassifier assigns a document-type category, a slides/text
// format and a set of content tags. The category order is significant:
// filename matching returns the first matching category, and content
// score ties resolve to the earlier category.
type DocTypeClassifier struct {
	categories []category
	tagRules   []tagRule
	slides     config.Slides
	lengths    config.Lengths
}

// NewDocTypeClassifier compiles the configured tables. Patterns are
// matched case-insensitively.
func NewDocTypeClassifier(cfg *config.Config) (*DocTypeClassifier, error) {
	c := &DocTypeClassifier{
		slides:  cfg.Slides,
		lengths: cfg.Lengths,
	}
	for _, cat := range cfg.Categories {
		compiled := category{name: cat.Name}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("category %s: compiling %q: %w", cat.Name, p, err)
			}
			compiled.patterns = append(compiled.patterns, re)
		}
		c.categories = append(c.categories, compiled)
	}
	for _, rule := range cfg.TagRules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("tag %s: compiling %q: %w", rule.Tag, rule.Pattern, err)
		}
		c.tagRules = append(c.tagRules, tagRule{tag: rule.Tag, re: re})
	}
	return c, nil
}

// Classify returns the document-type category for the given content
// and filename. The filename is checked first: the first category with
// any matching pattern wins. Otherwise each category is scored by the
// total number of content matches and the highest score wins.
//
// Underscores in the filename count as word separators, so
// "Lecture_01_Introduction.pdf" still matches "\blecture\b".
func (c *DocTypeClassifier) Classify(text, filename string) string {
	filenameLower := strings.ReplaceAll(strings.ToLower(filename), "_", " ")
	for _, cat := range c.categories {
		for _, re := range cat.patterns {
			if re.MatchString(filenameLower) {
				return cat.name
			}
		}
	}

	textLower := strings.ToLower(text)
	best := ""
	bestScore := 0
	for _, cat := range c.categories {
		score := 0
		for _, re := range cat.patterns {
			score += len(re.FindAllString(textLower, -1))
		}
		if score > bestScore {
			best = cat.name
			bestScore = score
		}
	}
	if best != "" {
		return best
	}
	return DefaultDocType
}

// IsSlides reports whether the document looks like a slide deck rather
// than continuous text, based on text density and list markers.
func (c *DocTypeClassifier) IsSlides(doc *core.Document) bool {
	pages := doc.PageCount()
	avg := float64(doc.CharCount()) / float64(max(pages, 1))
	full := doc.FullText()
	hasBullets := bulletRe.MatchString(full)
	hasNumbers := numberedRe.MatchString(full)

	return (avg < c.slides.MaxAvgChars && pages > c.slides.MinPages) ||
		(hasBullets && pages > c.slides.BulletMinPages) ||
		(hasNumbers && avg < c.slides.NumberedMaxAvgChars)
}

// Format returns the format label for the document.
func (c *DocTypeClassifier) Format(doc *core.Document) string {
	if c.IsSlides(doc) {
		return FormatSlides
	}
	return FormatText
}

// ContentTags builds the ordered tag list: document type, format,
// matched content tags, then a length tag when the word count is
// notably small or large.
func (c *DocTypeClassifier) ContentTags(text, docType string, slides bool) []string {
	tags := []string{docType}
	if slides {
		tags = append(tags, FormatSlides)
	} else {
		tags = append(tags, FormatText)
	}

	textLower := strings.ToLower(text)
	for _, rule := range c.tagRules {
		if rule.re.MatchString(textLower) {
			tags = append(tags, rule.tag)
		}
	}

	words := len(strings.Fields(text))
	if words < c.lengths.BriefMaxWords {
		tags = append(tags, "brief")
	} else if words > c.lengths.ComprehensiveMinWords {
		tags = append(tags, "comprehensive")
	}
	return tags
}
