// Package lang adapts the lingua statistical language detector to the
// pipeline. Detection never fails: short or undecidable samples fall
// back to English with full confidence.
package lang

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"

	"github.com/erik-winther/tagpipe/core"
)

// The candidate set covers the languages the documents realistically
// arrive in. A smaller set keeps detection fast and more accurate than
// enabling all models.
var languages = []lingua.Language{
	lingua.English,
	lingua.Swedish,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Danish,
	lingua.Bokmal,
	lingua.Italian,
	lingua.Dutch,
	lingua.Portuguese,
	lingua.Finnish,
}

const (
	// Samples shorter than this are not worth asking the detector about.
	minSampleRunes = 10
	// Candidates below this confidence are noise and dropped.
	minConfidence = 0.01
)

// DefaultLanguage is the fallback code when detection cannot decide.
const DefaultLanguage = "en"

// Detector wraps a lingua detector instance.
type Detector struct {
	inner lingua.LanguageDetector
}

// New builds a Detector. Building loads language models, so callers
// should create one instance and reuse it.
func New() *Detector {
	return &Detector{
		inner: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the primary language code plus ranked candidate
// scores for text. The scores are sorted by descending confidence and
// sum to at most 1.
func (d *Detector) Detect(text string) core.LanguageEstimate {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minSampleRunes {
		return defaultEstimate()
	}

	primary, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return defaultEstimate()
	}

	est := core.LanguageEstimate{Primary: isoCode(primary)}
	for _, cv := range d.inner.ComputeLanguageConfidenceValues(text) {
		if cv.Value() < minConfidence {
			continue
		}
		est.Scores = append(est.Scores, core.LanguageScore{
			Code:       isoCode(cv.Language()),
			Confidence: cv.Value(),
		})
	}
	if len(est.Scores) == 0 {
		est.Scores = []core.LanguageScore{{Code: est.Primary, Confidence: 1.0}}
	}
	return est
}

func defaultEstimate() core.LanguageEstimate {
	return core.LanguageEstimate{
		Primary: DefaultLanguage,
		Scores:  []core.LanguageScore{{Code: DefaultLanguage, Confidence: 1.0}},
	}
}

func isoCode(l lingua.Language) string {
	return strings.ToLower(l.IsoCode639_1().String())
}
