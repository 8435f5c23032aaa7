// Package alttext acquires image descriptions for a document: from a
// JSON file, interactively on stdin, or generated by a multimodal
// model. Every mode degrades per image to empty alt text rather than
// failing the run.
package alttext

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/erik-winther/tagpipe/core"
)

// Mode selects how alt text is acquired.
type Mode string

const (
	ModeSkip        Mode = "skip"
	ModeAuto        Mode = "auto"
	ModeInteractive Mode = "interactive"
	ModeFile        Mode = "file"
)

// LoadFile reads a JSON object mapping image ordinals to alt text,
// e.g. {"1": "A bar chart", "2": ""}.
func LoadFile(path string) (map[int]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alt text file: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parsing alt text file %s: %w", path, err)
	}

	alts := make(map[int]string, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("parsing alt text file %s: bad image id %q", path, k)
		}
		alts[id] = v
	}
	return alts, nil
}

// Apply copies alt text onto the image records by ordinal. Images
// without an entry keep empty alt text.
func Apply(images []core.Image, alts map[int]string) []core.Image {
	out := make([]core.Image, len(images))
	copy(out, images)
	for i := range out {
		out[i].Alt = alts[out[i].Ordinal]
	}
	return out
}

// SaveFile writes the collected alt text as a JSON object keyed by
// image ordinal, images without alt text included, so the file can be
// edited and fed back in.
func SaveFile(path string, images []core.Image) error {
	m := make(map[string]string, len(images))
	for _, img := range images {
		m[strconv.Itoa(img.Ordinal)] = img.Alt
	}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing alt text file: %w", err)
	}
	return nil
}
