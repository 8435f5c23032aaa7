package alttext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erik-winther/tagpipe/core"
)

// stubDescriber counts calls and fails on demand.
type stubDescriber struct {
	calls  int
	failOn int // 1-based call number that errors, 0 for never
}

func (s *stubDescriber) Describe(ctx context.Context, data []byte, mime string) (string, error) {
	s.calls++
	if s.failOn != 0 && s.calls == s.failOn {
		return "", errors.New("model unavailable")
	}
	return fmt.Sprintf("Description %d", s.calls), nil
}

func testImages() []core.Image {
	return []core.Image{
		{Ordinal: 1, Page: 1, ObjNr: 10},
		{Ordinal: 2, Page: 1, ObjNr: 11},
		{Ordinal: 3, Page: 2, ObjNr: 12},
	}
}

func okData(img core.Image) ([]byte, string, error) {
	return []byte{0x89, 0x50}, "image/png", nil
}

func TestApply(t *testing.T) {
	images := Apply(testImages(), map[int]string{1: "A chart", 3: "A map"})

	want := []string{"A chart", "", "A map"}
	for i, img := range images {
		if img.Alt != want[i] {
			t.Errorf("image %d alt = %q, want %q", img.Ordinal, img.Alt, want[i])
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alts.json")
	images := Apply(testImages(), map[int]string{1: "A chart", 2: "Ett diagram"})

	if err := SaveFile(path, images); err != nil {
		t.Fatalf("save: %v", err)
	}
	alts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := map[int]string{1: "A chart", 2: "Ett diagram", 3: ""}
	if len(alts) != len(want) {
		t.Fatalf("loaded %d entries, want %d", len(alts), len(want))
	}
	for id, text := range want {
		if alts[id] != text {
			t.Errorf("alt[%d] = %q, want %q", id, alts[id], text)
		}
	}
}

func TestLoadFileBadID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alts.json")
	if err := os.WriteFile(path, []byte(`{"first": "A chart"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for non-numeric image id")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInteractive(t *testing.T) {
	in := strings.NewReader("A bar chart\nskip\nEn karta\n")
	var out strings.Builder

	images := Interactive(testImages(), in, &out)

	want := []string{"A bar chart", "", "En karta"}
	for i, img := range images {
		if img.Alt != want[i] {
			t.Errorf("image %d alt = %q, want %q", img.Ordinal, img.Alt, want[i])
		}
	}
	if !strings.Contains(out.String(), "Image #2 (page 1)") {
		t.Errorf("prompt output missing image header: %q", out.String())
	}
}

func TestInteractiveEndOfInput(t *testing.T) {
	in := strings.NewReader("A bar chart\n")
	var out strings.Builder

	images := Interactive(testImages(), in, &out)

	if images[0].Alt != "A bar chart" {
		t.Errorf("first alt = %q", images[0].Alt)
	}
	if images[1].Alt != "" || images[2].Alt != "" {
		t.Errorf("images after end of input should stay empty, got %q and %q", images[1].Alt, images[2].Alt)
	}
}

func TestGeneratorDescribe(t *testing.T) {
	gen := NewGenerator(&stubDescriber{}, nil)

	images := gen.Describe(context.Background(), testImages(), okData)

	for i, img := range images {
		want := fmt.Sprintf("Description %d", i+1)
		if img.Alt != want {
			t.Errorf("image %d alt = %q, want %q", img.Ordinal, img.Alt, want)
		}
	}
}

func TestGeneratorDescribeFailureDegrades(t *testing.T) {
	gen := NewGenerator(&stubDescriber{failOn: 2}, nil)

	images := gen.Describe(context.Background(), testImages(), okData)

	if images[0].Alt == "" || images[2].Alt == "" {
		t.Error("images around the failure should still get alt text")
	}
	if images[1].Alt != "" {
		t.Errorf("failed image alt = %q, want empty", images[1].Alt)
	}
}

func TestGeneratorDataFailureDegrades(t *testing.T) {
	stub := &stubDescriber{}
	gen := NewGenerator(stub, nil)
	data := func(img core.Image) ([]byte, string, error) {
		if img.Ordinal == 1 {
			return nil, "", errors.New("broken stream")
		}
		return okData(img)
	}

	images := gen.Describe(context.Background(), testImages(), data)

	if images[0].Alt != "" {
		t.Errorf("unreadable image alt = %q, want empty", images[0].Alt)
	}
	if images[1].Alt == "" || images[2].Alt == "" {
		t.Error("readable images should still get alt text")
	}
	if stub.calls != 2 {
		t.Errorf("describer called %d times, want 2", stub.calls)
	}
}

func TestGeneratorNilDescriber(t *testing.T) {
	gen := NewGenerator(nil, nil)

	images := gen.Describe(context.Background(), testImages(), okData)

	for _, img := range images {
		if img.Alt != "" {
			t.Errorf("image %d alt = %q, want empty with no describer", img.Ordinal, img.Alt)
		}
	}
}

func TestNewOpenRouterDescriberNoKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	if d := NewOpenRouterDescriber("", nil); d != nil {
		t.Fatal("expected nil describer without an API key")
	}
}
