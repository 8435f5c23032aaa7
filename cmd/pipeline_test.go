package cmd

import (
	"testing"

	"github.com/erik-winther/tagpipe/core/alttext"
)

func TestAltMode(t *testing.T) {
	tests := []struct {
		name        string
		auto        bool
		interactive bool
		file        string
		want        alttext.Mode
		wantErr     bool
	}{
		{name: "none", want: alttext.ModeSkip},
		{name: "auto", auto: true, want: alttext.ModeAuto},
		{name: "interactive", interactive: true, want: alttext.ModeInteractive},
		{name: "file", file: "alts.json", want: alttext.ModeFile},
		{name: "auto and interactive", auto: true, interactive: true, wantErr: true},
		{name: "auto and file", auto: true, file: "alts.json", wantErr: true},
		{name: "all three", auto: true, interactive: true, file: "alts.json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := altMode(tt.auto, tt.interactive, tt.file)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("mode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRendererFor(t *testing.T) {
	tests := []struct {
		path    string
		wantExt string
		wantErr bool
	}{
		{path: "report.json", wantExt: ".json"},
		{path: "report.md", wantExt: ".md"},
		{path: "report.markdown", wantExt: ".md"},
		{path: "report.PDF", wantExt: ".pdf"},
		{path: "report.txt", wantExt: ".txt"},
		{path: "report.html", wantErr: true},
		{path: "report", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, err := rendererFor(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Extension() != tt.wantExt {
				t.Errorf("extension = %q, want %q", r.Extension(), tt.wantExt)
			}
		})
	}
}
