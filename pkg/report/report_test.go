package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/solid"
)

func TestFormatLabel(t *testing.T) {
	rbc := solid.Rhombicuboctahedron()
	prbc := solid.PseudoRhombicuboctahedron()

	tests := []struct {
		name  string
		solid *solid.Solid
		zeros []string
		want  string
	}{
		{"opposite majors", rbc, []string{"A1", "A2"}, "4(3,5)"},
		{"major and edge", rbc, []string{"a1b1", "A1"}, "2(7) 4(5)"},
		{"edges sorted numerically", rbc, []string{"b1c1", "a2b2", "a1b1"}, "2(5,7,12)"},
		{"three classes", prbc, []string{"X2", "A1", "b1x1", "D2"}, "2(2) 3(1,8) 4(2)"},
		{"none", rbc, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLabel(tt.solid, tt.zeros); got != tt.want {
				t.Errorf("FormatLabel(%v) = %q, want %q", tt.zeros, got, tt.want)
			}
		})
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{781.5, 2, "781.5"},
		{552, 2, "552.0"},
		{709.3, 2, "709.3"},
		{1.0 / 3, 2, "0.33"},
		{0.125, 2, "0.12"},
		{0.375, 2, "0.38"},
		{5.0 / 3, 8, "1.66666667"},
		{0, 8, "0.0"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.v, tt.precision); got != tt.want {
			t.Errorf("FormatDistance(%v, %d) = %q, want %q", tt.v, tt.precision, got, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	entries := []Entry{
		{Label: "2(7) 4(5)", Distance: 294},
		{Label: "2(2,7)", Distance: 653},
		{Label: "4(3,5)", Distance: 781.5},
		{Label: "2(7,9)", Distance: 653},
		{Label: "2(12) 4(5)", Distance: 653},
	}
	Rank(solid.Rhombicuboctahedron(), entries)

	want := []string{"4(3,5)", "2(2,7)", "2(7,9)", "2(12) 4(5)", "2(7) 4(5)"}
	for i, e := range entries {
		if e.Label != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Label, want[i])
		}
	}
}

func TestRank_PaddedLabelLength(t *testing.T) {
	tests := []struct {
		name   string
		solid  *solid.Solid
		labels []string
		want   []string
	}{
		{
			name:   "trailing edge group counts a space",
			solid:  solid.Rhombicuboctahedron(),
			labels: []string{"2(6,7,10,11)", "2(3,6,7) 4(5)"},
			want:   []string{"2(3,6,7) 4(5)", "2(6,7,10,11)"},
		},
		{
			name:   "last class ranks first",
			solid:  solid.PseudoRhombicuboctahedron(),
			labels: []string{"2(5)", "3(1)", "4(1)"},
			want:   []string{"4(1)", "2(5)", "3(1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]Entry, len(tt.labels))
			for i, l := range tt.labels {
				entries[i] = Entry{Label: l, Distance: 449.02}
			}
			Rank(tt.solid, entries)
			for i, e := range entries {
				if e.Label != tt.want[i] {
					t.Errorf("entries[%d] = %q, want %q", i, e.Label, tt.want[i])
				}
			}
		})
	}
}

func TestLineAndFileName(t *testing.T) {
	e := Entry{Label: "4(3,5)", Distance: 781.5}
	if got := Line(1, e, 2); got != "1. 4(3,5) 781.5" {
		t.Errorf("Line() = %q", got)
	}
	if got := FileName("pseudo_rbc", 3, 27); got != "pseudo_rbc_3zeros_27.txt" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestWriter(t *testing.T) {
	s := solid.Rhombicuboctahedron()
	dir := filepath.Join(t.TempDir(), DefaultDir(s))

	w, err := NewWriter(dir, s)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	level := Level{Zeros: 2, Entries: []Entry{
		{Label: "4(3,5)", Distance: 781.5},
		{Label: "2(5,7)", Distance: 754},
	}}
	path, err := w.Write(level)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if filepath.Base(path) != "rbc_2zeros_2.txt" {
		t.Errorf("path = %s", path)
	}
	data, _ := os.ReadFile(path)
	if want := "1. 4(3,5) 781.5\n2. 2(5,7) 754.0\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	run := &Run{ID: "run-1", Solid: "rbc", GroupOrder: 24, Levels: []Level{level}}
	path, err = w.WriteRun(run)
	if err != nil {
		t.Fatalf("WriteRun() error: %v", err)
	}
	data, _ = os.ReadFile(path)
	var back Run
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("run.json: %v", err)
	}
	if back.ID != "run-1" || back.Orbits() != 2 {
		t.Errorf("run.json = %+v", back)
	}

	// A second writer must not touch the existing directory.
	if _, err := NewWriter(dir, s); !errors.Is(err, errors.ErrCodeOutputExists) {
		t.Errorf("NewWriter(existing) error = %v, want %s", err, errors.ErrCodeOutputExists)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("dir has %d files, want 2", len(entries))
	}
	if !strings.HasSuffix(w.Dir(), "out_rbc") {
		t.Errorf("Dir() = %s", w.Dir())
	}
}
