package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/solid"
)

// RunFile is the name of the JSON run export inside an output directory.
const RunFile = "run.json"

// Writer writes ranked levels of one solid into a fresh directory.
type Writer struct {
	dir   string
	solid *solid.Solid
}

// DefaultDir returns the default output directory for s, "out_<prefix>".
func DefaultDir(s *solid.Solid) string {
	return "out_" + s.FilePrefix
}

// CheckDir returns an ErrCodeOutputExists error if dir exists.
func CheckDir(dir string) error {
	if err := errors.ValidatePath(dir); err != nil {
		return err
	}
	if _, err := os.Stat(dir); err == nil {
		return errors.New(errors.ErrCodeOutputExists,
			"output directory %s already exists; rename or delete it to regenerate", dir)
	} else if !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "stat %s", dir)
	}
	return nil
}

// NewWriter creates dir and returns a Writer for it. It fails with
// ErrCodeOutputExists, without touching anything, if dir already exists.
func NewWriter(dir string, s *solid.Solid) (*Writer, error) {
	if err := CheckDir(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
	}
	return &Writer{dir: dir, solid: s}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write writes one level as a numbered text file and returns its path.
func (w *Writer) Write(level Level) (string, error) {
	path := filepath.Join(w.dir, FileName(w.solid.FilePrefix, level.Zeros, len(level.Entries)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for i, e := range level.Entries {
		if _, err := fmt.Fprintln(bw, Line(i+1, e, w.solid.Precision)); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}

// WriteRun writes the whole run as indented JSON and returns its path.
func (w *Writer) WriteRun(run *Run) (string, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run: %w", err)
	}
	path := filepath.Join(w.dir, RunFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
