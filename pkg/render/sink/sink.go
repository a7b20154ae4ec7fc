package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/weave/pkg/errors"
	"github.com/matzehuels/weave/pkg/weave"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Formats lists every supported format.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON}

// Render encodes the frame in the named format.
func Render(f weave.Frame, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(f), nil
	case FormatPNG:
		return RenderPNG(f)
	case FormatJSON:
		return RenderJSON(f)
	default:
		return nil, errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", format, Formats...)
	}
}

// DirWriter writes each rendered frame as numbered files, one per format.
// It satisfies the scene renderer interface.
type DirWriter struct {
	Dir     string
	Formats []string
	Prefix  string // file name prefix, "frame" when empty

	n     int
	paths []string
}

// NewDirWriter creates dir if needed.
func NewDirWriter(dir string, formats ...string) (*DirWriter, error) {
	if err := errors.ValidateFormats(formats, Formats...); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &DirWriter{Dir: dir, Formats: formats}, nil
}

// Render writes the next frame.
func (w *DirWriter) Render(f weave.Frame) error {
	for _, format := range w.Formats {
		data, err := Render(f, format)
		if err != nil {
			return err
		}
		if err := w.Write(w.n, format, data); err != nil {
			return err
		}
	}
	w.n++
	return nil
}

// Write stores already encoded frame data under the file name for index i.
func (w *DirWriter) Write(i int, format string, data []byte) error {
	path := w.Path(i, format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.paths = append(w.paths, path)
	return nil
}

// Path is the file path for frame i in format.
func (w *DirWriter) Path(i int, format string) string {
	prefix := w.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	return filepath.Join(w.Dir, fmt.Sprintf("%s_%05d.%s", prefix, i, format))
}

// Paths lists every file written so far.
func (w *DirWriter) Paths() []string { return w.paths }

// Close implements the renderer interface. Files are closed as they are
// written, so there is nothing to release.
func (w *DirWriter) Close() error { return nil }
