package sink

import (
	"encoding/json"

	"github.com/matzehuels/weave/pkg/weave"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithCompact drops indentation.
func WithCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// RenderJSON encodes the frame.
func RenderJSON(f weave.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.compact {
		return json.Marshal(f)
	}
	return json.MarshalIndent(f, "", "  ")
}
