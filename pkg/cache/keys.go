package cache

import "fmt"

// FrameKeyOpts identifies one encoded frame. The frame at a given index
// depends on every update before it, so the timeline step is part of the
// key along with the index.
type FrameKeyOpts struct {
	ConfigHash string  `json:"config"`
	Seed       uint64  `json:"seed"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	Index      int     `json:"index"`
	Time       float64 `json:"time"`
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// FrameKey is the key of one encoded frame.
	FrameKey(opts FrameKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey returns "frame:<format>:<hash>".
func (DefaultKeyer) FrameKey(opts FrameKeyOpts) string {
	return hashKey(fmt.Sprintf("frame:%s", opts.Format), opts)
}
