// Package weave runs the line lifecycle: it spawns lines into free slots,
// reveals them over time, fades the oldest out and turns the live set into
// drawable frames.
//
// A [Manager] is driven by an external clock. Each call to [Manager.Update]
// advances the lifecycle to the given time and returns a [Frame] of strokes
// in camera space:
//
//	src := rng.New(seed)
//	m, err := weave.New(config.Default(), src, weave.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	for t := 0.0; t < 30; t += 1.0 / 30 {
//	    frame := m.Update(t)
//	    renderer.Render(frame)
//	}
//
// At most one line is revealing at a time. A new line is spawned as soon as
// the newest one is fully revealed. Once the live set reaches
// LinesCount-DisappearingBuffer lines, the oldest starts fading and is
// removed in the update where its width reaches zero.
//
// Replaying the same time sequence with the same seed reproduces every frame.
// A Manager is not safe for concurrent use.
package weave
