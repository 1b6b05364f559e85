// SPDX-License-Identifier: EPL-2.0

// Package pipeline drives a chain of filter stages over raw interleaved PCM
// chunks.
//
// A [Pipeline] decodes every whole sample of a chunk, runs it through the
// attached stages in a fixed order (biquad, equalizer, effects, volume),
// then rounds, clamps and encodes it back into the same buffer:
//
//	p, _ := pipeline.New(pcm.S16LE,
//	    pipeline.WithEqualizer("Rock"),
//	    pipeline.WithOnUpdate(func(s pipeline.State) { ... }),
//	)
//	out := p.Process(chunk) // out aliases chunk
//
// A trailing partial sample is passed through untouched. A disabled
// pipeline passes every chunk through unchanged but keeps counting.
//
// Every control method validates its arguments before touching anything,
// and a successful call fires the update callback exactly once. All methods
// are safe for concurrent use; the callback runs outside the lock.
package pipeline
