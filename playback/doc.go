// SPDX-License-Identifier: EPL-2.0

// Package playback plays transformed PCM live through
// github.com/ebitengine/oto/v3.
//
// oto permits one audio context per process, so every Player shares it;
// the first Player fixes the device rate and channel count. Only s16le is
// accepted, which is what pcm.S16LE and the decoders in formats/ produce.
//
//	r := pipeline.NewReader(src, p)
//	pl, err := playback.New(r, src.Format())
//	pl.Play()
//	pl.Wait(nil)
package playback
