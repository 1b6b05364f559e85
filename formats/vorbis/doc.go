// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to float samples in [-1, 1]; the source quantizes them to
// signed 16-bit little-endian PCM (x·32768, rounded half away from zero
// and saturated) at the stream's own rate and channel count.
//
//	f, _ := os.Open("track.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
