// SPDX-License-Identifier: EPL-2.0

// Package pcm reads and writes single interleaved PCM samples in raw byte
// buffers.
//
// A [Format] describes the negotiated stream layout: bit depth (16 or 32),
// byte order, sample rate and channel count. The four supported layouts are
// named the way transcoders name them:
//
//	s16le  s16be  s32le  s32be
//
// # Decoding and Encoding
//
// [Decode] reads one signed sample at a byte offset and [Encode] writes one
// back, saturating it to the representable range first:
//
//	f, _ := pcm.ParseType("s16le")
//	v, err := pcm.Decode(buf, 0, f)
//	err = pcm.Encode(buf, 0, v*2, f) // clamped to [-32768, 32767]
//
// Offsets past the end of the buffer return [ErrOutOfRange]. Buffers are
// mutated in place; callers that transform a stream reuse the input buffer as
// output.
//
// # Alignment
//
// [Format.Aligned] truncates a byte length to a whole number of samples. Any
// trailing partial sample is left for the caller to pass through untouched.
package pcm
