// SPDX-License-Identifier: EPL-2.0

// Package ffmpeg decodes arbitrary audio containers by running ffmpeg as a
// subprocess and reading raw PCM from its stdout.
//
// It covers what the native decoders in formats/ do not (AAC, FLAC, Opus in
// Ogg or WebM, video soundtracks) and lets ffmpeg resample to the requested
// layout:
//
//	src, err := ffmpeg.Decoder{Format: pcm.S16LE}.DecodeFile("clip.m4a")
//	if errors.Is(err, ffmpeg.ErrNotFound) {
//	    // ffmpeg is not installed
//	}
//	defer src.Close()
//
// A non-zero exit is reported by Read as ErrFailed together with ffmpeg's
// stderr.
package ffmpeg
