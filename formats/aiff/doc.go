// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes and encodes AIFF files with github.com/go-audio/aiff.
//
// AIFF is big-endian on disk and the decoder keeps it that way: sources
// report s16be for 8- and 16-bit files and s32be for 24- and 32-bit files,
// with narrower samples shifted into the high bits. The pipeline works on
// either byte order, so no swap is needed before processing.
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // ...
//	}
//
// Writer accepts any pcm.Format and writes a file of the same depth and
// channel count.
package aiff
