// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved stereo signed 16-bit little-endian PCM
// (mono files are duplicated onto both channels), which is exactly the
// pcm.S16LE layout at the file's sample rate. The source reads whole frames
// so samples are never split across calls.
//
//	f, _ := os.Open("song.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // ...
//	}
//	// src.Format() == s16le@44100Hz/2ch for a typical file
package mp3
