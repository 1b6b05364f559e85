// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files on top of github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts integer PCM at 8, 16, 24 or 32 bits. The returned
// audio.Source is always little-endian: 8- and 16-bit data are exposed as
// s16le (8-bit offset binary is re-centred), 24- and 32-bit data as s32le
// with 24-bit samples shifted into the top bytes.
//
//	f, _ := os.Open("in.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // ...
//	}
//
// Inputs that are not io.ReadSeeker are buffered in memory first.
//
// # Encoding
//
// Writer takes PCM bytes in any pcm.Format and writes a WAV file of the
// same depth and channel count. Close patches the header sizes, so the
// destination must be seekable.
//
//	out, _ := os.Create("out.wav")
//	w, _ := wav.NewWriter(out, pcm.S16LE)
//	io.Copy(w, pipeline.NewReader(src, p))
//	w.Close()
package wav
