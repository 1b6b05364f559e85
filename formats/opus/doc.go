// SPDX-License-Identifier: EPL-2.0

// Package opus encodes and decodes Opus audio in DCA framing with
// gopkg.in/hraban/opus.v2 (cgo bindings to libopus).
//
// DCA is the raw packet stream used by Discord bots: every Opus packet is
// prefixed with its byte length as a little-endian int16, with no file
// header. Writer buffers 16-bit PCM into fixed frames (20 ms by default),
// encodes each and writes the prefixed packet:
//
//	out, _ := os.Create("out.dca")
//	w, err := opus.NewWriter(out, pcm.S16LE, opus.WithBitrate(96000))
//	io.Copy(w, pipeline.NewReader(src, p))
//	w.Close() // pads and flushes the last frame
//
// Decoder turns a DCA stream back into PCM so that existing .dca files can
// be filtered again.
package opus
