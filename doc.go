// SPDX-License-Identifier: EPL-2.0

// Package audfx applies real-time effects to interleaved integer PCM.
//
// The work is split across subpackages:
//
//   - pcm: sample layouts (s16le, s16be, s32le, s32be), decoding, encoding
//     and saturating conversion.
//   - biquad: RBJ second-order filters with per-channel state.
//   - equalizer: a ten-band peaking equalizer with named presets.
//   - effects: bass boost, 8D auto-pan, tremolo and vibrato.
//   - volume: percentage gain with clipping.
//   - pipeline: the ordered chain (filter, equalizer, effects, volume) with
//     bypass, counters and change notifications, plus io.Reader and
//     io.Writer adapters.
//
// Decoding and output live in audio (sources, resampler, mono mixer),
// formats/* (wav, aiff, mp3, vorbis, opus, ffmpeg) and playback.
//
// # Quick Start
//
//	f, _ := os.Open("song.mp3")
//	src, _ := mp3.Decoder{}.Decode(f)
//
//	p, _ := pipeline.New(src.Format(),
//	    pipeline.WithEqualizer("Rock"),
//	    pipeline.WithEffects("8D"),
//	    pipeline.WithVolume(80),
//	)
//
//	out, _ := os.Create("out.wav")
//	w, _ := wav.NewWriter(out, src.Format())
//	audfx.Process(w, src, p, 0)
//	w.Close()
//
// Conversion puts a resampler, speed change and mono downmix in front of a
// source before it reaches the pipeline.
package audfx
