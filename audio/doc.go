// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM sources that feed a filter pipeline.
//
// This package contains the upstream building blocks:
//   - Source interface for raw interleaved PCM input
//   - Resampler for sample rate and playback speed conversion
//   - MonoMixer for channel mixing
//   - Registry for decoder lookup by file extension
//
// # Source Interface
//
//	type Source interface {
//	    Format() pcm.Format
//	    Read(p []byte) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// A Source is an io.ReadCloser that also describes its bytes. Decoders in
// the formats packages return one, and the processors here wrap one, so they
// chain freely:
//
//	src, _ := mp3.Decoder{}.Decode(f)
//	rs, _ := audio.NewResampler(src, 48000, audio.WithSpeed(audio.NightcoreSpeed))
//	mono := audio.NewMonoMixer(rs)
//
// # Resampling
//
// The Resampler uses Catmull-Rom cubic interpolation. When the output rate
// is lower than the input rate (including speed-ups), a biquad lowpass runs
// ahead of the interpolator. WithSpeed changes tempo and pitch together,
// which is how the nightcore and vaporwave presets work.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register(wav.Decoder{}, "wav", "wave")
//	dec, err := registry.ForPath("song.WAV")
//
// Keys are matched without case and without a leading dot.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available:
//
//	for {
//	    n, err := src.Read(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
