// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audfx/formats/aiff"
	"github.com/ik5/audfx/formats/opus"
	"github.com/ik5/audfx/formats/wav"
	"github.com/ik5/audfx/internal/config"
	"github.com/ik5/audfx/pcm"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput creates the sink for cfg.Output, chosen by extension. Unknown
// extensions and "-" get raw PCM.
func openOutput(cfg config.Config, f pcm.Format) (io.WriteCloser, error) {
	if cfg.Output == stdio {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var w io.WriteCloser
	switch strings.ToLower(filepath.Ext(cfg.Output)) {
	case ".wav", ".wave":
		w, err = wav.NewWriter(file, f)
	case ".aiff", ".aif":
		w, err = aiff.NewWriter(file, f)
	case ".dca":
		w, err = opus.NewWriter(file, f, opus.WithBitrate(cfg.Bitrate))
		if err != nil {
			err = fmt.Errorf("%w (try -rate 48000 -type s16le)", err)
		}
	default:
		w = file
	}
	if err != nil {
		file.Close()
		return nil, err
	}

	return w, nil
}
