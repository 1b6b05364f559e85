// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/pcm"
)

// DefaultBinary is looked up in PATH.
const DefaultBinary = "ffmpeg"

var (
	ErrNotFound = errors.New("ffmpeg binary not found")
	ErrFailed   = errors.New("ffmpeg failed")
)

// Decoder transcodes any container ffmpeg understands into raw PCM by
// running it as a subprocess. The zero value produces pcm.S16LE using the
// ffmpeg found in PATH.
type Decoder struct {
	// Format is the PCM layout requested from ffmpeg.
	Format pcm.Format
	// Binary overrides the executable path.
	Binary string
	// Context, when set, kills the process once it is done.
	Context context.Context
}

func (d Decoder) format() pcm.Format {
	if d.Format == (pcm.Format{}) {
		return pcm.S16LE
	}
	return d.Format
}

func (d Decoder) binary() string {
	if d.Binary == "" {
		return DefaultBinary
	}
	return d.Binary
}

// Args builds the ffmpeg command line that decodes input to f on stdout.
func Args(input string, f pcm.Format) []string {
	return []string{
		"-hide_banner",
		"-i", input,
		"-vn",
		"-f", f.Type(),
		"-acodec", "pcm_" + f.Type(),
		"-ar", strconv.Itoa(f.SampleRate),
		"-ac", strconv.Itoa(f.Channels),
		"-loglevel", "error",
		"pipe:1",
	}
}

// Decode feeds r to ffmpeg on stdin.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.start("pipe:0", r)
}

// DecodeFile lets ffmpeg open path itself, which allows seeking in
// containers that need it.
func (d Decoder) DecodeFile(path string) (audio.Source, error) {
	return d.start(path, nil)
}

func (d Decoder) start(input string, stdin io.Reader) (audio.Source, error) {
	f := d.format()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("ffmpeg decoder: %w", err)
	}

	bin, err := exec.LookPath(d.binary())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	ctx := d.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, bin, Args(input, f)...)
	cmd.Stdin = stdin
	s := &source{cmd: cmd, format: f}
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout: %w", err)
	}
	s.stdout = stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start: %w", err)
	}

	return s, nil
}

type source struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	format pcm.Format
	eof    bool

	waitOnce sync.Once
	waitErr  error
}

func (s *source) Format() pcm.Format { return s.format }
func (s *source) BufSize() int       { return s.format.FrameSize() * 1024 }

// wait reaps the process once and turns a non-zero exit into ErrFailed
// carrying ffmpeg's stderr.
func (s *source) wait() error {
	s.waitOnce.Do(func() {
		if err := s.cmd.Wait(); err != nil {
			msg := strings.TrimSpace(s.stderr.String())
			s.waitErr = fmt.Errorf("%w: %w: %s", ErrFailed, err, msg)
		}
	})
	return s.waitErr
}

func (s *source) Read(p []byte) (int, error) {
	if s.eof {
		if err := s.wait(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	want := len(p) / s.format.FrameSize() * s.format.FrameSize()
	if want == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}

	n, err := io.ReadFull(s.stdout, p[:want])
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
		return s.format.Aligned(n), nil
	case errors.Is(err, io.EOF):
		s.eof = true
		if werr := s.wait(); werr != nil {
			return 0, werr
		}
		return 0, io.EOF
	default:
		return n, fmt.Errorf("%w", err)
	}
}

// Close stops ffmpeg if it is still running and reaps it.
func (s *source) Close() error {
	if !s.eof && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		s.eof = true
		_ = s.wait()
		return nil
	}
	if err := s.wait(); err != nil {
		return err
	}
	return nil
}
