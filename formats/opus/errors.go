// SPDX-License-Identifier: EPL-2.0

package opus

import "errors"

var (
	// ErrUnsupportedFormat is returned for PCM layouts Opus cannot carry:
	// anything but 16-bit samples at 8, 12, 16, 24 or 48 kHz with one or
	// two channels.
	ErrUnsupportedFormat = errors.New("unsupported format for opus")

	// ErrInvalidFrameDuration is returned for frame sizes Opus does not define.
	ErrInvalidFrameDuration = errors.New("invalid opus frame duration")

	// ErrInvalidBitrate is returned for a non-positive bitrate.
	ErrInvalidBitrate = errors.New("invalid opus bitrate")

	// ErrCorruptPacket is returned when a DCA length prefix is negative or
	// the packet is cut short.
	ErrCorruptPacket = errors.New("corrupt dca packet")
)
