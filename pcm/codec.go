// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
)

// Clamp saturates v to the inclusive range [lo, hi].
func Clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func byteOrder(e Endianness) binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Decode reads the signed sample stored at buf[off:off+f.ByteWidth()].
func Decode(buf []byte, off int, f Format) (int64, error) {
	w := f.ByteWidth()
	if off < 0 || w == 0 || off+w > len(buf) {
		return 0, fmt.Errorf("%w: offset %d width %d len %d", ErrOutOfRange, off, w, len(buf))
	}

	order := byteOrder(f.Endian)
	switch f.BitDepth {
	case 16:
		return int64(int16(order.Uint16(buf[off:]))), nil
	case 32:
		return int64(int32(order.Uint32(buf[off:]))), nil
	}

	return 0, fmt.Errorf("%w: %d-bit", ErrUnsupportedType, f.BitDepth)
}

// Encode clamps v to the range of f and writes it at buf[off:]. The buffer is
// modified in place.
func Encode(buf []byte, off int, v int64, f Format) error {
	w := f.ByteWidth()
	if off < 0 || w == 0 || off+w > len(buf) {
		return fmt.Errorf("%w: offset %d width %d len %d", ErrOutOfRange, off, w, len(buf))
	}

	v = f.Clamp(v)
	order := byteOrder(f.Endian)
	switch f.BitDepth {
	case 16:
		order.PutUint16(buf[off:], uint16(int16(v)))
		return nil
	case 32:
		order.PutUint32(buf[off:], uint32(int32(v)))
		return nil
	}

	return fmt.Errorf("%w: %d-bit", ErrUnsupportedType, f.BitDepth)
}
