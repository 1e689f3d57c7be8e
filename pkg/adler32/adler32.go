// Package adler32 implements the Adler-32 checksum as an incremental engine.
//
// A Digest keeps the two running sums packed in one uint32, (s2 << 16) | s1.
// Update folds a window of a caller-owned buffer into the sums and Finalize
// returns the current value without consuming the state, so a checksum can be
// inspected mid-stream and updated further.
//
// A Digest is not safe for concurrent use.
package adler32

import (
	"encoding/binary"
	"hash"

	"github.com/iamNilotpal/adler32/pkg/errors"
)

// Digest is the running Adler-32 state.
type Digest struct {
	sum uint32
}

var _ hash.Hash32 = (*Digest)(nil)

// New returns a Digest in its initial state (s1 = 1, s2 = 0).
func New() *Digest {
	d := &Digest{}
	d.Reset()
	return d
}

// Reset discards any accumulated state.
func (d *Digest) Reset() {
	d.sum = 1
}

// Update folds buf[offset:offset+length] into the checksum. The buffer is
// only read. An offset or length that reaches outside buf returns an
// *errors.OutOfRangeError and leaves the digest untouched.
func (d *Digest) Update(buf []byte, offset, length int) error {
	if offset < 0 || length < 0 || offset > len(buf) || length > len(buf)-offset {
		return errors.NewOutOfRangeError(offset, length, len(buf))
	}
	if length == 0 {
		return nil
	}

	d.sum = update(d.sum, buf[offset:offset+length])
	return nil
}

// Finalize returns the checksum as 4 little-endian bytes. The digest stays
// usable for further updates.
func (d *Digest) Finalize() []byte {
	out := make([]byte, Size)
	binary.LittleEndian.PutUint32(out, d.sum)
	return out
}

// Sum32 returns the checksum as (s2 << 16) | s1.
func (d *Digest) Sum32() uint32 {
	return d.sum
}

// Write adds p to the checksum. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	if len(p) > 0 {
		d.sum = update(d.sum, p)
	}
	return len(p), nil
}

// Sum appends the checksum to b in big-endian order, the byte order
// hash.Hash implementations in the standard library use.
func (d *Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, d.sum)
}

// Size returns the number of bytes Sum will append.
func (d *Digest) Size() int { return Size }

// BlockSize returns the hash's underlying block size.
func (d *Digest) BlockSize() int { return 1 }

// Checksum returns the Adler-32 checksum of data.
func Checksum(data []byte) uint32 {
	if len(data) == 0 {
		return 1
	}
	return update(1, data)
}

// update returns sum with p folded in. len(p) must be at least 1.
//
// A single byte cannot push either sum past 2*Modulus, so one conditional
// subtraction replaces the division. Fewer than 16 bytes keep s1 below
// 2*Modulus as well. Longer inputs are summed in MaxBlock chunks, 16 bytes
// per iteration, and reduced once per chunk.
func update(sum uint32, p []byte) uint32 {
	s1, s2 := sum&0xffff, sum>>16

	switch {
	case len(p) == 1:
		s1 += uint32(p[0])
		if s1 >= Modulus {
			s1 -= Modulus
		}
		s2 += s1
		if s2 >= Modulus {
			s2 -= Modulus
		}

	case len(p) < groupSize:
		for _, b := range p {
			s1 += uint32(b)
			s2 += s1
		}
		if s1 >= Modulus {
			s1 -= Modulus
		}
		s2 %= Modulus

	default:
		for len(p) >= MaxBlock {
			s1, s2 = sumGroups(s1, s2, p[:MaxBlock])
			s1 %= Modulus
			s2 %= Modulus
			p = p[MaxBlock:]
		}

		if len(p) > 0 {
			n := len(p) &^ (groupSize - 1)
			s1, s2 = sumGroups(s1, s2, p[:n])
			for _, b := range p[n:] {
				s1 += uint32(b)
				s2 += s1
			}
			s1 %= Modulus
			s2 %= Modulus
		}
	}

	return s2<<16 | s1
}

// sumGroups adds p to the unreduced sums. len(p) must be a multiple of 16.
func sumGroups(s1, s2 uint32, p []byte) (uint32, uint32) {
	for len(p) >= groupSize {
		_ = p[15]
		s1 += uint32(p[0])
		s2 += s1
		s1 += uint32(p[1])
		s2 += s1
		s1 += uint32(p[2])
		s2 += s1
		s1 += uint32(p[3])
		s2 += s1
		s1 += uint32(p[4])
		s2 += s1
		s1 += uint32(p[5])
		s2 += s1
		s1 += uint32(p[6])
		s2 += s1
		s1 += uint32(p[7])
		s2 += s1
		s1 += uint32(p[8])
		s2 += s1
		s1 += uint32(p[9])
		s2 += s1
		s1 += uint32(p[10])
		s2 += s1
		s1 += uint32(p[11])
		s2 += s1
		s1 += uint32(p[12])
		s2 += s1
		s1 += uint32(p[13])
		s2 += s1
		s1 += uint32(p[14])
		s2 += s1
		s1 += uint32(p[15])
		s2 += s1
		p = p[groupSize:]
	}
	return s1, s2
}
