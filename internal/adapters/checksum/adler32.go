package checksum

import (
	"github.com/iamNilotpal/adler32/internal/core/ports"
	"github.com/iamNilotpal/adler32/pkg/adler32"
)

type adler32Checksum struct {
	name string
}

func NewAdler32() *adler32Checksum {
	return &adler32Checksum{name: string(Adler32)}
}

func (a *adler32Checksum) Calculate(data []byte) uint64 {
	return uint64(adler32.Checksum(data))
}

func (a *adler32Checksum) Verify(data []byte, expected uint64) bool {
	return a.Calculate(data) == expected
}

func (a *adler32Checksum) Size() uint8 {
	return adler32.Size
}

func (a *adler32Checksum) Name() string {
	return a.name
}

func newAdler32Digest() ports.DigestPort {
	return adler32.New()
}
