package checksum

import (
	"fmt"

	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/internal/core/ports"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

const (
	// Adler32 is the Adler-32 checksum (RFC 1950), 32 bits.
	Adler32 domain.ChecksumAlgorithm = "adler32"
)

// Returns recommended checksum settings.
func DefaultOptions() *domain.ChecksumOptions {
	return &domain.ChecksumOptions{
		Enable:        true,
		VerifyOnRead:  true,
		VerifyOnWrite: false,
		Algorithm:     Adler32,
	}
}

func Validate(input *domain.ChecksumOptions) error {
	if input.Custom == nil {
		switch input.Algorithm {
		case Adler32:
		default:
			return errors.NewValidationError(
				"algorithm", input.Algorithm, fmt.Errorf("unsupported checksum algorithm: %s", input.Algorithm),
			)
		}
	}
	return nil
}

// NewCheckSummer returns the one-shot checksum for the algorithm.
func NewCheckSummer(algorithm domain.ChecksumAlgorithm) (ports.ChecksumPort, error) {
	switch algorithm {
	case Adler32:
		return NewAdler32(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
}

// NewDigest returns an incremental digest for the algorithm.
func NewDigest(algorithm domain.ChecksumAlgorithm) (ports.DigestPort, error) {
	switch algorithm {
	case Adler32:
		return newAdler32Digest(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
}
