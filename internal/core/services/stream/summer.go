// Package stream computes Adler-32 checksums of readers and files using
// pooled read buffers.
package stream

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/iamNilotpal/adler32/internal/adapters/checksum"
	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/pkg/errors"
	"github.com/iamNilotpal/adler32/pkg/logger"
	"github.com/iamNilotpal/adler32/pkg/pool"
	"github.com/iamNilotpal/adler32/pkg/system"
)

// StdinPath names standard input in reports.
const StdinPath = "-"

// FileAttempts is how many times SumFile reads a file whose failure
// errors.IsRetryAble accepts.
const FileAttempts = 2

// Summer checksums streams. It is safe for concurrent use.
type Summer struct {
	options *domain.StreamOptions
	buffers *pool.BufferPool
	log     *zap.SugaredLogger
	open    func(path string) (io.ReadCloser, error)
}

// NewSummer validates opts and returns a Summer. Nil options select
// DefaultOptions and a nil logger disables logging.
func NewSummer(opts *domain.StreamOptions, log *zap.SugaredLogger) (*Summer, error) {
	opts = prepareDefaults(opts)
	if err := Validate(opts); err != nil {
		return nil, err
	}

	return &Summer{
		options: opts,
		buffers: pool.NewBufferPool(int(opts.BufferSize)),
		log:     logger.OrNop(log),
		open:    openFile,
	}, nil
}

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Sum reads r to the end and returns its checksum. The report's Path is
// left empty.
func (s *Summer) Sum(ctx context.Context, r io.Reader) (*domain.Report, error) {
	digest, err := checksum.NewDigest(checksum.Adler32)
	if err != nil {
		return nil, err
	}

	buf := s.buffers.Get()
	defer s.buffers.Put(buf)

	var size int64
	err = system.RunWithContext(ctx, func(ctx context.Context) error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			n, err := r.Read(*buf)
			if n > 0 {
				if err := digest.Update(*buf, 0, n); err != nil {
					return err
				}
				size += int64(n)
			}

			if err == io.EOF {
				return nil
			}
			if err != nil {
				return errors.NewOperationError(errors.ErrorStorage, "read input", err)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		Size:     size,
		Checksum: digest.Sum32(),
		Digest:   digest.Finalize(),
	}, nil
}

// SumFile checksums the file at path, or standard input when path is StdinPath.
// A file that fails with a retryable storage error is read again from the
// start, up to FileAttempts times. Standard input is read once.
func (s *Summer) SumFile(ctx context.Context, path string) (*domain.Report, error) {
	if path == StdinPath {
		return s.sumNamed(ctx, path, os.Stdin)
	}

	for attempt := 1; ; attempt++ {
		report, err := s.sumPath(ctx, path)
		if err == nil || attempt >= FileAttempts || !errors.IsRetryAble(err) || ctx.Err() != nil {
			return report, err
		}
		s.log.Warnw("retrying checksum", "path", path, "attempt", attempt, "error", err)
	}
}

func (s *Summer) sumPath(ctx context.Context, path string) (*domain.Report, error) {
	file, err := s.open(path)
	if err != nil {
		return nil, errors.NewOperationError(errors.ErrorStorage, "open "+path, err)
	}
	defer file.Close()

	return s.sumNamed(ctx, path, file)
}

// VerifyFile checksums path and compares the result with expected.
//
// Returns a *errors.ChecksumError when the values differ.
func (s *Summer) VerifyFile(ctx context.Context, path string, expected uint32) error {
	report, err := s.SumFile(ctx, path)
	if err != nil {
		return err
	}

	if report.Checksum != expected {
		s.log.Warnw("checksum mismatch", "path", path, "expected", expected, "actual", report.Checksum)
		return errors.NewChecksumError(path, expected, report.Checksum)
	}
	return nil
}

func (s *Summer) sumNamed(ctx context.Context, path string, r io.Reader) (*domain.Report, error) {
	report, err := s.Sum(ctx, r)
	if err != nil {
		return nil, err
	}

	report.Path = path
	s.log.Debugw("checksummed", "path", path, "size", report.Size, "checksum", report.Checksum)
	return report, nil
}
