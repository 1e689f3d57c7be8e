// Package frame implements a checksummed block container. Every frame is a
// fixed size header followed by a payload that is optionally compressed.
// The header stores the Adler-32 of the uncompressed payload so readers can
// detect corruption independently of the codec.
package frame

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/iamNilotpal/adler32/internal/adapters/checksum"
	"github.com/iamNilotpal/adler32/internal/adapters/compression"
	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/pkg/errors"
	"github.com/iamNilotpal/adler32/pkg/logger"
)

// ErrWriterClosed indicates a write on a closed Writer.
var ErrWriterClosed = fmt.Errorf("frame writer is closed")

// NewWriter returns a Writer that appends frames to w. Nil options select
// DefaultOptions and a nil logger disables logging.
func NewWriter(w io.Writer, opts *domain.FrameOptions, log *zap.SugaredLogger) (*Writer, error) {
	if w == nil {
		return nil, errors.NewValidationError("writer", nil, fmt.Errorf("writer is required"))
	}

	opts = prepareDefaults(opts)
	if err := Validate(opts); err != nil {
		return nil, err
	}

	writer := Writer{
		options: opts,
		w:       bufio.NewWriter(w),
		log:     logger.OrNop(log),
	}

	if opts.ChecksumOptions.Enable {
		if opts.ChecksumOptions.Custom != nil {
			writer.checksum = opts.ChecksumOptions.Custom
		} else {
			summer, err := checksum.NewCheckSummer(opts.ChecksumOptions.Algorithm)
			if err != nil {
				return nil, err
			}
			writer.checksum = summer
		}
	}

	if opts.CompressionOptions.Enable {
		compressor, err := compression.New(opts.CompressionOptions)
		if err != nil {
			return nil, fmt.Errorf("error creating compressor : %w", err)
		}
		writer.compressor = compressor
	}

	return &writer, nil
}

// Write encodes payload as one frame. The frame is buffered; call Flush or
// Close to push it to the underlying writer.
func (fw *Writer) Write(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return ErrWriterClosed
	}
	if fw.err != nil {
		return fw.err
	}

	if uint64(len(payload)) > uint64(fw.options.MaxPayloadSize) {
		return errors.NewValidationError(
			"payload", len(payload),
			fmt.Errorf("payload of %d bytes exceeds max payload size %d", len(payload), fw.options.MaxPayloadSize),
		)
	}

	header, encoded, err := fw.prepareFrame(payload)
	if err != nil {
		return err
	}

	if err := binary.Write(fw.w, binary.LittleEndian, header); err != nil {
		return fw.fail("write frame header", err)
	}

	if nn, err := fw.w.Write(encoded); err != nil {
		return fw.fail("write frame payload", err)
	} else if nn != len(encoded) {
		return fw.fail("write frame payload", io.ErrShortWrite)
	}

	fw.frames++
	fw.log.Debugw(
		"frame written",
		"frame", fw.frames, "rawSize", header.RawSize, "payloadSize", header.PayloadSize,
		"codec", header.Codec, "checksum", header.Checksum,
	)
	return nil
}

// Flush writes buffered frames to the underlying writer.
func (fw *Writer) Flush() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return ErrWriterClosed
	}
	if fw.err != nil {
		return fw.err
	}
	return fw.flushLocked()
}

// Frames returns the number of frames written so far.
func (fw *Writer) Frames() uint64 {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.frames
}

// Close flushes buffered frames and releases the compressor. It does not
// close the underlying writer.
func (fw *Writer) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return ErrWriterClosed
	}
	fw.closed = true

	err := fw.err
	if err == nil {
		err = fw.flushLocked()
	}

	if fw.compressor != nil {
		if cerr := fw.compressor.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing compressor : %w", cerr)
		}
	}
	return err
}

func (fw *Writer) flushLocked() error {
	if err := fw.w.Flush(); err != nil {
		return fw.fail("flush frames", err)
	}
	return nil
}

// Marks the writer failed. The buffer may hold a partial frame, so every
// later call returns the same error instead of appending after it.
func (fw *Writer) fail(operation string, err error) error {
	fw.err = errors.NewOperationError(errors.ErrorStorage, operation, err)
	fw.log.Errorw("frame writer failed", "operation", operation, "frames", fw.frames, "error", err)
	return fw.err
}

// Builds the header and the bytes to store for payload:
//   - checksums the raw payload when enabled
//   - compresses payloads of at least CompressionThreshold bytes
//   - keeps the compressed form only if it is smaller
//   - with VerifyOnWrite, round trips the compressed form and compares checksums
func (fw *Writer) prepareFrame(payload []byte) (*Header, []byte, error) {
	header := &Header{
		Magic:       Magic,
		Version:     Version,
		Codec:       compression.StoredID,
		RawSize:     uint32(len(payload)),
		PayloadSize: uint32(len(payload)),
	}

	if fw.checksum != nil {
		header.Checksum = uint32(fw.checksum.Calculate(payload))
		header.Flags |= FlagChecksum
	}

	if fw.compressor == nil || len(payload) < CompressionThreshold {
		return header, payload, nil
	}

	compressed, err := fw.compressor.Compress(payload)
	if err != nil {
		return nil, nil, err
	}
	if len(compressed) >= len(payload) {
		return header, payload, nil
	}

	if fw.checksum != nil && fw.options.ChecksumOptions.VerifyOnWrite {
		restored, err := fw.compressor.Decompress(compressed, header.RawSize)
		if err != nil {
			return nil, nil, err
		}
		if actual := uint32(fw.checksum.Calculate(restored)); actual != header.Checksum {
			return nil, nil, errors.NewChecksumError("frame write", header.Checksum, actual)
		}
	}

	header.Codec = fw.compressor.Codec()
	header.PayloadSize = uint32(len(compressed))
	return header, compressed, nil
}
