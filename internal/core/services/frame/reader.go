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
	"github.com/iamNilotpal/adler32/internal/core/ports"
	"github.com/iamNilotpal/adler32/pkg/errors"
	"github.com/iamNilotpal/adler32/pkg/logger"
)

// NewReader returns a Reader over frames in r. Nil options select
// DefaultOptions. Frames are decoded with whatever codec their header
// names, regardless of the reader's compression options.
func NewReader(r io.Reader, opts *domain.FrameOptions, log *zap.SugaredLogger) (*Reader, error) {
	if r == nil {
		return nil, errors.NewValidationError("reader", nil, fmt.Errorf("reader is required"))
	}

	opts = prepareDefaults(opts)
	if err := Validate(opts); err != nil {
		return nil, err
	}

	reader := Reader{
		options:  opts,
		r:        bufio.NewReader(r),
		log:      logger.OrNop(log),
		decoders: make(map[uint8]ports.CompressionPort),
	}

	if opts.ChecksumOptions.Custom != nil {
		reader.checksum = opts.ChecksumOptions.Custom
	} else {
		summer, err := checksum.NewCheckSummer(opts.ChecksumOptions.Algorithm)
		if err != nil {
			return nil, err
		}
		reader.checksum = summer
	}

	return &reader, nil
}

// Next returns the payload of the next frame. It returns io.EOF when the
// input ends cleanly on a frame boundary.
//
// Returns an error if:
//   - the header is truncated or malformed (ErrorFormat)
//   - the payload cannot be decompressed (ErrorCompression)
//   - the payload inflates past the header's RawSize (errors.ErrSizeExceeded)
//   - VerifyOnRead is set and the checksum does not match (*errors.ChecksumError)
func (fr *Reader) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var header Header
	if err := binary.Read(fr.r, binary.LittleEndian, &header); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.NewOperationError(errors.ErrorFormat, "read frame header", err)
	}

	if err := fr.checkHeader(&header); err != nil {
		return nil, err
	}

	payload := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		return nil, errors.NewOperationError(errors.ErrorFormat, "read frame payload", err)
	}

	raw, err := fr.decode(&header, payload)
	if err != nil {
		return nil, err
	}

	if header.Flags&FlagChecksum != 0 && fr.options.ChecksumOptions.VerifyOnRead {
		if actual := uint32(fr.checksum.Calculate(raw)); actual != header.Checksum {
			return nil, errors.NewChecksumError(fmt.Sprintf("frame %d", fr.frames+1), header.Checksum, actual)
		}
	}

	fr.frames++
	fr.log.Debugw("frame read", "frame", fr.frames, "rawSize", header.RawSize, "codec", header.Codec)
	return raw, nil
}

// Frames returns the number of frames read so far.
func (fr *Reader) Frames() uint64 {
	return fr.frames
}

// Close releases the decoders created while reading.
func (fr *Reader) Close() error {
	for id, decoder := range fr.decoders {
		if err := decoder.Close(); err != nil {
			return fmt.Errorf("error closing decoder : %w", err)
		}
		delete(fr.decoders, id)
	}
	return nil
}

func (fr *Reader) checkHeader(header *Header) error {
	if header.Magic != Magic {
		return errors.NewOperationError(errors.ErrorFormat, "read frame header", fmt.Errorf("bad magic %#08x", header.Magic))
	}

	if header.Version != Version {
		return errors.NewOperationError(errors.ErrorFormat, "read frame header", fmt.Errorf("unsupported version %d", header.Version))
	}

	if header.RawSize > fr.options.MaxPayloadSize {
		return errors.NewOperationError(
			errors.ErrorFormat, "read frame header",
			fmt.Errorf("frame of %d bytes exceeds max payload size %d", header.RawSize, fr.options.MaxPayloadSize),
		)
	}

	if header.PayloadSize > header.RawSize || (header.Codec == compression.StoredID && header.PayloadSize != header.RawSize) {
		return errors.NewOperationError(
			errors.ErrorFormat, "read frame header",
			fmt.Errorf("payload size %d inconsistent with raw size %d", header.PayloadSize, header.RawSize),
		)
	}

	return nil
}

func (fr *Reader) decode(header *Header, payload []byte) ([]byte, error) {
	if header.Codec == compression.StoredID {
		return payload, nil
	}

	decoder, ok := fr.decoders[header.Codec]
	if !ok {
		var err error
		if decoder, err = compression.ForID(header.Codec, fr.options.MaxPayloadSize); err != nil {
			return nil, errors.NewOperationError(errors.ErrorFormat, "read frame header", err)
		}
		fr.decoders[header.Codec] = decoder
	}

	raw, err := decoder.Decompress(payload, header.RawSize)
	if err != nil {
		return nil, err
	}

	if uint32(len(raw)) != header.RawSize {
		return nil, errors.NewOperationError(
			errors.ErrorFormat, "decode frame",
			fmt.Errorf("decoded %d bytes, header declares %d", len(raw), header.RawSize),
		)
	}

	return raw, nil
}
