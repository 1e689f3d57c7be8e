package serialize

import (
	"bufio"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

// Field numbers of the Report message:
//
//	message Report {
//	  string  path     = 1;
//	  int64   size     = 2;
//	  fixed32 checksum = 3;
//	  bytes   digest   = 4;
//	}
const (
	reportPath     protowire.Number = 1
	reportSize     protowire.Number = 2
	reportChecksum protowire.Number = 3
	reportDigest   protowire.Number = 4
)

// MaxMessageSize bounds a single length-delimited message.
const MaxMessageSize = 1 << 20

// MarshalReport encodes report in protobuf wire format. Zero fields are omitted.
func MarshalReport(report *domain.Report) []byte {
	return appendReport(nil, report)
}

func appendReport(b []byte, report *domain.Report) []byte {
	if report.Path != "" {
		b = protowire.AppendTag(b, reportPath, protowire.BytesType)
		b = protowire.AppendString(b, report.Path)
	}
	if report.Size != 0 {
		b = protowire.AppendTag(b, reportSize, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(report.Size))
	}
	if report.Checksum != 0 {
		b = protowire.AppendTag(b, reportChecksum, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, report.Checksum)
	}
	if len(report.Digest) > 0 {
		b = protowire.AppendTag(b, reportDigest, protowire.BytesType)
		b = protowire.AppendBytes(b, report.Digest)
	}
	return b
}

// UnmarshalReport decodes a message produced by MarshalReport. Unknown
// fields are skipped.
func UnmarshalReport(b []byte) (*domain.Report, error) {
	var report domain.Report

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireError(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == reportPath && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			report.Path = v
			b = b[n:]

		case num == reportSize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			report.Size = int64(v)
			b = b[n:]

		case num == reportChecksum && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			report.Checksum = v
			b = b[n:]

		case num == reportDigest && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			report.Digest = append([]byte(nil), v...)
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	return &report, nil
}

// AppendDelimited appends report prefixed with its varint encoded length.
func AppendDelimited(b []byte, report *domain.Report) []byte {
	msg := MarshalReport(report)
	b = protowire.AppendVarint(b, uint64(len(msg)))
	return append(b, msg...)
}

// ReadDelimited reads one message written by AppendDelimited. It returns
// io.EOF when r is exhausted before the length prefix.
func ReadDelimited(r io.ByteReader) (*domain.Report, error) {
	size, err := readUvarint(r)
	if err != nil {
		return nil, err
	}

	if size > MaxMessageSize {
		return nil, errors.NewOperationError(
			errors.ErrorFormat, "decode report", fmt.Errorf("message of %d bytes exceeds %d", size, MaxMessageSize),
		)
	}

	msg := make([]byte, size)
	for i := range msg {
		if msg[i], err = r.ReadByte(); err != nil {
			return nil, wireError(io.ErrUnexpectedEOF)
		}
	}
	return UnmarshalReport(msg)
}

// NewDelimitedReader wraps r for repeated ReadDelimited calls.
func NewDelimitedReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(r)
}

func readUvarint(r io.ByteReader) (uint64, error) {
	var prefix []byte
	for i := 0; i < protowire.SizeVarint(1<<63); i++ {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && i == 0 {
				return 0, io.EOF
			}
			return 0, wireError(io.ErrUnexpectedEOF)
		}

		prefix = append(prefix, c)
		if c < 0x80 {
			v, n := protowire.ConsumeVarint(prefix)
			if n < 0 {
				return 0, wireError(protowire.ParseError(n))
			}
			return v, nil
		}
	}
	return 0, wireError(fmt.Errorf("length prefix overflows 64 bits"))
}

func wireError(err error) error {
	return errors.NewOperationError(errors.ErrorFormat, "decode report", err)
}
