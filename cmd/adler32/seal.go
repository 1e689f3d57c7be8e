package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/iamNilotpal/adler32/internal/core/services/frame"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

func (a *app) sealCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seal <in> <out>",
		Short: "Pack a file into checksummed, compressed frames",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			in, out, err := openPair(args[0], args[1])
			if err != nil {
				return err
			}
			defer func() { err = multierr.Combine(err, in.Close(), out.Close()) }()

			return a.seal(cmd.Context(), in, out)
		},
	}
}

func (a *app) unsealCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unseal <in> <out>",
		Short: "Restore a file packed by seal, verifying every frame",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			in, out, err := openPair(args[0], args[1])
			if err != nil {
				return err
			}
			defer func() { err = multierr.Combine(err, in.Close(), out.Close()) }()

			return a.unseal(cmd.Context(), in, out)
		},
	}
}

func openPair(inPath, outPath string) (*os.File, *os.File, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, nil, errors.NewOperationError(errors.ErrorStorage, "open input", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return nil, nil, multierr.Append(errors.NewOperationError(errors.ErrorStorage, "create output", err), in.Close())
	}
	return in, out, nil
}

// Splits in into BlockSize frames.
func (a *app) seal(ctx context.Context, in io.Reader, out io.Writer) (err error) {
	writer, err := frame.NewWriter(out, a.cfg.FrameOptions(), a.log)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, writer.Close()) }()

	block := make([]byte, a.cfg.Frame.BlockSize)
	var total int64
	for {
		n, err := io.ReadFull(in, block)
		if n > 0 {
			if err := writer.Write(ctx, block[:n]); err != nil {
				return err
			}
			total += int64(n)
		}

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return errors.NewOperationError(errors.ErrorStorage, "read input", err)
		}
	}

	a.log.Infow("sealed", "bytes", total, "frames", writer.Frames())
	return nil
}

func (a *app) unseal(ctx context.Context, in io.Reader, out io.Writer) (err error) {
	reader, err := frame.NewReader(in, a.cfg.FrameOptions(), a.log)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, reader.Close()) }()

	var total int64
	for {
		payload, err := reader.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if _, err := out.Write(payload); err != nil {
			return errors.NewOperationError(errors.ErrorStorage, "write output", err)
		}
		total += int64(len(payload))
	}

	a.log.Infow("unsealed", "bytes", total, "frames", reader.Frames())
	return nil
}
