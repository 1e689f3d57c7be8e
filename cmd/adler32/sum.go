package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/iamNilotpal/adler32/config"
	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/internal/core/services/stream"
	"github.com/iamNilotpal/adler32/internal/serialize"
)

func (a *app) sumCommand() *cobra.Command {
	var (
		output    string
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "sum [paths...]",
		Short: "Print the Adler-32 of files or standard input",
		Example: `  adler32 sum file.bin
  adler32 sum -r -o json ./data
  cat file.bin | adler32 sum`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.cfg.Output
			}
			if len(args) == 0 {
				args = []string{stream.StdinPath}
			}
			return a.sum(cmd, args, output, recursive)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: hex, json or proto")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "walk directories")
	return cmd
}

// Checksums every path and writes one record per file. A failing path is
// logged and reported in the returned error without stopping the others.
func (a *app) sum(cmd *cobra.Command, paths []string, output string, recursive bool) error {
	switch output {
	case config.OutputHex, config.OutputJSON, config.OutputProto:
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	summer, err := stream.NewSummer(a.cfg.StreamOptions(), a.log)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	var errs error
	for _, path := range a.expand(paths, recursive, &errs) {
		var report *domain.Report
		if path == stream.StdinPath {
			report, err = summer.Sum(cmd.Context(), cmd.InOrStdin())
			if report != nil {
				report.Path = path
			}
		} else {
			report, err = summer.SumFile(cmd.Context(), path)
		}

		if err != nil {
			a.log.Errorw("checksum failed", "path", path, "error", err)
			errs = multierr.Append(errs, err)
			continue
		}

		if err := writeReport(out, report, output); err != nil {
			return multierr.Append(errs, err)
		}
	}

	return errs
}

// Expands directories into their files when recursive is set.
func (a *app) expand(paths []string, recursive bool, errs *error) []string {
	if !recursive {
		return paths
	}

	expanded := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == stream.StdinPath {
			expanded = append(expanded, path)
			continue
		}

		files, err := a.fs.Files(path, a.cfg.Stream.ExcludeDirs, a.cfg.Stream.Extension)
		if err != nil {
			a.log.Errorw("listing files failed", "path", path, "error", err)
			*errs = multierr.Append(*errs, err)
			continue
		}
		expanded = append(expanded, files...)
	}
	return expanded
}

func writeReport(w io.Writer, report *domain.Report, output string) error {
	switch output {
	case config.OutputJSON:
		data, err := serialize.MarshalJSON(report)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err

	case config.OutputProto:
		_, err := w.Write(serialize.AppendDelimited(nil, report))
		return err

	default:
		_, err := fmt.Fprintf(w, "%08x  %s\n", report.Checksum, report.Path)
		return err
	}
}
