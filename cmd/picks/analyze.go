package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/paddock-picks/internal/models"
	"github.com/yourusername/paddock-picks/internal/service"
)

// maxConcurrentFiles limits how many pastes are analyzed at once.
const maxConcurrentFiles = 4

func newAnalyzeCmd() *cobra.Command {
	var (
		asJSON  bool
		showAll bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [file|-]...",
		Short: "Analyze pasted race cards",
		Long: `Reads pasted entry tables from each file (or stdin when no file or "-" is
given) and prints the recommended picks. Several files are analyzed concurrently and
reported in argument order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}

			reports, err := analyzeFiles(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if len(reports) == 1 {
					return enc.Encode(reports[0])
				}
				return enc.Encode(reports)
			}
			for i, report := range reports {
				if len(reports) > 1 {
					fmt.Fprintf(out, "== %s\n", args[i])
				}
				renderReport(out, report, showAll)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	cmd.Flags().BoolVar(&showAll, "all", false, "Show every race, not only S and A picks")
	return cmd
}

func analyzeFiles(cmd *cobra.Command, paths []string) ([]*service.Report, error) {
	svc := newAnalysisService(false)
	reports := make([]*service.Report, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentFiles)

	for i, path := range paths {
		g.Go(func() error {
			text, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			report, err := svc.Analyze(ctx, text)
			if err != nil {
				if errors.Is(err, models.ErrEmptyInput) {
					return fmt.Errorf("%s: %w", displayName(path), err)
				}
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
