package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/misqr/misqr/internal/search"
	"github.com/misqr/misqr/qrcode"
)

var (
	whimVersion   int
	whimLevel     string
	whimMask      int
	whimOutDir    string
	whimCandidate int
	whimOpen      bool
)

var whimCmd = &cobra.Command{
	Use:   "whim <data> <index>",
	Short: "Find single-character payload substitutes that blend into one ambiguously-decodable symbol",
	Args:  usageArgs(cobra.ExactArgs(2)),
	RunE:  runWhim,
}

func init() {
	whimCmd.Flags().IntVar(&whimVersion, "version", 4, "QR version (1-40)")
	whimCmd.Flags().StringVar(&whimLevel, "level", "H", "error-correction level (L, M, Q, H)")
	whimCmd.Flags().IntVar(&whimMask, "mask", 0, "mask pattern (0-7)")
	whimCmd.Flags().StringVar(&whimOutDir, "out-dir", ".", "directory to write the chosen candidate's blended PNG into")
	whimCmd.Flags().IntVar(&whimCandidate, "candidate", -1, "index into the candidate list to render (omit to just list candidates)")
	whimCmd.Flags().BoolVar(&whimOpen, "open", false, "open the rendered PNG after writing it")
}

func runWhim(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(whimLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	data := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: index %q is not an integer", errUsage, args[1])
	}
	if index < 0 || index >= len(data) {
		return fmt.Errorf("%w: index %d out of range for data of length %d", errUsage, index, len(data))
	}

	candidates, err := search.Run(data, index, qrcode.Version(whimVersion), level, qrcode.Mask(whimMask))
	if err != nil {
		return fmt.Errorf("searching for substitutes: %w", err)
	}
	if len(candidates) == 0 {
		slog.Warn("no mixable substitutes found", "data", data, "index", index)
		return nil
	}

	if whimCandidate < 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "found %d candidate substitute(s) for %q at index %d:\n", len(candidates), data, index)
		for i, c := range candidates {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %q (pivot codeword %d)\n", i, c.Text, c.Pivot)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "rerun with --candidate N to render one of the above")
		return nil
	}

	if whimCandidate >= len(candidates) {
		return fmt.Errorf("%w: candidate %d out of range, only %d found", errUsage, whimCandidate, len(candidates))
	}
	chosen := candidates[whimCandidate]

	if err := os.MkdirAll(whimOutDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", whimOutDir, err)
	}
	outPath := filepath.Join(whimOutDir, fmt.Sprintf("whim-%d.png", whimCandidate))
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	if err := qrcode.PNG(chosen.Mixed, f); err != nil {
		return fmt.Errorf("writing PNG: %w", err)
	}
	slog.Info("wrote whim image", "path", outPath, "substitute", chosen.Text, "pivot", chosen.Pivot)

	if whimOpen {
		if err := browser.OpenFile(outPath); err != nil {
			slog.Warn("could not open rendered image", "err", err)
		}
	}
	return nil
}
