package main

import (
	"fmt"
	"image/color"
	"image/draw"
	"log/slog"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/misqr/misqr/internal/texture"
	"github.com/misqr/misqr/qrcode"
)

var (
	qashVersion int
	qashLevel   string
	qashMask    int
	qashOut     string
	qashOpen    bool
)

var qashCmd = &cobra.Command{
	Use:   "qash <data>",
	Short: "Build a QR symbol perturbed up to its error budget and paste a camouflage texture over it",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runQash,
}

func init() {
	qashCmd.Flags().IntVar(&qashVersion, "version", 4, "QR version (1-40)")
	qashCmd.Flags().StringVar(&qashLevel, "level", "H", "error-correction level (L, M, Q, H)")
	qashCmd.Flags().IntVar(&qashMask, "mask", 0, "mask pattern (0-7)")
	qashCmd.Flags().StringVar(&qashOut, "out", "qash.png", "output PNG path")
	qashCmd.Flags().BoolVar(&qashOpen, "open", false, "open the rendered PNG after writing it")
}

func runQash(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(qashLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	data := args[0]
	sym, err := qrcode.Encode([]byte(data), qrcode.Version(qashVersion), level, qrcode.Mask(qashMask))
	if err != nil {
		return fmt.Errorf("encoding %q: %w", data, err)
	}
	slog.Info("encoded base symbol", "data", data, "version", sym.Version, "level", sym.Level, "mask", sym.Mask)

	// Perturb n = Capacity() - safetyMargin + 1 codewords of every block,
	// mirroring qash.py's randomize(possible_error[i] - insertion + 1) with
	// the original's default insertion of 1; with that margin of 1, n is
	// the block's full correction budget.
	const safetyMargin = 1
	for i, block := range sym.Blocks {
		n := block.Capacity() - safetyMargin + 1
		if n <= 0 {
			continue
		}
		sym, err = qrcode.RandomizeBlock(sym, i, n, cliRand())
		if err != nil {
			return fmt.Errorf("randomizing block %d: %w", i, err)
		}
	}
	slog.Info("perturbed all blocks to their correction budget")

	const moduleSize = 20
	base := qrcode.Rasterize(sym.Matrix(), color.Black)
	scaled := scaleNearest(base, moduleSize)

	tileX, tileY, ok := firstCamouflageTarget(sym)
	if ok {
		tile := texture.BayerTile(moduleSize, color.Gray{Y: 0x88}, color.White)
		if err := texture.Paste(scaled.(draw.Image), tile, tileX, tileY, moduleSize); err != nil {
			return fmt.Errorf("pasting camouflage tile: %w", err)
		}
		slog.Info("pasted camouflage tile", "x", tileX, "y", tileY)
	} else {
		slog.Warn("no eligible light module found for camouflage tile; wrote plain symbol")
	}

	f, err := os.Create(qashOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", qashOut, err)
	}
	defer f.Close()
	if err := qrcode.PNG(scaled, f); err != nil {
		return fmt.Errorf("writing PNG: %w", err)
	}
	slog.Info("wrote qash image", "path", qashOut)

	if qashOpen {
		if err := browser.OpenFile(qashOut); err != nil {
			slog.Warn("could not open rendered image", "err", err)
		}
	}
	return nil
}

// firstCamouflageTarget scans the symbol for the first light, non-reserved
// module at (x, y) with x > 9 and y > 9, mirroring qash.py main()'s
// white_pixel_position scan.
func firstCamouflageTarget(sym *qrcode.Symbol) (x, y int, ok bool) {
	matrix := sym.Matrix()
	for y := 10; y < sym.Size(); y++ {
		for x := 10; x < sym.Size(); x++ {
			if matrix[y][x] == 0 && !sym.Reserved(x, y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
