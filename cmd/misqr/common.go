package main

import (
	"fmt"
	"image"
	"image/draw"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/misqr/misqr/qrcode"
)

// usageArgs wraps a cobra positional-args validator so a failure (wrong
// arg count, for instance) comes back as an errUsage error Execute can
// recognize — cobra's ValidateArgs return value otherwise reaches
// Execute() unwrapped and indistinguishable from any other failure.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}

// parseLevel maps a one-letter error-correction level flag value (case
// insensitive) to its qrcode.ECLevel, mirroring the L/M/Q/H choices
// qash.py and whim.py take on their own --level flags.
func parseLevel(s string) (qrcode.ECLevel, error) {
	switch strings.ToUpper(s) {
	case "L":
		return qrcode.ECLevelLow, nil
	case "M":
		return qrcode.ECLevelMedium, nil
	case "Q":
		return qrcode.ECLevelQuartile, nil
	case "H":
		return qrcode.ECLevelHigh, nil
	default:
		return 0, fmt.Errorf("unknown error-correction level %q (want one of L, M, Q, H)", s)
	}
}

// cliRand returns a fresh, time-seeded source of randomness for the
// randomized perturbations qash performs. Every invocation of the CLI
// should see a different randomization, unlike the deterministic
// *rand.Rand the qrcode package's own tests inject.
func cliRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// scaleNearest blows a 1-pixel-per-module image up to moduleSize pixels per
// module via nearest-neighbor replication, so the camouflage tile pasted by
// qash has room to render its own dither pattern instead of being squashed
// into a single pixel.
func scaleNearest(src image.Image, moduleSize int) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*moduleSize, b.Dy()*moduleSize))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.At(x, y)
			rect := image.Rect((x-b.Min.X)*moduleSize, (y-b.Min.Y)*moduleSize, (x-b.Min.X+1)*moduleSize, (y-b.Min.Y+1)*moduleSize)
			draw.Draw(dst, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
		}
	}
	return dst
}
