package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "misqr",
	Short:         "QR symbol camouflage and ambiguity toolkit",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errUsage marks an error as an argument-validation failure (wrong arg
// count, bad flag value, bad numeric flag) rather than an encoding
// failure, so Execute can tell the two apart for exit codes. cobra itself
// doesn't wrap Args-validator or flag-parsing errors in anything
// distinguishable, so both subcommands' Args funcs are wrapped with
// usageArgs (common.go) and rootCmd's FlagErrorFunc wraps pflag parse
// failures (e.g. a non-numeric --version) below, making errUsage the one
// thing Execute needs to check.
var errUsage = errors.New("usage error")

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	rootCmd.AddCommand(qashCmd)
	rootCmd.AddCommand(whimCmd)
}

// Execute runs the root command. An error wrapping errUsage — a failed
// Args check, a bad flag value, or a RunE-detected argument problem —
// exits 2; any other error (an encoding failure from the qrcode package)
// exits 1.
func Execute() {
	rootCmd.SetArgs(os.Args[1:])
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "misqr:", err)
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	os.Exit(1)
}
