package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carvekit/carve/pkg/extract"
	"github.com/carvekit/carve/pkg/rangeexpr"
	"github.com/carvekit/carve/pkg/source"
	"github.com/carvekit/carve/pkg/types"
)

var (
	verbose   bool
	quiet     bool
	byteMode  bool
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "carve <range> [file]",
	Short: "Copy a span of lines or bytes from a file or stream to stdout",
	Long: `Carve copies one contiguous span of its input to stdout, selected by a
Python-style range expression:

  carve 10:20 access.log      lines 11-20
  carve -- -10: access.log    last 10 lines
  carve :+100 access.log      first 100 lines
  carve 50:+10 access.log     10 lines starting after line 50
  carve -c 0:512 core.img     first 512 bytes

Endpoints count from zero and may be negative, anchoring on the end of
the input; the end may be written +N for "N units past the start". With
no file argument, or with "-", carve reads standard input.

Head-like ranges stream with bounded memory. Ranges anchored on the end
of the input need its total length: regular files are scanned and
rewound (byte mode just seeks), while pipes are buffered in memory
before anything is written.`,
	Args:          cobra.RangeArgs(1, 2),
	RunE:          runCarve,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().BoolVarP(&byteMode, "byte", "c", false, "Count bytes instead of lines")
	rootCmd.Flags().StringVar(&colorMode, "color", "auto", "Color error output: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runCarve(cmd *cobra.Command, args []string) error {
	intent, err := rangeexpr.Parse(args[0])
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 2 {
		path = args[1]
	}
	src, err := source.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	unit := types.UnitLine
	if byteMode {
		unit = types.UnitByte
	}

	e := extract.New(extract.Config{
		Unit:   unit,
		Logger: newLogger(),
	})

	out := bufio.NewWriter(cmd.OutOrStdout())
	if err := e.Extract(out, src, intent); err != nil {
		return err
	}
	return out.Flush()
}

// newLogger builds the diagnostic logger on stderr. Default level is
// warn; --verbose lowers it to debug, --quiet raises it to error.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// errorColorEnabled respects --color and falls back to TTY detection,
// matching the usual auto/always/never contract.
func errorColorEnabled() bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

// reportError prints a failed invocation's error to stderr. Range
// syntax errors get a usage hint; everything else is printed as-is.
func reportError(err error) {
	prefix := color.New(color.Bold, color.FgRed)
	if !errorColorEnabled() {
		prefix.DisableColor()
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", prefix.Sprint("error:"), err)
	if errors.Is(err, rangeexpr.ErrInvalidRange) {
		fmt.Fprintln(os.Stderr, `range syntax is "[start]:[end]", e.g. 10:20, -5:, :+100`)
	}
}
