// Command glyphfix previews and applies component transform corrections to
// a font document stored as TOML or as a .gfdoc snapshot.
//
// Usage:
//
//	glyphfix preview --mode grid --step 10 --tolerance 2 font.toml
//	glyphfix apply --mode mirror --scope all --masters all -o fixed.gfdoc font.toml
//	glyphfix undo fixed.gfdoc
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gogpu/glyphfix"
)

var rootCmd = &cobra.Command{
	Use:   "glyphfix",
	Short: "Snap off-grid and repair mirrored glyph components",
	Long: `glyphfix scans the components placed in a font document and corrects
their transforms: grid mode snaps translations to a grid, mirror mode
replaces reflections with an equivalent positive-determinant transform.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupOutput,
}

func init() {
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log scan progress and every write")
}

func main() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(undoCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupOutput installs the stderr logger and decides whether to colorize.
func setupOutput(cmd *cobra.Command, _ []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color %q (want auto, on or off)", colorFlag)
	}

	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	glyphfix.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
