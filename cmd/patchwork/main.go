package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/vango-dev/patchwork/internal/errors"
	"github.com/vango-dev/patchwork/pkg/fixture"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		perrors.PrintError(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "patchwork",
		Short: "Diff, patch and stream virtual DOM trees",
		Long: `Patchwork compares virtual DOM trees and turns the difference into
an ordered list of patches that bring a live tree up to date.

View files are JSON, YAML or HTML, chosen by extension:

  • diff      print the patches between two views
  • apply     apply them to a live document and print the result
  • render    render a view as HTML
  • serve     stream a view's patches over WebSocket
  • snapshot  store and fetch encoded views`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		diffCmd(),
		applyCmd(),
		renderCmd(),
		serveCmd(),
		snapshotCmd(),
		explainCmd(),
		versionCmd(),
	)
	return root
}

// loadView reads a view file, mapping failures to coded errors.
func loadView(path string) (vdom.Node, error) {
	n, err := fixture.Load(path, nil)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, perrors.New("E141").Wrap(err).WithDetailf("%s does not exist.", path)
	case errors.Is(err, fixture.ErrUnsupportedFormat):
		return nil, perrors.New("E140").Wrap(err).
			WithSuggestion("Use a .json, .yaml, .yml, .html or .htm file.")
	default:
		return nil, perrors.FromError(err, "E140")
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
