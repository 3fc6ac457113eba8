package main

import (
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/vango-dev/patchwork/internal/errors"
	"github.com/vango-dev/patchwork/pkg/fixture"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

func diffCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print the patches that turn OLD into NEW",
		Long: `Print the ordered patch list that brings a live copy of OLD up to date
with NEW. Each patch names its target by depth-first index in OLD.

Examples:
  patchwork diff before.yaml after.yaml
  patchwork diff --format=json before.html after.html > patches.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := loadView(args[0])
			if err != nil {
				return err
			}
			next, err := loadView(args[1])
			if err != nil {
				return err
			}
			return writePatches(cmd, vdom.Diff(prev, next), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	return cmd
}

func writePatches(cmd *cobra.Command, patches []vdom.Patch, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "text":
		for _, p := range patches {
			fmt.Fprintln(out, p)
		}
		if len(patches) == 0 {
			info("No differences")
		}
		return nil
	case "json":
		data, err := fixture.MarshalPatches(patches)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}
	return perrors.Newf(perrors.CategoryCLI, "unknown format %q", format).
		WithSuggestion("Use --format=text or --format=json.")
}
