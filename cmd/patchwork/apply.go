package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/vango-dev/patchwork/internal/errors"
	"github.com/vango-dev/patchwork/pkg/dom"
	"github.com/vango-dev/patchwork/pkg/fixture"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

func applyCmd() *cobra.Command {
	var (
		patchFile string
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "apply OLD [NEW]",
		Short: "Apply patches to a live document built from OLD",
		Long: `Build a live document from OLD, apply patches to it and print the
resulting HTML.

The patches are either computed from NEW, in which case the result is
checked against NEW, or read from a JSON patch file written by
"patchwork diff --format=json".

Examples:
  patchwork apply before.yaml after.yaml
  patchwork apply before.yaml --patches patches.json --pretty`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := loadView(args[0])
			if err != nil {
				return err
			}

			var next vdom.Node
			var patches []vdom.Patch
			switch {
			case patchFile != "":
				data, err := os.ReadFile(patchFile)
				if err != nil {
					return perrors.New("E141").Wrap(err).WithDetailf("%s could not be read.", patchFile)
				}
				if patches, err = fixture.UnmarshalPatches(data, nil); err != nil {
					return perrors.FromError(err, "E140")
				}
			case len(args) == 2:
				if next, err = loadView(args[1]); err != nil {
					return err
				}
				patches = vdom.Diff(prev, next)
			default:
				return perrors.Newf(perrors.CategoryCLI, "apply needs NEW or --patches")
			}

			doc := dom.New(prev)
			if err := doc.Apply(patches); err != nil {
				return perrors.FromApply(err)
			}
			if next != nil && !vdom.Equal(doc.Snapshot(), next) {
				return perrors.New("E003").WithDetail("The patched document does not match NEW.")
			}

			out := cmd.OutOrStdout()
			if pretty {
				err = doc.RenderPretty(out)
			} else {
				err = doc.Render(out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&patchFile, "patches", "p", "", "JSON patch file to apply instead of diffing against NEW")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the HTML output")

	return cmd
}
