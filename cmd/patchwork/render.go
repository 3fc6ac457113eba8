package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/patchwork/pkg/render"
)

func renderCmd() *cobra.Command {
	var (
		pretty    bool
		page      bool
		title     string
		indexAttr string
		markers   bool
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a view as HTML",
		Long: `Render a view file as HTML.

With --page the view is wrapped in a complete document with the
bootstrap state the browser client reads.

Examples:
  patchwork render view.yaml --pretty
  patchwork render view.json --index-attr=data-idx
  patchwork render view.yaml --page --title="Todo"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadView(args[0])
			if err != nil {
				return err
			}

			r := render.NewRenderer(render.RendererConfig{
				Pretty:          pretty,
				IndexAttr:       indexAttr,
				ListenerMarkers: markers,
			})
			out := cmd.OutOrStdout()
			if page {
				return r.RenderPage(out, render.PageData{Title: title, Body: view})
			}
			html, err := r.RenderToString(view)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, html)
			return err
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent block elements")
	cmd.Flags().BoolVar(&page, "page", false, "Render a complete HTML document")
	cmd.Flags().StringVar(&title, "title", "", "Page title (with --page)")
	cmd.Flags().StringVar(&indexAttr, "index-attr", "", "Write each element's depth-first index into this attribute")
	cmd.Flags().BoolVar(&markers, "listener-markers", false, "Mark elements with data-on-EVENT attributes")

	return cmd
}
