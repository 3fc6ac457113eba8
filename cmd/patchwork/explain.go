package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/vango-dev/patchwork/internal/errors"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [CODE]",
		Short: "Describe an error code",
		Long:  `Describe an error code such as E001. Without a code, list them all.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range perrors.Codes() {
					t, _ := perrors.Template(code)
					fmt.Fprintf(out, "%s  %-9s %s\n", code, t.Category, t.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			t, ok := perrors.Template(code)
			if !ok {
				return perrors.Newf(perrors.CategoryCLI, "unknown error code %q", args[0]).
					WithSuggestion("Run 'patchwork explain' to list all codes.")
			}
			fmt.Fprintf(out, "%s: %s (%s)\n\n%s\n", code, t.Message, t.Category, t.Detail)
			return nil
		},
	}
}
