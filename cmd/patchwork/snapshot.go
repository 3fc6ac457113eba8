package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/patchwork/internal/config"
	perrors "github.com/vango-dev/patchwork/internal/errors"
	"github.com/vango-dev/patchwork/pkg/fixture"
	"github.com/vango-dev/patchwork/pkg/store"
)

func snapshotCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Store and fetch encoded views",
		Long: `Store views in the snapshot backend configured in patchwork.json
(bolt, s3 or memory) using the binary wire encoding.

Examples:
  patchwork snapshot put home view.yaml --seq=12
  patchwork snapshot get home --format=html
  patchwork snapshot list`,
	}
	cmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing patchwork.json")

	open := func() (store.Store, error) {
		cfg, err := config.LoadOrDefault(configDir)
		if err != nil {
			return nil, err
		}
		st, err := store.Open(cfg.Store)
		if err != nil {
			return nil, perrors.New("E161").Wrap(err)
		}
		return st, nil
	}

	cmd.AddCommand(
		snapshotPutCmd(open),
		snapshotGetCmd(open),
		snapshotListCmd(open),
		snapshotDeleteCmd(open),
	)
	return cmd
}

type storeOpener func() (store.Store, error)

// storeError maps store failures to coded errors.
func storeError(err error, name string) error {
	if errors.Is(err, store.ErrNotFound) {
		return perrors.New("E160").Wrap(err).WithDetailf("No snapshot is stored under %q.", name).
			WithSuggestion("Run 'patchwork snapshot list' to see stored names.")
	}
	return perrors.FromError(err, "E161")
}

func snapshotPutCmd(open storeOpener) *cobra.Command {
	var seq uint64

	cmd := &cobra.Command{
		Use:   "put NAME FILE",
		Short: "Store a view under NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadView(args[1])
			if err != nil {
				return err
			}
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := store.SaveTree(context.Background(), st, args[0], seq, view); err != nil {
				return storeError(err, args[0])
			}
			success("Stored %s as %q", args[1], args[0])
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seq, "seq", 0, "Sequence number to store with the view")
	return cmd
}

func snapshotGetCmd(open storeOpener) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print the view stored under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close()

			sf, err := store.LoadTree(context.Background(), st, args[0], nil)
			if err != nil {
				return storeError(err, args[0])
			}
			out := cmd.OutOrStdout()
			if err := fixture.Write(out, sf.Root, fixture.Format(format)); err != nil {
				return perrors.Newf(perrors.CategoryCLI, "%v", err).
					WithSuggestion("Use --format=json, yaml or html.")
			}
			if format == string(fixture.FormatHTML) {
				fmt.Fprintln(out)
			}
			info("seq %d", sf.Seq)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: json, yaml or html")
	return cmd
}

func snapshotListCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshot names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List(context.Background())
			if err != nil {
				return storeError(err, "")
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func snapshotDeleteCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete the snapshot stored under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(context.Background(), args[0]); err != nil {
				return storeError(err, args[0])
			}
			success("Deleted %q", args[0])
			return nil
		},
	}
}
