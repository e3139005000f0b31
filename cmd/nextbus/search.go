package main

import (
	"github.com/spf13/cobra"

	"nextbus/internal/render"
	"nextbus/internal/storage"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search STR",
		Short: "Searches for all bus stops whose name contains the given string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := a.loadSchedule()
			if err != nil {
				return err
			}

			idx, err := storage.Open(storage.Memory, a.logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			if err := idx.ImportStops(ctx, store.Stops()); err != nil {
				return err
			}
			results, err := idx.SearchStops(ctx, args[0])
			if err != nil {
				return err
			}
			return render.SearchResults(results).Render(ctx, cmd.OutOrStdout())
		},
	}
}
