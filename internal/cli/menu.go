package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/menu"
)

func newMenuCommand(open Opener) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the menu derived from the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(store *config.Store) error {
				cfg := store.Snapshot()
				catalog, derr := menu.Derive(cfg)
				items := catalog.Items
				if category != "" {
					items = catalog.ByCategory(menu.Category(category))
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
				for _, it := range items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Category, it.Price.Display())
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nprices exclude %s tax\n", cfg.Business.TaxRate.Percent())

				if derr != nil {
					for _, msg := range unwrapAll(derr) {
						fmt.Fprintf(cmd.ErrOrStderr(), "excluded: %s\n", msg)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list one category (pizza, stromboli, appetizer, beverage)")
	return cmd
}

func unwrapAll(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
