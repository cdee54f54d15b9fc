// Package cli implements posctl, the operator tool for the restaurant
// configuration held in the configured blob store.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
)

// Opener returns a store loaded from persistence and a function releasing its
// backend.
type Opener func(ctx context.Context) (*config.Store, func(), error)

// NewRootCommand builds the posctl command tree.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Inspect and edit the pizza POS configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMenuCommand(open),
		newConfigCommand(open),
		newPermissionsCommand(),
	)
	return root
}

// withStore opens the store for the duration of fn.
func withStore(cmd *cobra.Command, open Opener, fn func(*config.Store) error) error {
	store, closeFn, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(store)
}
