package main

import (
	"context"
	"fmt"
	"os"

	"github.com/georgemunganga/pizza-pos/internal/bootstrap"
	"github.com/georgemunganga/pizza-pos/internal/cli"
	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/pkg/env"
)

func main() {
	env.LoadDotenv()

	open := func(ctx context.Context) (*config.Store, func(), error) {
		cfg, err := env.Load()
		if err != nil {
			return nil, nil, err
		}
		storage, err := bootstrap.Open(ctx, cfg, nil)
		if err != nil {
			return nil, nil, err
		}
		store := config.NewStore(storage.Blobs, nil)
		store.Load(ctx)
		return store, storage.Close, nil
	}

	if err := cli.NewRootCommand(open).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "posctl:", err)
		os.Exit(1)
	}
}
