package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/cargoline/backoffice/internal/cli"
	"github.com/cargoline/backoffice/internal/core/ports"
	"github.com/cargoline/backoffice/internal/infrastructure/config"
	mongodb "github.com/cargoline/backoffice/internal/infrastructure/db/mongo"
)

func main() {
	app := &cli.App{OpenRoleStore: openRoleStore}
	if err := cli.NewRootCmd(app).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openRoleStore connects to the database named by MONGO_URI and MONGO_DB.
func openRoleStore(ctx context.Context) (ports.RoleStore, func(), error) {
	var cfg config.MongoConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.URI, Database: cfg.Database})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	return mongodb.NewRoleRepository(db), closeFn, nil
}
