package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/bulanstore/bulan-api/app/configs"
	"github.com/bulanstore/bulan-api/app/db/seeders"
	"github.com/bulanstore/bulan-api/app/models/migrations"
)

// RunCli dispatches management commands. The server binary doubles as the
// operational tool, so deploys and local setups need no second binary.
func RunCli() {
	cmd := &cli.Command{
		Name:  "bulan-api",
		Usage: "bulan store API server and management commands",
		Commands: []*cli.Command{
			migrateCommand(),
			{
				Name:  "seed",
				Usage: "Populate the database with demo users, categories and products",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := seeders.Run(ctx, db); err != nil {
						return err
					}
					log.Println("seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate fresh random secrets to paste into .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintSecrets()
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.Migrate(db); err != nil {
						return err
					}
					log.Println("migrations applied")
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "Roll back the most recent migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.RollbackLast(db); err != nil {
						return err
					}
					log.Println("rolled back one migration")
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "Show which migrations are applied and which are pending",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					applied, err := migrations.AppliedIDs(db)
					if err != nil {
						return err
					}
					pending, err := migrations.PendingIDs(db)
					if err != nil {
						return err
					}
					for _, id := range applied {
						fmt.Printf("applied  %s\n", id)
					}
					for _, id := range pending {
						fmt.Printf("pending  %s\n", id)
					}
					if len(applied)+len(pending) == 0 {
						fmt.Println("no migrations registered")
					}
					return nil
				},
			},
			{
				Name:  "history",
				Usage: "List every registered migration in order",
				Action: func(ctx context.Context, c *cli.Command) error {
					for _, id := range migrations.RegisteredIDs() {
						fmt.Println(id)
					}
					return nil
				},
			},
			{
				Name:  "stamp",
				Usage: "Mark all migrations as applied without running them",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					n, err := migrations.Stamp(db)
					if err != nil {
						return err
					}
					log.Printf("stamped %d migration(s)", n)
					return nil
				},
			},
			{
				Name:  "new",
				Usage: "Print a skeleton for the next migration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "m",
						Usage:    "short snake_case description of the change",
						Required: true,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					id := fmt.Sprintf("%s_%s", time.Now().Format("200601021504"), c.String("m"))
					fmt.Printf(`Add this entry to app/models/migrations/migration.go:

	{
		ID: %q,
		Migrate: func(tx *gorm.DB) error {
			// TODO: forward change
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			// TODO: reverse change
			return nil
		},
	},
`, id)
					return nil
				},
			},
		},
	}
}
