// Package main applies and reverts the admin database migrations.
//
// Usage:
//
//	migrate up
//	migrate up-to <id>
//	migrate down [-steps N]
//	migrate status
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/amirphl/Omoikane/config"
	"github.com/amirphl/Omoikane/database"
	"github.com/amirphl/Omoikane/migrations"
	"github.com/amirphl/Omoikane/utils"
)

var errUsage = errors.New("usage: migrate up | up-to <id> | down [-steps N] | status")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database, io.Discard, "error")
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	runner, err := migrations.NewRunner(db, migrations.All())
	if err != nil {
		return err
	}

	command, rest := args[0], args[1:]
	switch command {
	case "up":
		applied, err := runner.Up(ctx)
		printIDs(out, "applied", applied)
		return err
	case "up-to":
		if len(rest) != 1 {
			return errUsage
		}
		applied, err := runner.UpTo(ctx, rest[0])
		printIDs(out, "applied", applied)
		return err
	case "down":
		fs := flag.NewFlagSet("down", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		steps := fs.Int("steps", 1, "number of migrations to revert")
		if err := fs.Parse(rest); err != nil || *steps < 1 {
			return errUsage
		}
		reverted, err := runner.Down(ctx, *steps)
		printIDs(out, "reverted", reverted)
		return err
	case "status":
		statuses, err := runner.Status(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tAPPLIED\tAPPLIED AT")
		for _, s := range statuses {
			appliedAt := "-"
			if s.AppliedAt != nil {
				appliedAt = utils.FormatRFC3339(*s.AppliedAt)
			}
			fmt.Fprintf(tw, "%s\t%t\t%s\n", s.ID, s.Applied, appliedAt)
		}
		return tw.Flush()
	default:
		return errUsage
	}
}

func printIDs(out io.Writer, verb string, ids []string) {
	for _, id := range ids {
		fmt.Fprintf(out, "%s %s\n", verb, id)
	}
	if len(ids) == 0 {
		fmt.Fprintf(out, "nothing %s\n", verb)
	}
}
