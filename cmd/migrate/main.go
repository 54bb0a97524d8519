// Command migrate applies the embedded schema without the rest of seedctl.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"upengage.io/seeder/internal/migrate"
	"upengage.io/seeder/internal/obs"
	"upengage.io/seeder/internal/store/pg"
)

func main() {
	log := obs.Configure(os.Getenv("LOG_LEVEL"), "text", os.Stderr)
	var (
		dsn            = flag.String("dsn", os.Getenv("SEED_PG_DSN"), "PostgreSQL DSN")
		migrationsPath = flag.String("migrations", os.Getenv("MIGRATIONS_DIR"), "Directory of SQL migrations (default: embedded)")
		timeout        = flag.Duration("timeout", 2*time.Minute, "Overall timeout")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or SEED_PG_DSN")
	}
	if len(flag.Args()) == 0 {
		log.Fatal("usage: migrate [up|down|status|seeds]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := pg.Open(*dsn, pg.PoolOptions{MaxOpenConns: 1})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	var (
		fsys fs.FS = migrate.Embedded
		dir        = migrate.EmbeddedDir
	)
	if *migrationsPath != "" {
		fsys, dir = os.DirFS(*migrationsPath), "."
	}
	mgr := migrate.NewManager(store.DB(), fsys, dir)

	switch flag.Arg(0) {
	case "up":
		var applied []string
		applied, err = mgr.Up(ctx)
		for _, name := range applied {
			log.WithField("migration", name).Info("applied")
		}
	case "down":
		var name string
		name, err = mgr.Down(ctx)
		if err == nil {
			log.WithField("migration", name).Info("rolled back")
		}
	case "status", "seeds":
		var history []migrate.Record
		if flag.Arg(0) == "status" {
			history, err = mgr.Status(ctx)
		} else {
			history, err = mgr.SeedHistory(ctx)
		}
		for _, item := range history {
			fmt.Printf("%s\t%s\n", item.Name, item.AppliedAt.Format(time.RFC3339))
		}
	default:
		log.Fatalf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
}
