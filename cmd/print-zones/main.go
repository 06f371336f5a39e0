package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/config"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/zones"
)

type row struct {
	name    string
	ttl     int
	kind    string
	content string
}

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set DYNDNS_CONFIG)")
		dbPath     = flag.String("db", "", "SQLite database path (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	dir := zones.NewDirectory(db, cache.NewService(cache.Options{}), nil, nil)
	all, err := dir.List(ctx)
	if errors.Is(err, records.ErrConfigurationMissing) {
		fmt.Println("no base domain configured")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list zones: %v\n", err)
		os.Exit(1)
	}

	for _, z := range all {
		rows, err := zoneRows(ctx, db, z)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read zone %s: %v\n", z.Name, err)
			os.Exit(1)
		}

		kind := "additional"
		if z.IsBase() {
			kind = "base"
		}
		fmt.Printf("ZONE: %s (%s)\n", z.Name, kind)
		fmt.Println("RECORDS:")
		for _, r := range rows {
			fmt.Printf("  %s %d IN %s %s\n", r.name, r.ttl, r.kind, r.content)
		}
	}
}

// zoneRows collects the apex and advanced records of z, sorted by name,
// type and content.
func zoneRows(ctx context.Context, db *database.DB, z records.Zone) ([]row, error) {
	apex, err := db.Records(ctx, z.Apex(), 0)
	if err != nil {
		return nil, err
	}
	advanced, err := db.AdvancedRecords(ctx, z)
	if err != nil {
		return nil, err
	}

	rows := make([]row, 0, len(apex)+len(advanced))
	for _, r := range apex {
		rows = append(rows, row{z.Name, r.TTL, r.Kind.String(), r.Content})
	}
	for _, nr := range advanced {
		name := nr.DomainName
		if name == "" {
			name = z.Name
		}
		rows = append(rows, row{name, nr.Record.TTL, nr.Record.Kind.String(), nr.Record.Content})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.name != b.name {
			return a.name < b.name
		}
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		return a.content < b.content
	})
	return rows, nil
}
