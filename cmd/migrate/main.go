// Package main provides a database migration runner.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/fleetcalc/internal/config"
	"github.com/cory-johannsen/fleetcalc/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	dir := flag.String("dir", "migrations", "migrations directory")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	if *direction != "up" && *direction != "down" {
		log.Fatalf("invalid direction %q: must be 'up' or 'down'", *direction)
	}

	v := viper.New()
	v.SetConfigFile(*configPath)
	config.SetDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("reading config: %v", err)
	}

	var dbCfg config.DatabaseConfig
	if err := v.Sub("database").Unmarshal(&dbCfg); err != nil {
		log.Fatalf("parsing database config: %v", err)
	}

	res, err := postgres.Migrate(dbCfg.DSN(), *dir, *direction == "down", *steps)
	if err != nil {
		log.Fatal(err)
	}

	elapsed := time.Since(start)
	if res.NoChange {
		fmt.Fprintf(os.Stdout, "no changes (version=%d dirty=%v) [%s]\n", res.Version, res.Dirty, elapsed)
	} else {
		fmt.Fprintf(os.Stdout, "migrated %s to version=%d dirty=%v [%s]\n", *direction, res.Version, res.Dirty, elapsed)
	}
}
