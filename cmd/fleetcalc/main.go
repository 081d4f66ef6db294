// Package main provides a command line front end to the calculator: it
// analyses a Deck4 file and prints the report as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/fleetcalc/internal/calc"
	"github.com/cory-johannsen/fleetcalc/internal/config"
	"github.com/cory-johannsen/fleetcalc/internal/deck"
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/observability"
)

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fleetcalc: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "optional configuration file")
	masterDir := flag.String("master", "", "master snapshot directory (overrides data.master_dir)")
	scriptDir := flag.String("scripts", "", "map bonus script directory (overrides data.script_dir)")
	fleetKey := flag.String("fleet", "f1", "fleet to analyse: f1..f4")
	formation := flag.String("formation", "", "own formation (default line_ahead)")
	engagement := flag.String("engagement", "", "engagement: parallel, head_on, t_advantage, t_disadvantage")
	airState := flag.String("air-state", "", "air state override: AS+, AS, AP, AD, AI")
	nodesFile := flag.String("nodes", "", "JSON file holding a list of map nodes")
	node := flag.Int("node", -1, "node to evaluate attacks against; -1 for none")
	nightContact := flag.Bool("night-contact", false, "assume night recon made contact")
	trials := flag.Int("sample", 0, "draw this many shelling outcomes per ship instead of printing the report")
	normalize := flag.Bool("normalize", false, "print the deck as re-exported from the composed plan")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: fleetcalc [flags] <deck.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	v := viper.New()
	config.SetDefaults(v)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			fatalf("reading config: %v", err)
		}
	}
	if *masterDir != "" {
		v.Set("data.master_dir", *masterDir)
	}
	if *scriptDir != "" {
		v.Set("data.script_dir", *scriptDir)
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "fleetcalc")
	if err != nil {
		fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	svc, closeScripts, err := calc.Load(cfg.Data, cfg.Random, logger)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeScripts()

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fatalf("reading deck: %v", err)
	}
	q := calc.Query{
		Deck:       data,
		Fleet:      *fleetKey,
		Formation:  *formation,
		Engagement: *engagement,
		AirState:   *airState,

		NightContact: *nightContact,
	}
	if *nodesFile != "" {
		raw, err := os.ReadFile(*nodesFile)
		if err != nil {
			fatalf("reading nodes: %v", err)
		}
		var nodes []fleet.NodeState
		if err := json.Unmarshal(raw, &nodes); err != nil {
			fatalf("parsing nodes: %v", err)
		}
		q.Nodes = nodes
	}
	if *node >= 0 {
		q.Node = node
	}

	var out any
	switch {
	case *normalize:
		p, err := svc.Plan(q)
		if err != nil {
			fatalf("%v", err)
		}
		b, err := deck.Marshal(deck.FromPlan(p))
		if err != nil {
			fatalf("%v", err)
		}
		out = json.RawMessage(b)
	case *trials > 0:
		tallies, err := svc.Sample(q, *trials)
		if err != nil {
			fatalf("%v", err)
		}
		out = map[string]any{"trials": *trials, "ships": tallies}
	default:
		rep, err := svc.Analyze(q)
		if err != nil {
			fatalf("%v", err)
		}
		out = rep
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatalf("writing output: %v", err)
	}
}
