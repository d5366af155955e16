package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/lifecards/internal/config"
	lcmcp "github.com/peterkuimelis/lifecards/internal/mcp"
	"github.com/peterkuimelis/lifecards/internal/score"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "default RNG seed (0 for random)")
	flag.StringVar(&cfg.TuningFile, "tuning", cfg.TuningFile, "path to a tuning YAML file")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite score database")
	flag.Parse()

	if err := run(context.Background(), cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, closeStore, err := cfg.OpenScores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	lifeCfg, err := cfg.LifeConfig(score.NewRecorder(store))
	if err != nil {
		return err
	}

	s := server.NewMCPServer("lifecards", "1.0.0")
	lcmcp.RegisterTools(s, &lcmcp.Tools{
		Life:       lifeCfg,
		Scores:     store,
		ScoreLimit: cfg.ScoreLimit,
	})

	if err := server.ServeStdio(s); err != nil {
		log.Printf("mcp server stopped: %v", err)
		return err
	}
	return nil
}
