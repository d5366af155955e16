package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/lifecards/internal/config"
	"github.com/peterkuimelis/lifecards/internal/score"
	"github.com/peterkuimelis/lifecards/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	port := flag.Int("port", cfg.HTTPPort, "HTTP port to listen on")
	verbose := flag.Bool("v", false, "print every game event")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 for random)")
	flag.StringVar(&cfg.TuningFile, "tuning", cfg.TuningFile, "path to a tuning YAML file")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite score database")
	flag.Parse()

	if err := run(context.Background(), cfg, *port, *verbose); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, port int, verbose bool) error {
	store, closeStore, err := cfg.OpenScores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	lifeCfg, err := cfg.LifeConfig(score.NewRecorder(store))
	if err != nil {
		return err
	}

	webCfg := web.Config{
		Life:       lifeCfg,
		Scores:     store,
		ScoreLimit: cfg.ScoreLimit,
	}
	if verbose {
		webCfg.EventLog = os.Stdout
	}
	srv := web.NewServer(webCfg)

	log.Printf("lifecards web UI listening on http://localhost:%d", port)
	return srv.ListenAndServe(fmt.Sprintf(":%d", port))
}
