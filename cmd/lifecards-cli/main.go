package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/peterkuimelis/lifecards/internal/config"
	lcnet "github.com/peterkuimelis/lifecards/internal/net"
	"github.com/peterkuimelis/lifecards/internal/score"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var runErr error
	switch os.Args[1] {
	case "play":
		runErr = runPlay(ctx, cfg, os.Args[2:])
	case "host":
		runErr = runHost(ctx, cfg, os.Args[2:])
	case "join":
		runErr = runJoin(ctx, os.Args[2:])
	case "scores":
		runErr = runScores(ctx, cfg, os.Args[2:], os.Stdout)
	default:
		printUsage()
		os.Exit(1)
	}
	if errors.Is(runErr, flag.ErrHelp) {
		return
	}
	if runErr != nil {
		stop()
		config.Exitf("Error: %v", runErr)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  lifecards play --name NAME [--seed N] [--tuning FILE] [--db FILE]")
	fmt.Println("  lifecards host [--port P] [--seed N] [--tuning FILE] [--db FILE]")
	fmt.Println("  lifecards join --name NAME [--addr ADDR]")
	fmt.Println("  lifecards scores [--limit N] [--recent | --since RFC3339] [--db FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Live a life in this terminal")
	fmt.Println("  host    Host lives for players who join over TCP")
	fmt.Println("  join    Connect to a host and live a life there")
	fmt.Println("  scores  Show the wealthiest (or most recent) recorded lives")
}

// bindShared registers the flags that override environment settings.
func bindShared(fs *flag.FlagSet, cfg *config.Config) {
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 for random)")
	fs.StringVar(&cfg.TuningFile, "tuning", cfg.TuningFile, "path to a tuning YAML file")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite score database (empty keeps scores in memory)")
}

func runPlay(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	name := fs.String("name", "", "your name")
	bindShared(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return errors.New("--name is required")
	}

	store, closeStore, err := cfg.OpenScores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	lifeCfg, err := cfg.LifeConfig(score.NewRecorder(store))
	if err != nil {
		return err
	}
	return lcnet.PlayLocal(ctx, lifeCfg, *name, os.Stdin, os.Stdout)
}

func runHost(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("host", flag.ContinueOnError)
	port := fs.Int("port", cfg.TCPPort, "TCP port to listen on")
	bindShared(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, closeStore, err := cfg.OpenScores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	lifeCfg, err := cfg.LifeConfig(score.NewRecorder(store))
	if err != nil {
		return err
	}
	srv := &lcnet.Server{
		Port: strconv.Itoa(*port),
		Life: lifeCfg,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ContinueOnError)
	name := fs.String("name", "", "your name")
	addr := fs.String("addr", "localhost:9090", "host address to connect to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return errors.New("--name is required")
	}
	return lcnet.Connect(ctx, *addr, *name)
}

func runScores(ctx context.Context, cfg config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("scores", flag.ContinueOnError)
	limit := fs.Int("limit", cfg.ScoreLimit, "number of rows")
	recent := fs.Bool("recent", false, "list the most recent lives instead of the wealthiest")
	sinceRaw := fs.String("since", "", "only count lives ended at or after this RFC3339 time")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite score database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.DBPath == "" {
		return errors.New("--db or LIFECARDS_DB_PATH is required")
	}
	var since time.Time
	if *sinceRaw != "" {
		if *recent {
			return errors.New("--since only applies to the wealthiest lives")
		}
		t, err := time.Parse(time.RFC3339, *sinceRaw)
		if err != nil {
			return fmt.Errorf("--since: %w", err)
		}
		since = t
	}

	store, closeStore, err := cfg.OpenScores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	var records []score.Record
	if *recent {
		records, err = store.Recent(ctx, *limit)
	} else {
		records, err = store.Top(ctx, *limit, since)
	}
	if err != nil {
		return err
	}
	for i, r := range records {
		fmt.Fprintf(w, "%2d. %-20s %14.0f  %s at %d\n", i+1, r.PlayerName, r.Wealth, r.Epitaph(), r.Age)
	}
	return nil
}
