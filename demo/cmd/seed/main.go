package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore/postgresstore"
	"github.com/BhuvanMohan2005/library-management-go/shell/config"
)

const (
	defaultMembers         = 10
	defaultLoanRounds      = 48
	defaultWindowDays      = 90
	defaultScenarioWeights = "60,20,20" // returned, open, overdue
)

type Config struct {
	Members         int
	LoanRounds      int
	WindowDays      int
	ScenarioWeights []int
	TablePrefix     string
	Verbose         bool
}

func main() {
	cfg := parseFlags()

	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	pgxPool, replicaPool, err := connectPools(ctx)
	if err != nil {
		logger.Error("creating the connection pools failed", "error", err)
		os.Exit(1)
	}
	defer pgxPool.Close()

	if replicaPool != nil {
		defer replicaPool.Close()
		logger.Info("replica DSN configured, eventually consistent reads go to the replica")
	}

	if err := pgxPool.Ping(ctx); err != nil {
		logger.Error("connecting to the database failed", "error", err)
		os.Exit(1)
	}

	storeOptions := []postgresstore.Option{postgresstore.WithContextualLogger(logger)}
	if cfg.TablePrefix != "" {
		storeOptions = append(storeOptions, postgresstore.WithTablePrefix(cfg.TablePrefix))
	}

	var store postgresstore.LibraryStore
	if replicaPool != nil {
		store, err = postgresstore.NewLibraryStoreFromPGXPoolWithReplica(pgxPool, replicaPool, storeOptions...)
	} else {
		store, err = postgresstore.NewLibraryStoreFromPGXPool(pgxPool, storeOptions...)
	}
	if err != nil {
		logger.Error("creating the library store failed", "error", err)
		os.Exit(1)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("creating the schema failed", "error", err)
		os.Exit(1)
	}

	policy, err := core.BuildLoanPolicy()
	if err != nil {
		logger.Error("building the loan policy failed", "error", err)
		os.Exit(1)
	}

	seeder, err := NewSeeder(store, policy, cfg, logger)
	if err != nil {
		logger.Error("building the seeder failed", "error", err)
		os.Exit(1)
	}

	logger.Info("library seeder started",
		"members", cfg.Members,
		"loan_rounds", cfg.LoanRounds,
		"window_days", cfg.WindowDays,
		"scenario_weights", cfg.ScenarioWeights)

	errChan := make(chan error, 1)
	go func() {
		errChan <- seeder.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, aborting", "signal", sig.String())
		cancel()
		<-errChan
	case err := <-errChan:
		if err != nil {
			logger.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	if err := seeder.Summarize(context.Background()); err != nil {
		logger.Error("collecting the summary failed", "error", err)
		os.Exit(1)
	}
}

// connectPools connects the primary pool, plus a replica pool when a replica
// DSN is configured in the environment. The seeder itself always reads with
// strong consistency, so the replica only serves callers that opt in.
func connectPools(ctx context.Context) (*pgxpool.Pool, *pgxpool.Pool, error) {
	if !config.ReplicaConfigured() {
		pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolSingleConfig())

		return pool, nil, err
	}

	primary, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolPrimaryConfig())
	if err != nil {
		return nil, nil, err
	}

	replica, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolReplicaConfig())
	if err != nil {
		primary.Close()

		return nil, nil, err
	}

	return primary, replica, nil
}

func parseFlags() Config {
	var (
		members         = flag.Int("members", defaultMembers, "Number of members to register")
		loanRounds      = flag.Int("loan-rounds", defaultLoanRounds, "Number of loan scenarios to generate")
		windowDays      = flag.Int("window-days", defaultWindowDays, "Days of history to spread the loans over, ending now")
		scenarioWeights = flag.String("scenario-weights", defaultScenarioWeights, "Comma-separated weights for returned,open,overdue loan scenarios")
		tablePrefix     = flag.String("table-prefix", "", "Optional table name prefix, e.g. demo")
		verbose         = flag.Bool("verbose", false, "Log every generated command")
	)

	flag.Parse()

	weights, err := parseScenarioWeights(*scenarioWeights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid scenario weights %q: %v\n", *scenarioWeights, err)
		os.Exit(2)
	}

	return Config{
		Members:         *members,
		LoanRounds:      *loanRounds,
		WindowDays:      *windowDays,
		ScenarioWeights: weights,
		TablePrefix:     *tablePrefix,
		Verbose:         *verbose,
	}
}

func parseScenarioWeights(weightsStr string) ([]int, error) {
	parts := strings.Split(weightsStr, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected 3 weights, got %d", len(parts))
	}

	weights := make([]int, 3)
	total := 0

	for i, part := range parts {
		weight, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", part, err)
		}

		if weight < 0 || weight > 100 {
			return nil, fmt.Errorf("weight %d out of range [0, 100]", weight)
		}

		weights[i] = weight
		total += weight
	}

	if total != 100 {
		return nil, fmt.Errorf("weights must sum to 100, got %d", total)
	}

	return weights, nil
}
