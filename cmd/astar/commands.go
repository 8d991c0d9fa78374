package main

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/IlikeChooros/go-astar/pkg/astar"
	"github.com/IlikeChooros/go-astar/pkg/config"
	"github.com/IlikeChooros/go-astar/pkg/logging"
	"github.com/IlikeChooros/go-astar/pkg/metrics"
)

// State shared by every command, built in the root's PersistentPreRunE
type app struct {
	// flags
	configPath  string
	gameName    string
	strategy    string
	movetime    time.Duration
	cycles      uint32
	workers     int
	seed        int64
	logLevel    string
	logFormat   string
	metricsAddr string

	cfg     config.Config
	log     *logging.Logger
	metrics *metrics.Search
	out     *termenv.Output
	server  *metricsServer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "astar",
		Short: "Best-first game tree search for chess and tic-tac-toe",
		Long: `astar refines a game tree best branch first: every descent follows the
best scored branches down to an unexpanded one, expands it and hands the
scores back up. Searches run on one goroutine or on a pool of workers
sharing the tree.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.StringVarP(&a.gameName, "game", "g", "chess", "game to search: chess or tictactoe")
	flags.StringVarP(&a.strategy, "strategy", "s", "", "search strategy: sequential, rootlocked or lockfree")
	flags.DurationVarP(&a.movetime, "movetime", "t", 0, "time budget of one search")
	flags.Uint32Var(&a.cycles, "cycles", 0, "descent budget of one search")
	flags.IntVarP(&a.workers, "workers", "w", 0, "search workers of the concurrent strategies")
	flags.Int64Var(&a.seed, "seed", 0, "seed of the tie-break random number generators")
	flags.StringVar(&a.logLevel, "log-level", "", "none, warn, info, debug, trace or all")
	flags.StringVar(&a.logFormat, "log-format", "", "text or json")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(
		newSearchCmd(a),
		newPlayCmd(a),
		newExplainCmd(a),
		newMatchCmd(a),
	)
	return root
}

// Load the config file, let the flags override it, then build the logger,
// the metrics and the output
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Strategy = a.strategy
	}
	if flags.Changed("movetime") {
		cfg.Movetime = a.movetime
	}
	if flags.Changed("cycles") {
		cfg.Cycles = a.cycles
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = a.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if a.gameName != "chess" && a.gameName != "tictactoe" {
		return fmt.Errorf("unknown game %q", a.gameName)
	}

	if cfg.Seed != 0 {
		seed := cfg.Seed
		astar.SetSeedGeneratorFn(func() int64 { return seed })
	}

	a.cfg = cfg
	a.log = cfg.Logger(cmd.ErrOrStderr())
	a.out = termenv.NewOutput(cmd.OutOrStdout())

	reg := prometheus.NewRegistry()
	a.metrics = metrics.New(reg)
	if cfg.MetricsAddr != "" {
		server, err := startMetricsServer(cfg.MetricsAddr, reg, a.log)
		if err != nil {
			return err
		}
		a.server = server
	}

	a.log.Debug().
		Str("game", a.gameName).
		Str("strategy", cfg.Strategy).
		Dur("movetime", cfg.Movetime).
		Uint32("cycles", cfg.Cycles).
		Int("workers", cfg.Workers).
		Msg("configured")
	return nil
}

func (a *app) teardown() error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown()
}

// Engine for one game, as the config describes it
func newEngine[P any, M any](a *app, g *gameKit[P, M], strategy astar.Strategy) *astar.Engine[P, M] {
	return astar.NewEngine(g.rules, g.eval, strategy).
		SetLimits(a.cfg.Limits()).
		SetLogger(a.log).
		SetMetrics(a.metrics)
}
