// Package cli implements the gridmdp command line interface
package cli

import (
	"github.com/samuelfneumann/gridmdp/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// globalOptions holds the flags shared by every command
type globalOptions struct {
	configPath    string
	logLevel      string
	gamma         float64
	theta         float64
	maxIterations int
	workers       int
}

// Execute runs the gridmdp command with the process arguments
func Execute() error {
	return RootCommand().Execute()
}

// RootCommand returns the gridmdp command and all of its subcommands
func RootCommand() *cobra.Command {
	opts := &globalOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:          "gridmdp",
		Short:        "Solve deterministic gridworlds with dynamic programming",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "",
		"JSON configuration file")
	flags.StringVar(&opts.logLevel, "log-level", defaults.LogLevel,
		"Log level (trace, debug, info, warn, error)")
	flags.Float64Var(&opts.gamma, "gamma", defaults.Solver.Gamma,
		"Discount factor in (0, 1]")
	flags.Float64Var(&opts.theta, "theta", defaults.Solver.Theta,
		"Convergence threshold")
	flags.IntVar(&opts.maxIterations, "max-iterations",
		defaults.Solver.MaxIterations, "Maximum number of sweeps per run")
	flags.IntVar(&opts.workers, "workers", defaults.Solver.Workers,
		"Number of goroutines each sweep is split across")

	cmd.AddCommand(
		EvaluateCommand(opts),
		ImproveCommand(opts),
		IterateCommand(opts),
		ValueCommand(opts),
		GenerateCommand(),
		ServeCommand(opts),
	)
	return cmd
}

// load returns the configuration from the config file and environment,
// overridden by any global flags which were set, and applies its log
// level
func (o *globalOptions) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("gamma") {
		cfg.Solver.Gamma = o.gamma
	}
	if flags.Changed("theta") {
		cfg.Solver.Theta = o.theta
	}
	if flags.Changed("max-iterations") {
		cfg.Solver.MaxIterations = o.maxIterations
	}
	if flags.Changed("workers") {
		cfg.Solver.Workers = o.workers
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	log.SetLevel(cfg.Level())
	return cfg, nil
}
