package cli

import (
	"fmt"

	"github.com/samuelfneumann/gridmdp/dp"
	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/policy"
	"github.com/samuelfneumann/gridmdp/render"
	"github.com/samuelfneumann/gridmdp/tracker"
	"github.com/spf13/cobra"
)

// outputOptions holds the flags of commands which print a solution
type outputOptions struct {
	mapPath    string
	policyPath string
	png        string
	chart      string
	trace      string
	colour     bool
}

func (o *outputOptions) addFlags(cmd *cobra.Command, withPolicy bool) {
	flags := cmd.Flags()
	flags.StringVar(&o.mapPath, "map", "", "Map file")
	cmd.MarkFlagRequired("map")
	if withPolicy {
		flags.StringVar(&o.policyPath, "policy", "", "Policy file")
		cmd.MarkFlagRequired("policy")
	}

	flags.StringVar(&o.png, "png", "", "Save a heatmap of the values as PNG")
	flags.StringVar(&o.chart, "chart", "",
		"Save a convergence chart as HTML")
	flags.StringVar(&o.trace, "trace", "",
		"Save the value change of every sweep in gob format")
	flags.BoolVar(&o.colour, "color", false, "Colour the printed grid")
}

// run holds what a solving command needs and produces
type run struct {
	opts   *outputOptions
	solver *dp.Solver
	chart  *tracker.Chart
	delta  *tracker.Delta
}

// newRun loads the configuration and the map, and creates a Solver with
// the trackers the output flags ask for
func newRun(cmd *cobra.Command, global *globalOptions,
	opts *outputOptions) (*run, error) {
	cfg, err := global.load(cmd)
	if err != nil {
		return nil, err
	}

	m, err := gridworld.LoadMap(opts.mapPath)
	if err != nil {
		return nil, err
	}

	solver, err := dp.New(gridworld.New(m), cfg.Solver)
	if err != nil {
		return nil, err
	}

	r := &run{opts: opts, solver: solver}
	if opts.chart != "" {
		r.chart = tracker.NewChart(opts.chart, cmd.Name())
		solver.Register(r.chart)
	}
	if opts.trace != "" {
		r.delta = tracker.NewDelta(opts.trace)
		solver.Register(r.delta)
	}
	return r, nil
}

// loadPolicy loads the policy given by the --policy flag
func (r *run) loadPolicy() (*policy.Policy, error) {
	return policy.Load(r.opts.policyPath)
}

// output prints the solution p and writes every requested file
func (r *run) output(cmd *cobra.Command, p *policy.Policy) error {
	env := r.solver.Env()
	if err := render.Text(cmd.OutOrStdout(), env, p.Values(), p,
		r.opts.colour); err != nil {
		return err
	}

	if r.opts.png != "" {
		if err := render.SavePNG(r.opts.png, env, p.Values(), p,
			cmd.Name()); err != nil {
			return fmt.Errorf("output: could not save png: %w", err)
		}
	}
	if r.chart != nil {
		if err := r.chart.Save(); err != nil {
			return fmt.Errorf("output: could not save chart: %w", err)
		}
	}
	if r.delta != nil {
		if err := r.delta.Save(); err != nil {
			return fmt.Errorf("output: could not save trace: %w", err)
		}
	}
	return nil
}

// EvaluateCommand returns the command which evaluates a policy
func EvaluateCommand(global *globalOptions) *cobra.Command {
	opts := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute the value of every state under a policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRun(cmd, global, opts)
			if err != nil {
				return err
			}
			p, err := r.loadPolicy()
			if err != nil {
				return err
			}
			if _, err := r.solver.Evaluate(p); err != nil {
				return err
			}
			return r.output(cmd, p)
		},
	}
	opts.addFlags(cmd, true)
	return cmd
}

// ImproveCommand returns the command which evaluates a policy and
// performs a single step of policy improvement
func ImproveCommand(global *globalOptions) *cobra.Command {
	opts := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "improve",
		Short: "Evaluate a policy and make it greedy with respect to its values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRun(cmd, global, opts)
			if err != nil {
				return err
			}
			p, err := r.loadPolicy()
			if err != nil {
				return err
			}
			if _, err := r.solver.Evaluate(p); err != nil {
				return err
			}
			improved, err := r.solver.Improve(p)
			if err != nil {
				return err
			}
			return r.output(cmd, improved)
		},
	}
	opts.addFlags(cmd, true)
	return cmd
}

// IterateCommand returns the command which runs policy iteration
func IterateCommand(global *globalOptions) *cobra.Command {
	opts := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "iterate",
		Short: "Find an optimal policy with policy iteration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRun(cmd, global, opts)
			if err != nil {
				return err
			}
			p, err := r.loadPolicy()
			if err != nil {
				return err
			}
			optimal, err := r.solver.PolicyIteration(p)
			if err != nil {
				return err
			}
			return r.output(cmd, optimal)
		},
	}
	opts.addFlags(cmd, true)
	return cmd
}

// ValueCommand returns the command which runs value iteration
func ValueCommand(global *globalOptions) *cobra.Command {
	opts := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Find an optimal policy with value iteration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRun(cmd, global, opts)
			if err != nil {
				return err
			}
			return r.output(cmd, r.solver.ValueIteration())
		},
	}
	opts.addFlags(cmd, false)
	return cmd
}
