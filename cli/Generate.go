package cli

import (
	"fmt"

	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/spf13/cobra"
)

// GenerateCommand returns the command which prints a random map
func GenerateCommand() *cobra.Command {
	var rows, cols int
	var walls float64
	var seed uint64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random map with a single goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := gridworld.Generate(rows, cols, walls, seed)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), m.String())
			return err
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 8, "Number of rows")
	cmd.Flags().IntVar(&cols, "cols", 8, "Number of columns")
	cmd.Flags().Float64Var(&walls, "walls", 0.2,
		"Probability of each cell being a wall")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	return cmd
}
