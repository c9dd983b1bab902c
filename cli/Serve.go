package cli

import (
	"github.com/samuelfneumann/gridmdp/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ServeCommand returns the command which starts the HTTP service
func ServeCommand(global *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solvers over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			s := server.New(cfg.Solver, log.StandardLogger())
			return s.ListenAndServe(cfg.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	return cmd
}
