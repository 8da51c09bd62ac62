package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scottcagno/hashtable/pkg/script"
)

func newRunCmd(e *env) *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a YAML script of put/get/has/del/len/dump ops against a new table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := script.Load(e.fs, args[0])
			if err != nil {
				return err
			}
			t := e.newTable()
			err = script.Run(t, ops, os.Stdout)
			for _, opErr := range multierr.Errors(err) {
				e.log.Warn("op failed", zap.Error(opErr))
			}
			if stats {
				if serr := printStats(e, t); serr != nil {
					return serr
				}
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "print table stats when the script is done")
	return cmd
}
