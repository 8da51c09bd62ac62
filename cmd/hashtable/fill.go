package main

import (
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFillCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "fill <n>",
		Short: "Insert n random keys and print the resulting table stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return errors.Errorf("fill: %q is not a valid count", args[0])
			}
			t := e.newTable()
			start := time.Now()
			for i := 0; i < n; i++ {
				id, err := uuid.NewV4()
				if err != nil {
					return errors.Wrap(err, "fill")
				}
				if err := t.Put(id.String(), i); err != nil {
					return err
				}
			}
			e.log.Info("filled table", zap.Int("keys", n), zap.Duration("took", time.Since(start)))
			return printStats(e, t)
		},
	}
}
