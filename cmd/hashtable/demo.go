package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scottcagno/hashtable/pkg/printer"
)

var fruits = []string{
	"apple", "banana", "cherry", "date", "elderberry", "fig", "grape", "honeydew",
}

func newDemoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Insert a few keys, printing the buckets after each one, then delete them again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := e.newTable()
			snap, _ := t.(printer.Snapshotter[interface{}])
			show := func(title string) error {
				fmt.Fprintf(os.Stdout, "-- %s (len=%d)\n", title, t.Len())
				if snap == nil {
					return nil
				}
				return printer.Fprint(os.Stdout, snap.Buckets())
			}
			for i, f := range fruits {
				if err := t.Put(f, i+1); err != nil {
					return err
				}
				if err := show("put " + f); err != nil {
					return err
				}
			}
			if err := t.Put("apple", "red"); err != nil {
				return err
			}
			v, _, err := t.Get("apple")
			if err != nil {
				return err
			}
			e.log.Info("overwrote key", zap.String("key", "apple"), zap.Any("value", v))
			if err := printStats(e, t); err != nil {
				return err
			}
			for _, f := range fruits {
				if _, err := t.Del(f); err != nil {
					return err
				}
				if err := show("del " + f); err != nil {
					return err
				}
			}
			return printStats(e, t)
		},
	}
}
