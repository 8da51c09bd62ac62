package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scottcagno/hashtable"
	"github.com/scottcagno/hashtable/pkg/config"
	"github.com/scottcagno/hashtable/pkg/hashmap/chained"
	"github.com/scottcagno/hashtable/pkg/logging"
	"github.com/scottcagno/hashtable/pkg/printer"
)

// env is what every sub command needs: the loaded config and a logger
type env struct {
	fs   afero.Fs
	path string
	conf *config.Config
	log  *zap.Logger
}

func (e *env) setup(cmd *cobra.Command, args []string) error {
	conf := config.Default()
	if e.path != "" {
		var err error
		conf, err = config.Load(e.fs, e.path)
		if err != nil {
			return err
		}
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	log, err := logging.New(conf.Log)
	if err != nil {
		return err
	}
	e.conf, e.log = conf, log
	log.Debug("config loaded", zap.String("path", e.path), zap.Stringer("table", conf.Table))
	return nil
}

// newTable builds the table described by the config
func (e *env) newTable() hashtable.Table[interface{}] {
	opts := e.conf.Table.Options(e.log)
	if e.conf.Table.Shards > 0 {
		return chained.NewSharded[interface{}](e.conf.Table.Shards, opts...)
	}
	return chained.New[interface{}](opts...)
}

// printStats writes the stats of t, summing the shards of a sharded table
func printStats(e *env, t hashtable.Table[interface{}]) error {
	var st chained.Stats
	switch tbl := t.(type) {
	case *chained.HashMap[interface{}]:
		st = tbl.Stats()
	case *chained.Sharded[interface{}]:
		for _, s := range tbl.Stats() {
			st.Elements += s.Elements
			st.Buckets += s.Buckets
			st.EmptyBuckets += s.EmptyBuckets
			st.Resizes += s.Resizes
			if s.LongestChain > st.LongestChain {
				st.LongestChain = s.LongestChain
			}
		}
		if st.Buckets > 0 {
			st.LoadFactor = float64(st.Elements) / float64(st.Buckets)
		}
	default:
		return errors.Errorf("no stats for %T", t)
	}
	e.log.Info("table stats", zap.Object("stats", st))
	return printer.FprintStats(os.Stdout, st)
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:               "hashtable",
		Short:             "Populate, inspect and script a chained hash table",
		SilenceUsage:      true,
		PersistentPreRunE: e.setup,
	}
	root.PersistentFlags().StringVarP(&e.path, "config", "c", "", "config file (.yaml, .yml, .json or .jsonc)")
	root.AddCommand(newDemoCmd(e), newRunCmd(e), newFillCmd(e))
	return root
}

func main() {
	e := &env{fs: afero.NewOsFs()}
	err := newRootCmd(e).Execute()
	if e.log != nil {
		_ = e.log.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}
