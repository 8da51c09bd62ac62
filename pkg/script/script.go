package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"github.com/scottcagno/hashtable"
	"github.com/scottcagno/hashtable/pkg/hashmap/chained"
	"github.com/scottcagno/hashtable/pkg/printer"
)

var (
	ErrUnknownOp = errors.New("script: unknown op")
)

// Op is a single step of a script. Key is left untyped because YAML
// happily decodes `key: 123` or `key: ~`; it is checked with chained.KeyOf
// when the op runs.
type Op struct {
	Op    string      `yaml:"op"`
	Key   interface{} `yaml:"key"`
	Value interface{} `yaml:"value"`
}

// Parse decodes a YAML list of ops
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	if err := yaml.NewDecoder(r).Decode(&ops); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "script.Parse")
	}
	return ops, nil
}

// Load reads and parses the script at path
func Load(fs afero.Fs, path string) ([]Op, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "script.Load")
	}
	defer f.Close()
	return Parse(f)
}

// Run applies ops to t in order, writing one line per op to w. A failing op
// does not stop the script; every failure is returned together.
func Run(t hashtable.Table[interface{}], ops []Op, w io.Writer) error {
	var errs error
	for i, op := range ops {
		if err := runOp(t, op, w); err != nil {
			fmt.Fprintf(w, "%s: error: %v\n", op.Op, err)
			errs = multierr.Append(errs, errors.Wrapf(err, "op %d (%s)", i+1, op.Op))
		}
	}
	return errs
}

func runOp(t hashtable.Table[interface{}], op Op, w io.Writer) error {
	name := strings.ToLower(op.Op)
	switch name {
	case "len":
		fmt.Fprintf(w, "len = %d\n", t.Len())
		return nil
	case "dump":
		snap, ok := t.(printer.Snapshotter[interface{}])
		if !ok {
			return errors.Errorf("script: %T can not be dumped", t)
		}
		return printer.Fprint(w, snap.Buckets())
	case "put", "get", "has", "del":
	default:
		return errors.Wrapf(ErrUnknownOp, "%q", op.Op)
	}

	key, err := chained.KeyOf(op.Key)
	if err != nil {
		return err
	}
	switch name {
	case "put":
		if err := t.Put(key, normalize(op.Value)); err != nil {
			return err
		}
		fmt.Fprintf(w, "put %s = %s\n", key, printer.FormatValue(op.Value))
	case "get":
		val, ok, err := t.Get(key)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(w, "get %s (absent)\n", key)
			return nil
		}
		fmt.Fprintf(w, "get %s = %s\n", key, printer.FormatValue(val))
	case "has":
		ok, err := t.Has(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "has %s = %t\n", key, ok)
	case "del":
		ok, err := t.Del(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "del %s = %t\n", key, ok)
	}
	return nil
}

// normalize turns the map[interface{}]interface{} values yaml.v2 produces
// into map[string]interface{}
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		m := cast.ToStringMap(val)
		for k, e := range m {
			m[k] = normalize(e)
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
