package config

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"github.com/scottcagno/hashtable/pkg/hashmap/chained"
)

const (
	HashFNV1a  = "fnv1a"
	HashPoly31 = "poly31"
	HashXXH32  = "xxhash32"
)

const (

	// table defaults
	defaultBuckets  = chained.MinBuckets
	defaultResize   = true
	defaultGrowAt   = chained.DefaultGrowAt
	defaultShrinkAt = chained.DefaultShrinkAt
	defaultHash     = HashFNV1a

	// log defaults
	defaultLogLevel   = "info"
	defaultMaxSizeMB  = 16
	defaultMaxBackups = 3
	defaultMaxAgeDays = 7

	// bounds
	maxGrowAt     = 16.0
	maxMaxSizeMB  = 1024
	maxMaxBackups = 64
)

var (
	ErrUnknownHash       = errors.New("config: unknown hash function")
	ErrBadThresholds     = errors.New("config: shrink threshold must not exceed half the grow threshold")
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
)

// Config holds configuration settings for a table and the logger around it
type Config struct {
	Table TableConfig `yaml:"table" json:"table"`
	Log   LogConfig   `yaml:"log" json:"log"`
}

// TableConfig describes how a chained table is built
type TableConfig struct {
	Buckets  int     `yaml:"buckets" json:"buckets"`     // initial bucket count (>= 3), or fixed count (>= 1)
	Resize   *bool   `yaml:"resize" json:"resize"`       // false builds a fixed size table
	GrowAt   float64 `yaml:"grow_at" json:"grow_at"`     // grow above this load factor
	ShrinkAt float64 `yaml:"shrink_at" json:"shrink_at"` // shrink below this load factor
	Hash     string  `yaml:"hash" json:"hash"`           // fnv1a, poly31 or xxhash32
	Shards   int     `yaml:"shards" json:"shards"`       // > 0 builds a sharded table, rounded up to a power of two
}

// LogConfig describes the logger; an empty File logs to stderr only
type LogConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Default returns a config with every field set to its default
func Default() *Config {
	return (&Config{}).Check()
}

// Load reads a config file from fs. The format is picked from the file
// extension: .yaml and .yml, or .json and .jsonc (comments and trailing
// commas allowed). The result has been through Check but not Validate.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "config.Load")
	}
	conf := new(Config)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, conf)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), conf)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "config.Load: decoding %q", path)
	}
	return conf.Check(), nil
}

// Check is a helper to make sure the configuration options are in range
// and fills in any missing options
func (conf *Config) Check() *Config {
	t := &conf.Table
	if t.Resize == nil {
		resize := defaultResize
		t.Resize = &resize
	}
	if t.Buckets < 1 || (*t.Resize && t.Buckets < chained.MinBuckets) {
		t.Buckets = defaultBuckets
	}
	if t.GrowAt <= 0 {
		t.GrowAt = defaultGrowAt
	}
	if t.GrowAt > maxGrowAt {
		t.GrowAt = maxGrowAt
	}
	if t.ShrinkAt <= 0 {
		t.ShrinkAt = math.Min(defaultShrinkAt, t.GrowAt/4)
	}
	if t.Hash == "" {
		t.Hash = defaultHash
	}
	t.Hash = strings.ToLower(t.Hash)
	if t.Shards < 0 {
		t.Shards = 0
	}
	l := &conf.Log
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.MaxSizeMB <= 0 {
		l.MaxSizeMB = defaultMaxSizeMB
	}
	if l.MaxSizeMB > maxMaxSizeMB {
		l.MaxSizeMB = maxMaxSizeMB
	}
	if l.MaxBackups <= 0 {
		l.MaxBackups = defaultMaxBackups
	}
	if l.MaxBackups > maxMaxBackups {
		l.MaxBackups = maxMaxBackups
	}
	if l.MaxAgeDays <= 0 {
		l.MaxAgeDays = defaultMaxAgeDays
	}
	return conf
}

// Validate reports every setting Check can not repair
func (conf *Config) Validate() error {
	var err error
	if _, ok := hashFuncs[conf.Table.Hash]; !ok {
		err = multierr.Append(err, errors.Wrapf(ErrUnknownHash, "%q", conf.Table.Hash))
	}
	if conf.Table.ShrinkAt*2 > conf.Table.GrowAt {
		err = multierr.Append(err, errors.Wrapf(ErrBadThresholds,
			"shrink_at=%g grow_at=%g", conf.Table.ShrinkAt, conf.Table.GrowAt))
	}
	if _, lerr := conf.Log.ZapLevel(); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	return err
}

// ZapLevel parses the configured level name (debug, info, warn, error...)
func (l LogConfig) ZapLevel() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return lvl, errors.Wrapf(err, "config: log level %q", l.Level)
	}
	return lvl, nil
}

var hashFuncs = map[string]chained.HashFunc{
	HashFNV1a:  chained.FNV1a32,
	HashPoly31: chained.Poly31,
	HashXXH32:  chained.XXHash32,
}

// Options converts the table settings into chained options
func (t TableConfig) Options(log *zap.Logger) []chained.Option {
	opts := []chained.Option{
		chained.WithHashFunc(hashFuncs[t.Hash]),
		chained.WithLogger(log),
	}
	if t.Resize != nil && !*t.Resize {
		return append(opts, chained.WithFixedSize(t.Buckets))
	}
	return append(opts,
		chained.WithInitialBuckets(t.Buckets),
		chained.WithResizePolicy(chained.ResizePolicy{
			GrowAt:   t.GrowAt,
			ShrinkAt: t.ShrinkAt,
		}),
	)
}

func (t TableConfig) String() string {
	var sb strings.Builder
	sb.WriteString("Buckets: ")
	sb.WriteString(strconv.Itoa(t.Buckets))
	sb.WriteString("\n")
	sb.WriteString("Resize: ")
	sb.WriteString(strconv.FormatBool(t.Resize == nil || *t.Resize))
	sb.WriteString("\n")
	sb.WriteString("GrowAt: ")
	sb.WriteString(strconv.FormatFloat(t.GrowAt, 'g', -1, 64))
	sb.WriteString("\n")
	sb.WriteString("ShrinkAt: ")
	sb.WriteString(strconv.FormatFloat(t.ShrinkAt, 'g', -1, 64))
	sb.WriteString("\n")
	sb.WriteString("Hash: ")
	sb.WriteString(t.Hash)
	sb.WriteString("\n")
	sb.WriteString("Shards: ")
	sb.WriteString(strconv.Itoa(t.Shards))
	return sb.String()
}
