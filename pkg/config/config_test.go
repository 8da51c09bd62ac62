package config

import (
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scottcagno/hashtable/pkg/hashmap/chained"
)

func TestDefault(t *testing.T) {
	conf := Default()
	assert.Equal(t, 3, conf.Table.Buckets)
	require.NotNil(t, conf.Table.Resize)
	assert.True(t, *conf.Table.Resize)
	assert.Equal(t, 0.8, conf.Table.GrowAt)
	assert.Equal(t, 0.2, conf.Table.ShrinkAt)
	assert.Equal(t, HashFNV1a, conf.Table.Hash)
	assert.Equal(t, "info", conf.Log.Level)
	assert.NoError(t, conf.Validate())
}

func TestLoadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `
table:
  buckets: 16
  hash: POLY31
  grow_at: 2.0
log:
  level: debug
  file: /var/log/hashtable.log
  max_size_mb: 100000
`
	require.NoError(t, afero.WriteFile(fs, "conf.yaml", []byte(data), 0644))

	conf, err := Load(fs, "conf.yaml")
	require.NoError(t, err)
	require.NoError(t, conf.Validate())
	assert.Equal(t, 16, conf.Table.Buckets)
	assert.Equal(t, HashPoly31, conf.Table.Hash)
	assert.Equal(t, 2.0, conf.Table.GrowAt)
	assert.Equal(t, 0.2, conf.Table.ShrinkAt)
	assert.Equal(t, "/var/log/hashtable.log", conf.Log.File)
	assert.Equal(t, maxMaxSizeMB, conf.Log.MaxSizeMB)

	lvl, err := conf.Log.ZapLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoadYAMLUnknownField(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "conf.yml", []byte("table:\n  bukets: 3\n"), 0644))
	_, err := Load(fs, "conf.yml")
	assert.Error(t, err)
}

func TestLoadJSONC(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `{
	// fixed size table, like a plain array of chains
	"table": {"buckets": 10, "resize": false,},
	/* logging */
	"log": {"level": "warn"},
}`
	require.NoError(t, afero.WriteFile(fs, "conf.jsonc", []byte(data), 0644))

	conf, err := Load(fs, "conf.jsonc")
	require.NoError(t, err)
	require.NoError(t, conf.Validate())
	assert.Equal(t, 10, conf.Table.Buckets)
	require.NotNil(t, conf.Table.Resize)
	assert.False(t, *conf.Table.Resize)
	assert.Equal(t, "warn", conf.Log.Level)

	hm := chained.New[int](conf.Table.Options(zap.NewNop())...)
	for i := 0; i < 50; i++ {
		require.NoError(t, hm.Put(strconv.Itoa(i), i))
	}
	assert.Equal(t, 10, hm.BucketCount())
}

func TestLoadFixedTiny(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "conf.yaml", []byte("table:\n  buckets: 1\n  resize: false\n"), 0644))
	conf, err := Load(fs, "conf.yaml")
	require.NoError(t, err)
	require.NoError(t, conf.Validate())
	assert.Equal(t, 1, conf.Table.Buckets)

	hm := chained.New[int](conf.Table.Options(zap.NewNop())...)
	for i := 0; i < 20; i++ {
		require.NoError(t, hm.Put(strconv.Itoa(i), i))
	}
	assert.Equal(t, 1, hm.BucketCount())
	assert.Equal(t, 20, hm.Stats().LongestChain)

	fixed := false
	conf = (&Config{Table: TableConfig{Buckets: -2, Resize: &fixed}}).Check()
	assert.Equal(t, 3, conf.Table.Buckets)
}

func TestLoadXXHash32(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "conf.json", []byte(`{"table": {"hash": "XXHash32", "buckets": 5}}`), 0644))
	conf, err := Load(fs, "conf.json")
	require.NoError(t, err)
	require.NoError(t, conf.Validate())
	assert.Equal(t, HashXXH32, conf.Table.Hash)

	hm := chained.New[int](conf.Table.Options(zap.NewNop())...)
	for i := 0; i < 100; i++ {
		require.NoError(t, hm.Put(strconv.Itoa(i), i))
	}
	assert.Equal(t, 100, hm.Len())
	for i, b := range hm.Buckets() {
		for _, e := range b {
			n := hm.BucketCount()
			want := int(int64(int32(chained.XXHash32(e.Key))) % int64(n))
			if want < 0 {
				want = -want
			}
			require.Equal(t, want, i, "%s is not placed by xxhash32", e.Key)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Load(fs, "missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "conf.toml", []byte("x = 1"), 0644))
	_, err = Load(fs, "conf.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestValidate(t *testing.T) {
	conf := Default()
	conf.Table.Hash = "md5"
	conf.Table.ShrinkAt = 0.7
	conf.Log.Level = "loud"

	err := conf.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.ErrorIs(t, err, ErrUnknownHash)
	assert.ErrorIs(t, err, ErrBadThresholds)
}

func TestCheckClamps(t *testing.T) {
	conf := (&Config{
		Table: TableConfig{Buckets: 1, GrowAt: 100, Shards: -4},
		Log:   LogConfig{MaxBackups: 1000},
	}).Check()
	assert.Equal(t, 3, conf.Table.Buckets)
	assert.Equal(t, maxGrowAt, conf.Table.GrowAt)
	assert.Equal(t, 0.2, conf.Table.ShrinkAt)
	assert.Equal(t, 0, conf.Table.Shards)
	assert.Equal(t, maxMaxBackups, conf.Log.MaxBackups)
	assert.Contains(t, conf.Table.String(), "Hash: fnv1a")
}

func TestOptions(t *testing.T) {
	conf := Default()
	conf.Table.Buckets = 8
	hm := chained.New[int](conf.Table.Options(zap.NewNop())...)
	assert.Equal(t, 8, hm.BucketCount())
	for i := 0; i < 7; i++ {
		require.NoError(t, hm.Put(strconv.Itoa(i), i))
	}
	// 7/8 is above the 0.8 default grow threshold
	assert.Equal(t, 16, hm.BucketCount())
}
