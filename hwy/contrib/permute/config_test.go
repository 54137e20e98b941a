// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package permute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/megablocks-go/hwy"
	"github.com/ajroetker/megablocks-go/hwy/contrib/workerpool"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigFromEnv(t *testing.T) {
	base := Config{Grain: DefaultGrain, MinParallelElems: DefaultMinParallelElems}

	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{"empty", nil, base},
		{
			"all set",
			map[string]string{
				"PERMUTE_CHUNK_WIDTH":  "128",
				"PERMUTE_GRAIN":        "2",
				"PERMUTE_MIN_PARALLEL": "0",
				"PERMUTE_DEBUG":        "true",
			},
			Config{ChunkWidth: 128, Grain: 2, MinParallelElems: 0, Debug: true},
		},
		{
			"static split",
			map[string]string{"PERMUTE_GRAIN": "0"},
			Config{Grain: 0, MinParallelElems: DefaultMinParallelElems},
		},
		{
			"invalid values are ignored",
			map[string]string{
				"PERMUTE_CHUNK_WIDTH":  "0",
				"PERMUTE_GRAIN":        "many",
				"PERMUTE_MIN_PARALLEL": "-5",
				"PERMUTE_DEBUG":        "maybe",
			},
			base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configFromEnv(envMap(tt.env), base))
		})
	}
}

func TestOptions(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	cfg := newConfig([]Option{
		WithChunkWidth(32),
		WithGrain(8),
		WithMinParallelElems(1),
		WithPool(pool),
		WithDebug(true),
	})
	require.Equal(t, Config{ChunkWidth: 32, Grain: 8, MinParallelElems: 1, Pool: pool, Debug: true}, cfg)

	cfg = newConfig([]Option{WithConfig(Config{Grain: 3})})
	require.Equal(t, Config{Grain: 3}, cfg)

	// Fields without an option keep their process defaults.
	cfg = newConfig([]Option{WithGrain(0)})
	assert.Equal(t, 0, cfg.Grain)
	assert.Equal(t, envDefaults.ChunkWidth, cfg.ChunkWidth)
	assert.Equal(t, envDefaults.MinParallelElems, cfg.MinParallelElems)
	assert.Equal(t, envDefaults.Debug, cfg.Debug)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Same(t, workerpool.Default(), cfg.Pool)
	cfg.Pool = nil
	assert.Equal(t, envDefaults, cfg)
}

func TestChunkWidth(t *testing.T) {
	assert.Equal(t, 7, chunkWidth[float32](Config{ChunkWidth: 7}))
	assert.Equal(t, DefaultChunkRegisters*hwy.MaxLanes[float32](), chunkWidth[float32](Config{}))
	assert.Equal(t, DefaultChunkRegisters*hwy.MaxLanes[int8](), chunkWidth[int8](Config{}))
}
