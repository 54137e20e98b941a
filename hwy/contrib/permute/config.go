// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package permute

import (
	"os"
	"strconv"

	"k8s.io/klog/v2"

	"github.com/ajroetker/megablocks-go/hwy"
	"github.com/ajroetker/megablocks-go/hwy/contrib/workerpool"
)

// Parallel tuning parameters. None of them affect results.
const (
	// DefaultChunkRegisters is the default copy chunk, in SIMD registers of
	// the current width. Four registers match a 4x unrolled load/store loop.
	DefaultChunkRegisters = 4

	// DefaultGrain is the number of rows a worker grabs per atomic
	// operation in ParallelForAtomicBatched.
	DefaultGrain = 4

	// DefaultMinParallelElems is the minimum number of moved elements
	// (rows*cols) before dispatching to the worker pool. Row copies are
	// memory bound, so below this the dispatch overhead dominates.
	DefaultMinParallelElems = 16384
)

// Config holds the performance knobs of a gather or scatter call.
type Config struct {
	// ChunkWidth is the number of elements copied per chunk of a row.
	// 0 selects DefaultChunkRegisters registers of the element type.
	ChunkWidth int

	// Grain is the number of rows per work-stealing batch. 0 gives each
	// worker one contiguous range of rows.
	Grain int

	// MinParallelElems is the smallest rows*cols problem sent to the pool.
	MinParallelElems int

	// Pool runs the row tasks. nil runs them on the calling goroutine.
	Pool *workerpool.Pool

	// Debug runs Metadata.Check before every call.
	Debug bool
}

// Option modifies a Config.
type Option func(*Config)

// WithChunkWidth sets the number of elements copied per chunk.
func WithChunkWidth(n int) Option {
	return func(c *Config) { c.ChunkWidth = n }
}

// WithGrain sets the number of rows per work-stealing batch. Use 0 for a
// static split into one contiguous range per worker.
func WithGrain(n int) Option {
	return func(c *Config) { c.Grain = n }
}

// WithMinParallelElems sets the parallel dispatch threshold. Use 0 to always
// dispatch to the pool.
func WithMinParallelElems(n int) Option {
	return func(c *Config) { c.MinParallelElems = n }
}

// WithPool runs row tasks on pool. A nil pool runs them sequentially.
func WithPool(pool *workerpool.Pool) Option {
	return func(c *Config) { c.Pool = pool }
}

// WithDebug enables or disables metadata validation before dispatch.
func WithDebug(enabled bool) Option {
	return func(c *Config) { c.Debug = enabled }
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// envDefaults holds the process defaults, read once from the environment.
var envDefaults = Config{
	Grain:            DefaultGrain,
	MinParallelElems: DefaultMinParallelElems,
}

func init() {
	envDefaults = configFromEnv(os.Getenv, envDefaults)
}

// configFromEnv overrides fields of base from PERMUTE_* variables.
// Invalid values are logged and ignored.
func configFromEnv(getenv func(string) string, base Config) Config {
	intVar := func(name string, dst *int, minValue int) {
		val := getenv(name)
		if val == "" {
			return
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < minValue {
			klog.Warningf("permute: ignoring %s=%q: want an integer >= %d", name, val, minValue)
			return
		}
		*dst = n
	}
	intVar("PERMUTE_CHUNK_WIDTH", &base.ChunkWidth, 1)
	intVar("PERMUTE_GRAIN", &base.Grain, 0)
	intVar("PERMUTE_MIN_PARALLEL", &base.MinParallelElems, 0)

	if val := getenv("PERMUTE_DEBUG"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			klog.Warningf("permute: ignoring PERMUTE_DEBUG=%q: %v", val, err)
		} else {
			base.Debug = b
		}
	}
	return base
}

// DefaultConfig returns the process defaults: environment overrides on top
// of the Default* constants, running on workerpool.Default().
func DefaultConfig() Config {
	cfg := envDefaults
	cfg.Pool = workerpool.Default()
	return cfg
}

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// chunkWidth resolves the chunk width for element type T.
func chunkWidth[T hwy.Lanes](cfg Config) int {
	if cfg.ChunkWidth > 0 {
		return cfg.ChunkWidth
	}
	return DefaultChunkRegisters * hwy.MaxLanes[T]()
}
