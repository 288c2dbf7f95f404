package xann

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/config"
	"github.com/kumose/xann/internal/simdlevel"
)

// defaultBatchSize and defaultMaxElements are the fallbacks StoreConfig
// carries until a caller overrides them; batch_size of 1024 matches the
// typical ANN index shard size this component is meant to sit under.
const (
	defaultBatchSize   = 1024
	defaultMaxElements = 1 << 24
)

// StoreConfig is the construction record for a Store (spec §6). It follows
// wazero's RuntimeConfig convention: immutable, copied on every With* call
// so a config can be built once and reused as a template across stores
// without aliasing bugs.
type StoreConfig struct {
	name        string
	reserved    api.LocalID
	batchSize   int
	maxElements int

	dim         int
	metric      api.Metric
	elementType api.DataType
	simdLevel   api.SimdLevel

	logger     *zap.Logger
	registerer prometheus.Registerer
	thresholds config.RebuildThresholds
}

// NewStoreConfig returns a StoreConfig with the module's defaults: no
// reserved prefix, batch_size 1024, max_elements 2^24, float32 elements,
// the highest SIMD level this process detects, a no-op logger, metrics
// disabled, and the default rebuild thresholds.
func NewStoreConfig() StoreConfig {
	return StoreConfig{
		name:        "store",
		batchSize:   defaultBatchSize,
		maxElements: defaultMaxElements,
		elementType: api.DataTypeFloat32,
		metric:      api.MetricL2,
		simdLevel:   simdlevel.Detect(),
		logger:      zap.NewNop(),
		thresholds:  config.DefaultRebuildThresholds(),
	}
}

func (c StoreConfig) clone() StoreConfig { return c }

// WithName sets the store's name, used only in log fields and metrics
// labels.
func (c StoreConfig) WithName(name string) StoreConfig {
	ret := c.clone()
	ret.name = name
	return ret
}

// WithReserved sets the initial reserved_id, which doubles as the minimum
// next_id (spec §6).
func (c StoreConfig) WithReserved(reserved api.LocalID) StoreConfig {
	ret := c.clone()
	ret.reserved = reserved
	return ret
}

// WithBatchSize sets the number of vector slots per materialized batch.
func (c StoreConfig) WithBatchSize(n int) StoreConfig {
	ret := c.clone()
	ret.batchSize = n
	return ret
}

// WithMaxElements sets the upper bound on lid, beyond which add fails with
// OutOfRange.
func (c StoreConfig) WithMaxElements(n int) StoreConfig {
	ret := c.clone()
	ret.maxElements = n
	return ret
}

// WithDim sets the vector dimensionality.
func (c StoreConfig) WithDim(dim int) StoreConfig {
	ret := c.clone()
	ret.dim = dim
	return ret
}

// WithMetric selects the distance metric the store's operator entity is
// resolved for.
func (c StoreConfig) WithMetric(m api.Metric) StoreConfig {
	ret := c.clone()
	ret.metric = m
	return ret
}

// WithElementType selects the vector element type.
func (c StoreConfig) WithElementType(dt api.DataType) StoreConfig {
	ret := c.clone()
	ret.elementType = dt
	return ret
}

// WithSimdLevel pins the requested fast-path SIMD level instead of letting
// NewStoreConfig auto-detect one.
func (c StoreConfig) WithSimdLevel(s api.SimdLevel) StoreConfig {
	ret := c.clone()
	ret.simdLevel = s
	return ret
}

// WithLogger attaches a zap logger for the store and its collaborators.
func (c StoreConfig) WithLogger(l *zap.Logger) StoreConfig {
	ret := c.clone()
	ret.logger = l
	return ret
}

// WithMetricsRegisterer enables the hole-ratio/zombie-ratio gauges,
// registering them against reg.
func (c StoreConfig) WithMetricsRegisterer(reg prometheus.Registerer) StoreConfig {
	ret := c.clone()
	ret.registerer = reg
	return ret
}

// WithRebuildThresholds overrides the advisory hole/zombie ratio
// thresholds surfaced through IsRebuildAdvised.
func (c StoreConfig) WithRebuildThresholds(t config.RebuildThresholds) StoreConfig {
	ret := c.clone()
	ret.thresholds = t
	return ret
}

func (c StoreConfig) validate() error {
	if c.dim <= 0 {
		return api.NewError("NewStore", api.KindInvalidArgument, "dim must be positive")
	}
	if c.batchSize <= 0 {
		return api.NewError("NewStore", api.KindInvalidArgument, "batch_size must be positive")
	}
	if c.maxElements <= 0 {
		return api.NewError("NewStore", api.KindInvalidArgument, "max_elements must be positive")
	}
	if int(c.reserved) > c.maxElements {
		return api.NewError("NewStore", api.KindInvalidArgument, "reserved exceeds max_elements")
	}
	return c.thresholds.Validate()
}
