// Package registry implements the operator registry (spec §4.4): a dense
// three-dimensional table indexed by (metric, data type, SIMD level) that
// resolves to an api.OperatorEntity. It is populated once at process init
// by the closed set of built-in kernels (see builtin.go and the per-metric
// register_*.go files) and frozen before any vector space is constructed.
package registry

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kumose/xann/api"
)

// Registry is the (metric x dtype x simd) dispatch table. Build one with
// New; the zero value has a nil logger, so Register and FinishBuild on it
// panic.
type Registry struct {
	mu     sync.RWMutex
	frozen bool
	cells  [metricCount][dataTypeCount][simdLevelCount]api.OperatorEntity
	logger *zap.Logger
}

const (
	metricCount    = 10 // len of the closed api.Metric set
	dataTypeCount  = 3  // len of the closed api.DataType set
	simdLevelCount = 5  // len of the closed api.SimdLevel set
)

// New builds an empty, unfrozen Registry.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger}
}

// Register installs entity at (entity.Metric, entity.DataType,
// entity.SimdLevel). Fails with KindFailedPrecondition if the registry is
// frozen, KindAlreadyExists if the cell is populated and replace is false,
// KindInvalidArgument if any axis is out of the closed enum range.
func (r *Registry) Register(entity api.OperatorEntity, replace bool) error {
	if !entity.Metric.Valid() || !entity.DataType.Valid() || !entity.SimdLevel.Valid() {
		return api.NewError("Register", api.KindInvalidArgument,
			fmt.Sprintf("metric=%v dtype=%v simd=%v", entity.Metric, entity.DataType, entity.SimdLevel))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return api.NewError("Register", api.KindFailedPrecondition,
			fmt.Sprintf("metric=%v dtype=%v simd=%v", entity.Metric, entity.DataType, entity.SimdLevel))
	}

	cell := &r.cells[entity.Metric][entity.DataType][entity.SimdLevel]
	if cell.Supports && !replace {
		return api.NewError("Register", api.KindAlreadyExists,
			fmt.Sprintf("metric=%v dtype=%v simd=%v", entity.Metric, entity.DataType, entity.SimdLevel))
	}

	entity.Supports = true
	*cell = entity
	r.logger.Debug("operator registered",
		zap.Stringer("metric", entity.Metric), zap.Stringer("dtype", entity.DataType), zap.Stringer("simd", entity.SimdLevel))
	return nil
}

// Lookup resolves the entity for (metric, dtype, simd). Fails with
// KindNotFound if the cell was never registered, or KindUnavailable if any
// axis is out of range (mirroring spec §4.4's "returns NotFound/Unavailable
// if any axis is unpopulated").
func (r *Registry) Lookup(metric api.Metric, dtype api.DataType, simd api.SimdLevel) (api.OperatorEntity, error) {
	if !metric.Valid() || !dtype.Valid() || !simd.Valid() {
		return api.OperatorEntity{}, api.NewError("Lookup", api.KindUnavailable,
			fmt.Sprintf("metric=%v dtype=%v simd=%v", metric, dtype, simd))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cell := r.cells[metric][dtype][simd]
	if !cell.Supports {
		return api.OperatorEntity{}, api.NewError("Lookup", api.KindNotFound,
			fmt.Sprintf("metric=%v dtype=%v simd=%v", metric, dtype, simd))
	}
	return cell, nil
}

// FinishBuild freezes the registry; subsequent Register calls fail.
func (r *Registry) FinishBuild() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
	r.logger.Info("operator registry frozen")
}

// Frozen reports whether FinishBuild has run.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
