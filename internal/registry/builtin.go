package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kumose/xann/api"
)

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the process-wide registry populated with every built-in
// kernel, building and freezing it on first call (spec §4.4: "Built-in
// population happens once, guarded by a one-shot init"). Safe for
// concurrent use.
func Builtin(logger *zap.Logger) *Registry {
	builtinOnce.Do(func() {
		builtin = New(logger)
		populateBuiltins(builtin)
		builtin.FinishBuild()
	})
	return builtin
}

// populateBuiltins registers the closed set of reference kernels this
// module ships. Each metric's registrations live in their own register_*.go
// file; a dedicated file per metric is the layout wazero uses for its own
// per-feature/per-arch operator tables (e.g. impl_vec_amd64.go,
// impl_threads_amd64.go next to a shared dispatch table).
func populateBuiltins(r *Registry) {
	registerL1(r)
	registerL2(r)
	registerIP(r)
	registerHamming(r)
	registerJaccard(r)
	registerCosine(r)
	registerAngle(r)
	registerNormalizedL2(r)
	registerNormalizedCosine(r)
	registerNormalizedAngle(r)
}

// mustRegister panics on a registration error: the built-in set is fixed at
// compile time, so a failure here is a programmer error in this package,
// not a runtime condition callers can recover from.
func mustRegister(r *Registry, entity api.OperatorEntity) {
	if err := r.Register(entity, false); err != nil {
		panic(err)
	}
}
