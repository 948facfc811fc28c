package qos

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sonic-net/qosgen/qos/trace"
)

// OverrideGate selects when a register-reported shared limit may replace the
// computed shared buffer.
type OverrideGate string

const (
	// OverrideAlways applies any disagreeing register value.
	OverrideAlways OverrideGate = "always"
	// OverrideDualTor applies it only to dual-ToR runs on td2/td3.
	OverrideDualTor OverrideGate = "dualtor"
)

var validOverrideGates = map[OverrideGate]bool{
	OverrideAlways:  true,
	OverrideDualTor: true,
	"":              true, // empty defaults to always
}

// IsValidOverrideGate returns true if the given name is a recognized override gate.
func IsValidOverrideGate(name string) bool {
	return validOverrideGates[OverrideGate(name)]
}

// Topology describes the testbed the thresholds are generated for.
type Topology struct {
	DualTor             bool
	DutTopo             string // e.g. "t0", "t1"
	TestbedTopologyName string // e.g. "vms-kvm-dual-t0"
}

// Input is everything one calculation consumes. Generate never modifies it.
type Input struct {
	Params       *ParamSet
	BufferConfig *BufferConfig
	AsicConfig   *AsicConfig // optional
	Asic         string      // ASIC family, e.g. "td3"
	Scenario     string      // target key, e.g. "100000_5m"
	// IngressLosslessProfile names the BUFFER_PROFILE entry of the lossless PG
	// under test. Empty means "pg_lossless_<speed>_<length>m_profile".
	IngressLosslessProfile string
	Topology               Topology
}

// Options carries the optional observability sinks and policy knobs.
type Options struct {
	Logger       logrus.FieldLogger      // nil discards log output
	Trace        *trace.CalculationTrace // nil disables tracing
	OverrideGate OverrideGate            // empty means OverrideAlways
}

// Calculation summarizes the intermediate cell quantities of a run.
type Calculation struct {
	CellSizeBytes        int64
	SharedBufferCells    int64 // computed by the family strategy
	EffectiveSharedCells int64 // SharedBufferCells or the register override
	Alpha                int64
	Watermarks           Watermarks
}

// Result is the output of Generate.
type Result struct {
	Params      *ParamSet // new parameter set; shares nothing with Input.Params
	Calculation Calculation
	Updates     []trace.UpdateRecord
	Skips       []trace.SkipRecord
	Override    *trace.OverrideRecord // nil when no register value was supplied
}

// Generate computes the expected watermarks of in.Scenario and returns a new
// parameter set with that scenario fully populated.
func Generate(in Input, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	gate := opts.OverrideGate
	if gate == "" {
		gate = OverrideAlways
	}
	if !IsValidOverrideGate(string(gate)) {
		return nil, fmt.Errorf("%q: %w", gate, ErrUnknownOverrideGate)
	}
	if in.Params == nil || in.BufferConfig == nil {
		return nil, fmt.Errorf("qos params and buffer config: %w", ErrMissingInput)
	}
	if NewFamilyStrategyFunc == nil {
		return nil, fmt.Errorf("import qos/asic: %w", ErrNoFamilyStrategies)
	}
	strategy, err := NewFamilyStrategyFunc(in.Asic)
	if err != nil {
		return nil, err
	}
	target, err := ParseScenarioKey(in.Scenario)
	if err != nil {
		return nil, err
	}

	params := in.Params.Clone()
	updates, err := PrepareDefaults(params, target, log, opts.Trace)
	if err != nil {
		return nil, err
	}

	pool, ok := in.BufferConfig.Pools[IngressLosslessPool]
	if !ok {
		return nil, fmt.Errorf("BUFFER_POOL|%s: %w", IngressLosslessPool, ErrMissingPool)
	}
	if pool.Mode != PoolModeDynamic {
		return nil, fmt.Errorf("BUFFER_POOL|%s mode %q: %w", IngressLosslessPool, pool.Mode, ErrUnsupportedPoolMode)
	}
	profileName := in.IngressLosslessProfile
	if profileName == "" {
		profileName = fmt.Sprintf("pg_lossless_%d_%dm_profile", target.Speed, target.CableLength)
	}
	profile, ok := in.BufferConfig.Profiles[profileName]
	if !ok {
		return nil, fmt.Errorf("BUFFER_PROFILE|%s: %w", profileName, ErrMissingProfileReference)
	}
	if profile.Xoff == nil || profile.XonOffset == nil {
		return nil, fmt.Errorf("BUFFER_PROFILE|%s needs xoff and xon_offset: %w", profileName, ErrIncompleteProfile)
	}
	alpha, err := ResolveAlpha(profile, pool)
	if err != nil {
		return nil, fmt.Errorf("BUFFER_PROFILE|%s: %w", profileName, err)
	}

	asicProfile := strategy.Profile()
	q, err := NewQuantizer(asicProfile.CellSizeBytes)
	if err != nil {
		return nil, err
	}
	acct, err := strategy.SharedBufferCells(in.BufferConfig, pool, q)
	if err != nil {
		return nil, err
	}
	opts.Trace.RecordTerms(acct.Terms...)
	for _, s := range acct.Skips {
		opts.Trace.RecordSkip(s)
		log.Warnf("skip %s|%s (profile %q): %s", s.Table, s.Key, s.Profile, s.Reason)
	}
	for _, t := range acct.Terms {
		log.Debugf("shared_buffer term %s: %d bytes x %d = %d cells", t.Label, t.Bytes, t.Multiplier, t.Cells)
	}
	effective := acct.Cells
	override := registerOverride(in, asicProfile.Family, acct.Cells, gate)
	if override != nil {
		opts.Trace.RecordOverride(*override)
		if override.Applied {
			effective = override.Register
			log.Warnf("shared_limit_sp0 register (%d cells) overrides computed shared buffer (%d cells)",
				override.Register, override.Computed)
		} else if override.Register != override.Computed {
			log.Warnf("shared_limit_sp0 register (%d cells) disagrees with computed shared buffer (%d cells), not applied: %s",
				override.Register, override.Computed, override.Reason)
		}
	}
	if effective < 0 {
		return nil, fmt.Errorf("%s shared buffer is %d cells: %w", asicProfile.Family, acct.Cells, ErrBufferOvercommitted)
	}

	sizeCells, err := q.BytesToCells(int64(profile.Size))
	if err != nil {
		return nil, err
	}
	headroom, err := q.BytesToCells(int64(*profile.Xoff))
	if err != nil {
		return nil, err
	}
	resetOffset, err := q.BytesToCells(int64(*profile.XonOffset))
	if err != nil {
		return nil, err
	}
	w := Watermarks{
		PgMinCells:         strategy.PgMinCells(sizeCells, resetOffset),
		HeadroomCells:      headroom,
		PgResetOffsetCells: resetOffset,
		DynamicPool:        pool.Mode == PoolModeDynamic,
	}
	if w.AvailableSharedCells, err = PoolAvailableSharedBuffer(pool, effective, alpha); err != nil {
		return nil, err
	}
	log.Infof("calculation result: pg_min_cells %d, available_shared_buffer_cells %d, shared_buffer_cells(calc) %d, shared_buffer_cells(effective) %d, headroom_cells %d, pg_reset_offset_cells %d",
		w.PgMinCells, w.AvailableSharedCells, acct.Cells, effective, w.HeadroomCells, w.PgResetOffsetCells)

	assembled, err := Assemble(params.Scenarios[target.Raw], target.Raw, w, log, opts.Trace)
	if err != nil {
		return nil, err
	}
	return &Result{
		Params: params,
		Calculation: Calculation{
			CellSizeBytes:        asicProfile.CellSizeBytes,
			SharedBufferCells:    acct.Cells,
			EffectiveSharedCells: effective,
			Alpha:                alpha,
			Watermarks:           w,
		},
		Updates:  append(updates, assembled...),
		Skips:    acct.Skips,
		Override: override,
	}, nil
}

// registerOverride decides whether shared_limit_sp0 replaces the computed
// shared buffer. It returns nil when no register value was supplied.
func registerOverride(in Input, family string, computed int64, gate OverrideGate) *trace.OverrideRecord {
	if in.AsicConfig == nil || in.AsicConfig.SharedLimitSP0 == nil {
		return nil
	}
	rec := &trace.OverrideRecord{Computed: computed, Register: *in.AsicConfig.SharedLimitSP0}
	switch {
	case rec.Register == rec.Computed:
		rec.Reason = "register matches computed value"
	case *in.AsicConfig.SharedLimitSP0 < 0:
		rec.Reason = "negative register value"
	case gate == OverrideDualTor && !isDualTor(in.Topology):
		rec.Reason = "not a dual-ToR testbed"
	case gate == OverrideDualTor && family != "td2" && family != "td3":
		rec.Reason = fmt.Sprintf("family %s not gated for dual-ToR override", family)
	default:
		rec.Applied = true
		rec.Reason = fmt.Sprintf("override gate %s", gate)
	}
	return rec
}

func isDualTor(t Topology) bool {
	return t.DualTor || strings.Contains(t.TestbedTopologyName, "dualtor") ||
		strings.Contains(t.DutTopo, "dualtor")
}
