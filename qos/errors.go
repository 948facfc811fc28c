package qos

import "errors"

var (
	// ErrInsufficientReferenceData means fewer than two speed/cable-length
	// scenarios exist, so no neighbor can be chosen as a default.
	ErrInsufficientReferenceData = errors.New("insufficient reference scenarios")
	// ErrUnknownAsicFamily means the ASIC family string is not in the parameter table.
	ErrUnknownAsicFamily = errors.New("unknown asic family")
	// ErrUnsupportedPoolMode is returned for pools not in dynamic mode.
	ErrUnsupportedPoolMode = errors.New("unsupported buffer pool mode")
	// ErrInvalidSize is returned when a negative byte quantity is quantized.
	ErrInvalidSize = errors.New("invalid size")
	// ErrMissingProfileReference means a binding or input names a profile absent
	// from BUFFER_PROFILE.
	ErrMissingProfileReference = errors.New("missing buffer profile reference")
	// ErrMissingPool means the ingress lossless pool is absent from BUFFER_POOL.
	ErrMissingPool = errors.New("missing buffer pool")
	// ErrIncompleteProfile means a required profile field (xoff, xon_offset) is unset.
	ErrIncompleteProfile = errors.New("incomplete buffer profile")
	// ErrMissingSubProfile means an xoff/xon sub-profile is absent and has no clone source.
	ErrMissingSubProfile = errors.New("missing sub-profile")
	// ErrInvalidDynamicThreshold means alpha is unset or outside [-62, 62].
	ErrInvalidDynamicThreshold = errors.New("invalid dynamic threshold")
	// ErrBufferOvercommitted means static allocations exceed the shared pool.
	ErrBufferOvercommitted = errors.New("buffer pool overcommitted")
	// ErrInvalidScenarioKey means a scenario key is not of the form "<speed>_<length>m".
	ErrInvalidScenarioKey = errors.New("invalid scenario key")
	// ErrMissingInput means Generate was called without params or buffer config.
	ErrMissingInput = errors.New("missing required input")
	// ErrNoFamilyStrategies means no package has set NewFamilyStrategyFunc.
	ErrNoFamilyStrategies = errors.New("no asic family strategies registered")
	// ErrUnknownOverrideGate means the override gate name is not recognized.
	ErrUnknownOverrideGate = errors.New("unknown override gate")
)
