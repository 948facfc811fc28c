// Package trace provides calculation-trace recording for watermark generation.
// This package has no dependencies on qos/ or qos/asic/; it stores pure data types.
package trace

// AccountingTerm captures one term of the shared-buffer derivation.
// Cells is signed: positive terms add to the pool, negative terms are
// static allocations carved out of it.
type AccountingTerm struct {
	Label      string // e.g. "ingress_lossless_pool.size", "BUFFER_QUEUE|Ethernet0|3-4"
	Profile    string // bound profile name, empty for pool terms
	Bytes      int64  // per-unit byte size before quantization
	Multiplier int64  // number of queue/PG indices covered (1 for pool terms)
	Cells      int64  // signed contribution in cells
}

// SkipRecord captures a binding excluded from accounting.
type SkipRecord struct {
	Table   string // "BUFFER_QUEUE" or "BUFFER_PG"
	Key     string // binding key, e.g. "Ethernet0|3-4"
	Profile string // referenced profile name (may be empty)
	Reason  string
}

// ReferenceRecord captures the choice of a default scenario.
type ReferenceRecord struct {
	Target     string
	Reference  string
	Equivalent bool // reference parses to the same speed/length as Target
}

// CloneRecord captures one sub-profile copied into the target scenario.
type CloneRecord struct {
	Scenario string
	Profile  string
	Source   string // "qos_params[xon_1]" or "qos_params[100000_40m][xon_1]"
}

// OverrideRecord captures a register-reported shared limit compared against
// the computed shared buffer.
type OverrideRecord struct {
	Computed int64
	Register int64
	Applied  bool
	Reason   string
}

// UpdateRecord captures one watermark field written into a sub-profile.
// From is empty when the field was previously unset.
type UpdateRecord struct {
	Scenario string
	Profile  string
	Field    string
	From     string
	To       string
}

// WarningRecord captures a written value that breaks a watermark invariant
// but is kept as computed.
type WarningRecord struct {
	Scenario string
	Profile  string
	Field    string
	Value    int64
	Message  string
}
