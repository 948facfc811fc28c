package qos

import "github.com/sonic-net/qosgen/qos/trace"

// AsicProfile holds the static buffer parameters of one ASIC family.
type AsicProfile struct {
	Family        string // e.g. "td3", "th2"
	CellSizeBytes int64  // bytes per memory cell
	EngineCount   int64  // parallel buffer memory engines (XPEs)
}

// Accounting is the outcome of shared-buffer accounting for the ingress
// lossless pool.
type Accounting struct {
	Cells int64                  // shared buffer cells available to the pool
	Terms []trace.AccountingTerm // derivation of Cells, in evaluation order
	Skips []trace.SkipRecord     // bindings that could not be resolved
}

// FamilyStrategy encapsulates everything that differs between ASIC families.
// Implementations live in qos/asic.
type FamilyStrategy interface {
	// Profile returns the family's static parameters.
	Profile() AsicProfile
	// SharedBufferCells computes the shared buffer of the ingress lossless pool.
	SharedBufferCells(cfg *BufferConfig, pool Pool, q Quantizer) (Accounting, error)
	// PgMinCells derives the PG minimum from the ingress lossless profile's
	// size and reset offset, both already in cells.
	PgMinCells(sizeCells, pgResetOffsetCells int64) int64
}

// NewFamilyStrategyFunc builds the FamilyStrategy for an ASIC family name.
// Set by qos/asic's init(); nil until that package is imported.
var NewFamilyStrategyFunc func(family string) (FamilyStrategy, error)
