// Package qos computes expected lossless buffer watermarks for Broadcom-family
// switch ASICs.
//
// # Reading Guide
//
// Start with these files to follow one calculation end to end:
//   - engine.go: Generate, the single entry point (defaults → accounting → solver → assembly)
//   - defaults.go: cloning a missing speed/cable-length scenario from its nearest neighbor
//   - threshold.go: the dynamic-threshold (alpha) solver
//   - assembly.go: writing trig/drop/dismiss/headroom watermarks into sub-profiles
//
// # Architecture
//
// The qos package defines the data model and the FamilyStrategy interface; the
// per-family accounting lives in sub-packages:
//   - qos/asic/: ASIC parameter table plus the multi-engine and subtractive strategies
//   - qos/trace/: calculation trace records (accounting terms, skips, overrides, updates)
//
// qos/asic registers itself via init() by setting NewFamilyStrategyFunc, so
// production code must import it (the CLI does) before calling Generate.
//
// All quantities flowing through the engine are whole memory cells. Bytes are
// converted once, by Quantizer, with ceiling division.
package qos
