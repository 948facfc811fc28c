package qos_test

// Blank import triggers qos/asic's init(), which registers NewFamilyStrategyFunc.
// This allows package qos's internal test files to run Generate without
// directly importing qos/asic (which would create an import cycle).
import _ "github.com/sonic-net/qosgen/qos/asic"
