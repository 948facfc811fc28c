// Package asic provides the Broadcom ASIC parameter table and the
// per-family shared-buffer accounting strategies.
// The FamilyStrategy interface is defined in qos/ (parent package).
// This package provides EngineDivided (Tomahawk: pool split across XPEs) and
// Subtractive (Trident: static allocations carved out of the pool).
package asic

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/sonic-net/qosgen/qos"
)

// Family identifies a Broadcom ASIC family.
type Family string

const (
	TD2 Family = "td2"
	TD3 Family = "td3"
	TH  Family = "th"
	TH2 Family = "th2"
	TH3 Family = "th3"
)

// Accounting names the shared-buffer accounting used by a family.
type Accounting string

const (
	// AccountingEngineDivided splits the pool evenly across parallel engines.
	AccountingEngineDivided Accounting = "engine-divided"
	// AccountingSubtractive subtracts static queue/PG allocations from the pool.
	AccountingSubtractive Accounting = "subtractive"
)

type familyParams struct {
	cellSize    int64
	engineCount int64
	accounting  Accounting
}

var table = map[Family]familyParams{
	TD2: {cellSize: 208, engineCount: 1, accounting: AccountingSubtractive},
	TD3: {cellSize: 256, engineCount: 1, accounting: AccountingSubtractive},
	TH:  {cellSize: 208, engineCount: 4, accounting: AccountingEngineDivided},
	TH2: {cellSize: 208, engineCount: 4, accounting: AccountingEngineDivided},
	TH3: {cellSize: 208, engineCount: 2, accounting: AccountingEngineDivided},
}

// Lookup returns the static parameters of an ASIC family.
func Lookup(family string) (qos.AsicProfile, error) {
	p, ok := table[Family(family)]
	if !ok {
		return qos.AsicProfile{}, fmt.Errorf("%q (known: %v): %w", family, Families(), qos.ErrUnknownAsicFamily)
	}
	return qos.AsicProfile{Family: family, CellSizeBytes: p.cellSize, EngineCount: p.engineCount}, nil
}

// AccountingOf returns the accounting strategy name of a known family.
func AccountingOf(family string) (Accounting, error) {
	p, ok := table[Family(family)]
	if !ok {
		return "", fmt.Errorf("%q: %w", family, qos.ErrUnknownAsicFamily)
	}
	return p.accounting, nil
}

// Families returns the supported family names in sorted order.
func Families() []string {
	names := lo.Map(lo.Keys(table), func(f Family, _ int) string { return string(f) })
	sort.Strings(names)
	return names
}

// NewStrategy builds the FamilyStrategy for an ASIC family.
func NewStrategy(family string) (qos.FamilyStrategy, error) {
	profile, err := Lookup(family)
	if err != nil {
		return nil, err
	}
	switch table[Family(family)].accounting {
	case AccountingEngineDivided:
		return &EngineDivided{profile: profile}, nil
	default:
		// PG min on td2 tracks half the reset offset rather than the profile size.
		return &Subtractive{profile: profile, halfResetPgMin: Family(family) == TD2}, nil
	}
}
