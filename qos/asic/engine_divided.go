package asic

import (
	"fmt"

	"github.com/sonic-net/qosgen/qos"
	"github.com/sonic-net/qosgen/qos/trace"
)

// EngineDivided accounts shared buffer for families whose pool is split
// evenly across parallel memory engines (XPEs). Leftover cells that do not
// divide evenly belong to no engine and are dropped.
type EngineDivided struct {
	profile qos.AsicProfile
}

func (s *EngineDivided) Profile() qos.AsicProfile {
	return s.profile
}

func (s *EngineDivided) SharedBufferCells(_ *qos.BufferConfig, pool qos.Pool, q qos.Quantizer) (qos.Accounting, error) {
	if s.profile.EngineCount <= 0 {
		return qos.Accounting{}, fmt.Errorf("%s: engine count must be > 0, got %d", s.profile.Family, s.profile.EngineCount)
	}
	poolCells, err := q.BytesToCells(int64(pool.Size))
	if err != nil {
		return qos.Accounting{}, fmt.Errorf("%s.size: %w", qos.IngressLosslessPool, err)
	}
	cells := poolCells / s.profile.EngineCount
	return qos.Accounting{
		Cells: cells,
		Terms: []trace.AccountingTerm{{
			Label:      qos.IngressLosslessPool + ".size/xpe_count",
			Bytes:      int64(pool.Size),
			Multiplier: 1,
			Cells:      cells,
		}},
	}, nil
}

func (s *EngineDivided) PgMinCells(sizeCells, _ int64) int64 {
	return sizeCells
}
