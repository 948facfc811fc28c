package asic

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/sonic-net/qosgen/qos"
	"github.com/sonic-net/qosgen/qos/trace"
)

var pgLosslessProfileRe = regexp.MustCompile(`pg_lossless_(.*)_profile`)

// Subtractive accounts shared buffer for single-engine families:
//
//	shared = ingress_lossless_pool.size
//	       - ingress_lossless_pool.xoff
//	       - sum(egress profile size * queues bound to it)
//	       - sum(pg_lossless profile size * PGs bound to it)
type Subtractive struct {
	profile        qos.AsicProfile
	halfResetPgMin bool
}

func (s *Subtractive) Profile() qos.AsicProfile {
	return s.profile
}

// PgMinCells is the profile size, except on families where the hardware
// guarantees half the reset offset instead.
func (s *Subtractive) PgMinCells(sizeCells, pgResetOffsetCells int64) int64 {
	if s.halfResetPgMin {
		return pgResetOffsetCells / 2
	}
	return sizeCells
}

func (s *Subtractive) SharedBufferCells(cfg *qos.BufferConfig, pool qos.Pool, q qos.Quantizer) (qos.Accounting, error) {
	var acct qos.Accounting

	poolCells, err := q.BytesToCells(int64(pool.Size))
	if err != nil {
		return qos.Accounting{}, fmt.Errorf("%s.size: %w", qos.IngressLosslessPool, err)
	}
	acct.Terms = append(acct.Terms, trace.AccountingTerm{
		Label: qos.IngressLosslessPool + ".size", Bytes: int64(pool.Size), Multiplier: 1, Cells: poolCells,
	})
	var xoff int64
	if pool.Xoff != nil {
		xoff = int64(*pool.Xoff)
	}
	xoffCells, err := q.BytesToCells(xoff)
	if err != nil {
		return qos.Accounting{}, fmt.Errorf("%s.xoff: %w", qos.IngressLosslessPool, err)
	}
	acct.Terms = append(acct.Terms, trace.AccountingTerm{
		Label: qos.IngressLosslessPool + ".xoff", Bytes: xoff, Multiplier: 1, Cells: -xoffCells,
	})
	acct.Cells = poolCells - xoffCells

	if err := s.subtractBindings(&acct, "BUFFER_QUEUE", cfg.Queues, cfg.Profiles, isEgressProfile, q); err != nil {
		return qos.Accounting{}, err
	}
	if err := s.subtractBindings(&acct, "BUFFER_PG", cfg.PGs, cfg.Profiles, isLosslessPgProfile, q); err != nil {
		return qos.Accounting{}, err
	}
	return acct, nil
}

// subtractBindings removes size * width cells for every binding in table
// whose profile satisfies match. Bindings with an unrecognised key shape or
// an unknown profile are skipped and reported; bindings to other profile
// kinds (e.g. lossy PGs) do not take part in accounting.
func (s *Subtractive) subtractBindings(acct *qos.Accounting, table string, bindings map[string]qos.Binding,
	profiles map[string]qos.Profile, match func(string) bool, q qos.Quantizer) error {
	keys := lo.Keys(bindings)
	sort.Strings(keys)
	for _, key := range keys {
		name := qos.ProfileName(bindings[key].Profile)
		r, ok := qos.ParseBindingKey(key)
		if !ok {
			acct.Skips = append(acct.Skips, trace.SkipRecord{Table: table, Key: key, Profile: name,
				Reason: "unrecognized binding key"})
			continue
		}
		profile, ok := profiles[name]
		if !ok {
			acct.Skips = append(acct.Skips, trace.SkipRecord{Table: table, Key: key, Profile: name,
				Reason: qos.ErrMissingProfileReference.Error()})
			continue
		}
		if !match(name) {
			continue
		}
		cells, err := q.BytesToCells(int64(profile.Size))
		if err != nil {
			return fmt.Errorf("%s|%s profile %s: %w", table, key, name, err)
		}
		acct.Cells -= cells * r.Width()
		acct.Terms = append(acct.Terms, trace.AccountingTerm{
			Label:      table + "|" + key,
			Profile:    name,
			Bytes:      int64(profile.Size),
			Multiplier: r.Width(),
			Cells:      -cells * r.Width(),
		})
	}
	return nil
}

func isEgressProfile(name string) bool {
	return strings.HasPrefix(name, "egress_lossless") || strings.HasPrefix(name, "egress_lossy")
}

func isLosslessPgProfile(name string) bool {
	return pgLosslessProfileRe.MatchString(name)
}
