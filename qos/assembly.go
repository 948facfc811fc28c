package qos

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/sonic-net/qosgen/qos/trace"
)

// Watermarks holds the cell quantities assembled into sub-profiles.
type Watermarks struct {
	PgMinCells           int64 // guaranteed PG minimum
	AvailableSharedCells int64 // shared buffer a single PG may still claim
	HeadroomCells        int64 // ingress lossless profile xoff
	PgResetOffsetCells   int64 // ingress lossless profile xon_offset
	DynamicPool          bool  // ingress lossless pool is in dynamic mode
}

// TrigPfc is the number of packets that triggers PFC.
func (w Watermarks) TrigPfc() int64 {
	return w.PgMinCells + w.AvailableSharedCells
}

// assembler writes fields into one scenario, recording every change.
type assembler struct {
	scenario string
	log      logrus.FieldLogger
	trace    *trace.CalculationTrace
	updates  []trace.UpdateRecord
}

// Assemble writes the expected watermarks into the xoff, xon and headroom
// pool sub-profiles of sc. Fields already holding the computed value are
// left alone, so assembling twice yields no updates the second time.
func Assemble(sc *Scenario, scenario string, w Watermarks, log logrus.FieldLogger, ct *trace.CalculationTrace) ([]trace.UpdateRecord, error) {
	a := &assembler{scenario: scenario, log: log, trace: ct}

	for _, name := range xoffProfiles {
		t := sc.Profiles[name]
		if t == nil {
			return nil, fmt.Errorf("qos_params[%s][%s]: %w", scenario, name, ErrMissingSubProfile)
		}
		a.setInt(name, "pkts_num_trig_pfc", &t.PktsNumTrigPfc, w.TrigPfc())
		a.setInt(name, "pkts_num_trig_ingr_drp", &t.PktsNumTrigIngrDrp, w.TrigPfc()+w.HeadroomCells)
	}

	for _, name := range xonProfiles {
		t := sc.Profiles[name]
		if t == nil {
			return nil, fmt.Errorf("qos_params[%s][%s]: %w", scenario, name, ErrMissingSubProfile)
		}
		a.setInt(name, "pkts_num_trig_pfc", &t.PktsNumTrigPfc, w.TrigPfc())
		a.setInt(name, "pkts_num_dismiss_pfc", &t.PktsNumDismissPfc, w.PgResetOffsetCells)
	}

	if t := sc.Profiles[ProfileHdrmPoolSize]; t != nil {
		a.setInt(ProfileHdrmPoolSize, "pkts_num_trig_pfc", &t.PktsNumTrigPfc, w.TrigPfc())
		a.setInt(ProfileHdrmPoolSize, "pkts_num_hdrm_full", &t.PktsNumHdrmFull, w.HeadroomCells)
		margin := DefaultMargin
		if t.Margin != nil && *t.Margin > margin {
			margin = *t.Margin
		}
		a.setInt(ProfileHdrmPoolSize, "margin", &t.Margin, margin)
		partial := w.HeadroomCells - margin
		a.setInt(ProfileHdrmPoolSize, "pkts_num_hdrm_partial", &t.PktsNumHdrmPartial, partial)
		if partial < 0 {
			a.trace.RecordWarning(trace.WarningRecord{Scenario: scenario, Profile: ProfileHdrmPoolSize,
				Field: "pkts_num_hdrm_partial", Value: partial, Message: "headroom is smaller than the margin"})
			a.log.Warnf("qos_params[%s][%s][\"pkts_num_hdrm_partial\"] is %d: headroom %d cells is smaller than margin %d",
				scenario, ProfileHdrmPoolSize, partial, w.HeadroomCells, margin)
		}
		if w.DynamicPool {
			a.setBool(ProfileHdrmPoolSize, "dynamic_threshold", &t.DynamicThreshold, true)
		}
	}
	return a.updates, nil
}

func (a *assembler) setInt(profile, field string, dst **int64, v int64) {
	if *dst != nil && **dst == v {
		return
	}
	a.record(profile, field, formatInt(*dst), strconv.FormatInt(v, 10))
	*dst = int64Ptr(v)
}

func (a *assembler) setBool(profile, field string, dst **bool, v bool) {
	if *dst != nil && **dst == v {
		return
	}
	from := ""
	if *dst != nil {
		from = strconv.FormatBool(**dst)
	}
	a.record(profile, field, from, strconv.FormatBool(v))
	*dst = &v
}

func (a *assembler) record(profile, field, from, to string) {
	u := trace.UpdateRecord{Scenario: a.scenario, Profile: profile, Field: field, From: from, To: to}
	a.updates = append(a.updates, u)
	a.trace.RecordUpdate(u)
	if from == "" {
		from = "<unset>"
	}
	a.log.Infof("update qos_params[%s][%s][%q] from %s to %s", a.scenario, profile, field, from, to)
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func int64Ptr(v int64) *int64 { return &v }
