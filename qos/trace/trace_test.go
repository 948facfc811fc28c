package trace

import (
	"testing"
)

func TestCalculationTrace_RecordUpdate_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	ct := NewCalculationTrace(TraceLevelDecisions)

	// WHEN an update record is recorded
	ct.RecordUpdate(UpdateRecord{Scenario: "100000_5m", Profile: "xoff_1", Field: "pkts_num_trig_pfc", To: "3185"})

	// THEN the trace contains one update record with correct data
	if len(ct.Updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(ct.Updates))
	}
	if ct.Updates[0].To != "3185" {
		t.Errorf("expected To 3185, got %s", ct.Updates[0].To)
	}
}

func TestCalculationTrace_TermsOnlyAtTermsLevel(t *testing.T) {
	term := AccountingTerm{Label: "ingress_lossless_pool.size", Bytes: 8388608, Multiplier: 1, Cells: 32768}

	decisions := NewCalculationTrace(TraceLevelDecisions)
	decisions.RecordTerms(term)
	if len(decisions.Terms) != 0 {
		t.Errorf("expected no terms at decisions level, got %d", len(decisions.Terms))
	}

	terms := NewCalculationTrace(TraceLevelTerms)
	terms.RecordTerms(term, term)
	if len(terms.Terms) != 2 {
		t.Errorf("expected 2 terms, got %d", len(terms.Terms))
	}
}

func TestCalculationTrace_NilAndNoneAreSilent(t *testing.T) {
	// GIVEN a nil trace and a none-level trace
	var nilTrace *CalculationTrace
	none := NewCalculationTrace(TraceLevelNone)

	// WHEN records are added
	for _, ct := range []*CalculationTrace{nilTrace, none} {
		ct.RecordSkip(SkipRecord{Table: "BUFFER_PG", Key: "Ethernet0|3"})
		ct.RecordOverride(OverrideRecord{Computed: 1, Register: 2})
		ct.RecordReference(ReferenceRecord{Target: "a", Reference: "b"})
		ct.RecordClone(CloneRecord{Scenario: "a", Profile: "xon_1"})
	}

	// THEN nothing panics and nothing is stored
	if none.Enabled() || nilTrace.Enabled() {
		t.Error("expected tracing disabled")
	}
	if len(none.Skips)+len(none.Overrides)+len(none.References)+len(none.Clones) != 0 {
		t.Error("expected no records at none level")
	}
}

func TestCalculationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	ct := NewCalculationTrace(TraceLevelDecisions)

	ct.RecordSkip(SkipRecord{Key: "Ethernet4|0-2"})
	ct.RecordSkip(SkipRecord{Key: "Ethernet-BP0|3"})

	if ct.Skips[0].Key != "Ethernet4|0-2" || ct.Skips[1].Key != "Ethernet-BP0|3" {
		t.Errorf("unexpected order: %+v", ct.Skips)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	for _, level := range []string{"", "none", "decisions", "terms"} {
		if !IsValidTraceLevel(level) {
			t.Errorf("expected %q to be valid", level)
		}
	}
	if IsValidTraceLevel("verbose") {
		t.Error("expected verbose to be invalid")
	}
}

func TestCalculationTrace_RecordWarning(t *testing.T) {
	ct := NewCalculationTrace(TraceLevelDecisions)

	ct.RecordWarning(WarningRecord{Profile: "hdrm_pool_size", Field: "pkts_num_hdrm_partial", Value: -2})

	if len(ct.Warnings) != 1 || ct.Warnings[0].Value != -2 {
		t.Errorf("unexpected warnings: %+v", ct.Warnings)
	}
}
