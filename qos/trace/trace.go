package trace

// TraceLevel controls the verbosity of calculation tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures defaulting, skip, override and update decisions.
	TraceLevelDecisions TraceLevel = "decisions"
	// TraceLevelTerms additionally captures every shared-buffer accounting term.
	TraceLevelTerms TraceLevel = "terms"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	TraceLevelTerms:     true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// CalculationTrace collects records during one watermark calculation.
type CalculationTrace struct {
	Level      TraceLevel
	References []ReferenceRecord
	Clones     []CloneRecord
	Terms      []AccountingTerm
	Skips      []SkipRecord
	Overrides  []OverrideRecord
	Updates    []UpdateRecord
	Warnings   []WarningRecord
}

// NewCalculationTrace creates a CalculationTrace ready for recording.
func NewCalculationTrace(level TraceLevel) *CalculationTrace {
	return &CalculationTrace{
		Level:      level,
		References: make([]ReferenceRecord, 0),
		Clones:     make([]CloneRecord, 0),
		Terms:      make([]AccountingTerm, 0),
		Skips:      make([]SkipRecord, 0),
		Overrides:  make([]OverrideRecord, 0),
		Updates:    make([]UpdateRecord, 0),
		Warnings:   make([]WarningRecord, 0),
	}
}

// Enabled reports whether decision records are collected. Safe on a nil trace.
func (ct *CalculationTrace) Enabled() bool {
	return ct != nil && ct.Level != TraceLevelNone && ct.Level != ""
}

// RecordReference appends a default-scenario choice.
func (ct *CalculationTrace) RecordReference(record ReferenceRecord) {
	if ct.Enabled() {
		ct.References = append(ct.References, record)
	}
}

// RecordClone appends a sub-profile clone.
func (ct *CalculationTrace) RecordClone(record CloneRecord) {
	if ct.Enabled() {
		ct.Clones = append(ct.Clones, record)
	}
}

// RecordTerms appends accounting terms; only kept at TraceLevelTerms.
func (ct *CalculationTrace) RecordTerms(terms ...AccountingTerm) {
	if ct.Enabled() && ct.Level == TraceLevelTerms {
		ct.Terms = append(ct.Terms, terms...)
	}
}

// RecordSkip appends a skipped binding.
func (ct *CalculationTrace) RecordSkip(record SkipRecord) {
	if ct.Enabled() {
		ct.Skips = append(ct.Skips, record)
	}
}

// RecordOverride appends a register override decision.
func (ct *CalculationTrace) RecordOverride(record OverrideRecord) {
	if ct.Enabled() {
		ct.Overrides = append(ct.Overrides, record)
	}
}

// RecordUpdate appends a watermark field write.
func (ct *CalculationTrace) RecordUpdate(record UpdateRecord) {
	if ct.Enabled() {
		ct.Updates = append(ct.Updates, record)
	}
}

// RecordWarning appends a kept-but-suspect value.
func (ct *CalculationTrace) RecordWarning(record WarningRecord) {
	if ct.Enabled() {
		ct.Warnings = append(ct.Warnings, record)
	}
}
