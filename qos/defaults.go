package qos

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/sonic-net/qosgen/qos/trace"
)

// DefaultMargin is the minimum packet margin applied to every xoff/xon
// sub-profile and to the headroom pool profile.
const DefaultMargin int64 = 4

// defaulter fills in the target scenario of a parameter set. The nearest
// neighbor is resolved lazily and at most once.
type defaulter struct {
	params   *ParamSet
	target   ScenarioKey
	log      logrus.FieldLogger
	trace    *trace.CalculationTrace
	ref      *ScenarioKey
	resolved bool
}

// PrepareDefaults ensures params holds a complete block for target: it clones
// the nearest scenario when target is absent, clones any missing xoff/xon and
// headroom-pool sub-profiles, and raises pkts_num_margin to DefaultMargin.
// It returns the margin writes it made.
func PrepareDefaults(params *ParamSet, target ScenarioKey, log logrus.FieldLogger, ct *trace.CalculationTrace) ([]trace.UpdateRecord, error) {
	d := &defaulter{params: params, target: target, log: log, trace: ct}

	if params.Scenarios[target.Raw] == nil {
		ref, err := d.reference()
		if err != nil {
			return nil, err
		}
		params.Scenarios[target.Raw] = params.Scenarios[ref.Raw].Clone()
		log.Infof("clone default speed cable length parameters from qos_params[%s] to qos_params[%s]", ref, target)
	}
	sc := params.Scenarios[target.Raw]

	for _, name := range marginProfiles {
		if sc.Profiles[name] != nil {
			continue
		}
		cloned, err := d.cloneProfile(sc, name, false)
		if err != nil {
			return nil, err
		}
		if !cloned {
			return nil, fmt.Errorf("qos_params[%s][%s]: %w", target, name, ErrMissingSubProfile)
		}
	}

	if sc.Profiles[ProfileHdrmPoolSize] == nil {
		cloned, err := d.cloneProfile(sc, ProfileHdrmPoolSize, true)
		if err != nil {
			return nil, err
		}
		if !cloned {
			log.Infof("qos_params don't support headroom pool size parameters")
		}
	}

	var updates []trace.UpdateRecord
	for _, name := range marginProfiles {
		t := sc.Profiles[name]
		if t.PktsNumMargin != nil && *t.PktsNumMargin >= DefaultMargin {
			continue
		}
		u := trace.UpdateRecord{Scenario: target.Raw, Profile: name, Field: "pkts_num_margin",
			From: formatInt(t.PktsNumMargin), To: strconv.FormatInt(DefaultMargin, 10)}
		t.PktsNumMargin = int64Ptr(DefaultMargin)
		updates = append(updates, u)
		ct.RecordUpdate(u)
		log.Infof("add/increase default margin for qos_params[%s][%s] to %d", target, name, DefaultMargin)
	}
	return updates, nil
}

// cloneProfile copies sub-profile name into sc from the top-level default, or
// failing that from the nearest scenario. It reports false when neither has it.
// For optional sub-profiles a missing reference scenario is not an error.
func (d *defaulter) cloneProfile(sc *Scenario, name string, optional bool) (bool, error) {
	if t := d.params.Defaults[name]; t != nil {
		sc.Profiles[name] = t.Clone()
		d.recordClone(name, fmt.Sprintf("qos_params[%s]", name))
		return true, nil
	}
	ref, err := d.reference()
	if err != nil {
		if optional && errors.Is(err, ErrInsufficientReferenceData) {
			return false, nil
		}
		return false, err
	}
	t := d.params.Scenarios[ref.Raw].Profiles[name]
	if t == nil {
		return false, nil
	}
	sc.Profiles[name] = t.Clone()
	d.recordClone(name, fmt.Sprintf("qos_params[%s][%s]", ref, name))
	return true, nil
}

func (d *defaulter) recordClone(name, source string) {
	d.trace.RecordClone(trace.CloneRecord{Scenario: d.target.Raw, Profile: name, Source: source})
	d.log.Infof("clone default parameters from %s to qos_params[%s][%s]", source, d.target, name)
}

func (d *defaulter) reference() (ScenarioKey, error) {
	if d.resolved {
		return *d.ref, nil
	}
	ref, equivalent, err := NearestScenario(d.params, d.target)
	if err != nil {
		return ScenarioKey{}, err
	}
	d.ref, d.resolved = &ref, true
	d.trace.RecordReference(trace.ReferenceRecord{Target: d.target.Raw, Reference: ref.Raw, Equivalent: equivalent})
	if equivalent {
		d.log.Warnf("scenario %s is numerically equal to %s; using it as the default reference", ref, d.target)
	}
	return ref, nil
}
