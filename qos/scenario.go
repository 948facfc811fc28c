package qos

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/samber/lo"
)

var scenarioKeyRe = regexp.MustCompile(`^(\d+)_(\d+)m$`)

// ScenarioKey identifies one row of expected thresholds: port speed (Mbps)
// and cable length (meters), e.g. "100000_5m".
type ScenarioKey struct {
	Speed       int64
	CableLength int64
	Raw         string // the key exactly as written in the parameter set
}

// ParseScenarioKey parses "<speed>_<length>m".
func ParseScenarioKey(s string) (ScenarioKey, error) {
	m := scenarioKeyRe.FindStringSubmatch(s)
	if m == nil {
		return ScenarioKey{}, fmt.Errorf("%q: %w", s, ErrInvalidScenarioKey)
	}
	speed, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return ScenarioKey{}, fmt.Errorf("%q: %w", s, ErrInvalidScenarioKey)
	}
	length, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return ScenarioKey{}, fmt.Errorf("%q: %w", s, ErrInvalidScenarioKey)
	}
	return ScenarioKey{Speed: speed, CableLength: length, Raw: s}, nil
}

// String returns the raw key.
func (k ScenarioKey) String() string {
	return k.Raw
}

// Compare orders keys by speed, then cable length, then raw key text, so
// numerically equal keys written differently ("100000_5m", "100000_05m")
// still have a total, deterministic order.
func (k ScenarioKey) Compare(o ScenarioKey) int {
	if c := compareNumeric(k, o); c != 0 {
		return c
	}
	switch {
	case k.Raw < o.Raw:
		return -1
	case k.Raw > o.Raw:
		return 1
	}
	return 0
}

func compareNumeric(a, b ScenarioKey) int {
	switch {
	case a.Speed < b.Speed:
		return -1
	case a.Speed > b.Speed:
		return 1
	case a.CableLength < b.CableLength:
		return -1
	case a.CableLength > b.CableLength:
		return 1
	}
	return 0
}

// ScenarioKeys returns the parsed scenario keys of p in ascending order.
// Keys that do not parse are ignored.
func (p *ParamSet) ScenarioKeys() []ScenarioKey {
	keys := lo.FilterMap(lo.Keys(p.Scenarios), func(raw string, _ int) (ScenarioKey, bool) {
		k, err := ParseScenarioKey(raw)
		return k, err == nil
	})
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })
	return keys
}

// NearestScenario picks the existing scenario used as the default source for
// target. The input set must hold at least two scenarios. Among the other
// scenarios, a key numerically equal to target wins (equivalent is true);
// otherwise the immediate successor of target in (speed, length) order, or
// the predecessor when target sorts last.
func NearestScenario(p *ParamSet, target ScenarioKey) (ref ScenarioKey, equivalent bool, err error) {
	keys := p.ScenarioKeys()
	if len(keys) < 2 {
		return ScenarioKey{}, false, fmt.Errorf("defaulting %s from %d known scenario(s), need at least 2: %w",
			target, len(keys), ErrInsufficientReferenceData)
	}
	candidates := lo.Filter(keys, func(k ScenarioKey, _ int) bool { return k.Raw != target.Raw })
	for _, k := range candidates {
		if compareNumeric(k, target) == 0 {
			return k, true, nil
		}
	}
	for _, k := range candidates {
		if compareNumeric(k, target) > 0 {
			return k, false, nil
		}
	}
	return candidates[len(candidates)-1], false, nil
}
