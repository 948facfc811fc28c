package qos

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sub-profile names inside a scenario block.
const (
	ProfileXoff1        = "xoff_1"
	ProfileXoff2        = "xoff_2"
	ProfileXon1         = "xon_1"
	ProfileXon2         = "xon_2"
	ProfileHdrmPoolSize = "hdrm_pool_size"
)

var (
	xoffProfiles = []string{ProfileXoff1, ProfileXoff2}
	xonProfiles  = []string{ProfileXon1, ProfileXon2}

	// marginProfiles must exist in every assembled scenario.
	marginProfiles = []string{ProfileXoff1, ProfileXoff2, ProfileXon1, ProfileXon2}
)

// Threshold is one sub-profile's expected watermarks. Nil pointer fields are
// unset. Fields the generator does not own (dscp, ecn, pg, ...) are kept in
// Extra and written back unchanged.
type Threshold struct {
	PktsNumTrigPfc     *int64                 `yaml:"pkts_num_trig_pfc,omitempty"`
	PktsNumTrigIngrDrp *int64                 `yaml:"pkts_num_trig_ingr_drp,omitempty"`
	PktsNumDismissPfc  *int64                 `yaml:"pkts_num_dismiss_pfc,omitempty"`
	PktsNumHdrmFull    *int64                 `yaml:"pkts_num_hdrm_full,omitempty"`
	PktsNumHdrmPartial *int64                 `yaml:"pkts_num_hdrm_partial,omitempty"`
	Margin             *int64                 `yaml:"margin,omitempty"`
	PktsNumMargin      *int64                 `yaml:"pkts_num_margin,omitempty"`
	DynamicThreshold   *bool                  `yaml:"dynamic_threshold,omitempty"`
	Extra              map[string]interface{} `yaml:",inline"`
}

// Clone returns a deep copy of t.
func (t *Threshold) Clone() *Threshold {
	if t == nil {
		return nil
	}
	c := &Threshold{
		PktsNumTrigPfc:     cloneInt(t.PktsNumTrigPfc),
		PktsNumTrigIngrDrp: cloneInt(t.PktsNumTrigIngrDrp),
		PktsNumDismissPfc:  cloneInt(t.PktsNumDismissPfc),
		PktsNumHdrmFull:    cloneInt(t.PktsNumHdrmFull),
		PktsNumHdrmPartial: cloneInt(t.PktsNumHdrmPartial),
		Margin:             cloneInt(t.Margin),
		PktsNumMargin:      cloneInt(t.PktsNumMargin),
		Extra:              cloneMap(t.Extra),
	}
	if t.DynamicThreshold != nil {
		v := *t.DynamicThreshold
		c.DynamicThreshold = &v
	}
	return c
}

// Scenario is the parameter block of one speed/cable-length key: named
// sub-profiles plus scalar settings such as pkts_num_leak_out.
type Scenario struct {
	Profiles map[string]*Threshold
	Other    map[string]interface{}
}

// NewScenario returns an empty scenario block.
func NewScenario() *Scenario {
	return &Scenario{Profiles: make(map[string]*Threshold), Other: make(map[string]interface{})}
}

// Clone returns a deep copy of s.
func (s *Scenario) Clone() *Scenario {
	c := NewScenario()
	for name, t := range s.Profiles {
		c.Profiles[name] = t.Clone()
	}
	for k, v := range s.Other {
		c.Other[k] = cloneValue(v)
	}
	return c
}

// UnmarshalYAML routes mapping values to Profiles and everything else to Other.
func (s *Scenario) UnmarshalYAML(node *yaml.Node) error {
	*s = *NewScenario()
	return forEachPair(node, func(key string, value *yaml.Node) error {
		if value.Kind == yaml.MappingNode {
			var t Threshold
			if err := value.Decode(&t); err != nil {
				return fmt.Errorf("sub-profile %q: %w", key, err)
			}
			s.Profiles[key] = &t
			return nil
		}
		var v interface{}
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		s.Other[key] = v
		return nil
	})
}

// MarshalYAML flattens Profiles and Other back into one mapping.
func (s *Scenario) MarshalYAML() (interface{}, error) {
	out := make(map[string]interface{}, len(s.Profiles)+len(s.Other))
	for k, v := range s.Other {
		out[k] = v
	}
	for k, v := range s.Profiles {
		out[k] = v
	}
	return out, nil
}

// ParamSet is a per-ASIC qos parameter table: speed/cable-length scenario
// blocks, top-level default sub-profiles (e.g. "xon_1", "hdrm_pool_size"),
// and any other top-level values.
type ParamSet struct {
	Scenarios map[string]*Scenario
	Defaults  map[string]*Threshold
	Other     map[string]interface{}
}

// NewParamSet returns an empty parameter set.
func NewParamSet() *ParamSet {
	return &ParamSet{
		Scenarios: make(map[string]*Scenario),
		Defaults:  make(map[string]*Threshold),
		Other:     make(map[string]interface{}),
	}
}

// Clone returns a deep copy of p; the copy shares nothing with p.
func (p *ParamSet) Clone() *ParamSet {
	c := NewParamSet()
	for k, s := range p.Scenarios {
		c.Scenarios[k] = s.Clone()
	}
	for k, t := range p.Defaults {
		c.Defaults[k] = t.Clone()
	}
	for k, v := range p.Other {
		c.Other[k] = cloneValue(v)
	}
	return c
}

// UnmarshalYAML routes "<speed>_<len>m" keys to Scenarios, other mappings to
// Defaults and the remainder to Other.
func (p *ParamSet) UnmarshalYAML(node *yaml.Node) error {
	*p = *NewParamSet()
	return forEachPair(node, func(key string, value *yaml.Node) error {
		if value.Kind == yaml.MappingNode {
			if _, err := ParseScenarioKey(key); err == nil {
				s := NewScenario()
				if err := value.Decode(s); err != nil {
					return fmt.Errorf("scenario %q: %w", key, err)
				}
				p.Scenarios[key] = s
				return nil
			}
			var t Threshold
			if err := value.Decode(&t); err != nil {
				return fmt.Errorf("profile %q: %w", key, err)
			}
			p.Defaults[key] = &t
			return nil
		}
		var v interface{}
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		p.Other[key] = v
		return nil
	})
}

// MarshalYAML flattens the set back into the qos.yml layout.
func (p *ParamSet) MarshalYAML() (interface{}, error) {
	out := make(map[string]interface{}, len(p.Scenarios)+len(p.Defaults)+len(p.Other))
	for k, v := range p.Other {
		out[k] = v
	}
	for k, v := range p.Defaults {
		out[k] = v
	}
	for k, v := range p.Scenarios {
		out[k] = v
	}
	return out, nil
}

// LoadParamSet reads a qos parameter table (YAML) from path.
func LoadParamSet(path string) (*ParamSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading qos params: %w", err)
	}
	p := NewParamSet()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing qos params: %w", err)
	}
	return p, nil
}

func forEachPair(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		value := node.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if err := fn(node.Content[i].Value, value); err != nil {
			return err
		}
	}
	return nil
}

func cloneInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	c := make(map[string]interface{}, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return cloneMap(t)
	case []interface{}:
		c := make([]interface{}, len(t))
		for i, e := range t {
			c[i] = cloneValue(e)
		}
		return c
	default:
		return v
	}
}
