package qos

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// IngressLosslessPool is the BUFFER_POOL entry whose shared buffer is accounted.
const IngressLosslessPool = "ingress_lossless_pool"

// Pool modes. Only PoolModeDynamic is supported by the solver.
const (
	PoolModeDynamic = "dynamic"
	PoolModeStatic  = "static"
)

// Bytes is a byte quantity from the running configuration. config_db stores
// numbers as strings ("12766208"), so both string and integer scalars decode.
type Bytes int64

// UnmarshalYAML decodes a quoted or bare integer scalar.
func (b *Bytes) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseIntScalar(node)
	if err != nil {
		return err
	}
	*b = Bytes(v)
	return nil
}

// DynamicTh is a dynamic-threshold alpha exponent (e.g. "-3" for 1/8).
type DynamicTh int64

// UnmarshalYAML decodes a quoted or bare integer scalar.
func (d *DynamicTh) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseIntScalar(node)
	if err != nil {
		return err
	}
	*d = DynamicTh(v)
	return nil
}

func parseIntScalar(node *yaml.Node) (int64, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("line %d: expected integer scalar", node.Line)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(node.Value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return v, nil
}

// Pool is one BUFFER_POOL entry.
type Pool struct {
	Type      string     `yaml:"type,omitempty"`
	Mode      string     `yaml:"mode"`
	Size      Bytes      `yaml:"size"`
	Xoff      *Bytes     `yaml:"xoff,omitempty"`
	DynamicTh *DynamicTh `yaml:"dynamic_th,omitempty"`
}

// Profile is one BUFFER_PROFILE entry.
type Profile struct {
	Pool      string     `yaml:"pool,omitempty"`
	Size      Bytes      `yaml:"size"`
	Xoff      *Bytes     `yaml:"xoff,omitempty"`
	Xon       *Bytes     `yaml:"xon,omitempty"`
	XonOffset *Bytes     `yaml:"xon_offset,omitempty"`
	DynamicTh *DynamicTh `yaml:"dynamic_th,omitempty"`
	StaticTh  *Bytes     `yaml:"static_th,omitempty"`
}

// Binding associates a port and queue/PG index range with a profile.
type Binding struct {
	Profile string `yaml:"profile"`
}

// BufferConfig is the subset of the running configuration used for accounting.
// Other config_db tables are ignored when decoding.
type BufferConfig struct {
	Pools    map[string]Pool    `yaml:"BUFFER_POOL"`
	Profiles map[string]Profile `yaml:"BUFFER_PROFILE"`
	Queues   map[string]Binding `yaml:"BUFFER_QUEUE"`
	PGs      map[string]Binding `yaml:"BUFFER_PG"`
}

// LoadBufferConfig reads a config_db dump (JSON or YAML) from path.
func LoadBufferConfig(path string) (*BufferConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading buffer config: %w", err)
	}
	var cfg BufferConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing buffer config: %w", err)
	}
	return &cfg, nil
}

// ProfileName extracts the profile name from a binding reference. Both
// "egress_lossless_profile" and "[BUFFER_PROFILE|egress_lossless_profile]"
// resolve to "egress_lossless_profile".
func ProfileName(ref string) string {
	if ref == "" {
		return ""
	}
	name := ref[strings.LastIndex(ref, "|")+1:]
	name = strings.TrimPrefix(name, "[")
	return strings.TrimSuffix(name, "]")
}

var bindingKeyRe = regexp.MustCompile(`^(Ethernet\d+)\|(\d+)(?:-(\d+))?$`)

// BindingRange is a parsed binding key: one port, an inclusive index range.
type BindingRange struct {
	Port string
	Lo   int
	Hi   int
}

// Width returns the number of queue/PG indices covered.
func (r BindingRange) Width() int64 {
	return int64(r.Hi - r.Lo + 1)
}

// ParseBindingKey parses "Ethernet12|3" or "Ethernet12|3-4". ok is false for
// any other shape, including descending ranges.
func ParseBindingKey(key string) (r BindingRange, ok bool) {
	m := bindingKeyRe.FindStringSubmatch(key)
	if m == nil {
		return BindingRange{}, false
	}
	lo, err := strconv.Atoi(m[2])
	if err != nil {
		return BindingRange{}, false
	}
	hi := lo
	if m[3] != "" {
		if hi, err = strconv.Atoi(m[3]); err != nil || hi < lo {
			return BindingRange{}, false
		}
	}
	return BindingRange{Port: m[1], Lo: lo, Hi: hi}, true
}
