package qos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func bytesPtr(v int64) *Bytes { b := Bytes(v); return &b }

func dynamicThPtr(v int64) *DynamicTh { d := DynamicTh(v); return &d }

// testLogger routes calculation logs through the standard logger so TestMain's level applies.
func testLogger() logrus.FieldLogger { return logrus.StandardLogger() }

// newTestBufferConfig returns a running config with one 4-queue egress
// lossless binding and one single-PG lossless binding, plus lossy bindings
// that must not take part in accounting.
func newTestBufferConfig() *BufferConfig {
	return &BufferConfig{
		Pools: map[string]Pool{
			IngressLosslessPool: {Type: "ingress", Mode: PoolModeDynamic, Size: 8388608, Xoff: bytesPtr(1048576)},
			"egress_lossy_pool": {Type: "egress", Mode: PoolModeDynamic, Size: 8388608},
		},
		Profiles: map[string]Profile{
			"egress_lossless_profile": {Pool: "[BUFFER_POOL|egress_lossless_pool]", Size: 2048, StaticTh: bytesPtr(12766208)},
			"ingress_lossy_profile":   {Pool: "[BUFFER_POOL|ingress_lossless_pool]", Size: 0, DynamicTh: dynamicThPtr(3)},
			"pg_lossless_100000_5m_profile": {
				Pool: "[BUFFER_POOL|ingress_lossless_pool]", Size: 1024,
				Xoff: bytesPtr(38912), XonOffset: bytesPtr(13312), Xon: bytesPtr(18432), DynamicTh: dynamicThPtr(-3),
			},
		},
		Queues: map[string]Binding{
			"Ethernet0|2-5": {Profile: "[BUFFER_PROFILE|egress_lossless_profile]"},
		},
		PGs: map[string]Binding{
			"Ethernet0|0": {Profile: "[BUFFER_PROFILE|ingress_lossy_profile]"},
			"Ethernet0|3": {Profile: "pg_lossless_100000_5m_profile"},
		},
	}
}

// newTestParams returns a parameter set with three scenarios (none of them
// 100000_5m) and top-level xon/headroom-pool defaults.
func newTestParams() *ParamSet {
	p := NewParamSet()
	for _, key := range []string{"40000_5m", "100000_40m", "100000_300m"} {
		s := NewScenario()
		s.Profiles[ProfileXoff1] = &Threshold{
			PktsNumTrigPfc: int64Ptr(1), PktsNumTrigIngrDrp: int64Ptr(2), PktsNumMargin: int64Ptr(2),
			Extra: map[string]interface{}{"dscp": 3, "ecn": 1, "pg": 3},
		}
		s.Profiles[ProfileXoff2] = &Threshold{
			PktsNumTrigPfc: int64Ptr(1), PktsNumTrigIngrDrp: int64Ptr(2),
			Extra: map[string]interface{}{"dscp": 4, "ecn": 1, "pg": 4},
		}
		s.Other["pkts_num_leak_out"] = 19
		p.Scenarios[key] = s
	}
	p.Defaults[ProfileXon1] = &Threshold{
		PktsNumTrigPfc: int64Ptr(10), PktsNumDismissPfc: int64Ptr(2),
		Extra: map[string]interface{}{"dscp": 3, "ecn": 1, "pg": 3},
	}
	p.Defaults[ProfileXon2] = &Threshold{
		PktsNumTrigPfc: int64Ptr(10), PktsNumDismissPfc: int64Ptr(2),
		Extra: map[string]interface{}{"dscp": 4, "ecn": 1, "pg": 4},
	}
	p.Defaults[ProfileHdrmPoolSize] = &Threshold{
		PktsNumTrigPfc: int64Ptr(1),
		Extra:          map[string]interface{}{"dscps": []interface{}{3, 4}, "pgs": []interface{}{3, 4}},
	}
	p.Other["hdrm_pool_wm_multiplier"] = 4
	return p
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
