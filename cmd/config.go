package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/sonic-net/qosgen/qos"
	"github.com/sonic-net/qosgen/qos/trace"
)

// initConfig layers QOSGEN_* environment variables and, when path is set, a
// run profile under the bound flags. Dashes in keys become underscores in
// variable names (QOSGEN_QOS_PARAMS).
func initConfig(v *viper.Viper, path string) error {
	v.SetEnvPrefix("QOSGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading run profile: %w", err)
	}
	return nil
}

// calcConfig is the resolved input of one calc run.
type calcConfig struct {
	Asic         string
	Scenario     string
	QosParams    string
	BufferConfig string
	AsicConfig   string
	Profile      string
	DualTor      bool
	DutTopo      string
	Testbed      string
	OverrideGate string
	Trace        string
	ScenarioOnly bool
}

func calcConfigFrom(v *viper.Viper) calcConfig {
	return calcConfig{
		Asic:         v.GetString("asic"),
		Scenario:     v.GetString("scenario"),
		QosParams:    v.GetString("qos-params"),
		BufferConfig: v.GetString("buffer-config"),
		AsicConfig:   v.GetString("asic-config"),
		Profile:      v.GetString("profile"),
		DualTor:      v.GetBool("dualtor"),
		DutTopo:      v.GetString("dut-topo"),
		Testbed:      v.GetString("testbed"),
		OverrideGate: v.GetString("override-gate"),
		Trace:        v.GetString("trace"),
		ScenarioOnly: v.GetBool("scenario-only"),
	}
}

func (c calcConfig) validate() error {
	var missing []string
	for name, val := range map[string]string{
		"asic": c.Asic, "scenario": c.Scenario, "qos-params": c.QosParams, "buffer-config": c.BufferConfig,
	} {
		if val == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if !qos.IsValidOverrideGate(c.OverrideGate) {
		return fmt.Errorf("unknown --override-gate %q (valid: always, dualtor)", c.OverrideGate)
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return errors.New("--trace must be one of none, decisions, terms")
	}
	return nil
}
