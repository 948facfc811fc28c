package cmd

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/sonic-net/qosgen/qos"
	"github.com/sonic-net/qosgen/qos/trace"
)

// calcCmd computes the expected watermarks of one scenario and prints the
// updated parameter table
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute expected buffer watermarks for one speed/cable-length scenario",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(calcConfigFrom(v), cmd.OutOrStdout(), cmd.ErrOrStderr(), logrus.StandardLogger())
	},
}

func init() {
	addCalcFlags(calcCmd.Flags())
	cobra.CheckErr(v.BindPFlags(calcCmd.Flags()))
}

func addCalcFlags(f *pflag.FlagSet) {
	f.String("asic", "", "ASIC family (td2, td3, th, th2, th3)")
	f.String("scenario", "", "Target scenario key, e.g. 100000_5m")
	f.String("qos-params", "", "Path to the per-ASIC qos parameter table (YAML)")
	f.String("buffer-config", "", "Path to the buffer configuration (config_db JSON or YAML)")
	f.String("asic-config", "", "Path to a register snapshot carrying shared_limit_sp0")
	f.String("profile", "", "Ingress lossless BUFFER_PROFILE name (default pg_lossless_<speed>_<length>m_profile)")
	f.Bool("dualtor", false, "Testbed is dual-ToR")
	f.String("dut-topo", "", "DUT topology, e.g. t0")
	f.String("testbed", "", "Testbed topology name")
	f.String("override-gate", string(qos.OverrideAlways), "When shared_limit_sp0 replaces the computed shared buffer (always, dualtor)")
	f.String("trace", string(trace.TraceLevelNone), "Calculation trace written to stderr (none, decisions, terms)")
	f.Bool("scenario-only", false, "Print only the target scenario block")
}

// runCalc loads the inputs named by cfg, runs the generator and writes the
// resulting parameter set as YAML to out. The trace, when enabled, goes to errOut.
func runCalc(cfg calcConfig, out, errOut io.Writer, log *logrus.Logger) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	params, err := qos.LoadParamSet(cfg.QosParams)
	if err != nil {
		return err
	}
	bufCfg, err := qos.LoadBufferConfig(cfg.BufferConfig)
	if err != nil {
		return err
	}
	var asicCfg *qos.AsicConfig
	if cfg.AsicConfig != "" {
		if asicCfg, err = qos.LoadAsicConfig(cfg.AsicConfig); err != nil {
			return err
		}
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("BUFFER_POOL: %s", pretty.Sprint(bufCfg.Pools))
		log.Debugf("BUFFER_PROFILE: %s", pretty.Sprint(bufCfg.Profiles))
	}

	ct := trace.NewCalculationTrace(trace.TraceLevel(cfg.Trace))
	res, err := qos.Generate(qos.Input{
		Params:                 params,
		BufferConfig:           bufCfg,
		AsicConfig:             asicCfg,
		Asic:                   cfg.Asic,
		Scenario:               cfg.Scenario,
		IngressLosslessProfile: cfg.Profile,
		Topology: qos.Topology{
			DualTor:             cfg.DualTor,
			DutTopo:             cfg.DutTopo,
			TestbedTopologyName: cfg.Testbed,
		},
	}, qos.Options{Logger: log, Trace: ct, OverrideGate: qos.OverrideGate(cfg.OverrideGate)})
	if err != nil {
		return fmt.Errorf("%s %s: %w", cfg.Asic, cfg.Scenario, err)
	}

	c := res.Calculation
	log.WithFields(logrus.Fields{
		"asic":                   cfg.Asic,
		"scenario":               cfg.Scenario,
		"cell_size":              c.CellSizeBytes,
		"shared_buffer_cells":    c.SharedBufferCells,
		"effective_shared_cells": c.EffectiveSharedCells,
		"alpha":                  c.Alpha,
		"updates":                len(res.Updates),
		"skips":                  len(res.Skips),
	}).Info("Calculation complete.")

	if ct.Enabled() {
		if err := writeYAML(errOut, ct); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	var doc interface{} = res.Params
	if cfg.ScenarioOnly {
		doc = map[string]*qos.Scenario{cfg.Scenario: res.Params.Scenarios[cfg.Scenario]}
	}
	return writeYAML(out, doc)
}

func writeYAML(w io.Writer, doc interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
