package qos

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBufferConfig_ConfigDBJSON(t *testing.T) {
	cfg, err := LoadBufferConfig(filepath.Join("testdata", "config_db.json"))
	require.NoError(t, err)

	// THEN string-encoded numbers decode into byte quantities
	pool := cfg.Pools[IngressLosslessPool]
	assert.Equal(t, PoolModeDynamic, pool.Mode)
	assert.Equal(t, Bytes(8388608), pool.Size)
	require.NotNil(t, pool.Xoff)
	assert.Equal(t, Bytes(1048576), *pool.Xoff)

	prof := cfg.Profiles["pg_lossless_100000_5m_profile"]
	require.NotNil(t, prof.DynamicTh)
	assert.Equal(t, DynamicTh(-3), *prof.DynamicTh)
	require.NotNil(t, prof.XonOffset)
	assert.Equal(t, Bytes(13312), *prof.XonOffset)

	assert.Len(t, cfg.Queues, 4)
	assert.Len(t, cfg.PGs, 3)
	assert.Equal(t, "[BUFFER_PROFILE|egress_lossless_profile]", cfg.Queues["Ethernet0|2-5"].Profile)
}

func TestLoadBufferConfig_BareIntegers(t *testing.T) {
	path := writeTempFile(t, "buffers.yml", `
BUFFER_POOL:
  ingress_lossless_pool: {mode: dynamic, size: 16777216, dynamic_th: 1}
`)
	cfg, err := LoadBufferConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Bytes(16777216), cfg.Pools[IngressLosslessPool].Size)
	assert.Equal(t, DynamicTh(1), *cfg.Pools[IngressLosslessPool].DynamicTh)
}

func TestLoadBufferConfig_RejectsNonNumericSize(t *testing.T) {
	path := writeTempFile(t, "buffers.yml", `
BUFFER_POOL:
  ingress_lossless_pool: {mode: dynamic, size: "12MB"}
`)
	_, err := LoadBufferConfig(path)
	assert.Error(t, err)
}

func TestProfileName(t *testing.T) {
	assert.Equal(t, "egress_lossless_profile", ProfileName("[BUFFER_PROFILE|egress_lossless_profile]"))
	assert.Equal(t, "egress_lossless_profile", ProfileName("egress_lossless_profile"))
	assert.Equal(t, "", ProfileName(""))
}

func TestParseBindingKey(t *testing.T) {
	r, ok := ParseBindingKey("Ethernet112|2-4")
	require.True(t, ok)
	assert.Equal(t, BindingRange{Port: "Ethernet112", Lo: 2, Hi: 4}, r)
	assert.Equal(t, int64(3), r.Width())

	r, ok = ParseBindingKey("Ethernet0|3")
	require.True(t, ok)
	assert.Equal(t, int64(1), r.Width())

	r, ok = ParseBindingKey("Ethernet0|10-15")
	require.True(t, ok)
	assert.Equal(t, int64(6), r.Width())

	for _, bad := range []string{"Ethernet0", "Ethernet-BP0|3", "Ethernet0|4-3", "Ethernet0|a", "PortChannel01|3"} {
		_, ok := ParseBindingKey(bad)
		assert.False(t, ok, "key %q", bad)
	}
}

func TestLoadAsicConfig_KeepsOtherRegisters(t *testing.T) {
	cfg, err := LoadAsicConfig(filepath.Join("testdata", "asic_config.yml"))
	require.NoError(t, err)
	require.NotNil(t, cfg.SharedLimitSP0)
	assert.Equal(t, int64(30000), *cfg.SharedLimitSP0)
	assert.Equal(t, 55000, cfg.Registers["total_shared_limit"])
}
