package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStatutoryConfigIsValid(t *testing.T) {
	require.NoError(t, ValidateStatutoryConfig(DefaultStatutoryConfig()))
}

func TestValidateStatutoryConfigRejectsOutOfRangeRates(t *testing.T) {
	cfg := DefaultStatutoryConfig()
	cfg.ProvidentFundRate = 1.2
	assert.Error(t, ValidateStatutoryConfig(cfg))

	cfg = DefaultStatutoryConfig()
	cfg.IncomeTaxThreshold = -1
	assert.Error(t, ValidateStatutoryConfig(cfg))
}

func TestStaticHolderReturnsPinnedConfig(t *testing.T) {
	cfg := DefaultStatutoryConfig()
	cfg.IncomeTaxThreshold = 30000

	holder := NewStaticStatutoryConfigHolder(cfg)
	assert.Equal(t, 30000.0, holder.Get().IncomeTaxThreshold)
}

func TestLoadNormalizesNumberingStrategy(t *testing.T) {
	t.Setenv("NUMBERING_STRATEGY", " Sequence ")
	assert.Equal(t, NumberingStrategySequence, Load().NumberingStrategy)

	t.Setenv("NUMBERING_STRATEGY", "bogus")
	assert.Equal(t, NumberingStrategyCount, Load().NumberingStrategy)
}

func writeStatutoryFile(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "statutory.yml"), []byte(body), 0o600))
}

func TestLoadStatutoryConfigWithoutFileUsesDefaults(t *testing.T) {
	holder, err := LoadStatutoryConfigHolder(nil, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultStatutoryConfig(), holder.Get())
}

func TestLoadStatutoryConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeStatutoryFile(t, dir, "payroll:\n  providentFundRate: 0.15\n")

	holder, err := LoadStatutoryConfigHolder(nil, dir)
	require.NoError(t, err)

	want := DefaultStatutoryConfig()
	want.ProvidentFundRate = 0.15
	assert.Equal(t, want, holder.Get())
}

func TestLoadStatutoryConfigRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeStatutoryFile(t, dir, "payroll:\n  incomeTaxRate: 1.5\n")

	_, err := LoadStatutoryConfigHolder(nil, dir)
	assert.Error(t, err)
}

func TestStatutoryConfigReloadKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeStatutoryFile(t, dir, "payroll:\n  providentFundRate: 0.15\n")

	holder, err := LoadStatutoryConfigHolder(nil, dir)
	require.NoError(t, err)

	writeStatutoryFile(t, dir, "payroll:\n  providentFundRate: 0.2\n")

	want := DefaultStatutoryConfig()
	want.ProvidentFundRate = 0.2
	require.Eventually(t, func() bool {
		return holder.Get() == want
	}, 5*time.Second, 20*time.Millisecond)
}
