package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// StatutoryConfig holds the payroll percentages applied by the payroll calculator.
// Values are fractions (0.12 for 12%).
type StatutoryConfig struct {
	HousingAllowanceRate  float64 `mapstructure:"housingAllowanceRate"`
	DearnessAllowanceRate float64 `mapstructure:"dearnessAllowanceRate"`
	ProvidentFundRate     float64 `mapstructure:"providentFundRate"`
	StateInsuranceRate    float64 `mapstructure:"stateInsuranceRate"`
	IncomeTaxRate         float64 `mapstructure:"incomeTaxRate"`
	IncomeTaxThreshold    float64 `mapstructure:"incomeTaxThreshold"`
}

func DefaultStatutoryConfig() StatutoryConfig {
	return StatutoryConfig{
		HousingAllowanceRate:  0.40,
		DearnessAllowanceRate: 0.10,
		ProvidentFundRate:     0.12,
		StateInsuranceRate:    0.0175,
		IncomeTaxRate:         0.10,
		IncomeTaxThreshold:    25000,
	}
}

type StatutoryConfigHolder struct {
	current atomic.Value // holds StatutoryConfig
}

// NewStaticStatutoryConfigHolder returns a holder pinned to cfg, without file watching.
func NewStaticStatutoryConfigHolder(cfg StatutoryConfig) *StatutoryConfigHolder {
	holder := &StatutoryConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

var statutoryConfigPaths = []string{"/var/lib/khata/config", "/etc/khata", "."}

func NewStatutoryConfigHolder(log *zap.Logger) (*StatutoryConfigHolder, error) {
	return LoadStatutoryConfigHolder(log, statutoryConfigPaths...)
}

// LoadStatutoryConfigHolder reads statutory.yml from the first of paths that
// has one and watches it for changes. Keys missing from the file keep their
// defaults, on the first read and on every reload.
func LoadStatutoryConfigHolder(log *zap.Logger, paths ...string) (*StatutoryConfigHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config.statutory")

	v := viper.New()
	v.SetConfigName("statutory")
	v.SetConfigType("yml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("KHATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultStatutoryConfig()
	for key, value := range statutoryKeys(defaults) {
		v.SetDefault(key, value)
	}

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	cfg := readStatutoryConfig(v)
	if err := ValidateStatutoryConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticStatutoryConfigHolder(cfg)
	if !fileFound {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated := readStatutoryConfig(v)
		if err := ValidateStatutoryConfig(updated); err != nil {
			log.Warn("invalid statutory config ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("statutory config reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

func statutoryKeys(cfg StatutoryConfig) map[string]float64 {
	return map[string]float64{
		"payroll.housingAllowanceRate":  cfg.HousingAllowanceRate,
		"payroll.dearnessAllowanceRate": cfg.DearnessAllowanceRate,
		"payroll.providentFundRate":     cfg.ProvidentFundRate,
		"payroll.stateInsuranceRate":    cfg.StateInsuranceRate,
		"payroll.incomeTaxRate":         cfg.IncomeTaxRate,
		"payroll.incomeTaxThreshold":    cfg.IncomeTaxThreshold,
	}
}

// readStatutoryConfig reads key by key so viper layers the file and env
// over the registered defaults.
func readStatutoryConfig(v *viper.Viper) StatutoryConfig {
	return StatutoryConfig{
		HousingAllowanceRate:  v.GetFloat64("payroll.housingAllowanceRate"),
		DearnessAllowanceRate: v.GetFloat64("payroll.dearnessAllowanceRate"),
		ProvidentFundRate:     v.GetFloat64("payroll.providentFundRate"),
		StateInsuranceRate:    v.GetFloat64("payroll.stateInsuranceRate"),
		IncomeTaxRate:         v.GetFloat64("payroll.incomeTaxRate"),
		IncomeTaxThreshold:    v.GetFloat64("payroll.incomeTaxThreshold"),
	}
}

func (h *StatutoryConfigHolder) Get() StatutoryConfig {
	return h.current.Load().(StatutoryConfig)
}

func ValidateStatutoryConfig(cfg StatutoryConfig) error {
	rates := []float64{
		cfg.HousingAllowanceRate,
		cfg.DearnessAllowanceRate,
		cfg.ProvidentFundRate,
		cfg.StateInsuranceRate,
		cfg.IncomeTaxRate,
	}
	for _, rate := range rates {
		if rate < 0 || rate > 1 {
			return errors.New("payroll rates must be fractions between 0 and 1")
		}
	}
	if cfg.IncomeTaxThreshold < 0 {
		return errors.New("payroll.incomeTaxThreshold cannot be negative")
	}
	return nil
}
