package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/icodeforyou/spotprice-go/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfigEnergyPrice struct {
	// Zone prefetched in watch mode when schedule.zones is empty: "SE1", "SE2", "SE3", "SE4"
	Area string `mapstructure:"area"`
	// Providers in the order they are tried, default: "elprisetjustnu", "nordpool"
	Providers []string `mapstructure:"providers"`
	// HTTP timeout per provider request, default: 10
	TimeoutSeconds    *int    `mapstructure:"timeout_seconds"`
	ElprisetJustNuURL *string `mapstructure:"elprisetjustnu_url"`
	NordpoolURL       *string `mapstructure:"nordpool_url"`
}

func (e AppConfigEnergyPrice) GetProviders() []string {
	if len(e.Providers) == 0 {
		return []string{"elprisetjustnu", "nordpool"}
	}
	return e.Providers
}

func (e AppConfigEnergyPrice) GetTimeout() time.Duration {
	if e.TimeoutSeconds == nil || *e.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(*e.TimeoutSeconds) * time.Second
}

func (e AppConfigEnergyPrice) GetElprisetJustNuURL() string {
	if e.ElprisetJustNuURL == nil {
		return ""
	}
	return *e.ElprisetJustNuURL
}

func (e AppConfigEnergyPrice) GetNordpoolURL() string {
	if e.NordpoolURL == nil {
		return ""
	}
	return *e.NordpoolURL
}

type AppConfigDatabase struct {
	// Path to the sqlite file, default: "spotprice.db"
	Path *string `mapstructure:"path"`
	// How many days prices should be stored in database before they get purged
	DataRetentionDays *int `mapstructure:"data_retention_days"`
	// How many days daily backup files should be stored before they get deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
	// Serve already fetched days from the database, default: true
	CacheEnabled *bool `mapstructure:"cache_enabled"`
}

func (d AppConfigDatabase) GetPath() string {
	if d.Path == nil || *d.Path == "" {
		return "spotprice.db"
	}
	return *d.Path
}

func (d AppConfigDatabase) GetDataRetentionDays() int {
	if d.DataRetentionDays == nil {
		return 90
	}
	return *d.DataRetentionDays
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 30
	}
	return *d.BackupRetentionDays
}

func (d AppConfigDatabase) GetCacheEnabled() bool {
	if d.CacheEnabled == nil {
		return true
	}
	return *d.CacheEnabled
}

type AppConfigReport struct {
	// BCP 47 tag used for number formatting, default: "sv"
	Language *string `mapstructure:"language"`
	// "text", "json" or "yaml", default: "text"
	Format *string `mapstructure:"format"`
}

func (r AppConfigReport) GetLanguage() string {
	if r.Language == nil || *r.Language == "" {
		return "sv"
	}
	return *r.Language
}

func (r AppConfigReport) GetFormat() string {
	if r.Format == nil || *r.Format == "" {
		return "text"
	}
	return strings.ToLower(*r.Format)
}

type AppConfigSchedule struct {
	// Cron spec for fetching tomorrow's prices, default: "30 13 * * *"
	RunAt *string `mapstructure:"run_at"`
	// Cron spec for backup and purge, default: "15 3 * * *"
	MaintenanceAt *string `mapstructure:"maintenance_at"`
	// Zones to prefetch, default: the energy_price area
	Zones []string `mapstructure:"zones"`
	// Window length logged after each prefetch, default: 4
	ChargingHours *int `mapstructure:"charging_hours"`
}

func (s AppConfigSchedule) GetRunAt() string {
	if s.RunAt == nil || *s.RunAt == "" {
		return "30 13 * * *"
	}
	return *s.RunAt
}

func (s AppConfigSchedule) GetMaintenanceAt() string {
	if s.MaintenanceAt == nil || *s.MaintenanceAt == "" {
		return "15 3 * * *"
	}
	return *s.MaintenanceAt
}

func (s AppConfigSchedule) GetChargingHours() int {
	if s.ChargingHours == nil {
		return 4
	}
	return *s.ChargingHours
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console (stderr): "DEBUG", "INFO", "WARN", "ERROR", default: "WARN"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	if l.ConsoleLevel == nil {
		return slog.LevelWarn
	}
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	EnergyPrice AppConfigEnergyPrice `mapstructure:"energy_price"`
	Database    AppConfigDatabase    `mapstructure:"database"`
	Report      AppConfigReport      `mapstructure:"report"`
	Schedule    AppConfigSchedule    `mapstructure:"schedule"`
	Logging     AppConfigLogging     `mapstructure:"logging"`
}

// Keys that can be overridden from the environment even when absent in the
// config file, e.g. ENERGY_PRICE_AREA or DATABASE_PATH.
var envKeys = []string{
	"energy_price.area",
	"energy_price.providers",
	"energy_price.timeout_seconds",
	"energy_price.elprisetjustnu_url",
	"energy_price.nordpool_url",
	"database.path",
	"database.data_retention_days",
	"database.backup_retention_days",
	"database.cache_enabled",
	"report.language",
	"report.format",
	"schedule.run_at",
	"schedule.maintenance_at",
	"schedule.zones",
	"schedule.charging_hours",
	"logging.db_level",
	"logging.db_attrs_format",
	"logging.db_max_entries",
	"logging.console_level",
}

func newViper(path string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to read .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}
	return v, nil
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}
	return &c, nil
}

// Load reads the config file at path. With an empty path config/config.yaml is
// used if it exists, otherwise only defaults and environment apply.
func Load(path string) (*AppConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// Watch calls onChange with the reloaded config every time the file changes.
// It requires an existing config file.
func Watch(path string, logger *slog.Logger, onChange func(*AppConfig)) error {
	v, err := newViper(path)
	if err != nil {
		return err
	}
	if v.ConfigFileUsed() == "" {
		return errors.New("no config file to watch")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed", slog.String("file", e.Name), slog.String("op", e.Op.String()))
		c, err := unmarshal(v)
		if err != nil {
			logger.Error("failed to reload config", slog.Any("error", err))
			return
		}
		onChange(c)
	})
	v.WatchConfig()
	return nil
}
