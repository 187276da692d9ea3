package config

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/metrics"
	"codeberg.org/mutker/healthtrack/internal/probe"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "warning"
	configName      = "healthtrack"
	envPrefix       = "HEALTHTRACK"
)

type Config struct {
	Storage  StorageConfig `mapstructure:"storage"`
	Probe    ProbeConfig   `mapstructure:"probe"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
	LogLevel string        `mapstructure:"log_level"`
	Debug    bool          `mapstructure:"debug"`
	Verbose  bool          `mapstructure:"verbose"`
	NoColor  bool          `mapstructure:"no_color"`

	// Args holds the positional command line arguments
	Args []string `mapstructure:"-"`
}

type StorageConfig struct {
	Paths []string `mapstructure:"paths"`
}

type ProbeConfig struct {
	Root             string `mapstructure:"root"`
	CapacityClusters uint32 `mapstructure:"capacity_clusters"`
	CapacityInodes   uint32 `mapstructure:"capacity_inodes"`
	FirmwareDir      string `mapstructure:"firmware_dir"`
	HWRevisionFile   string `mapstructure:"hw_revision_file"`
	BootloaderFile   string `mapstructure:"bootloader_file"`
	PrimaryMount     string `mapstructure:"primary_mount"`
	SecondaryMount   string `mapstructure:"secondary_mount"`
	InputGlobA       string `mapstructure:"input_glob_a"`
	InputGlobB       string `mapstructure:"input_glob_b"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	DBPath    string `mapstructure:"db_path"`
	BackupDir string `mapstructure:"backup_dir"`
}

// Load reads configuration from defaults, the config file, HEALTHTRACK_*
// environment variables and args, in increasing order of precedence.
func Load(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: envPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	configFile := fs.String("config", "", "Path to the configuration file")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.Bool("no-color", false, "Disable coloured output")
	fs.StringSlice("storage-path", nil, "History file candidate paths, in preference order")
	fs.String("root", "", "Filesystem whose usage is measured")
	fs.Bool("metrics", false, "Mirror saved snapshots into the SQLite database")
	fs.String("metrics-db", "", "Path to the snapshot mirror database")

	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	for key, flag := range map[string]string{
		"debug":           "debug",
		"verbose":         "verbose",
		"log_level":       "log-level",
		"no_color":        "no-color",
		"storage.paths":   "storage-path",
		"probe.root":      "root",
		"metrics.enabled": "metrics",
		"metrics.db_path": "metrics-db",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := o.configPath
	if *configFile != "" {
		path = *configFile
	}
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.Args = fs.Args()

	if cfg.Debug {
		cfg.LogLevel = string(LogLevelDebug)
	} else if cfg.Verbose && cfg.LogLevel == DefaultLogLevel {
		cfg.LogLevel = string(LogLevelInfo)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	errFactory := errors.New()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return errFactory.Wrap(errors.ErrReadConfig, err).WithMessage("Failed to read config file")
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("/etc")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errFactory.Wrap(errors.ErrReadConfig, err).WithMessage("Failed to read config file")
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	p := probe.DefaultConfig()
	m := metrics.DefaultConfig()

	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("no_color", false)
	v.SetDefault("storage.paths", history.DefaultPaths())
	v.SetDefault("probe.root", p.Root)
	v.SetDefault("probe.capacity_clusters", p.CapacityClusters)
	v.SetDefault("probe.capacity_inodes", p.CapacityInodes)
	v.SetDefault("probe.firmware_dir", p.FirmwareDir)
	v.SetDefault("probe.hw_revision_file", p.HWRevisionFile)
	v.SetDefault("probe.bootloader_file", p.BootloaderFile)
	v.SetDefault("probe.primary_mount", p.PrimaryMount)
	v.SetDefault("probe.secondary_mount", p.SecondaryMount)
	v.SetDefault("probe.input_glob_a", p.InputGlobA)
	v.SetDefault("probe.input_glob_b", p.InputGlobB)
	v.SetDefault("metrics.enabled", m.Enabled)
	v.SetDefault("metrics.db_path", m.DBPath)
	v.SetDefault("metrics.backup_dir", "")
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if len(c.Storage.Paths) == 0 {
		return errFactory.WithMessage(errors.ErrMissingConfig, "no history storage paths configured")
	}

	if err := c.ProbeConfig().Validate(); err != nil {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := c.MetricsConfig().Validate(); err != nil {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	return nil
}

// ProbeConfig converts the probe section for the probe package.
func (c *Config) ProbeConfig() probe.Config {
	return probe.Config{
		Root:             c.Probe.Root,
		CapacityClusters: c.Probe.CapacityClusters,
		CapacityInodes:   c.Probe.CapacityInodes,
		FirmwareDir:      c.Probe.FirmwareDir,
		HWRevisionFile:   c.Probe.HWRevisionFile,
		BootloaderFile:   c.Probe.BootloaderFile,
		PrimaryMount:     c.Probe.PrimaryMount,
		SecondaryMount:   c.Probe.SecondaryMount,
		InputGlobA:       c.Probe.InputGlobA,
		InputGlobB:       c.Probe.InputGlobB,
	}
}

// MetricsConfig converts the metrics section for the metrics package.
func (c *Config) MetricsConfig() metrics.Config {
	return metrics.Config{
		Enabled:   c.Metrics.Enabled,
		DBPath:    c.Metrics.DBPath,
		BackupDir: c.Metrics.BackupDir,
	}
}
