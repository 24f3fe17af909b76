package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/analysis"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/columns"
)

// EnvPrefix is prepended to environment variable overrides, e.g. SURVEYSTATS_CLUSTER_K.
const EnvPrefix = "SURVEYSTATS"

// Global configuration structure.
type Global struct {
	RunsDir   string `mapstructure:"runs_dir" yaml:"runs_dir"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Response time clustering
	ClusterK       int    `mapstructure:"cluster_k" yaml:"cluster_k"`
	ClusterSeed    uint64 `mapstructure:"cluster_seed" yaml:"cluster_seed"`
	ClusterNInit   int    `mapstructure:"cluster_n_init" yaml:"cluster_n_init"`
	ClusterMaxIter int    `mapstructure:"cluster_max_iter" yaml:"cluster_max_iter"`

	RoundDigits int             `mapstructure:"round_digits" yaml:"round_digits"`
	Markers     columns.Markers `mapstructure:"markers" yaml:"markers"`
	LogLevel    string          `mapstructure:"log_level" yaml:"log_level"`
}

// ClusterConfig returns the k-means settings with defaults for unset values.
func (c *Global) ClusterConfig() analysis.ClusterConfig {
	d := analysis.DefaultClusterConfig()
	if c.ClusterK > 0 {
		d.K = c.ClusterK
	}
	if c.ClusterSeed > 0 {
		d.Seed = c.ClusterSeed
	}
	if c.ClusterNInit > 0 {
		d.NInit = c.ClusterNInit
	}
	if c.ClusterMaxIter > 0 {
		d.MaxIter = c.ClusterMaxIter
	}
	return d
}

// Dir returns ~/.surveystats.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".surveystats"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.surveystats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cl := analysis.DefaultClusterConfig()
	v.SetDefault("cluster_k", cl.K)
	v.SetDefault("cluster_seed", cl.Seed)
	v.SetDefault("cluster_n_init", cl.NInit)
	v.SetDefault("cluster_max_iter", cl.MaxIter)
	v.SetDefault("round_digits", 3)
	v.SetDefault("log_level", "warn")
	v.SetDefault("output_dir", "")
	v.SetDefault("runs_dir", "")
	m := columns.DefaultMarkers()
	v.SetDefault("markers.age", m.Age)
	v.SetDefault("markers.start", m.Start)
	v.SetDefault("markers.end", m.End)
	v.SetDefault("markers.gender", m.Gender)
	v.SetDefault("markers.organization", m.Organization)
	v.SetDefault("markers.status", m.Status)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Markers = c.Markers.WithDefaults()
	if c.RunsDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.RunsDir = filepath.Join(dir, "runs")
	}
	return &c, nil
}
