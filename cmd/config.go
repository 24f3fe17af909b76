package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set surveystats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		fmt.Printf("runs_dir: %s\n", c.RunsDir)
		if c.OutputDir != "" {
			fmt.Printf("output_dir: %s\n", c.OutputDir)
		}
		cl := c.ClusterConfig()
		fmt.Printf("cluster_k: %d\n", cl.K)
		fmt.Printf("cluster_seed: %d\n", cl.Seed)
		fmt.Printf("cluster_n_init: %d\n", cl.NInit)
		fmt.Printf("cluster_max_iter: %d\n", cl.MaxIter)
		fmt.Printf("round_digits: %d\n", c.RoundDigits)
		fmt.Printf("log_level: %s\n", c.LogLevel)
		m := c.Markers.WithDefaults()
		fmt.Printf("markers.age: %s\n", m.Age)
		fmt.Printf("markers.start: %s\n", m.Start)
		fmt.Printf("markers.end: %s\n", m.End)
		fmt.Printf("markers.gender: %s\n", m.Gender)
		fmt.Printf("markers.organization: %s\n", m.Organization)
		fmt.Printf("markers.status: %s\n", m.Status)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := setConfigValue(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	positive := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		return i, nil
	}
	switch key {
	case "runs_dir":
		c.RunsDir = val
	case "output_dir":
		c.OutputDir = val
	case "cluster_k":
		i, err := positive()
		if err != nil {
			return err
		}
		c.ClusterK = i
	case "cluster_seed":
		u, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
		c.ClusterSeed = u
	case "cluster_n_init":
		i, err := positive()
		if err != nil {
			return err
		}
		c.ClusterNInit = i
	case "cluster_max_iter":
		i, err := positive()
		if err != nil {
			return err
		}
		c.ClusterMaxIter = i
	case "round_digits":
		i, err := positive()
		if err != nil {
			return err
		}
		c.RoundDigits = i
	case "log_level":
		switch val {
		case "debug", "info", "warn", "error":
			c.LogLevel = val
		default:
			return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
		}
	case "markers.age":
		c.Markers.Age = val
	case "markers.start":
		c.Markers.Start = val
	case "markers.end":
		c.Markers.End = val
	case "markers.gender":
		c.Markers.Gender = val
	case "markers.organization":
		c.Markers.Organization = val
	case "markers.status":
		c.Markers.Status = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
