package cmd

import (
	"os"
	"path/filepath"

	"github.com/aweris/treesum/internal/remote"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "treesum",
	Short: "Deterministic directory tree digests",
	Long:  "Compute, store, and publish deterministic cryptographic digests of directory trees.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/treesum/config.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", "", "manifest store directory (default: ~/.local/share/treesum)")

	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TREESUM")
	viper.AutomaticEnv()
	viper.SetDefault("cache_dir", defaultCacheDir())

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "treesum")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "treesum")
	}
	return ".treesum"
}

func defaultCacheDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "treesum")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "treesum")
	}
	return ".treesum"
}

func getCacheDir() string {
	return viper.GetString("cache_dir")
}

// registryAuth builds the registry authenticator from config
// (TREESUM_USERNAME / TREESUM_PASSWORD or the config file). Nil falls
// back to the system keychain.
func registryAuth() remote.Authenticator {
	username := viper.GetString("username")
	if username == "" {
		return nil
	}
	return &remote.BasicAuthenticator{
		Username: username,
		Password: viper.GetString("password"),
	}
}
