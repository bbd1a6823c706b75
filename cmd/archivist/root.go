package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps command flags to configuration keys.
var flagKeys = map[string]string{
	"site":           "site",
	"locales-dir":    "locales.dir",
	"catalog":        "locales.catalog",
	"default-locale": "locales.default",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"addr":           "server.addr",
	"watch":          "server.watch",
	"redis-url":      "server.redis_url",
	"secure-cookies": "server.secure_cookies",
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "archivist:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "archivist",
		Short:             "Archive site toolkit",
		Long:              "archivist validates site configuration, inspects locale data and serves the site and preference API for local preview.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default .archivist.yaml)")
	flags.String("site", "", "site configuration file")
	flags.String("locales-dir", "", "directory holding <tag>.yml locale resources")
	flags.String("catalog", "", "locale catalog file")
	flags.String("default-locale", "", "locale merged under every other locale")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text, json")

	cmd.AddCommand(newCheckCmd(), newLocaleCmd(), newServeCmd())
	return cmd
}

func initConfig(cmd *cobra.Command, _ []string) error {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".archivist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("ARCHIVIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults apply.
	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}
