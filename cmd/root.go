/*
Copyright 2025 The spotify-history-tools Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string
var historyFiles []string
var cachePath string
var minMsPlayed int64
var minArtistMinutes float64
var utcOffset time.Duration

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-history-tools",
	Short: "Analyzes a Spotify streaming-history export",
	Long: `Turns the JSON files from a Spotify privacy export into ranked
leaderboards, rank and stat lookups, a listening heatmap, and a local
dashboard API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-history-tools.yaml)")

	rootCmd.PersistentFlags().StringSliceVar(
		&historyFiles, "history", nil, "streaming history JSON files (repeatable, globs allowed)")
	viper.BindPFlag("history", rootCmd.PersistentFlags().Lookup("history"))

	rootCmd.PersistentFlags().StringVar(
		&cachePath, "cache", "", "path to the dataset cache (default is $HOME/.spotify-history-tools.db)")
	viper.BindPFlag("cache", rootCmd.PersistentFlags().Lookup("cache"))

	rootCmd.PersistentFlags().Int64Var(
		&minMsPlayed, "min-ms-played", 10000, "drop plays at or under this many milliseconds")
	viper.BindPFlag("min-ms-played", rootCmd.PersistentFlags().Lookup("min-ms-played"))

	rootCmd.PersistentFlags().Float64Var(
		&minArtistMinutes, "min-artist-minutes", 5, "drop artists at or under this many cumulative minutes")
	viper.BindPFlag("min-artist-minutes", rootCmd.PersistentFlags().Lookup("min-artist-minutes"))

	rootCmd.PersistentFlags().DurationVar(
		&utcOffset, "utc-offset", 0, "shift timestamps by this much before assigning calendar days")
	viper.BindPFlag("utc-offset", rootCmd.PersistentFlags().Lookup("utc-offset"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".spotify-history-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-history-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func defaultCachePath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".spotify-history-tools.db"), nil
}
