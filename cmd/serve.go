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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsimons/spotify-history-tools/internal/web"
)

var serveAddr string
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the dashboard API",
	Long: `Loads the history once and serves its leaderboards, ranks, stats, and
heatmap as JSON until interrupted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(serveAddr); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", web.DefaultAddr, "listen address")
}

func runServe(addr string) error {
	events, err := loadEvents()
	if err != nil {
		return err
	}

	server := web.NewServer(web.Config{Addr: addr, Events: events})
	return server.Start(context.Background())
}
