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
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tsimons/spotify-history-tools/internal/analysis"
	"github.com/tsimons/spotify-history-tools/internal/history"
)

var leaderboardNumber int
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard (tracks|albums) year [month]",
	Short: "Shows the track or album leaderboard for a year or month",
	Long: `Tracks rank by total minutes with listen count breaking ties; albums
rank by total minutes. This is a different ordering than top-songs, which
ranks by listen count alone.`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printLeaderboard(os.Stdout, args, leaderboardNumber); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)

	leaderboardCmd.Flags().IntVarP(&leaderboardNumber, "number", "n", 20, "number of results to return")
}

func printLeaderboard(out io.Writer, args []string, topN int) error {
	kind := args[0]
	year, month, err := parseWindowArgs(args[1:])
	if err != nil {
		return err
	}

	events, err := loadEvents()
	if err != nil {
		return err
	}
	window := history.FilterByWindow(events, year, month)

	switch kind {
	case "tracks":
		lb := analysis.TrackLeaderboard(window, topN)
		rows := make([][]string, 0, len(lb.DisplayOrder))
		for _, a := range lb.Rows[:len(lb.DisplayOrder)] {
			rows = append(rows, []string{
				strconv.Itoa(a.Rank),
				a.Key.Name,
				a.Key.Artist,
				fmt.Sprintf("%.1f", a.TotalMinutes),
				strconv.Itoa(a.Listens),
			})
		}
		if err := renderTable(out, []string{"Rank", "Track", "Artist", "Total Minutes", "Listens"}, rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d tracks total\n", len(lb.Rows))

	case "albums":
		lb := analysis.AlbumLeaderboard(window, topN)
		rows := make([][]string, 0, len(lb.DisplayOrder))
		for _, a := range lb.Rows[:len(lb.DisplayOrder)] {
			rows = append(rows, []string{
				strconv.Itoa(a.Rank),
				a.Key.Name,
				a.Key.Artist,
				fmt.Sprintf("%.1f", a.TotalMinutes),
			})
		}
		if err := renderTable(out, []string{"Rank", "Album", "Artist", "Total Minutes"}, rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d albums total\n", len(lb.Rows))

	default:
		return fmt.Errorf("Expected 'tracks' or 'albums', got %q", kind)
	}
	return nil
}
