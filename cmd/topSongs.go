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

var topSongsNumber int
var topSongsCmd = &cobra.Command{
	Use:   "top-songs [year]",
	Short: "Shows the most-played songs",
	Long: `Ranks tracks by listen count, not minutes: a top song is one you came
back to, not one that ran longest.`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printTopSongs(os.Stdout, args, topSongsNumber); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topSongsCmd)

	topSongsCmd.Flags().IntVarP(&topSongsNumber, "number", "n", 50, "number of results to return")
}

func printTopSongs(out io.Writer, args []string, topN int) error {
	events, err := loadEvents()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		events = history.FilterByWindow(events, year, 0)
	}

	lb := analysis.TopSongs(events, topN)
	rows := make([][]string, 0, len(lb.DisplayOrder))
	for _, a := range lb.Rows[:len(lb.DisplayOrder)] {
		rows = append(rows, []string{
			strconv.Itoa(a.Rank),
			a.Key.Name,
			a.Key.Artist,
			strconv.Itoa(a.Listens),
			fmt.Sprintf("%.1f", a.TotalMinutes),
		})
	}
	if err := renderTable(out, []string{"Rank", "Track", "Artist", "Listens", "Total Minutes"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d tracks total\n", len(lb.Rows))
	return nil
}
