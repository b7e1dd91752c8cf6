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

var topAlbumsNumber int
var topAlbumsCmd = &cobra.Command{
	Use:   "top-albums [year]",
	Short: "Shows the most-listened albums",
	Long: `Ranks albums by total minutes played. The same album title under two
different artists counts as two albums.`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printTopAlbums(os.Stdout, args, topAlbumsNumber); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topAlbumsCmd)

	topAlbumsCmd.Flags().IntVarP(&topAlbumsNumber, "number", "n", 10, "number of results to return")
}

func printTopAlbums(out io.Writer, args []string, topN int) error {
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

	lb := analysis.TopAlbums(events, topN)
	rows := make([][]string, 0, len(lb.DisplayOrder))
	for i, label := range lb.DisplayOrder {
		a := lb.Rows[i]
		rows = append(rows, []string{
			strconv.Itoa(a.Rank),
			label,
			fmt.Sprintf("%.1f", a.Hours()),
			strconv.Itoa(a.Listens),
		})
	}
	if err := renderTable(out, []string{"Rank", "Album", "Hours", "Listens"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d albums total\n", len(lb.Rows))
	return nil
}
