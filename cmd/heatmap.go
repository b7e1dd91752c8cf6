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
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsimons/spotify-history-tools/internal/analysis"
	"github.com/tsimons/spotify-history-tools/internal/history"
)

// One glyph per intensity bucket, ascending.
var bucketGlyphs = []string{"·", "░", "▒", "▓", "█"}

var monthAbbrs = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var heatmapArtist string
var heatmapCmd = &cobra.Command{
	Use:   "heatmap year",
	Short: "Draws the listening heatmap for a year",
	Long: `Draws a week-by-day grid of minutes played in the given ISO year, one
glyph per intensity bucket. Days with no listening still get a cell.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printHeatmap(os.Stdout, args, heatmapArtist); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)

	heatmapCmd.Flags().StringVar(&heatmapArtist, "artist", "", "restrict the heatmap to one artist")
}

func printHeatmap(out io.Writer, args []string, artist string) error {
	year, err := parseYear(args[0])
	if err != nil {
		return err
	}

	events, err := loadEvents()
	if err != nil {
		return err
	}
	if artist != "" {
		events = analysis.FilterBySelector(events, analysis.Specific(analysis.ArtistKey(artist)))
	}

	grid := analysis.BuildHeatmap(events, year)
	weeks := analysis.ISOWeeks(year)

	byCell := make(map[[2]int]string, len(grid.Cells))
	for _, c := range grid.Cells {
		for i, bucket := range analysis.HeatmapBuckets {
			if bucket == c.Bucket {
				byCell[[2]int{c.Week, c.Dow}] = bucketGlyphs[i]
				break
			}
		}
	}

	fmt.Fprintf(out, "Minutes played by day, %d\n\n", year)
	fmt.Fprintf(out, "          %s\n", monthLabelRow(year, weeks))
	for dow, day := range history.WeekdayNames {
		var row strings.Builder
		for week := 1; week <= weeks; week++ {
			glyph, ok := byCell[[2]int{week, dow}]
			if !ok {
				glyph = " "
			}
			row.WriteString(glyph)
		}
		fmt.Fprintf(out, "%-10s%s\n", day, row.String())
	}

	fmt.Fprintln(out)
	for i, bucket := range analysis.HeatmapBuckets {
		fmt.Fprintf(out, "  %s %s", bucketGlyphs[i], bucket)
	}
	fmt.Fprintln(out)
	if grid.Skipped > 0 {
		fmt.Fprintf(out, "%d cells skipped (no calendar date)\n", grid.Skipped)
	}
	return nil
}

// monthLabelRow places month abbreviations under their anchor weeks, skipping
// a label when the previous one would overlap it.
func monthLabelRow(year, weeks int) string {
	labels := analysis.MonthLabelWeeks(year)
	row := make([]byte, weeks)
	for i := range row {
		row[i] = ' '
	}
	for m, week := range labels {
		if week < 1 || week > weeks {
			continue
		}
		start := week - 1
		abbr := monthAbbrs[m]
		if start+len(abbr) > weeks {
			continue
		}
		overlap := false
		for i := 0; i < len(abbr); i++ {
			if row[start+i] != ' ' {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		copy(row[start:], abbr)
	}
	return string(row)
}
