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

	"github.com/spf13/cobra"

	"github.com/tsimons/spotify-history-tools/internal/analysis"
)

var statsArtist string
var statsYear int
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Shows listening stats, overall or for one artist",
	Long: `Without flags, shows the whole table's stats. --artist narrows to one
artist, --year to one year; the rank line shows "-" when no single-entity rank
applies.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := printStats(os.Stdout, statsArtist, statsYear); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsArtist, "artist", "", "restrict stats to one artist")
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "restrict stats to one year")
}

func printStats(out io.Writer, artist string, year int) error {
	events, err := loadEvents()
	if err != nil {
		return err
	}

	sel := analysis.AllEntities()
	subject := "All Artists"
	if artist != "" {
		sel = analysis.Specific(analysis.ArtistKey(artist))
		subject = artist
	}

	var st analysis.Stats
	var rank int
	var ranked bool
	if year != 0 {
		st = analysis.YearlyStats(events, sel, year)
		rank, ranked = analysis.YearlyArtistRank(events, sel, year)
		fmt.Fprintf(out, "Stats for %s in %d\n", subject, year)
	} else {
		st = analysis.ComputeStats(analysis.FilterBySelector(events, sel))
		rank, ranked = analysis.ArtistRank(events, sel)
		fmt.Fprintf(out, "Stats for %s\n", subject)
	}

	if ranked {
		fmt.Fprintf(out, "Rank: %d\n", rank)
	} else {
		fmt.Fprintln(out, "Rank: -")
	}
	fmt.Fprintf(out, "Total hours: %.2f\n", st.TotalHours)
	fmt.Fprintf(out, "Listening time: %s\n", FormatMinutes(st.TotalHours*60))
	fmt.Fprintf(out, "Unique tracks: %d\n", st.UniqueTracks)
	if st.MostListenedYear != 0 {
		fmt.Fprintf(out, "Most listened year: %d\n", st.MostListenedYear)
	}
	return nil
}
