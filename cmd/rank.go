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
	"github.com/tsimons/spotify-history-tools/internal/history"
)

var rankYear int
var rankCmd = &cobra.Command{
	Use:   "rank (artist|album|track) name [title]",
	Short: "Looks up an entity's listening rank",
	Long: `Artist rank takes the artist name; album and track ranks take the
artist name and the title, since identical titles under different artists are
distinct entities. Prints "-" when the entity has no rank in the requested
window.`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printRank(os.Stdout, args, rankYear); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().IntVar(&rankYear, "year", 0, "restrict the rank to one year")
}

func printRank(out io.Writer, args []string, year int) error {
	events, err := loadEvents()
	if err != nil {
		return err
	}
	if year != 0 {
		events = history.FilterByWindow(events, year, 0)
	}

	var sel analysis.Selector
	var aggs []analysis.Aggregate
	switch args[0] {
	case "artist":
		if len(args) != 2 {
			return fmt.Errorf("Expected: rank artist <name>")
		}
		sel = analysis.Specific(analysis.ArtistKey(args[1]))
		aggs = analysis.AggregateBy(events, analysis.Artists, analysis.ByMinutes)

	case "album":
		if len(args) != 3 {
			return fmt.Errorf("Expected: rank album <artist> <album>")
		}
		sel = analysis.Specific(analysis.AlbumKey(args[1], args[2]))
		aggs = analysis.AggregateBy(events, analysis.Albums, analysis.ByMinutes)

	case "track":
		if len(args) != 3 {
			return fmt.Errorf("Expected: rank track <artist> <track>")
		}
		sel = analysis.Specific(analysis.TrackKey(args[1], args[2]))
		aggs = analysis.AggregateBy(events, analysis.Tracks, analysis.ByMinutes)

	default:
		return fmt.Errorf("Expected 'artist', 'album', or 'track', got %q", args[0])
	}

	if rank, ok := analysis.Rank(aggs, sel); ok {
		fmt.Fprintf(out, "%d\n", rank)
	} else {
		fmt.Fprintln(out, "-")
	}
	return nil
}
