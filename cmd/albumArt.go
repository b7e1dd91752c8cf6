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
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsimons/spotify-history-tools/internal/artwork"
)

var albumArtCmd = &cobra.Command{
	Use:   "album-art artist album",
	Short: "Looks up album cover art",
	Long:  `Searches the iTunes catalog for the album's artwork URL.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printAlbumArt(os.Stdout, args[0], args[1]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(albumArtCmd)
}

func printAlbumArt(out io.Writer, artist, album string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url := artwork.New().AlbumArt(ctx, artist, album)
	if url == "" {
		fmt.Fprintln(out, "No artwork found")
		return nil
	}
	fmt.Fprintln(out, url)
	return nil
}
