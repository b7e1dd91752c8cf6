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
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/tsimons/spotify-history-tools/internal/history"
	"github.com/tsimons/spotify-history-tools/internal/ingest"
	"github.com/tsimons/spotify-history-tools/internal/store"
)

func normalizeOptions() history.Options {
	return history.Options{
		MinMsPlayed:      viper.GetInt64("min-ms-played"),
		MinArtistMinutes: viper.GetFloat64("min-artist-minutes"),
		Offset:           viper.GetDuration("utc-offset"),
	}
}

// loadEvents runs the ingest path through the dataset cache: hash the input
// file set, reuse the cached table on a hit, otherwise parse, normalize, and
// save.
func loadEvents() ([]history.Event, error) {
	paths, err := expandHistoryFiles(viper.GetStringSlice("history"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no history files - pass --history or set it in the config file")
	}

	opts := normalizeOptions()
	digest, err := ingest.Digest(paths, opts)
	if err != nil {
		return nil, fmt.Errorf("hashing history files: %w", err)
	}

	cache, err := openCache()
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	events, ok, err := cache.LoadDataset(digest, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if ok {
		return events, nil
	}

	raw, err := ingest.ReadFiles(paths)
	if err != nil {
		return nil, err
	}
	events, err = history.Normalize(raw, opts)
	if err != nil {
		return nil, err
	}

	if err := cache.SaveDataset(digest, events); err != nil {
		return nil, fmt.Errorf("saving cache: %w", err)
	}
	return events, nil
}

// expandHistoryFiles resolves globs. Patterns with no matches stay as
// literal paths so the read fails with a useful message.
func expandHistoryFiles(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad history pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			matches = []string{p}
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

func openCache() (*store.Store, error) {
	path := viper.GetString("cache")
	if path == "" {
		var err error
		path, err = defaultCachePath()
		if err != nil {
			return nil, err
		}
	}
	return store.New(path)
}
