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
	"regexp"
	"strconv"
	"time"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

func parseYear(ds string) (int, error) {
	if !yearPattern.MatchString(ds) {
		return 0, fmt.Errorf("Invalid year: %q", ds)
	}
	year, err := strconv.Atoi(ds)
	if err != nil {
		return 0, fmt.Errorf("Parsing year %q: %w", ds, err)
	}
	return year, nil
}

func parseMonth(ds string) (time.Month, error) {
	m, err := strconv.Atoi(ds)
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("Invalid month: %q", ds)
	}
	return time.Month(m), nil
}

// parseWindowArgs handles the optional [year [month]] tail of a command.
func parseWindowArgs(args []string) (year int, month time.Month, err error) {
	if len(args) == 0 {
		return 0, 0, nil
	}

	year, err = parseYear(args[0])
	if err != nil {
		return 0, 0, err
	}
	if len(args) > 1 {
		month, err = parseMonth(args[1])
		if err != nil {
			return 0, 0, err
		}
	}
	return year, month, nil
}
