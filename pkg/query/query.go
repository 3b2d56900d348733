// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query holds small parsers for URL query values that struct
// decoding does not cover.
package query

import "strings"

// StringSlice parses a single comma-separated query value into a trimmed
// slice of strings. Empty entries are dropped.
//
// Example:
//
//	StringSlice("Candid, Studio,,") // []string{"Candid", "Studio"}
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
