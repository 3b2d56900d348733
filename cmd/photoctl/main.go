// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command photoctl queries a photographer data provider from the terminal,
// applying the same filters and sort order as the API.
//
// Usage:
//
//	photoctl search --city Pune --style Candid --sort ratingHighLow
//	photoctl cities --json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
