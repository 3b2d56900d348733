// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import "github.com/taibuivan/photodir/pkg/slice"

// DistinctCities returns each location in source once, in order of first
// occurrence. It always works on the full collection, never a filtered view,
// so the city selector does not shrink as filters narrow the results.
func DistinctCities(source []Photographer) []string {
	return slice.Unique(source, func(p Photographer) string { return p.Location })
}
