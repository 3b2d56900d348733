// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/photodir/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, slice.Map([]string{"a", "b"}, strings.ToUpper))
	assert.Equal(t, []int{}, slice.Map(nil, func(s string) int { return len(s) }))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	input := []int{1, 2, 3, 4}
	assert.Equal(t, []int{2, 4}, slice.Filter(input, even))
	assert.Equal(t, []int{1, 2, 3, 4}, input)
	assert.Equal(t, []int{}, slice.Filter([]int{1, 3}, even))
	assert.Equal(t, []int{}, slice.Filter(nil, even))
}

func TestUnique(t *testing.T) {
	identity := func(s string) string { return s }

	assert.Equal(t, []string{"Pune", "Mumbai", "Delhi"}, slice.Unique([]string{"Pune", "Mumbai", "Pune", "Delhi", "Mumbai"}, identity))
	assert.Equal(t, []string{}, slice.Unique(nil, identity))
	assert.Equal(t, []int{3, 5}, slice.Unique([]string{"abc", "hello", "xyz"}, func(s string) int { return len(s) }))
}
