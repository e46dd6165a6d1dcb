// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// tag categories
const (
	TagNode    = "node"
	TagElem    = "elem"
	TagMat     = "mat"
	TagFix     = "fix"
	TagTie     = "tie"
	TagParam   = "param"
	TagPattern = "pattern"
)

// Tags hands out unique identifiers per category. Parameters and elements share one namespace:
// parameter tags are always above the highest element tag and no element tag can be issued
// after the first parameter tag
type Tags struct {
	last map[string]int // category => last issued tag
}

// NewTags returns a new allocator; all categories start at 1
func NewTags() *Tags {
	return &Tags{last: make(map[string]int)}
}

// Next returns the next tag of category
func (o *Tags) Next(category string) int {
	switch category {
	case TagNode, TagMat, TagFix, TagTie, TagPattern:
	case TagElem:
		if o.last[TagParam] > 0 {
			chk.Panic("cannot issue element tag after parameter tag %d has been issued", o.last[TagParam])
		}
	case TagParam:
		if o.last[TagParam] < o.last[TagElem] {
			o.last[TagParam] = o.last[TagElem]
		}
	default:
		chk.Panic("tag category %q is invalid", category)
	}
	o.last[category]++
	return o.last[category]
}

// Last returns the last issued tag of category; 0 if none
func (o *Tags) Last(category string) int {
	return o.last[category]
}
