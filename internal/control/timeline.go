package control

import (
	"sort"
	"time"
)

// index returns the number of timeline entries at or before t.
func (tl FanTimeline) index(t time.Time) int {
	return sort.Search(len(tl), func(i int) bool { return tl[i].Time.After(t) })
}

// At returns the fan decision in force at t: the latest entry whose time is
// at or before t (the last one in input order among equal timestamps).
// covered is false when t precedes the whole timeline.
func (tl FanTimeline) At(t time.Time) (fanOn, covered bool) {
	i := tl.index(t)
	if i == 0 {
		return false, false
	}
	return tl[i-1].FanOn, true
}

// Transitions counts state changes, including the first switch away from the
// initial off state.
func (tl FanTimeline) Transitions() int {
	n := 0
	prev := false
	for _, p := range tl {
		if p.FanOn != prev {
			n++
		}
		prev = p.FanOn
	}
	return n
}

// OnFraction is the share of timeline points with the fan on.
func (tl FanTimeline) OnFraction() float64 {
	if len(tl) == 0 {
		return 0
	}
	on := 0
	for _, p := range tl {
		if p.FanOn {
			on++
		}
	}
	return float64(on) / float64(len(tl))
}

// asOf walks a sorted timeline forward for a sequence of query times.
// Queries that go back in time fall back to a binary search.
type asOf struct {
	tl   FanTimeline
	next int // entries [0, next) are at or before last
	last time.Time
}

func (c *asOf) lookup(t time.Time) bool {
	if t.Before(c.last) {
		c.next = c.tl.index(t)
	} else {
		for c.next < len(c.tl) && !c.tl[c.next].Time.After(t) {
			c.next++
		}
	}
	c.last = t
	if c.next == 0 {
		return false
	}
	return c.tl[c.next-1].FanOn
}
