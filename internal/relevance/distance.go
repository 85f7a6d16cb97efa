// Package relevance maps a similarity distance to a display bucket.
//
// Lower distance means more similar. Every color mapping in the UI is a
// function of Bucket, so border and underline styles always agree on the
// thresholds.
package relevance

import (
	"math"
	"strconv"
)

type Bucket int

const (
	Bucket0 Bucket = iota // < 0.3
	Bucket1               // < 0.4
	Bucket2               // < 0.5
	Bucket3               // < 0.6
	Bucket4               // < 0.7
	Bucket5               // everything else
)

// Buckets lists every bucket in ascending distance order.
var Buckets = []Bucket{Bucket0, Bucket1, Bucket2, Bucket3, Bucket4, Bucket5}

var thresholds = [...]float64{0.3, 0.4, 0.5, 0.6, 0.7}

var names = [...]string{"green", "lime", "yellow", "amber", "orange", "red"}

// Classify returns the bucket for d. NaN is treated as least similar.
func Classify(d float64) Bucket {
	if math.IsNaN(d) {
		return Bucket5
	}
	for i, limit := range thresholds {
		if d < limit {
			return Bucket(i)
		}
	}
	return Bucket5
}

func (b Bucket) valid() Bucket {
	if b < Bucket0 {
		return Bucket0
	}
	if b > Bucket5 {
		return Bucket5
	}
	return b
}

// Name is the color family of the bucket.
func (b Bucket) Name() string {
	return names[b.valid()]
}

func (b Bucket) String() string { return b.Name() }

// Bounds is the half-open distance range [lo, hi) of the bucket. The last
// bucket has no upper bound and reports +Inf.
func (b Bucket) Bounds() (lo, hi float64) {
	b = b.valid()
	if b > Bucket0 {
		lo = thresholds[b-1]
	}
	if b == Bucket5 {
		return lo, math.Inf(1)
	}
	return lo, thresholds[b]
}

func (b Bucket) suffix() string {
	return b.Name() + "-500"
}

// BorderClass is the left border class for a chunk at distance d.
func BorderClass(d float64) string {
	return "border-" + Classify(d).suffix()
}

// UnderlineClass is the underline decoration class for a chunk at distance d.
func UnderlineClass(d float64) string {
	return "decoration-" + Classify(d).suffix()
}

// FormatDistance renders d with three decimals.
func FormatDistance(d float64) string {
	if math.IsNaN(d) {
		return "n/a"
	}
	return strconv.FormatFloat(d, 'f', 3, 64)
}
