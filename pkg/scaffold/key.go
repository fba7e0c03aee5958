package scaffold

import (
	"math"
	"strconv"
	"strings"
)

// KeyPolicy decides when two z coordinates belong to the same layer.
//
// A negative Precision compares raw values: two anchors whose z differs in
// any bit land in different layers. A Precision of n >= 0 rounds z half away
// from zero to n decimal places before comparing, so noise below 10^-n is
// absorbed.
type KeyPolicy struct {
	Precision int
}

// ExactKeys groups anchors by exact z equality.
var ExactKeys = KeyPolicy{Precision: -1}

// Key maps a z coordinate to its layer key.
func (p KeyPolicy) Key(z float64) float64 {
	if p.Precision < 0 || math.IsInf(z, 0) || math.IsNaN(z) {
		return z
	}
	scale := math.Pow10(p.Precision)
	k := math.Round(z*scale) / scale
	if k == 0 {
		return 0 // fold -0
	}
	return k
}

// KeyOf returns the layer key of an anchor. Anchors without a z coordinate
// have no layer.
func (p KeyPolicy) KeyOf(a Anchor) (float64, bool) {
	z, ok := a.Layout.Get(AxisZ)
	if !ok {
		return 0, false
	}
	return p.Key(z), true
}

// FormatKey renders a layer key the way component ids embed it: the
// shortest decimal that round-trips, with ".0" appended to integral values
// and exponent notation outside [1e-4, 1e16).
//
//	FormatKey(0)       // "0.0"
//	FormatKey(2.5)     // "2.5"
//	FormatKey(0.00001) // "1e-05"
func FormatKey(k float64) string {
	switch {
	case math.IsNaN(k):
		return "nan"
	case math.IsInf(k, 1):
		return "inf"
	case math.IsInf(k, -1):
		return "-inf"
	case k == 0:
		if math.Signbit(k) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(k, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(k, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// ComponentID returns the component id for a layer key.
func ComponentID(k float64) string {
	return ComponentPrefix + FormatKey(k)
}

// ComponentName returns the display name for a layer key.
func ComponentName(k float64) string {
	return "Component at z=" + FormatKey(k)
}
