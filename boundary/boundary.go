// Package boundary generates the edge-case and adversarial inputs used by the contract
// tests. Strings produced here are opaque payloads: they are never sanitized or
// interpreted, since checking how the service handles them is the point of the tests.
package boundary

import "fmt"

// IntCase is one value near the edge of an inclusive range, and whether the range
// contains it.
type IntCase struct {
	Value int
	Valid bool
}

// IntRange is an inclusive range of accepted integers.
type IntRange struct {
	Min, Max int
	inner    bool
}

// WithInner also generates the in-range neighbours Min+1 and Max-1.
func (r IntRange) WithInner() IntRange {
	r.inner = true
	return r
}

// Contains reports whether v is within the inclusive range.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Boundaries returns Min-1, Min, Max, Max+1 (and the inner neighbours if requested), in
// ascending order and without duplicates.
func (r IntRange) Boundaries() []IntCase {
	values := []int{r.Min - 1, r.Min}
	if r.inner {
		values = append(values, r.Min+1, r.Max-1)
	}
	values = append(values, r.Max, r.Max+1)

	var ret []IntCase
	seen := make(map[int]bool)
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		ret = append(ret, IntCase{Value: v, Valid: r.Contains(v)})
	}
	return ret
}

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat, Lng float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g, %g)", c.Lat, c.Lng)
}

// Valid reports whether the coordinate is within -90..90 latitude and -180..180
// longitude, inclusive.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// CoordinateCase is a coordinate and whether it is valid.
type CoordinateCase struct {
	Coordinate
	Valid bool
}

// CoordinateBoundaries returns the four extreme valid corners of the lat/lng domain, then
// one value just past the boundary on each side of each axis, varying one axis at a time.
func CoordinateBoundaries() []CoordinateCase {
	coords := []Coordinate{
		{-90, -180},
		{90, 180},
		{-90, 180},
		{90, -180},
		{-91, 0},
		{91, 0},
		{0, -181},
		{0, 181},
	}
	ret := make([]CoordinateCase, 0, len(coords))
	for _, c := range coords {
		ret = append(ret, CoordinateCase{Coordinate: c, Valid: c.Valid()})
	}
	return ret
}
