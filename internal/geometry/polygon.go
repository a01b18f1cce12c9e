// Package geometry computes areas of radar chart polygons.
//
// A polygon is an ordered list of radii placed at equal angular spacing,
// vertex i at angle 2π·i/n, and closed back to vertex 0.
package geometry

import (
	"errors"
	"math"

	"github.com/jonathan/spiderweb/internal/types"
)

// MinVertices is the smallest vertex count that encloses an area
const MinVertices = 3

// ErrTooFewVertices is returned for polygons with fewer than MinVertices values
var ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")

// Point is a Cartesian coordinate on the unit radar
type Point struct {
	X float64
	Y float64
}

// Angle returns the axis angle of vertex i in an n-vertex radar
func Angle(i, n int) float64 {
	return 2 * math.Pi * float64(i) / float64(n)
}

// Vertices converts radii into Cartesian points
func Vertices(values []float64) []Point {
	n := len(values)
	points := make([]Point, n)
	for i, r := range values {
		theta := Angle(i, n)
		points[i] = Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return points
}

// PolygonArea applies the shoelace formula to the closed radar polygon
func PolygonArea(values []float64) (float64, error) {
	n := len(values)
	if n < MinVertices {
		return 0, ErrTooFewVertices
	}

	points := Vertices(values)
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X * points[j].Y
		area -= points[j].X * points[i].Y
	}

	return math.Abs(area) / 2.0, nil
}

// MaxPolygonArea is the area of a regular n-gon with unit radius: (n/2)·sin(2π/n)
func MaxPolygonArea(n int) (float64, error) {
	if n < MinVertices {
		return 0, ErrTooFewVertices
	}
	return (float64(n) / 2.0) * math.Sin(2*math.Pi/float64(n)), nil
}

// Percentage expresses area as a share of maxArea, or 0 when maxArea is 0
func Percentage(area, maxArea float64) float64 {
	if maxArea == 0 {
		return 0
	}
	return area / maxArea * 100
}

// Summarize computes the area of values and its percentage of maxArea
func Summarize(labels []string, values []float64, maxArea float64) (types.Polygon, error) {
	area, err := PolygonArea(values)
	if err != nil {
		return types.Polygon{}, err
	}
	return types.Polygon{
		Labels:  append([]string(nil), labels...),
		Values:  append([]float64(nil), values...),
		Area:    area,
		MaxArea: maxArea,
		Percent: Percentage(area, maxArea),
	}, nil
}

// SummarizeRegular is Summarize against the regular n-gon maximum
func SummarizeRegular(labels []string, values []float64) (types.Polygon, error) {
	maxArea, err := MaxPolygonArea(len(values))
	if err != nil {
		return types.Polygon{}, err
	}
	return Summarize(labels, values, maxArea)
}
