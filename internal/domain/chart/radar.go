// Package chart maps aggregate profiles into polar series for rendering.
package chart

import (
	"math"

	"github.com/okian/mindlab/internal/domain/aggregate"
	"github.com/okian/mindlab/internal/domain/model"
)

// Radar rendering contract.
const (
	AxisMin      = 0.0
	AxisMax      = 5.0
	DefaultColor = "#2CB8C8"
)

// Point is one labelled spoke of the radar.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RadarSeries is the ordered spoke set for a closed polar polygon.
type RadarSeries struct {
	Name   string     `json:"name"`
	Title  string     `json:"title"`
	Labels []string   `json:"labels"`
	Values []float64  `json:"values"`
	Range  [2]float64 `json:"range"`
	Closed bool       `json:"closed"`
	Color  string     `json:"color"`
}

// Build maps profile onto the fixed radar skill order. Skills missing from the
// profile plot at the axis minimum; values are clamped to the axis.
func Build(profile aggregate.Profile, name string) RadarSeries {
	skills := model.RadarSkills()
	rs := RadarSeries{
		Name:   name,
		Title:  "Average mental profile: " + name,
		Labels: make([]string, 0, len(skills)),
		Values: make([]float64, 0, len(skills)),
		Range:  [2]float64{AxisMin, AxisMax},
		Closed: true,
		Color:  DefaultColor,
	}
	for _, s := range skills {
		v, ok := profile.Mean(s)
		if !ok || math.IsNaN(v) {
			v = AxisMin
		}
		rs.Labels = append(rs.Labels, string(s))
		rs.Values = append(rs.Values, math.Max(AxisMin, math.Min(AxisMax, v)))
	}
	return rs
}

// Points returns the spokes as label/value pairs in order.
func (rs RadarSeries) Points() []Point {
	pts := make([]Point, len(rs.Labels))
	for i := range rs.Labels {
		pts[i] = Point{Label: rs.Labels[i], Value: rs.Values[i]}
	}
	return pts
}

// Polygon returns the spokes with the first repeated at the end, as polygon
// fill renderers expect.
func (rs RadarSeries) Polygon() []Point {
	pts := rs.Points()
	if len(pts) == 0 || !rs.Closed {
		return pts
	}
	return append(pts, pts[0])
}
