package surface

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	tileSize = 256.0

	// Web Mercator world width in meters.
	mercatorCircumference = 2 * math.Pi * 6378137.0
)

// Viewport is the camera state the browser renders.
type Viewport struct {
	CenterLat float64     `json:"centerLat"`
	CenterLng float64     `json:"centerLng"`
	Zoom      int         `json:"zoom"`
	Bounds    *[4]float64 `json:"bounds,omitempty"` // [minLat, minLng, maxLat, maxLng] of the last fit.
	Padding   int         `json:"padding,omitempty"`
}

// Fitter computes the camera that frames a bound inside a fixed pixel viewport.
type Fitter struct {
	Width   int
	Height  int
	MaxZoom int
}

// Fit returns the highest zoom at which bound fits into the viewport with padding
// pixels on every side, centered on the bound.
func (f Fitter) Fit(bound orb.Bound, padding int) Viewport {
	minM := project.Point(bound.Min, project.WGS84.ToMercator)
	maxM := project.Point(bound.Max, project.WGS84.ToMercator)

	centerM := orb.Point{(minM[0] + maxM[0]) / 2, (minM[1] + maxM[1]) / 2}
	center := project.Point(centerM, project.Mercator.ToWGS84)

	return Viewport{
		CenterLat: center.Lat(),
		CenterLng: center.Lon(),
		Zoom:      f.zoomFor(maxM[0]-minM[0], maxM[1]-minM[1], padding),
		Bounds:    &[4]float64{bound.Min.Lat(), bound.Min.Lon(), bound.Max.Lat(), bound.Max.Lon()},
		Padding:   padding,
	}
}

// zoomFor picks the zoom for a span given in mercator meters.
func (f Fitter) zoomFor(spanX, spanY float64, padding int) int {
	availW := float64(f.Width - 2*padding)
	availH := float64(f.Height - 2*padding)
	if availW <= 0 || availH <= 0 {
		return 0
	}

	// A single point has no extent; show it as close as the tiles allow.
	if spanX <= 0 && spanY <= 0 {
		return f.MaxZoom
	}

	pixelsPerMeter := math.Inf(1)
	if spanX > 0 {
		pixelsPerMeter = math.Min(pixelsPerMeter, availW/spanX)
	}
	if spanY > 0 {
		pixelsPerMeter = math.Min(pixelsPerMeter, availH/spanY)
	}

	zoom := int(math.Floor(math.Log2(pixelsPerMeter * mercatorCircumference / tileSize)))

	return max(0, min(zoom, f.MaxZoom))
}
