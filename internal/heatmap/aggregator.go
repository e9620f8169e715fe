package heatmap

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/torvik/mapwiki-backend-go/internal/models"
)

// BaseTileEdge is the world-unit edge length of one map tile, the bin
// size at zoom 0.
const BaseTileEdge = 256.0

// BinSize returns the bin edge length for a zoom level. Bins halve
// with every zoom step and bottom out at one world unit, so deep zoom
// levels degrade to a 1:1 passthrough.
func BinSize(zoom int) float64 {
	size := BaseTileEdge / math.Pow(2, float64(zoom))
	if size < 1 {
		return 1
	}
	return size
}

// binKey identifies one grid cell by its integer grid coordinates
type binKey struct {
	col int64
	row int64
}

// bin accumulates member points of one grid cell
type bin struct {
	sum    r2.Point
	count  int64
	weight float64
}

// Aggregate groups points into zoom-sized bins and emits one point per
// bin at the centroid of its members. The raw bin weight is the sum of
// member weights (a non-positive input weight counts as 1), so an
// unweighted input degrades to a plain count.
//
// Output order is unspecified but the output set is a pure function of
// (points, zoom). Weights are raw here; run them through Normalize
// before handing the set to a renderer.
func Aggregate(points []models.RawPoint, zoom int) []models.AggregatedPoint {
	if len(points) == 0 {
		return []models.AggregatedPoint{}
	}

	size := BinSize(zoom)

	bins := make(map[binKey]*bin)
	for _, p := range points {
		key := binKey{
			col: int64(math.Floor(p.X / size)),
			row: int64(math.Floor(p.Y / size)),
		}

		w := p.Weight
		if w <= 0 {
			w = 1
		}

		if b, exists := bins[key]; exists {
			b.sum = b.sum.Add(r2.Point{X: p.X, Y: p.Y})
			b.count++
			b.weight += w
		} else {
			bins[key] = &bin{
				sum:    r2.Point{X: p.X, Y: p.Y},
				count:  1,
				weight: w,
			}
		}
	}

	out := make([]models.AggregatedPoint, 0, len(bins))
	for _, b := range bins {
		centroid := b.sum.Mul(1 / float64(b.count))
		out = append(out, models.AggregatedPoint{
			X:      centroid.X,
			Y:      centroid.Y,
			Weight: b.weight,
		})
	}

	return out
}
