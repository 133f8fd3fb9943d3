// Package oracle provides the read-only cost-oracle lookup the solver
// consumes: travel duration, distance and derived cost between any two
// location indices, per routing profile. It never computes a matrix
// itself — that is an external collaborator's job (OSRM/ORS/Valhalla) —
// it only serves precomputed values handed to it at ingestion time.
package oracle

import (
	"math"

	"github.com/fleetroute/vrpsolver/internal/model"
)

// averageSpeedMetersPerSecond backstops duration/distance when a
// Location carries only coordinates and no matrix index, so a profile
// missing from `matrices` never silently strands a task. 13.9 m/s is
// roughly 50 km/h, a reasonable urban-delivery default.
const averageSpeedMetersPerSecond = 13.9

// Oracle is immutable after construction and safe for concurrent use by
// every search-driver worker without locking.
type Oracle struct {
	profiles map[string]profileMatrices
	cache    *MatrixCache // optional; nil disables the read-through cache
}

type profileMatrices struct {
	durations [][]model.Duration
	distances [][]model.Distance
	costs     [][]model.Cost
	size      int
}

// New builds an Oracle from ingested per-profile matrices. Costs are
// derived on demand from duration/distance and the vehicle's cost
// triple rather than stored, unless an explicit costs matrix was
// supplied, in which case that matrix wins verbatim.
func New(matrices map[string]model.Matrices, cache *MatrixCache) *Oracle {
	o := &Oracle{profiles: make(map[string]profileMatrices, len(matrices)), cache: cache}
	for profile, m := range matrices {
		pm := profileMatrices{}
		if len(m.Durations) > 0 {
			pm.durations = scaleDurations(m.Durations)
			pm.size = len(m.Durations)
		}
		if len(m.Distances) > 0 {
			pm.distances = scaleDistances(m.Distances)
			if pm.size == 0 {
				pm.size = len(m.Distances)
			}
		}
		if len(m.Costs) > 0 {
			pm.costs = scaleCosts(m.Costs)
			if pm.size == 0 {
				pm.size = len(m.Costs)
			}
		}
		o.profiles[profile] = pm
		if cache != nil {
			cache.put(profile, m)
		}
	}
	return o
}

func scaleDurations(m [][]model.UserDuration) [][]model.Duration {
	out := make([][]model.Duration, len(m))
	for i, row := range m {
		out[i] = make([]model.Duration, len(row))
		for j, v := range row {
			out[i][j] = model.ScaleFromUserDuration(v)
		}
	}
	return out
}

func scaleDistances(m [][]model.UserDistance) [][]model.Distance {
	out := make([][]model.Distance, len(m))
	for i, row := range m {
		out[i] = make([]model.Distance, len(row))
		for j, v := range row {
			out[i][j] = model.ScaleFromUserDistance(v)
		}
	}
	return out
}

func scaleCosts(m [][]model.UserCost) [][]model.Cost {
	out := make([][]model.Cost, len(m))
	for i, row := range m {
		out[i] = make([]model.Cost, len(row))
		for j, v := range row {
			out[i][j] = model.ScaleFromUserCost(v)
		}
	}
	return out
}

// Duration returns the scaled travel duration from i to j for profile
// p, or InfiniteDuration when unreachable or the pair is out of range.
func (o *Oracle) Duration(profile string, i, j uint32) model.Duration {
	pm, ok := o.profiles[profile]
	if !ok || pm.durations == nil || !inRange(pm.size, i, j) {
		return model.InfiniteDuration
	}
	return pm.durations[i][j]
}

// Distance returns the scaled travel distance from i to j for profile
// p, or InfiniteDistance when unreachable or the pair is out of range.
func (o *Oracle) Distance(profile string, i, j uint32) model.Distance {
	pm, ok := o.profiles[profile]
	if !ok || pm.distances == nil || !inRange(pm.size, i, j) {
		return model.InfiniteDistance
	}
	return pm.distances[i][j]
}

// Cost returns the travel cost from i to j for profile p and the given
// vehicle cost triple. When the profile carries an explicit costs
// matrix that value is used verbatim (it may encode something other
// than a linear function of duration/distance); otherwise the cost is
// derived as per_hour*duration + per_km*distance. Both terms are
// already expressed in the same 100x3600 cost scale as duration and
// distance, so no further division is needed (§3 Scaling). Returns
// InfiniteCost when the duration is unreachable, or when the distance
// is unknown and per_km is nonzero; with no distance and a zero per_km
// the distance term is zero.
func (o *Oracle) Cost(profile string, costs model.VehicleCosts, i, j uint32) model.Cost {
	if pm, ok := o.profiles[profile]; ok && pm.costs != nil && inRange(pm.size, i, j) {
		return pm.costs[i][j]
	}
	d := o.Duration(profile, i, j)
	dist := o.Distance(profile, i, j)
	if d >= model.InfiniteDuration {
		return model.InfiniteCost
	}
	if dist >= model.InfiniteDistance {
		if costs.PerKm != 0 {
			return model.InfiniteCost
		}
		dist = 0
	}
	durationCost := model.Cost(costs.PerHour) * model.Cost(d)
	distanceCost := model.Cost(costs.PerKm) * model.Cost(dist)
	return durationCost + distanceCost
}

func inRange(size int, i, j uint32) bool {
	return int(i) < size && int(j) < size
}

// HasProfile reports whether matrices are registered for a profile.
func (o *Oracle) HasProfile(profile string) bool {
	_, ok := o.profiles[profile]
	return ok
}

// haversineMeters is the great-circle distance between two coordinates,
// adapted from the teacher's naive ALNS solver.
func haversineMeters(a, b model.Coordinates) float64 {
	const earthRadiusMeters = 6371000.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	sinLat, sinLon := math.Sin(dLat/2), math.Sin(dLon/2)
	h := sinLat*sinLat + math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*sinLon*sinLon
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// LocationDuration returns the travel duration between two Locations,
// preferring matrix lookup by index and falling back to a
// haversine/average-speed estimate when either side carries only
// coordinates (§3 Data Model, Location).
func (o *Oracle) LocationDuration(profile string, speedFactor float64, a, b model.Location) model.Duration {
	if a.HasIndex && b.HasIndex {
		if d := o.Duration(profile, a.Index, b.Index); d < model.InfiniteDuration {
			return d
		}
	}
	if a.HasCoords && b.HasCoords {
		meters := haversineMeters(a.Coords, b.Coords)
		seconds := meters / (averageSpeedMetersPerSecond * speedFactor)
		return model.ScaleFromUserDuration(model.UserDuration(seconds))
	}
	return model.InfiniteDuration
}

// LocationDistance mirrors LocationDuration for travel distance.
func (o *Oracle) LocationDistance(profile string, a, b model.Location) model.Distance {
	if a.HasIndex && b.HasIndex {
		if d := o.Distance(profile, a.Index, b.Index); d < model.InfiniteDistance {
			return d
		}
	}
	if a.HasCoords && b.HasCoords {
		meters := haversineMeters(a.Coords, b.Coords)
		return model.ScaleFromUserDistance(model.UserDistance(meters))
	}
	return model.InfiniteDistance
}

// LocationCost derives the travel cost between two Locations the same
// way Cost does, routed through LocationDuration/LocationDistance so
// coordinate-only profiles still price a move.
func (o *Oracle) LocationCost(profile string, speedFactor float64, costs model.VehicleCosts, a, b model.Location) model.Cost {
	if a.HasIndex && b.HasIndex {
		if pm, ok := o.profiles[profile]; ok && pm.costs != nil && inRange(pm.size, a.Index, b.Index) {
			return pm.costs[a.Index][b.Index]
		}
	}
	d := o.LocationDuration(profile, speedFactor, a, b)
	dist := o.LocationDistance(profile, a, b)
	if d >= model.InfiniteDuration {
		return model.InfiniteCost
	}
	if dist >= model.InfiniteDistance {
		if costs.PerKm != 0 {
			return model.InfiniteCost
		}
		dist = 0
	}
	return model.Cost(costs.PerHour)*model.Cost(d) + model.Cost(costs.PerKm)*model.Cost(dist)
}
