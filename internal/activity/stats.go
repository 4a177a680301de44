package activity

const (
	strideMeters = 0.8
	kcalPerStep  = 0.04
	metersPerKm  = 1000.0
)

// Stats are the figures derived from a step count for walk and run modes.
type Stats struct {
	DistanceKm float64
	Calories   float64
}

// DeriveStats estimates distance and energy from a step count using a fixed stride.
func DeriveStats(steps int) Stats {
	if steps <= 0 {
		return Stats{}
	}
	return Stats{
		DistanceKm: float64(steps) * strideMeters / metersPerKm,
		Calories:   float64(steps) * kcalPerStep,
	}
}
