package forecast

import "skycast-api/internal/models"

// One-axis steps applied to each base point, in probe order. 0.02 degrees
// is roughly one cell of the provider's 3 km grid.
var probeOffsets = [4][2]float64{
	{0.02, 0},
	{-0.02, 0},
	{0, 0.02},
	{0, -0.02},
}

// candidatePoints builds the ordered list of grid points to probe for a
// target coordinate: the exact point first, then progressively coarser
// roundings toward the provider's grid, then one-cell offsets of each of
// those base points. The provider rejects coordinates that miss its grid,
// so stepping outward this way recovers locations well inside coverage.
//
// Duplicates collapse on a six-decimal canonical key, keeping the list
// bounded at twenty points and its order reproducible for a given target.
func candidatePoints(target models.Coordinate) []models.Coordinate {
	var candidates []models.Coordinate
	seen := make(map[string]struct{})

	add := func(c models.Coordinate) {
		key := c.Key()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		candidates = append(candidates, c)
	}

	add(target)
	for _, places := range []int{4, 3, 2} {
		add(target.Round(places))
	}

	// Offsets step off the base points only, never off other offsets.
	basePoints := make([]models.Coordinate, len(candidates))
	copy(basePoints, candidates)

	for _, base := range basePoints {
		for _, offset := range probeOffsets {
			add(base.Offset(offset[0], offset[1]))
		}
	}

	return candidates
}
