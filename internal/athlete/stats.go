package athlete

import "math"

// TileTracker counts occurrences per tile.
type TileTracker map[Tile]int

// RoundStats summarizes every recorded result for one puzzle.
type RoundStats struct {
	PlayDate                   string      `json:"playDate"`
	Sport                      Sport       `json:"sport"`
	Name                       string      `json:"name,omitempty"`
	TotalPlays                 int         `json:"totalPlays"`
	PercentageCorrect          int         `json:"percentageCorrect"`
	AverageScore               int         `json:"averageScore"`
	AverageCorrectScore        int         `json:"averageCorrectScore"`
	HighestScore               int         `json:"highestScore"`
	MostCommonFirstTileFlipped Tile        `json:"mostCommonFirstTileFlipped"`
	MostCommonLastTileFlipped  Tile        `json:"mostCommonLastTileFlipped"`
	MostCommonTileFlipped      Tile        `json:"mostCommonTileFlipped"`
	LeastCommonTileFlipped     Tile        `json:"leastCommonTileFlipped"`
	MostFlippedTracker         TileTracker `json:"mostFlippedTracker"`
	FirstFlippedTracker        TileTracker `json:"firstFlippedTracker"`
	LastFlippedTracker         TileTracker `json:"lastFlippedTracker"`
}

func newTracker() TileTracker {
	t := make(TileTracker, len(Tiles))
	for _, tile := range Tiles {
		t[tile] = 0
	}
	return t
}

// Aggregate folds results into RoundStats. A result counts as correct when
// its score is above zero. Ties between tiles resolve in board order.
func Aggregate(sport Sport, playDate, name string, results []Result) RoundStats {
	st := RoundStats{
		PlayDate:            playDate,
		Sport:               sport,
		Name:                name,
		TotalPlays:          len(results),
		MostFlippedTracker:  newTracker(),
		FirstFlippedTracker: newTracker(),
		LastFlippedTracker:  newTracker(),
	}

	var total, correctTotal, correct int
	for i, res := range results {
		total += res.Score
		if res.Score > 0 {
			correct++
			correctTotal += res.Score
		}
		if i == 0 || res.Score > st.HighestScore {
			st.HighestScore = res.Score
		}

		for j, flipped := range res.FlippedTilesPattern {
			if flipped && j < len(Tiles) {
				st.MostFlippedTracker[Tiles[j]]++
			}
		}
		if _, ok := tileSpecs[res.FirstTileFlipped]; ok {
			st.FirstFlippedTracker[res.FirstTileFlipped]++
		}
		if _, ok := tileSpecs[res.LastTileFlipped]; ok {
			st.LastFlippedTracker[res.LastTileFlipped]++
		}
	}

	if len(results) > 0 {
		st.PercentageCorrect = roundDiv(correct*100, len(results))
		st.AverageScore = roundDiv(total, len(results))
	}
	if correct > 0 {
		st.AverageCorrectScore = roundDiv(correctTotal, correct)
	}

	st.MostCommonFirstTileFlipped = st.FirstFlippedTracker.most()
	st.MostCommonLastTileFlipped = st.LastFlippedTracker.most()
	st.MostCommonTileFlipped = st.MostFlippedTracker.most()
	st.LeastCommonTileFlipped = st.MostFlippedTracker.least()
	return st
}

func (t TileTracker) most() Tile {
	var best Tile
	n := 0
	for _, tile := range Tiles {
		if t[tile] > n {
			best, n = tile, t[tile]
		}
	}
	return best
}

func (t TileTracker) least() Tile {
	best := Tiles[0]
	for _, tile := range Tiles[1:] {
		if t[tile] < t[best] {
			best = tile
		}
	}
	return best
}

func roundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}
