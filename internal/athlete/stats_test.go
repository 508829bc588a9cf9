package athlete_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/playperu/athleteunknown/internal/athlete"
)

func pattern(tiles ...athlete.Tile) []bool {
	out := make([]bool, len(athlete.Tiles))
	for _, t := range tiles {
		for i, tt := range athlete.Tiles {
			if tt == t {
				out[i] = true
			}
		}
	}
	return out
}

func TestAggregateEmpty(t *testing.T) {
	st := athlete.Aggregate(athlete.SportBasketball, "2025-11-19", "Rashard Lewis", nil)

	assert.Equal(t, 0, st.TotalPlays)
	assert.Equal(t, 0, st.AverageScore)
	assert.Equal(t, athlete.Tile(""), st.MostCommonTileFlipped)
	assert.Equal(t, athlete.TileBio, st.LeastCommonTileFlipped)
	assert.Len(t, st.MostFlippedTracker, len(athlete.Tiles))
}

func TestAggregate(t *testing.T) {
	results := []athlete.Result{
		{
			Score:               97,
			FlippedTilesPattern: pattern(athlete.TileTeamsPlayedOn),
			FirstTileFlipped:    athlete.TileTeamsPlayedOn,
			LastTileFlipped:     athlete.TileTeamsPlayedOn,
		},
		{
			Score:               85,
			FlippedTilesPattern: pattern(athlete.TileTeamsPlayedOn, athlete.TilePhoto, athlete.TileBio),
			FirstTileFlipped:    athlete.TileBio,
			LastTileFlipped:     athlete.TilePhoto,
		},
		{
			Score:               0,
			FlippedTilesPattern: pattern(athlete.TilePhoto, athlete.TileTeamsPlayedOn),
			FirstTileFlipped:    athlete.TileTeamsPlayedOn,
			LastTileFlipped:     athlete.TilePhoto,
		},
	}

	st := athlete.Aggregate(athlete.SportBaseball, "2025-11-19", "David Eckstein", results)

	assert.Equal(t, 3, st.TotalPlays)
	assert.Equal(t, 67, st.PercentageCorrect)
	assert.Equal(t, 61, st.AverageScore)
	assert.Equal(t, 91, st.AverageCorrectScore)
	assert.Equal(t, 97, st.HighestScore)
	assert.Equal(t, athlete.TileTeamsPlayedOn, st.MostCommonFirstTileFlipped)
	assert.Equal(t, athlete.TilePhoto, st.MostCommonLastTileFlipped)
	assert.Equal(t, athlete.TileTeamsPlayedOn, st.MostCommonTileFlipped)
	// Every tile but three has zero flips; the first in board order wins.
	assert.Equal(t, athlete.TilePlayerInformation, st.LeastCommonTileFlipped)
	assert.Equal(t, 3, st.MostFlippedTracker[athlete.TileTeamsPlayedOn])
	assert.Equal(t, 2, st.MostFlippedTracker[athlete.TilePhoto])
	assert.Equal(t, 1, st.FirstFlippedTracker[athlete.TileBio])
}

func TestAggregateAllNegative(t *testing.T) {
	st := athlete.Aggregate(athlete.SportFootball, "d", "n", []athlete.Result{{Score: -4}, {Score: -10}})
	assert.Equal(t, -4, st.HighestScore)
	assert.Equal(t, 0, st.PercentageCorrect)
	assert.Equal(t, 0, st.AverageCorrectScore)
	assert.Equal(t, -7, st.AverageScore)
}
