package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/athleteunknown/internal/athlete"
	"github.com/playperu/athleteunknown/internal/dataset"
)

const baseballJSON = `[
  {
    "name": "David Eckstein",
    "sportsReferencePath": "e/eckstda01",
    "bio": "DOB: January 20, 1975 in Sanford, FL",
    "yearsActive": "2001-2010",
    "teamsPlayedOn": "ANA, STL, TOR, ARI, SDP",
    "photo": ""
  },
  {"name": "Ozzie Smith", "sport": "baseball"}
]`

func write(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "baseball.json", baseballJSON)
	write(t, dir, "football.json", `[{"name": "Steve McNair", "dailyNumber": 3}]`)
	write(t, dir, "curling.json", `not even json`)

	got, err := dataset.LoadDir(dir)
	require.NoError(t, err)

	require.Len(t, got[athlete.SportBaseball], 2)
	first := got[athlete.SportBaseball][0]
	assert.Equal(t, "David Eckstein", first.Name)
	assert.Equal(t, athlete.SportBaseball, first.Sport)
	assert.Equal(t, "2001-2010", first.YearsActive)
	assert.Equal(t, "e/eckstda01", first.SportsReferencePath)

	require.Len(t, got[athlete.SportFootball], 1)
	assert.Equal(t, 3, got[athlete.SportFootball][0].DailyNumber)

	_, ok := got[athlete.SportBasketball]
	assert.False(t, ok, "missing file should be skipped")
}

func TestLoadDirMalformed(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "basketball.json", `{"name": "not an array"}`)

	_, err := dataset.LoadDir(dir)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "basketball.json"), "error should name the file: %v", err)
}

func TestLoadDirMissingName(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "baseball.json", `[{"name": "A"}, {"name": "  "}]`)

	_, err := dataset.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player 1")
}

func TestLoadDirEmpty(t *testing.T) {
	got, err := dataset.LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}
