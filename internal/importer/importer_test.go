package importer_test

import (
	"strings"
	"testing"

	"github.com/magiccup/fantastat/internal/database"
	"github.com/magiccup/fantastat/internal/importer"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/metrics"
	"github.com/magiccup/fantastat/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupImporter(t *testing.T) (*importer.Importer, league.LeagueStore, *metrics.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := league.New(db)
	m := metrics.NewMock()
	return importer.New(store, m), store, m, dbTeardown
}

func TestDayFromPath(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"MCC12.txt", 12},
		{"MCC1.TXT", 1},
		{"season25/MCC3.txt", 3},
		{"./data/day_07.txt", 7},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			day, err := importer.DayFromPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, day)
		})
	}

	_, err := importer.DayFromPath("players.txt")
	assert.ErrorIs(t, err, importer.ErrMissingDayNumber)
}

func TestImportPlayers(t *testing.T) {
	imp, store, m, teardown := setupImporter(t)
	defer teardown()

	input := "100|Smith|ROM|0|0|19\n850|Rossi|JUV|0|0|35\n"
	report, err := imp.ImportPlayersFrom(strings.NewReader(input), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Created)
	assert.Zero(t, report.Updated)
	assert.Empty(t, report.Errors)
	assert.NotEmpty(t, report.BatchID)

	p, err := store.GetPlayerByCode(100)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "SMITH", p.Name)
	assert.Equal(t, league.RoleGoalkeeper, p.Role)

	fwd, err := store.GetPlayerByCode(850)
	require.NoError(t, err)
	require.NotNil(t, fwd)
	assert.Equal(t, league.RoleForward, fwd.Role)

	assert.Equal(t, 1, m.ImportRuns())
	assert.Equal(t, 2, m.LinesImported())
}

func TestImportPlayersReconcile(t *testing.T) {
	imp, store, _, teardown := setupImporter(t)
	defer teardown()

	_, err := imp.ImportPlayersFrom(strings.NewReader("100|Smith|ROM|0|0|19\n"), nil)
	require.NoError(t, err)

	// Same code, new team: update in place. Identical line: no-op.
	report, err := imp.ImportPlayersFrom(strings.NewReader("100|Smith|MIL|0|0|19\n"), nil)
	require.NoError(t, err)
	assert.Zero(t, report.Created)
	assert.Equal(t, 1, report.Updated)

	p, err := store.GetPlayerByCode(100)
	require.NoError(t, err)
	assert.Equal(t, "MIL", p.RealTeam)

	report, err = imp.ImportPlayersFrom(strings.NewReader("100|Smith|MIL|0|0|19\n"), nil)
	require.NoError(t, err)
	assert.Zero(t, report.Created)
	assert.Zero(t, report.Updated)
	assert.Equal(t, 1, report.Unchanged)
}

func TestImportPlayersCollectsBadLines(t *testing.T) {
	imp, store, _, teardown := setupImporter(t)
	defer teardown()

	input := "100|Smith|ROM|0|0|19\nnot-a-line\n-5|Bogus|XXX|0|0|1\n300|Verdi|INT|0|0|12\n"
	report, err := imp.ImportPlayersFrom(strings.NewReader(input), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Created)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, 2, report.Errors[0].Line)
	assert.Equal(t, 3, report.Errors[1].Line)

	count, err := store.CountPlayers()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestImportPlayersScrubsBOM(t *testing.T) {
	imp, store, _, teardown := setupImporter(t)
	defer teardown()

	input := "\xef\xbb\xbf100|Smith\u00a0|ROM|0|0|19\n"
	report, err := imp.ImportPlayersFrom(strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Empty(t, report.Errors)

	p, err := store.GetPlayerByCode(100)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "SMITH", p.Name)
}

func TestImportPlayersKeepsNbspAsSpace(t *testing.T) {
	imp, store, _, teardown := setupImporter(t)
	defer teardown()

	// A non-breaking space inside a name must not glue the words together.
	input := "100|De\u00a0Rossi|ROM|0|0|19\n"
	report, err := imp.ImportPlayersFrom(strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	p, err := store.GetPlayerByCode(100)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "DE ROSSI", p.Name)
}

func TestImportEvaluations(t *testing.T) {
	imp, store, _, teardown := setupImporter(t)
	defer teardown()

	_, err := imp.ImportPlayersFrom(strings.NewReader("100|Smith|ROM|0|0|19\n"), nil)
	require.NoError(t, err)

	report, err := imp.ImportEvaluationsFrom(1, strings.NewReader("100|Smith|ROM|6.5|6|20\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Day)
	assert.Equal(t, 1, report.Total)
	assert.Empty(t, report.Errors)

	ev, err := store.GetEvaluation(100, 1)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, 6.5, ev.FantaVote)
	assert.Equal(t, 6.0, ev.Vote)
	assert.Equal(t, 20, ev.Cost)
}

func TestImportEvaluationsReplacesDay(t *testing.T) {
	imp, store, _, teardown := setupImporter(t)
	defer teardown()

	_, err := imp.ImportEvaluationsFrom(1, strings.NewReader("100|Smith|ROM|6.5|6|20\n"), nil)
	require.NoError(t, err)

	// Corrected file for the same day fully replaces the first import.
	_, err = imp.ImportEvaluationsFrom(1, strings.NewReader("100|Smith|ROM|7.5|7|21\n"), nil)
	require.NoError(t, err)

	evs, err := store.GetEvaluations(1, "")
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, 7.5, evs[0].FantaVote)
}

func TestImportEvaluationsCreatesUnknownPlayer(t *testing.T) {
	imp, store, _, teardown := setupImporter(t)
	defer teardown()

	report, err := imp.ImportEvaluationsFrom(3, strings.NewReader("550|Bianchi|NAP|8|7.5|22\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	p, err := store.GetPlayerByCode(550)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, league.RoleMidfielder, p.Role)
}

func TestImportEvaluationsDuplicateLine(t *testing.T) {
	imp, store, _, teardown := setupImporter(t)
	defer teardown()

	input := "100|Smith|ROM|6.5|6|20\n100|Smith|ROM|7|7|20\n"
	report, err := imp.ImportEvaluationsFrom(1, strings.NewReader(input), nil)
	require.NoError(t, err)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, 2, report.Errors[0].Line)

	evs, err := store.GetEvaluations(1, "")
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, 6.5, evs[0].FantaVote)
}

func TestImportThenComputeAverages(t *testing.T) {
	imp, store, m, teardown := setupImporter(t)
	defer teardown()

	_, err := imp.ImportPlayersFrom(strings.NewReader("100|Smith|ROM|0|0|18\n"), nil)
	require.NoError(t, err)

	_, err = imp.ImportEvaluationsFrom(1, strings.NewReader("100|Smith|ROM|6.5|6|19\n"), nil)
	require.NoError(t, err)
	_, err = imp.ImportEvaluationsFrom(2, strings.NewReader("100|Smith|ROM|0|0|19\n"), nil)
	require.NoError(t, err)

	// Re-importing day 2 and the player file must not change anything.
	_, err = imp.ImportEvaluationsFrom(2, strings.NewReader("100|Smith|ROM|0|0|19\n"), nil)
	require.NoError(t, err)
	rep, err := imp.ImportPlayersFrom(strings.NewReader("100|Smith|ROM|0|0|18\n"), nil)
	require.NoError(t, err)
	assert.Zero(t, rep.Created)
	assert.Zero(t, rep.Updated)
	assert.Equal(t, 1, rep.Unchanged)

	evs, err := store.GetEvaluations(2, "")
	require.NoError(t, err)
	require.Len(t, evs, 1)

	engine := stats.New(store, m)
	summary, err := engine.Compute(nil)
	require.NoError(t, err)

	avg := summary[100]
	assert.InDelta(t, 6.5, avg.FVAvg, 1e-9)
	assert.InDelta(t, 6.0, avg.VAvg, 1e-9)
	assert.InDelta(t, 50.0, avg.Rate, 1e-9)
	assert.Equal(t, "19 (+1)", avg.Cost.String())
}

func TestImportEvaluationsRejectsBadDay(t *testing.T) {
	imp, _, _, teardown := setupImporter(t)
	defer teardown()

	_, err := imp.ImportEvaluationsFrom(0, strings.NewReader(""), nil)
	assert.ErrorIs(t, err, league.ErrInvalidArgument)
}
