package http_test

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magiccup/fantastat/internal/config"
	"github.com/magiccup/fantastat/internal/database"
	appHttp "github.com/magiccup/fantastat/internal/http"
	"github.com/magiccup/fantastat/internal/importer"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/metrics"
	"github.com/magiccup/fantastat/internal/notifier"
	"github.com/magiccup/fantastat/internal/report"
	"github.com/magiccup/fantastat/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type testEnv struct {
	server   *appHttp.Server
	store    league.LeagueStore
	notifier *notifier.Mock
	cfg      config.Config
	teardown func()
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := league.New(db)
	m := metrics.NewMock()
	engine := stats.New(store, m)
	imp := importer.New(store, m)
	gen := report.New(store, engine, m)
	notif := notifier.NewMock()

	cfg := config.Config{ReportPath: filepath.Join(t.TempDir(), "players_stat.html")}
	server := appHttp.NewServer(store, engine, imp, gen, notif, m, nethttp.NotFoundHandler(), cfg)
	return &testEnv{server: server, store: store, notifier: notif, cfg: cfg, teardown: dbTeardown}
}

func (env *testEnv) seed(t *testing.T) {
	t.Helper()
	require.NoError(t, env.store.BulkCreatePlayers([]league.Player{
		{Code: 100, Name: "ALPHA", RealTeam: "ROM", Role: league.RoleGoalkeeper, Cost: 18},
		{Code: 550, Name: "BRAVO", RealTeam: "NAP", Role: league.RoleMidfielder, Cost: 25},
	}))
	require.NoError(t, env.store.BulkCreateEvaluations([]league.Evaluation{
		{PlayerCode: 100, Day: 1, Vote: 6, FantaVote: 6.5, Cost: 19},
		{PlayerCode: 550, Day: 1, Vote: 7, FantaVote: 8, Cost: 26},
	}))
}

func TestHealthCheck(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "OK!", rec.Body.String())
}

func TestListPlayers(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/players?sort=fv_avg", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var views []struct {
		league.Player
		Stats stats.PlayerAverages `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	require.Len(t, views, 2)
	assert.Equal(t, 550, views[0].Code)
	assert.InDelta(t, 8.0, views[0].Stats.FVAvg, 1e-9)
}

func TestListPlayersBadSortColumn(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/players?sort=nope", nil))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestCreatePlayerDerivesRole(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	body := `{"code": 850, "name": "Striker", "real_team": "MIL", "cost": 30}`
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("POST", "/players", strings.NewReader(body)))
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	p, err := env.store.GetPlayerByCode(850)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, league.RoleForward, p.Role)
}

func TestUpdateMissingPlayerReturns404(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	body := `{"code": 42, "name": "Ghost", "real_team": "XXX", "role": "goalkeeper"}`
	req := httptest.NewRequest("PUT", "/players", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestDeletePlayer(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("DELETE", "/players?code=100", nil))
	assert.Equal(t, nethttp.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("DELETE", "/players?code=100", nil))
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestListEvaluationsRequiresDay(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/evaluations", nil))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestListEvaluations(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/evaluations?day=1&sort=fanta_vote", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var evs []league.Evaluation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&evs))
	require.Len(t, evs, 2)
	assert.Equal(t, 550, evs[0].PlayerCode)
	assert.Equal(t, "BRAVO", evs[0].PlayerName)
}

func TestCreateEvaluationUnknownPlayer(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	body := `{"player_code": 999, "day": 1, "vote": 6, "fanta_vote": 6, "cost": 10}`
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("POST", "/evaluations", strings.NewReader(body)))
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestUpdateEvaluation(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	body := `{"player_code": 100, "day": 1, "vote": 7, "fanta_vote": 7.5, "cost": 21}`
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("PUT", "/evaluations", strings.NewReader(body)))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	ev, err := env.store.GetEvaluation(100, 1)
	require.NoError(t, err)
	assert.Equal(t, 7.5, ev.FantaVote)
	assert.Equal(t, 21, ev.Cost)
}

func TestDays(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/days", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var days []int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&days))
	assert.Equal(t, []int{1}, days)
}

func TestStats(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/stats", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var summary map[string]stats.PlayerAverages
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	require.Contains(t, summary, "100")
	assert.InDelta(t, 6.5, summary["100"].FVAvg, 1e-9)
}

func TestReport(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/report", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Portieri")
}

func TestReportSaveToDisk(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/report?save=true", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	data, err := os.ReadFile(env.cfg.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Portieri")
}

func TestImportPlayers(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	body := "100|Smith|ROM|0|0|19\n300|Verdi|INT|0|0|12\n"
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("POST", "/import/players", strings.NewReader(body)))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var rep importer.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	assert.Equal(t, 2, rep.Created)

	require.Len(t, env.notifier.ImportSummaryCalls, 1)
}

func TestImportEvaluations(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	body := "100|Smith|ROM|7|6.5|20\n"
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("POST", "/import/evaluations?file=MCC2.txt", strings.NewReader(body)))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var rep importer.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	assert.Equal(t, 2, rep.Day)

	ev, err := env.store.GetEvaluation(100, 2)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, 7.0, ev.FantaVote)
}

func TestImportEvaluationsBadFilename(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("POST", "/import/evaluations?file=players.txt", strings.NewReader("")))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("POST", "/import/evaluations", strings.NewReader("")))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestClearDay(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/clear?day=1", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	days, err := env.store.GetDays()
	require.NoError(t, err)
	assert.Empty(t, days)

	count, err := env.store.CountPlayers()
	require.NoError(t, err)
	assert.Equal(t, 2, count, "players survive a day clear")
}

func TestClearStore(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/clear", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "Store cleared!", rec.Body.String())

	count, err := env.store.CountPlayers()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExportRestoreRoundTrip(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	exportRec := httptest.NewRecorder()
	env.server.ServeHTTP(exportRec, httptest.NewRequest("GET", "/export", nil))
	require.Equal(t, nethttp.StatusOK, exportRec.Code)
	assert.Equal(t, "application/x-msgpack", exportRec.Header().Get("Content-Type"))

	var snap league.Snapshot
	require.NoError(t, msgpack.Unmarshal(exportRec.Body.Bytes(), &snap))
	assert.Len(t, snap.Players, 2)

	// Restore the payload into a fresh server.
	other := setupServer(t)
	defer other.teardown()

	rec := httptest.NewRecorder()
	other.server.ServeHTTP(rec, httptest.NewRequest("POST", "/restore", bytes.NewReader(exportRec.Body.Bytes())))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	count, err := other.store.CountPlayers()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	evs, err := other.store.GetEvaluations(1, "")
	require.NoError(t, err)
	assert.Len(t, evs, 2)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("POST", "/restore", strings.NewReader("not msgpack at all")))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestNotifyLeaderboard(t *testing.T) {
	env := setupServer(t)
	defer env.teardown()
	env.seed(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest("GET", "/notify/leaderboard", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Len(t, env.notifier.LeaderboardCalls, 1)
}
