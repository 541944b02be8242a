package http

import (
	"net/http"

	"github.com/magiccup/fantastat/internal/config"
	"github.com/magiccup/fantastat/internal/importer"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/metrics"
	"github.com/magiccup/fantastat/internal/notifier"
	"github.com/magiccup/fantastat/internal/report"
	"github.com/magiccup/fantastat/internal/stats"
)

func NewServer(
	store league.LeagueStore,
	engine *stats.Engine,
	imp *importer.Importer,
	reportGen *report.Generator,
	notif notifier.Notifier,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
) *Server {
	server := &Server{
		Store:          store,
		Engine:         engine,
		Importer:       imp,
		Report:         reportGen,
		Notifier:       notif,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.CreatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("PUT /players", Chain(s.UpdatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /players", Chain(s.DeletePlayerHandler(), paramsMiddleware))

	s.Router.Handle("GET /evaluations", Chain(s.ListEvaluationsHandler(), paramsMiddleware))
	s.Router.Handle("POST /evaluations", Chain(s.CreateEvaluationHandler(), paramsMiddleware))
	s.Router.Handle("PUT /evaluations", Chain(s.UpdateEvaluationHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /evaluations", Chain(s.DeleteEvaluationHandler(), paramsMiddleware))

	s.Router.Handle("GET /days", Chain(s.DaysHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /report", Chain(s.ReportHandler(), paramsMiddleware))

	s.Router.Handle("POST /import/players", Chain(s.ImportPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /import/evaluations", Chain(s.ImportEvaluationsHandler(), paramsMiddleware))

	s.Router.Handle("GET /clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("GET /export", Chain(s.ExportHandler(), paramsMiddleware))
	s.Router.Handle("POST /restore", Chain(s.RestoreHandler(), paramsMiddleware))

	s.Router.Handle("GET /notify/leaderboard", Chain(s.NotifyLeaderboardHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
