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

type Server struct {
	Store          league.LeagueStore
	Engine         *stats.Engine
	Importer       *importer.Importer
	Report         *report.Generator
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
