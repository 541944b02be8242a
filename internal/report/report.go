// Package report renders the per-role player statistics as an HTML document.
package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/metrics"
	"github.com/magiccup/fantastat/internal/stats"
)

// Generator builds the league report from the store and the stats engine.
type Generator struct {
	store   league.LeagueStore
	engine  *stats.Engine
	metrics metrics.Metrics
}

// New creates a new report Generator.
func New(store league.LeagueStore, engine *stats.Engine, metricsSvc metrics.Metrics) *Generator {
	return &Generator{
		store:   store,
		engine:  engine,
		metrics: metricsSvc,
	}
}

// sectionTitles keeps the original report's Italian role headings.
var sectionTitles = map[league.Role]string{
	league.RoleGoalkeeper: "Portieri",
	league.RoleDefender:   "Difensori",
	league.RoleMidfielder: "Centrocampisti",
	league.RoleForward:    "Attaccanti",
}

type row struct {
	Code          int
	Name          string
	Team          string
	FVAvg         string
	VAvg          string
	Rate          string
	CostIndicator string

	rate  float64
	fvAvg float64
}

type section struct {
	Title string
	Rows  []row
}

var reportTemplate = template.Must(template.New("report").Parse(`{{range .}}<br><strong>{{.Title}}</strong><br>
<table bgcolor="#FFFFF" border="2">
  <tr bgcolor="66CCCC">
    <td align=center><b>codice</b></td>
    <td align=center width=120><b>Giocatore</b></td>
    <td align=center width=40><b>squadra</b></td>
    <td align=center width=60><b>media FV</b></td>
    <td align=center width=60><b>media V</b></td>
    <td align=center width=60><b>affidabilita'</b></td>
    <td align=center width=60><b>valutazione</b></td>
  </tr>
{{- range .Rows}}
  <tr>
    <td align=center>{{.Code}}</td>
    <td width=120>{{.Name}}</td>
    <td align=center>{{.Team}}</td>
    <td width=60 align=center>{{.FVAvg}}</td>
    <td width=60 align=center>{{.VAvg}}</td>
    <td width=60 align=center>{{.Rate}}</td>
    <td width=60 align=center>{{.CostIndicator}}</td>
  </tr>
{{- end}}
</table>
{{end}}`))

// Build writes the full HTML report to w: one table per role, rows ranked by
// participation rate, then fanta vote average, both descending. Statistics
// are rounded to three decimals.
func (g *Generator) Build(w io.Writer) error {
	summary, err := g.engine.Compute(nil)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	var sections []section
	for _, role := range league.Roles {
		players, err := g.store.GetPlayersByRole(role)
		if err != nil {
			return fmt.Errorf("failed to load %s players: %w", role, err)
		}

		sec := section{Title: sectionTitles[role]}
		for _, p := range players {
			avg := summary[p.Code]
			sec.Rows = append(sec.Rows, row{
				Code:          p.Code,
				Name:          p.Name,
				Team:          p.RealTeam,
				FVAvg:         formatStat(avg.FVAvg),
				VAvg:          formatStat(avg.VAvg),
				Rate:          formatStat(avg.Rate),
				CostIndicator: avg.Cost.String(),
				rate:          avg.Rate,
				fvAvg:         avg.FVAvg,
			})
		}
		sort.SliceStable(sec.Rows, func(i, j int) bool {
			if sec.Rows[i].rate != sec.Rows[j].rate {
				return sec.Rows[i].rate > sec.Rows[j].rate
			}
			return sec.Rows[i].fvAvg > sec.Rows[j].fvAvg
		})
		sections = append(sections, sec)
	}

	if err := reportTemplate.Execute(w, sections); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	g.metrics.IncReportsBuilt()
	return nil
}

// WriteFile renders the report to the given path.
func (g *Generator) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := g.Build(f); err != nil {
		return err
	}
	log.Info("Report generated", "path", path)
	return nil
}

// formatStat rounds to three decimals, trimming trailing zeros the way the
// original report printed its numbers.
func formatStat(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
