package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/magiccup/fantastat/internal/importer"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/metrics"
	"github.com/magiccup/fantastat/internal/notifier"
	"github.com/magiccup/fantastat/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metricsSvc metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metricsSvc,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metricsSvc metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metricsSvc,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// SendImportSummary announces a finished import run on the channel.
func (s *Notifier) SendImportSummary(report *importer.Report, dryRun bool) error {
	msg := s.formatImportSummary(report)
	return s.sendMessage(msg, dryRun)
}

// SendLeaderboard posts the ranked players with their statistics.
func (s *Notifier) SendLeaderboard(players []league.Player, summary stats.Summary, dryRun bool) error {
	msg := s.formatLeaderboard(players, summary)
	return s.sendMessage(msg, dryRun)
}

func (s *Notifier) formatImportSummary(report *importer.Report) slack.Message {
	blocks := make([]slack.Block, 0)

	title := "Players imported"
	if report.Day > 0 {
		title = fmt.Sprintf("Matchday %d imported", report.Day)
	}
	headerText := slack.NewTextBlockObject("plain_text", title, false, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := fmt.Sprintf("Lines: %d\nCreated: %d\nUpdated: %d\nUnchanged: %d",
		report.Total, report.Created, report.Updated, report.Unchanged)
	if len(report.Errors) > 0 {
		details += fmt.Sprintf("\nSkipped lines: %d", len(report.Errors))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatLeaderboard(players []league.Player, summary stats.Summary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "League leaderboard", false, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var sb strings.Builder
	for i, p := range players {
		if i >= 10 {
			break
		}
		avg := summary[p.Code]
		sb.WriteString(fmt.Sprintf("%2d. %-20s %s  FV %.3f  V %.3f  rate %.1f%%\n",
			i+1, p.Name, p.RealTeam, avg.FVAvg, avg.VAvg, avg.Rate))
	}
	if sb.Len() == 0 {
		sb.WriteString("No players yet.")
	}
	body := slack.NewTextBlockObject("mrkdwn", "```"+sb.String()+"```", false, false)
	blocks = append(blocks, slack.NewSectionBlock(body, nil, nil))

	return slack.NewBlockMessage(blocks...)
}
