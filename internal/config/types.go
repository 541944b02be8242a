package config

// Config holds all configuration for the application.
type Config struct {
	DBName     string
	Port       string
	ReportPath string
	Slack      SlackConfig
	Turso      TursoConfig
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
