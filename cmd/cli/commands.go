package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	roleFlag string
	sortFlag string
	dayFlag  int
	outFlag  string
)

func init() {
	playersCmd.Flags().StringVar(&roleFlag, "role", "", "Filter by role (goalkeeper, defender, midfielder, forward)")
	playersCmd.Flags().StringVar(&sortFlag, "sort", "code", "Sort column (code, name, real_team, fv_avg, v_avg, rate, cost, cost_indicator)")
	evaluationsCmd.Flags().StringVar(&roleFlag, "role", "", "Filter by role")
	evaluationsCmd.Flags().StringVar(&sortFlag, "sort", "player_code", "Sort column (player_code, player_name, player_team, fanta_vote, vote, cost)")
	evaluationsCmd.Flags().IntVar(&dayFlag, "day", 1, "Matchday to list")
	clearCmd.Flags().IntVar(&dayFlag, "day", 0, "Clear only this matchday's evaluations")
	reportCmd.Flags().StringVar(&outFlag, "out", "players_stat.html", "Output file for the HTML report")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(evaluationsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importPlayersCmd)
	rootCmd.AddCommand(importEvaluationsCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List the imported matchdays",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/days")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players with their statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if roleFlag != "" {
			query.Set("role", roleFlag)
		}
		query.Set("sort", sortFlag)
		return performGetRequest("/players?" + query.Encode())
	},
}

var evaluationsCmd = &cobra.Command{
	Use:   "evaluations",
	Short: "List a matchday's evaluations",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("day", fmt.Sprint(dayFlag))
		if roleFlag != "" {
			query.Set("role", roleFlag)
		}
		query.Set("sort", sortFlag)
		return performGetRequest("/evaluations?" + query.Encode())
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the computed per-player statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Download the HTML report",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(host + "/report")
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		f, err := os.Create(outFlag)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()

		if _, err := io.Copy(f, resp.Body); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", outFlag)
		return nil
	},
}

var importPlayersCmd = &cobra.Command{
	Use:   "import-players FILE",
	Short: "Import a pipe-delimited player file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performFileUpload("/import/players", args[0])
	},
}

var importEvaluationsCmd = &cobra.Command{
	Use:   "import-evaluations FILE",
	Short: "Import a matchday evaluation file (day taken from the filename)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/import/evaluations?file=" + url.QueryEscape(filepath.Base(args[0]))
		return performFileUpload(endpoint, args[0])
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the store, or one matchday with --day",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/clear"
		if dayFlag > 0 {
			endpoint += fmt.Sprintf("?day=%d", dayFlag)
		}
		return performGetRequest(endpoint)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Download a league snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(host + "/export")
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create snapshot file: %w", err)
		}
		defer f.Close()

		if _, err := io.Copy(f, resp.Body); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		fmt.Printf("Snapshot written to %s\n", args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore FILE",
	Short: "Restore the league from a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performFileUpload("/restore", args[0])
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

func performFileUpload(endpoint, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	url := host + endpoint
	fmt.Printf("Uploading %s to %s\n", path, url)

	resp, err := http.Post(url, "application/octet-stream", f)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
