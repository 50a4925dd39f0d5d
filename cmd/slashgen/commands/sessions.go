package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

var sessionsServerURL string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect sessions on a running server",
}

var sessionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session statistics",
	RunE:  runSessionsStats,
}

func init() {
	sessionsCmd.PersistentFlags().StringVar(&sessionsServerURL, "server", "http://127.0.0.1:8080", "Server base URL")
	sessionsCmd.AddCommand(sessionsStatsCmd)
}

func runSessionsStats(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(sessionsServerURL + "/session/stats")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var stats types.SessionStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return err
	}

	fmt.Printf("Sessions:     %d\n", stats.Total)
	fmt.Printf("Active (1h):  %d\n", stats.Active)
	fmt.Printf("Unique users: %d\n", stats.UniqueUsers)
	return nil
}
