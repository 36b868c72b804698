package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var faultsLimit int

// faultsCmd represents the faults command
var faultsCmd = &cobra.Command{
	Use:   "faults",
	Short: "Inspect intercepted faults",
	Long:  `Commands for inspecting faults intercepted by a running faultguard ops server.`,
}

// faultsListCmd represents the faults list command
var faultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent intercepted faults",
	Long:  `Retrieve and display the most recent intercepted faults from the ops server.`,
	RunE:  runFaultsList,
}

func init() {
	rootCmd.AddCommand(faultsCmd)
	faultsCmd.AddCommand(faultsListCmd)

	faultsListCmd.Flags().IntVarP(&faultsLimit, "limit", "n", 50, "maximum number of faults to fetch")
}

type faultsListResponse struct {
	Faults []faultSample `json:"faults"`
	Count  int           `json:"count"`
}

type faultSample struct {
	ID       string         `json:"id"`
	Category string         `json:"category"`
	Message  string         `json:"message"`
	Context  map[string]any `json:"context"`
	Duration float64        `json:"duration_seconds"`
	Time     time.Time      `json:"time"`
}

func runFaultsList(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("%s/faults?n=%d", GetServerURL(), faultsLimit)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to ops server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result faultsListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if IsJSONOutput() {
		// Output as JSON
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
	} else {
		// Output as table
		if len(result.Faults) == 0 {
			fmt.Println("No faults intercepted")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Category", "Message", "Duration", "Time")

		for _, f := range result.Faults {
			message := f.Message
			if len(message) > 60 {
				message = message[:57] + "..."
			}

			table.Append(
				f.ID,
				f.Category,
				message,
				fmt.Sprintf("%.3fs", f.Duration),
				f.Time.Format(time.RFC3339),
			)
		}

		table.Render()
		fmt.Printf("\nTotal faults: %d\n", result.Count)
	}

	return nil
}
