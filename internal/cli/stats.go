package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillmorph/assistant-go/internal/client"
	"github.com/skillmorph/assistant-go/internal/metrics"
)

var statsServerURL string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show runtime statistics of a running skillmorph server",
	Long: `Show request counts, timings and token usage of a running server.

Examples:
  skillmorph stats
  skillmorph stats --server http://prod-host:8080`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsServerURL, "server", "", "server base URL (default $SKILLMORPH_SERVER_URL or http://localhost:8080)")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	c := client.New(statsServerURL)

	if err := c.Healthy(ctx); err != nil {
		fmt.Println(errorStyle().Render("server unhealthy"))
		return err
	}

	snap, err := c.Stats(ctx)
	if err != nil {
		return fmt.Errorf("get server stats: %w", err)
	}

	fmt.Printf("Uptime: %.0fs\n\n", snap.UptimeSeconds)
	printOpStats("LLM calls", snap.LLMChat)
	printOpStats("Catalog queries", snap.CatalogQuery)
	printOpStats("Agent runs", snap.AgentRun)
	return nil
}

func printOpStats(label string, op *metrics.OperationSnapshot) {
	if op == nil {
		fmt.Printf("%s: none\n", label)
		return
	}
	fmt.Printf("%s: %d (avg %.1fms, min %dms, max %dms)\n",
		label, op.Count, op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
	if op.TotalInputTokens != nil {
		fmt.Println(hintStyle().Render(fmt.Sprintf(
			"  tokens: ~%d in / ~%d out", *op.TotalInputTokens, *op.TotalOutputTokens)))
	}
}
