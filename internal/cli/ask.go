package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillmorph/assistant-go/internal/agent"
	"github.com/skillmorph/assistant-go/internal/llm"
	"github.com/skillmorph/assistant-go/internal/metrics"
	"github.com/skillmorph/assistant-go/internal/tools"
)

var askShowStats bool

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Ask a question about the course catalog",
	Long: `Ask a natural-language question about the course catalog and get an
LLM-synthesized answer backed by live database queries.

Examples:
  skillmorph ask "How many courses are there per category?"
  skillmorph ask "Find me a React course"
  skillmorph ask "What can I learn for under 30 bucks?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowStats, "stats", false, "print timing and token stats after the answer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	collector := metrics.NewCollector()
	model, err := llm.NewModel(ctx, cfg, collector)
	if err != nil {
		return fmt.Errorf("init model: %w", err)
	}

	executor := tools.NewExecutor(dbClient, logger, collector)
	assistant := agent.New(model, executor, logger, collector, cfg.MaxTurns)

	fmt.Fprintln(os.Stderr, hintStyle().Render("Thinking..."))
	answer, err := assistant.Run(ctx, query, nil)
	if err != nil {
		if errors.Is(err, llm.ErrFatalAPI) {
			fmt.Fprintln(os.Stderr, errorStyle().Render("The provider rejected the request. Check your API key, quota and billing."))
		}
		return fmt.Errorf("run agent: %w", err)
	}

	fmt.Println(answerStyle().Render(answer))

	if askShowStats {
		printStats(collector.Snapshot())
	}
	return nil
}

func printStats(snap metrics.Snapshot) {
	fmt.Fprintln(os.Stderr)
	if snap.LLMChat != nil {
		line := fmt.Sprintf("llm: %d calls, %d ms total", snap.LLMChat.Count, snap.LLMChat.TotalTimeMs)
		if snap.LLMChat.TotalInputTokens != nil {
			line += fmt.Sprintf(", ~%d in / ~%d out tokens",
				*snap.LLMChat.TotalInputTokens, *snap.LLMChat.TotalOutputTokens)
		}
		fmt.Fprintln(os.Stderr, hintStyle().Render(line))
	}
	if snap.CatalogQuery != nil {
		fmt.Fprintln(os.Stderr, hintStyle().Render(
			fmt.Sprintf("queries: %d, %d ms total", snap.CatalogQuery.Count, snap.CatalogQuery.TotalTimeMs)))
	}
}
