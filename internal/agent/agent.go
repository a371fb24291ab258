// Package agent implements the reasoning/action loop behind the SkillMorph
// catalog assistant. One Run call owns one conversation: it alternates a
// reasoning step with catalog-query execution until the model stops
// requesting actions, then returns the final assistant text.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/skillmorph/assistant-go/internal/metrics"
	"github.com/skillmorph/assistant-go/internal/models"
	"github.com/skillmorph/assistant-go/internal/tools"
	"github.com/tmc/langchaingo/llms"
)

// Reasoner is the opaque reasoning capability: given the conversation and the
// declared tools, it returns one assistant message carrying free text, action
// requests, or both. internal/llm provides the real implementation.
type Reasoner interface {
	Chat(ctx context.Context, msgs []models.Message, tools []llms.Tool) (models.Message, error)
}

// DefaultMaxTurns bounds reasoning round-trips per invocation so a model that
// keeps requesting actions cannot loop forever.
const DefaultMaxTurns = 8

// Agent ties the reasoning step and the query executor together.
type Agent struct {
	reasoner  Reasoner
	executor  *tools.Executor
	logger    *slog.Logger
	collector *metrics.Collector
	maxTurns  int
	defs      []llms.Tool
}

// New creates an agent. Logger and collector may be nil; maxTurns <= 0 means
// DefaultMaxTurns.
func New(reasoner Reasoner, executor *tools.Executor, logger *slog.Logger, collector *metrics.Collector, maxTurns int) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Agent{
		reasoner:  reasoner,
		executor:  executor,
		logger:    logger,
		collector: collector,
		maxTurns:  maxTurns,
		defs:      tools.Definitions(),
	}
}

// Run answers one user query. The conversation is seeded with the system
// prompt, the caller-supplied history, and the new human turn; it lives only
// for this call. History persistence across calls is the caller's concern.
//
// Failures inside actions are folded into the conversation as tool results so
// the model can respond to them; only reasoning-step errors are returned.
func (a *Agent) Run(ctx context.Context, query string, history []models.Message) (string, error) {
	start := time.Now()
	defer func() {
		if a.collector != nil {
			a.collector.RecordTiming(metrics.OpAgentRun, time.Since(start))
		}
	}()

	conversation := make([]models.Message, 0, len(history)+2)
	conversation = append(conversation, models.SystemMessage(systemPrompt))
	conversation = append(conversation, history...)
	conversation = append(conversation, models.HumanMessage(query))

	for turn := 0; turn < a.maxTurns; turn++ {
		reply, err := a.reasoner.Chat(ctx, conversation, a.defs)
		if err != nil {
			return "", fmt.Errorf("reasoning step: %w", err)
		}
		conversation = append(conversation, reply)

		if !reply.RequestsActions() {
			if strings.TrimSpace(reply.Content) == "" {
				return fallbackReply, nil
			}
			return reply.Content, nil
		}

		a.logger.Debug("executing action requests", "count", len(reply.ActionRequests), "turn", turn+1)
		for _, req := range reply.ActionRequests {
			if _, ok := tools.Lookup(req.Name); !ok {
				// Quirk carried over from the original agent: a request whose
				// name has no catalog entry is skipped without a tool message.
				// Logged so a catalog/model mismatch is visible to operators.
				a.logger.Warn("skipping action request with no catalog entry", "action", req.Name)
				continue
			}
			conversation = append(conversation, models.ToolMessage(a.runAction(ctx, req)))
		}
	}

	a.logger.Warn("reasoning loop hit turn ceiling", "max_turns", a.maxTurns)
	return turnLimitReply, nil
}

// runAction normalizes the request arguments, executes the action, and
// serializes the result. Never fails: problems come back as serialized error
// results naming the action.
func (a *Agent) runAction(ctx context.Context, req models.ActionRequest) string {
	var result tools.QueryResult

	value, err := decodeValue(req.Arguments)
	if err != nil {
		a.logger.Warn("invalid action arguments", "action", req.Name, "error", err)
		result = tools.QueryResult{
			Success: false,
			Error:   fmt.Sprintf("Error running tool %s: %v", req.Name, err),
		}
	} else {
		result = a.executor.Execute(ctx, req.Name, value)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		// QueryResult data is plain rows and counts; this should not happen.
		a.logger.Error("failed to serialize action result", "action", req.Name, "error", err)
		payload = []byte(fmt.Sprintf(`{"success":false,"error":"Error running tool %s: unserializable result."}`, req.Name))
	}
	return string(payload)
}

// decodeValue extracts the single string argument from an untrusted action
// request. Arguments may be a JSON object, a JSON-encoded string containing
// one (some providers double-encode), or absent. Nothing past this function
// trusts the provider payload shape.
func decodeValue(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}

	var args struct {
		Value any `json:"value"`
	}
	if err := json.Unmarshal([]byte(trimmed), &args); err == nil && trimmed[0] == '{' {
		return stringifyValue(args.Value), nil
	}

	var encoded string
	if err := json.Unmarshal([]byte(trimmed), &encoded); err == nil {
		encoded = strings.TrimSpace(encoded)
		if encoded == "" {
			return "", nil
		}
		if err := json.Unmarshal([]byte(encoded), &args); err == nil {
			return stringifyValue(args.Value), nil
		}
	}

	return "", fmt.Errorf(`invalid arguments: expected JSON like {"value": "..."}`)
}

// stringifyValue renders a decoded argument as the executor's string value.
// Models occasionally send numbers where strings are declared.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
