package llm

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/skillmorph/assistant-go/internal/models"
	"github.com/tmc/langchaingo/llms"
)

// ToLangChain converts the conversation into langchaingo's native message
// representation. Tool messages are paired with the preceding assistant
// turn's action requests in order, which supplies the tool-call IDs chat
// providers insist on. A tool message whose content is not valid JSON is
// degraded to a system notice so one malformed payload never aborts the
// whole conversation.
func ToLangChain(msgs []models.Message) ([]llms.MessageContent, error) {
	out := make([]llms.MessageContent, 0, len(msgs))
	var pending []models.ActionRequest

	for _, msg := range msgs {
		switch msg.Role {
		case models.RoleSystem:
			out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))

		case models.RoleHuman:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))

		case models.RoleAssistant:
			mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if msg.Content != "" {
				mc.Parts = append(mc.Parts, llms.TextContent{Text: msg.Content})
			}
			if len(msg.ActionRequests) > 0 {
				pending = append([]models.ActionRequest(nil), msg.ActionRequests...)
			}
			for _, req := range msg.ActionRequests {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   req.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      req.Name,
						Arguments: string(req.Arguments),
					},
				})
			}
			out = append(out, mc)

		case models.RoleTool:
			// Each tool message consumes one pending request, in order,
			// even when its payload turns out to be malformed.
			out = append(out, toolTurn(msg, pending))
			if len(pending) > 0 {
				pending = pending[1:]
			}

		default:
			return nil, fmt.Errorf("unknown message role: %q", msg.Role)
		}
	}

	return out, nil
}

// toolTurn builds a tool-result turn from a stored tool message.
func toolTurn(msg models.Message, pending []models.ActionRequest) llms.MessageContent {
	if !json.Valid([]byte(msg.Content)) {
		return llms.TextParts(llms.ChatMessageTypeSystem,
			"A tool result in this conversation could not be parsed and was discarded.")
	}

	var id, name string
	if len(pending) > 0 {
		id = pending[0].ID
		name = pending[0].Name
	}
	// The serialized result names its action; prefer it when present.
	var result struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal([]byte(msg.Content), &result); err == nil && result.Action != "" {
		name = result.Action
	}

	return llms.MessageContent{
		Role: llms.ChatMessageTypeTool,
		Parts: []llms.ContentPart{
			llms.ToolCallResponse{
				ToolCallID: id,
				Name:       name,
				Content:    msg.Content,
			},
		},
	}
}

// FromLangChain converts langchaingo messages back into the core
// representation. Inverse of ToLangChain for well-formed conversations.
func FromLangChain(lcMessages []llms.MessageContent) []models.Message {
	out := make([]models.Message, 0, len(lcMessages))
	for _, mc := range lcMessages {
		msg := models.Message{}
		switch mc.Role {
		case llms.ChatMessageTypeSystem:
			msg.Role = models.RoleSystem
		case llms.ChatMessageTypeHuman, llms.ChatMessageTypeGeneric:
			msg.Role = models.RoleHuman
		case llms.ChatMessageTypeAI:
			msg.Role = models.RoleAssistant
		case llms.ChatMessageTypeTool:
			msg.Role = models.RoleTool
		default:
			msg.Role = models.RoleHuman
		}

		for _, part := range mc.Parts {
			switch p := part.(type) {
			case llms.TextContent:
				msg.Content += p.Text
			case llms.ToolCall:
				req := models.ActionRequest{ID: p.ID}
				if p.FunctionCall != nil {
					req.Name = p.FunctionCall.Name
					req.Arguments = json.RawMessage(p.FunctionCall.Arguments)
				}
				msg.ActionRequests = append(msg.ActionRequests, req)
			case llms.ToolCallResponse:
				msg.Content = p.Content
			}
		}
		out = append(out, msg)
	}
	return out
}

// assistantFromChoice maps one model response choice onto an assistant
// message. Providers that return tool calls without IDs get synthesized ones
// so later tool results can be correlated.
func assistantFromChoice(choice *llms.ContentChoice) models.Message {
	msg := models.Message{Role: models.RoleAssistant, Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		id := tc.ID
		if id == "" {
			id = uuid.NewString()
		}
		msg.ActionRequests = append(msg.ActionRequests, models.ActionRequest{
			ID:        id,
			Name:      tc.FunctionCall.Name,
			Arguments: json.RawMessage(tc.FunctionCall.Arguments),
		})
	}
	return msg
}
