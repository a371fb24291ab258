// Package models defines data structures for the SkillMorph catalog assistant.
package models

import "encoding/json"

// Role identifies who produced a conversation message.
type Role string

// The four roles a message can carry. The set is closed: conversion to the
// LLM representation rejects anything else.
const (
	RoleSystem    Role = "system"
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleHuman, RoleAssistant, RoleTool:
		return true
	}
	return false
}

// ActionRequest is a single tool invocation requested by the assistant.
// Arguments holds the provider payload verbatim; it may be a JSON object or a
// JSON-encoded string and is normalized at the agent boundary, not here.
type ActionRequest struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Message is one turn in a conversation. A tool message must immediately
// follow an assistant message carrying at least one action request, one tool
// message per request, in request order.
type Message struct {
	Role           Role            `json:"role"`
	Content        string          `json:"content"`
	ActionRequests []ActionRequest `json:"action_requests,omitempty"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// HumanMessage builds a human-role message.
func HumanMessage(content string) Message {
	return Message{Role: RoleHuman, Content: content}
}

// ToolMessage builds a tool-role message carrying a serialized query result.
func ToolMessage(content string) Message {
	return Message{Role: RoleTool, Content: content}
}

// RequestsActions reports whether the message is an assistant turn that asked
// for at least one tool invocation.
func (m Message) RequestsActions() bool {
	return m.Role == RoleAssistant && len(m.ActionRequests) > 0
}
