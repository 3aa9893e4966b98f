//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package model holds the chat request and response shapes that carry tool
// declarations to an upstream model and tool calls back from it.
package model

// Role represents the role of a message author.
type Role string

// Role constants for message authors.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is the role of the message author.
	Role Role `json:"role"`
	// Content is the message content.
	Content string `json:"content"`
	// Images holds base64 encoded images for multimodal models.
	Images []string `json:"images,omitempty"`
	// ToolCalls are the calls requested by an assistant message.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// ToolName names the tool that produced a tool message.
	ToolName string `json:"tool_name,omitempty"`
	// ToolCallID pairs a tool message with the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// NewToolMessage creates a new tool message.
func NewToolMessage(toolID, toolName, content string) ChatMessage {
	return ChatMessage{Role: RoleTool, ToolCallID: toolID, ToolName: toolName, Content: content}
}

// HasToolCalls reports whether the message requests any tool call.
func (m ChatMessage) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// ChatRequest is the tool-relevant part of a chat request.
type ChatRequest struct {
	// Model is the model name.
	Model string `json:"model"`
	// Messages is the conversation so far.
	Messages []ChatMessage `json:"messages"`
	// Tools are the tools the model may call.
	Tools []ToolDefinition `json:"tools,omitempty"`
	// Stream asks for a streamed response.
	Stream bool `json:"stream"`
}
