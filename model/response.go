//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package model

// ResponseMessage is the assistant message of a chat response.
type ResponseMessage struct {
	Role      string     `json:"role,omitempty"`
	Content   string     `json:"content,omitempty"`
	Thinking  string     `json:"thinking,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Images    []string   `json:"images,omitempty"`
}

// ChatResponse is a (non-streamed, or final streamed) chat response.
type ChatResponse struct {
	Model              string           `json:"model,omitempty"`
	CreatedAt          string           `json:"created_at,omitempty"`
	Message            *ResponseMessage `json:"message,omitempty"`
	Done               bool             `json:"done,omitempty"`
	DoneReason         string           `json:"done_reason,omitempty"`
	TotalDuration      int64            `json:"total_duration,omitempty"`
	LoadDuration       int64            `json:"load_duration,omitempty"`
	PromptEvalCount    int              `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64            `json:"prompt_eval_duration,omitempty"`
	EvalCount          int              `json:"eval_count,omitempty"`
	EvalDuration       int64            `json:"eval_duration,omitempty"`
}

// Content returns the message content, if any.
func (rsp *ChatResponse) Content() string {
	if rsp == nil || rsp.Message == nil {
		return ""
	}
	return rsp.Message.Content
}

// ToolCalls returns the tool calls of the response message in order.
func (rsp *ChatResponse) ToolCalls() []ToolCall {
	if rsp == nil || rsp.Message == nil {
		return nil
	}
	return rsp.Message.ToolCalls
}

// HasToolCalls reports whether the response requests any tool call.
func (rsp *ChatResponse) HasToolCalls() bool {
	return len(rsp.ToolCalls()) > 0
}

// AssistantMessage converts the response message into a ChatMessage that
// can be appended to the conversation before the tool results.
func (rsp *ChatResponse) AssistantMessage() ChatMessage {
	msg := ChatMessage{Role: RoleAssistant}
	if rsp != nil && rsp.Message != nil {
		msg.Content = rsp.Message.Content
		msg.Images = rsp.Message.Images
		msg.ToolCalls = rsp.Message.ToolCalls
	}
	return msg
}
