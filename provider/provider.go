package provider

import (
	"context"
	"fmt"

	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/tool"
)

type Role string

const ROLE_SYSTEM Role = "system"
const ROLE_USER Role = "user"
const ROLE_ASSISTANT Role = "assistant"
const ROLE_TOOL Role = "tool"

// Message is one turn of the conversation sent to a provider.
type Message struct {
	Role       Role             `json:"role"`
	Content    string           `json:"content"`
	Name       string           `json:"name,omitempty"`
	ToolCalls  []model.ToolCall `json:"tool_calls,omitempty"`
	ToolCallId string           `json:"tool_call_id,omitempty"`
}

func SystemMessage(content string) Message {
	return Message{Role: ROLE_SYSTEM, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: ROLE_USER, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: ROLE_ASSISTANT, Content: content}
}

type Config struct {
	Model       string   `json:"model"`
	Temperature float32  `json:"temperature"`
	MaxTokens   int      `json:"maxTokens"`
	TopP        float32  `json:"topP"`
	Stop        []string `json:"stop,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Model:       "llama3",
		Temperature: 0.7,
		MaxTokens:   2048,
		TopP:        0.9,
	}
}

type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

type Response struct {
	Content      string
	ToolCalls    []model.ToolCall
	FinishReason string
	Usage        TokenUsage
}

// Provider is the language model collaborator. Concrete HTTP clients
// implement it elsewhere; the engine only depends on this contract.
type Provider interface {
	ChatCompletion(ctx context.Context, messages []Message, config Config) (*Response, error)
	ChatCompletionWithTools(ctx context.Context, messages []Message, tools []tool.Definition, config Config) (*Response, error)
	StreamChatCompletion(ctx context.Context, messages []Message, config Config) (<-chan string, error)
	HealthCheck(ctx context.Context) (bool, error)
	Name() string
}

// Error wraps a provider-level failure. Unlike a tool failure it is always
// fatal to the run that triggered it.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("llm provider error: %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
