package client

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatClient defines the interface for streamed chat completions.
// Implementations of ChatClient (such as openai.OpenAIChatClient and
// mock.Client) send the full message history for the given model and
// return a Stream of incremental text fragments.
type ChatClient interface {
	CompleteChatStream(ctx context.Context, model string, messages []ChatMsg) (Stream, error)
}

// Stream is a lazy, finite, non-restartable sequence of text
// fragments.  Recv returns io.EOF once the completion is finished.
type Stream interface {
	Recv() (fragment string, err error)
	Close() error
}

// ChatMsg represents a single chat message.
type ChatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
