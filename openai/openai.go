package openai

import (
	"context"

	gptLib "github.com/sashabaranov/go-openai"
	"github.com/stevegt/gptchat/client"
)

// OpenAIChatClient implements the ChatClient interface for OpenAI and
// any OpenAI-compatible endpoint.
type OpenAIChatClient struct {
	client *gptLib.Client
}

// NewOpenAIChatClient creates a new OpenAIChatClient instance.  The
// apiKey is passed through as-is; an empty key is not rejected here
// and instead fails on the first request.  If baseURL is empty the
// library default is used.
func NewOpenAIChatClient(apiKey, baseURL string) *OpenAIChatClient {
	cfg := gptLib.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	c := gptLib.NewClientWithConfig(cfg)
	return &OpenAIChatClient{client: c}
}

// CompleteChatStream sends a streaming chat request to the OpenAI API.
// It converts client.ChatMsg messages into OpenAI's
// ChatCompletionMessage format.
func (oc *OpenAIChatClient) CompleteChatStream(ctx context.Context, model string, messages []client.ChatMsg) (client.Stream, error) {
	var omsgs []gptLib.ChatCompletionMessage
	for _, msg := range messages {
		var role string
		switch msg.Role {
		case client.RoleSystem:
			role = gptLib.ChatMessageRoleSystem
		case client.RoleAssistant:
			role = gptLib.ChatMessageRoleAssistant
		default:
			role = gptLib.ChatMessageRoleUser
		}
		omsgs = append(omsgs, gptLib.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	req := gptLib.ChatCompletionRequest{
		Model:    model,
		Messages: omsgs,
		Stream:   true,
	}
	s, err := oc.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, err
	}
	return &stream{s: s}, nil
}

// stream adapts a go-openai completion stream to client.Stream.
type stream struct {
	s *gptLib.ChatCompletionStream
}

// Recv returns the next content delta.  Chunks without choices (such
// as a trailing usage chunk) yield an empty fragment.
func (st *stream) Recv() (string, error) {
	resp, err := st.s.Recv()
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

func (st *stream) Close() error {
	st.s.Close()
	return nil
}

// Assert that OpenAIChatClient implements client.ChatClient.
var _ client.ChatClient = (*OpenAIChatClient)(nil)
