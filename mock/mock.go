package mock

import (
	"context"
	"io"

	"github.com/stevegt/gptchat/client"
)

// Client is a mock LLM provider for testing.
// It implements the ChatClient interface and streams pre-configured
// fragments based on the model name.  Tests can configure responses
// using SetResponse and failures using SetError.
type Client struct {
	Responses map[string][]string // model name -> fragments
	Failures  map[string]Failure  // model name -> failure
	// Requests records a copy of the messages of every request.
	Requests [][]client.ChatMsg
	// OnRecv, if set, is called before each Recv returns.  i is the
	// index of the fragment about to be returned; i == len(fragments)
	// at end of stream.
	OnRecv func(i int)
}

// Failure describes a stream that breaks after After fragments.  An
// After of -1 fails the request itself.
type Failure struct {
	After int
	Err   error
}

// NewClient creates a new mock client.
func NewClient() *Client {
	return &Client{
		Responses: make(map[string][]string),
		Failures:  make(map[string]Failure),
	}
}

// SetResponse sets the fragments streamed for a given model name.
func (c *Client) SetResponse(model string, fragments ...string) {
	c.Responses[model] = fragments
}

// SetError makes requests for model fail with err after the given
// number of fragments have been delivered.
func (c *Client) SetError(model string, after int, err error) {
	c.Failures[model] = Failure{After: after, Err: err}
}

// CompleteChatStream returns a stream of the pre-configured fragments
// for the model name.  If no response has been configured for the
// given model, it streams a default response.
func (c *Client) CompleteChatStream(ctx context.Context, model string, msgs []client.ChatMsg) (client.Stream, error) {
	c.Requests = append(c.Requests, append([]client.ChatMsg(nil), msgs...))
	failure, failing := c.Failures[model]
	if failing && failure.After < 0 {
		return nil, failure.Err
	}
	frags, ok := c.Responses[model]
	if !ok {
		frags = []string{"default mock response"}
	}
	s := &Stream{frags: frags, onRecv: c.OnRecv, after: -1}
	if failing {
		s.after = failure.After
		s.err = failure.Err
	}
	return s, nil
}

// Stream is the mock client.Stream.
type Stream struct {
	frags  []string
	next   int
	after  int
	err    error
	onRecv func(i int)
	Closed bool
}

// Recv returns the next fragment, the configured failure, or io.EOF.
func (s *Stream) Recv() (string, error) {
	if s.onRecv != nil {
		s.onRecv(s.next)
	}
	if s.after >= 0 && s.next >= s.after {
		return "", s.err
	}
	if s.next >= len(s.frags) {
		return "", io.EOF
	}
	frag := s.frags[s.next]
	s.next++
	return frag, nil
}

func (s *Stream) Close() error {
	s.Closed = true
	return nil
}

var _ client.ChatClient = (*Client)(nil)
