package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/gptchat/client"
	"github.com/tiktoken-go/tokenizer"
)

// Session holds everything a conversation needs.  It is built once at
// process start and handed to the setup dialogue and the conversation
// loop.
type Session struct {
	Term    *Term
	Catalog *Catalog
	Client  client.ChatClient
	Store   *Store
	// Tokens, if set, is used to report transcript size after each
	// turn.
	Tokens tokenizer.Codec
	// Now is the session clock.
	Now func() time.Time
}

// Run holds the conversation described by cfg until the operator ends
// input.  Every completed exchange is saved before the next prompt.
// Completion and storage failures are returned; the exchange in
// flight when they happen is not saved.
func (s *Session) Run(ctx context.Context, cfg SessionConfig) (err error) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	t := NewTranscript(cfg.ModelID, cfg.SystemPrompt, now())
	Debug("session %s started with model %s", t.DateCreated, t.Model)
	for {
		var prompt string
		prompt, err = s.Term.ReadUser()
		if errors.Is(err, io.EOF) {
			Debug("input closed after %d turns", t.Turns())
			return nil
		}
		if err != nil {
			return
		}
		t.AppendUser(prompt)

		err = s.respond(ctx, t)
		if err != nil {
			return
		}

		err = s.Store.Save(t)
		if err != nil {
			return
		}
		s.report(t)
	}
}

// respond streams a completion of the transcript to the terminal and
// appends it as one assistant message once the stream has ended.
func (s *Session) respond(ctx context.Context, t *Transcript) (err error) {
	s.Term.BeginReply()
	stream, err := s.Client.CompleteChatStream(ctx, t.Model, t.Messages)
	if err != nil {
		return &TransportError{Model: t.Model, Err: err}
	}
	defer stream.Close()

	var reply strings.Builder
	for {
		var frag string
		frag, err = stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &TransportError{Model: t.Model, Err: err}
		}
		if frag == "" {
			continue
		}
		s.Term.Fragment(frag)
		reply.WriteString(frag)
	}
	t.AppendAssistant(reply.String())
	s.Term.EndReply()
	return nil
}

// report logs the transcript size against the model's token limit.
func (s *Session) report(t *Transcript) {
	if s.Tokens == nil {
		return
	}
	count, err := TokenCount(s.Tokens, t.Messages)
	if err != nil {
		Debug("token count: %v", err)
		return
	}
	limit := 0
	if s.Catalog != nil {
		if m, ok := s.Catalog.FindID(t.Model); ok {
			limit = m.Tokens
		}
	}
	Debug("transcript: %d turns, %d tokens, model limit %d", t.Turns(), count, limit)
}
