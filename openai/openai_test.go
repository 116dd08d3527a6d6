package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/gptchat/client"
)

// sseServer returns a server that answers chat completion requests
// with the given content deltas as server-sent events.
func sseServer(t *testing.T, got *map[string]interface{}, deltas ...string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// handlers run outside the test goroutine, so use Errorf
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, d := range deltas {
			chunk := map[string]interface{}{
				"id":     "chatcmpl-1",
				"object": "chat.completion.chunk",
				"model":  "model-fast",
				"choices": []map[string]interface{}{
					{"index": 0, "delta": map[string]string{"content": d}},
				},
			}
			buf, _ := json.Marshal(chunk)
			fmt.Fprintf(w, "data: %s\n\n", buf)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestCompleteChatStream(t *testing.T) {
	var got map[string]interface{}
	srv := sseServer(t, &got, "Hel", "lo")
	defer srv.Close()

	oc := NewOpenAIChatClient("test-key", srv.URL+"/v1")
	msgs := []client.ChatMsg{
		{Role: client.RoleSystem, Content: "Be terse."},
		{Role: client.RoleUser, Content: "Hi"},
	}
	s, err := oc.CompleteChatStream(context.Background(), "model-fast", msgs)
	Tassert(t, err == nil, "CompleteChatStream: %v", err)
	defer s.Close()

	var frags []string
	for {
		frag, err := s.Recv()
		if err == io.EOF {
			break
		}
		Tassert(t, err == nil, "Recv: %v", err)
		frags = append(frags, frag)
	}
	Tassert(t, len(frags) == 2 && frags[0] == "Hel" && frags[1] == "lo", "unexpected fragments %q", frags)

	Tassert(t, got["model"] == "model-fast", "unexpected model %v", got["model"])
	Tassert(t, got["stream"] == true, "stream flag not set: %v", got["stream"])
	rmsgs, ok := got["messages"].([]interface{})
	Tassert(t, ok && len(rmsgs) == 2, "unexpected messages %v", got["messages"])
	first := rmsgs[0].(map[string]interface{})
	Tassert(t, first["role"] == "system" && first["content"] == "Be terse.", "unexpected first message %v", first)
}

func TestCompleteChatStreamHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	oc := NewOpenAIChatClient("bad-key", srv.URL+"/v1")
	_, err := oc.CompleteChatStream(context.Background(), "model-fast", []client.ChatMsg{{Role: client.RoleUser, Content: "Hi"}})
	Tassert(t, err != nil, "expected an error for a 401 response")
}
