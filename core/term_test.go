package core

import (
	"errors"
	"io"
	"strings"
	"testing"

	. "github.com/stevegt/goadapt"
)

func TestPlainReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("one\r\n\ntwo  \nlast"))
	want := []string{"one", "", "two  ", "last"}
	for _, w := range want {
		line, err := r.ReadLine()
		Tassert(t, err == nil, "ReadLine: %v", err)
		Tassert(t, line == w, "expected %q, got %q", w, line)
	}
	_, err := r.ReadLine()
	Tassert(t, errors.Is(err, io.EOF), "expected EOF, got %v", err)
	Tassert(t, r.Close() == nil, "Close failed")
}

func TestTermOutput(t *testing.T) {
	term, out := testTerm("Hi\n")
	line, err := term.ReadUser()
	Tassert(t, err == nil && line == "Hi", "ReadUser: %q %v", line, err)
	term.BeginReply()
	term.Fragment("Hel")
	term.Fragment("lo\n  world")
	term.EndReply()
	// output to a non-terminal is not colored
	want := "Me:\n\nChatGPT:\nHello\n  world\n\n"
	Tassert(t, out.String() == want, "expected %q, got %q", want, out.String())
}

func TestTermSay(t *testing.T) {
	term, out := testTerm("")
	term.Say(msgReady)
	want := "\n" + AssistantName + "\n" + msgReady + "\n\n"
	Tassert(t, out.String() == want, "expected %q, got %q", want, out.String())
}
