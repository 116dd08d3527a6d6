package core

import (
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/gptchat/client"
	"github.com/tiktoken-go/tokenizer"
)

// NewTokenizer returns the cl100k tokenizer used for transcript token
// counts.
func NewTokenizer() (codec tokenizer.Codec, err error) {
	defer Return(&err)
	codec, err = tokenizer.Get(tokenizer.Cl100kBase)
	Ck(err)
	return
}

// TokenCount returns the total number of tokens in the content of
// msgs.  It is an estimate: per-message framing tokens are not
// counted.
func TokenCount(codec tokenizer.Codec, msgs []client.ChatMsg) (count int, err error) {
	defer Return(&err)
	for _, msg := range msgs {
		ids, _, err := codec.Encode(msg.Content)
		Ck(err)
		count += len(ids)
	}
	return
}
