package core

import (
	. "github.com/stevegt/goadapt"
)

var (
	msgGreeting     = "Hi. I'm ChatGPT, let's have a conversation. But first, we need to set up some configurations."
	msgChooseModel  = "Which model do you want to use? (Enter number)"
	msgSysmsg       = "How do you want me to respond? Example: You are a helpful assistant."
	msgInvalid      = "Invalid choice. Please try again."
	msgReady        = "All done! I am ready for our conversation. What do you want to talk about?"
	msgSelectedPre  = "Perfect. You have selected "
	msgSelectedPost = "."
)

// SessionConfig is the outcome of the setup dialogue.  It is created
// once and not modified afterwards.
type SessionConfig struct {
	ModelID      string
	SystemPrompt string
}

// Setup greets the operator, has them pick a model from the catalog
// and supply a system prompt.
func Setup(t *Term, c *Catalog) (cfg SessionConfig, err error) {
	t.Say(msgGreeting)
	t.ShowCatalog(c)
	m, err := ChooseModel(t, c)
	if err != nil {
		return
	}
	sysmsg, err := CaptureSystemPrompt(t)
	if err != nil {
		return
	}
	cfg = SessionConfig{ModelID: m.ID, SystemPrompt: sysmsg}
	return
}

// ChooseModel asks for a 1-based catalog index until a valid one is
// given.  Read errors end the dialogue and are returned as-is.
func ChooseModel(t *Term, c *Catalog) (m ModelDescriptor, err error) {
	for {
		var answer string
		answer, err = t.Ask(msgChooseModel)
		if err != nil {
			return
		}
		m, err = c.Choose(answer)
		if err == nil {
			break
		}
		Debug("setup: %v", err)
		t.Say(msgInvalid)
	}
	t.SayHighlighted(msgSelectedPre, m.Name, msgSelectedPost)
	return
}

// CaptureSystemPrompt asks for the system prompt until a non-empty
// line is given.  The line is returned verbatim.
func CaptureSystemPrompt(t *Term) (sysmsg string, err error) {
	for {
		sysmsg, err = t.AskAsUser(msgSysmsg)
		if err != nil {
			return
		}
		if sysmsg != "" {
			break
		}
		Debug("setup: %v", &ValidationError{Field: "system prompt", Value: sysmsg})
		t.Say(msgInvalid)
	}
	t.Say(msgReady)
	return
}
