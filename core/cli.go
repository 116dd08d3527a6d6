package core

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stevegt/envi"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/gptchat/client"
	"github.com/stevegt/gptchat/openai"
)

// Version is the version of gptchat.
var Version = "0.1.0"

// CodeVersion returns the version of the gptchat code.
func CodeVersion() string {
	return Version
}

// cliArgs are the optional flags.  With none given, gptchat reads
// ./models.json and writes to ./conversations.
type cliArgs struct {
	Catalog string           `short:"c" default:"${catalog}" env:"GPTCHAT_CATALOG" type:"path" help:"Model catalog file (JSON or YAML)."`
	Dir     string           `short:"d" default:"${dir}" env:"GPTCHAT_DIR" type:"path" help:"Existing directory to save conversations in."`
	BaseURL string           `name:"base-url" env:"OPENAI_BASE_URL" help:"Base URL of an OpenAI-compatible API."`
	Verbose bool             `short:"v" help:"Show debug information on stderr."`
	Version kong.VersionFlag `help:"Show version and exit."`
}

// CliConfig contains the configuration for gptchat's cli
type CliConfig struct {
	// Name is the name of the program
	Name string
	// Description is a short description of the program
	Description string
	// Version is the version of the program
	Version string
	// Exit is the function to call to exit the program
	Exit   func(int)
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Client overrides the OpenAI client, e.g. in tests
	Client client.ChatClient
	// Now overrides the session clock
	Now func() time.Time
}

// NewCliConfig returns a new Config struct with default values populated
func NewCliConfig() *CliConfig {
	return &CliConfig{
		Name:        "gptchat",
		Description: "An interactive command-line chat with OpenAI models that saves every conversation as JSON.",
		Version:     CodeVersion(),
		Exit:        func(i int) { os.Exit(i) },
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Cli parses the given arguments, runs the setup dialogue, and then
// runs one conversation until input ends.
//
// We use this function instead of kong.Parse() so that we can pass in
// the arguments to parse and the stdio to use, which makes the whole
// program testable.
func Cli(args []string, config *CliConfig) (rc int, err error) {
	defer Return(&err)

	// capture goadapt stdio
	SetStdio(
		config.Stdin,
		config.Stdout,
		config.Stderr,
	)
	defer SetStdio(nil, nil, nil)

	// kong calls Exit for --help and --version; remember that so we
	// don't go on to start a session when Exit doesn't really exit
	exited := false
	exit := func(code int) {
		exited = true
		rc = code
		config.Exit(code)
	}

	var cli cliArgs
	options := []kong.Option{
		kong.Name(config.Name),
		kong.Description(config.Description),
		kong.Exit(exit),
		kong.Writers(config.Stdout, config.Stderr),
		kong.Vars{
			"version": config.Version,
			"catalog": DefaultCatalog,
			"dir":     DefaultDir,
		},
	}
	parser, err := kong.New(&cli, options...)
	Ck(err)
	_, err = parser.Parse(args)
	if err != nil {
		Fpf(config.Stderr, "%s: error: %v\n", config.Name, err)
		return 1, nil
	}
	if exited {
		return
	}

	if cli.Verbose {
		os.Setenv("DEBUG", "1")
	}
	Debug("args: %+v", cli)

	catalog, err := LoadCatalog(cli.Catalog)
	Ck(err)

	chatClient := config.Client
	if chatClient == nil {
		apiKey := envi.String("OPENAI_API_KEY", "")
		chatClient = openai.NewOpenAIChatClient(apiKey, cli.BaseURL)
	}

	codec, err := NewTokenizer()
	if err != nil {
		// only used for debug output
		Debug("tokenizer unavailable: %v", err)
		codec = nil
	}

	term := NewTerm(NewLineReader(config.Stdin), config.Stdout)
	defer term.Close()

	session := &Session{
		Term:    term,
		Catalog: catalog,
		Client:  chatClient,
		Store:   NewStore(cli.Dir),
		Tokens:  codec,
		Now:     config.Now,
	}

	cfg, err := Setup(term, catalog)
	if errors.Is(err, io.EOF) {
		Debug("input closed during setup")
		return 0, nil
	}
	Ck(err)

	err = session.Run(context.Background(), cfg)
	Ck(err)
	return
}
