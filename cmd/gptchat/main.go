package main

import (
	"os"

	"github.com/joho/godotenv"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/gptchat/core"
)

// main loads .env, then calls the core package's Cli() function
func main() {
	// a missing .env is normal; the environment may already be set
	err := godotenv.Load()
	if err != nil {
		Debug("no .env loaded: %v", err)
	}
	config := core.NewCliConfig()
	rc, err := core.Cli(os.Args[1:], config)
	if err != nil {
		Fpf(os.Stderr, "%s: %v\n", config.Name, err)
		if rc == 0 {
			rc = 1
		}
	}
	os.Exit(rc)
}
