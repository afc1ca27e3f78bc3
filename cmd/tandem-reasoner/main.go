package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/exedev/tandem/internal/reasoner"
)

// tandem-reasoner is the stage one integration artifact: it takes the
// question as its argument, streams a completion from OpenRouter, and
// prints the marker-framed JSON payload the parent process extracts.
func main() {
	_ = godotenv.Load()

	question := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "usage: tandem-reasoner <question>")
		os.Exit(2)
	}

	client, err := reasoner.New(reasoner.Options{
		APIKey: os.Getenv("OPENROUTER_API_KEY"),
		Model:  os.Getenv("TANDEM_REASONER_MODEL"),
	})
	if err != nil {
		fatal(err)
	}

	fmt.Fprintf(os.Stderr, "Streaming from %s...\n", client.Model())

	res, err := client.Reason(context.Background(), question)
	if err != nil {
		fatal(err)
	}

	if err := reasoner.Emit(os.Stdout, res); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "tandem-reasoner: %v\n", err)
	os.Exit(1)
}
