package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/exedev/tandem/internal/bus"
	"github.com/exedev/tandem/internal/config"
	"github.com/exedev/tandem/internal/evaluate"
	"github.com/exedev/tandem/internal/history"
	"github.com/exedev/tandem/internal/llm"
	"github.com/exedev/tandem/internal/pipeline"
	"github.com/exedev/tandem/internal/provider"
	"github.com/exedev/tandem/internal/refine"
	"github.com/exedev/tandem/internal/render"
	"github.com/exedev/tandem/internal/tui"
)

const version = "0.1.0"

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "tandem",
		Usage:     "chain a reasoning model and a refinement model over one question",
		Version:   version,
		ArgsUsage: "[question]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging (also TANDEM_DEBUG=true)",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	if cmd.Bool("debug") {
		cfg.Debug = true
	}

	logger := zap.NewNop()
	if cfg.Debug {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	defer logger.Sync()

	render.Banner(cfg.ReasonerKey != "", cfg.AnthropicKey != "")

	if cfg.AnthropicKey == "" {
		key, err := promptSecret("Enter your Anthropic API key: ")
		if err != nil {
			return fmt.Errorf("read API key: %w", err)
		}
		cfg.AnthropicKey = strings.TrimSpace(key)
	}
	if cfg.AnthropicKey == "" {
		return errors.New("an Anthropic API key is required (set ANTHROPIC_API_KEY)")
	}

	store, err := history.Open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	events := bus.New(logger)
	progress := render.NewProgress(events)
	defer progress.Close()

	client := llm.NewAnthropic(cfg.AnthropicKey)
	orch := pipeline.New(
		provider.NewSubprocess(cfg.ReasonerPath, cfg.ReasonerKey, cfg.ReasonerModel, cfg.ReasonerTimeout, logger),
		refine.New(client, cfg, logger),
		evaluate.NewComparer(client, cfg, logger),
		store,
		cfg,
		events,
		logger,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	if question := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " ")); question != "" {
		ask(ctx, orch, question)
		return nil
	}

	return loop(ctx, orch, store)
}

// loop reads questions from stdin until exit, quit, or EOF. Interruption
// takes effect between questions; an in-flight pipeline run degrades first.
func loop(ctx context.Context, orch *pipeline.Orchestrator, store *history.Store) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		if ctx.Err() != nil {
			pterm.Info.Println("Interrupted. Goodbye!")
			return nil
		}

		fmt.Print("\n" + render.QuestionPrompt())
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("read question: %w", err)
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit":
			pterm.Info.Println("Goodbye!")
			return nil
		case "history":
			showHistory(ctx, store)
			continue
		}

		ask(ctx, orch, input)
	}
}

func ask(ctx context.Context, orch *pipeline.Orchestrator, question string) {
	render.Question(question)

	out, err := orch.Run(ctx, question)
	if err != nil {
		render.Error(err)
		return
	}
	render.Outcome(out)
}

func showHistory(ctx context.Context, store *history.Store) {
	entries, err := store.All(ctx)
	if err != nil {
		render.Error(err)
		return
	}

	if term.IsTerminal(int(os.Stdout.Fd())) && len(entries) > 0 {
		if err := tui.Run(entries); err != nil {
			render.Error(err)
		}
		return
	}
	render.History(entries)
}

// promptSecret reads a line without echo when stdin is a terminal, and
// falls back to a plain read when it is not (tests, pipes).
func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}
