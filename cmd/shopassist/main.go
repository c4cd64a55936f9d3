// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/shopassist"
	"github.com/poiesic/shopassist/ai"
)

func main() {
	app := &cli.App{
		Name:  "shopassist",
		Usage: "Conversational shopping assistant with FAQ retrieval",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Load a question,answer CSV corpus into the FAQ index",
				Action: ingestCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "faq",
						Aliases:  []string{"f"},
						Usage:    "Path to the FAQ corpus CSV file",
						Required: true,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a single query",
				Action:    askCommand,
				ArgsUsage: "<query>",
				Flags:     append(serviceFlags(), faqFlag()),
			},
			{
				Name:   "chat",
				Usage:  "Interactive session reading queries from stdin",
				Action: chatCommand,
				Flags:  append(serviceFlags(), faqFlag()),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// serviceFlags are shared by every command that opens the index and talks
// to the AI services.
func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "generation-model",
			Usage: "Generation model name",
			Value: "qwen2.5:3b",
		},
	}
}

func faqFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "faq",
		Aliases: []string{"f"},
		Usage:   "Path to the FAQ corpus CSV file (ingested if not already)",
	}
}

func newAssistant(ctx context.Context, c *cli.Context) (*shopassist.Assistant, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGenerationModel(c.String("generation-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	assistant, err := shopassist.NewAssistant(ctx, c.String("db"),
		shopassist.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}
	return assistant, nil
}

// prepareFAQ ingests the corpus named by --faq, if any. Ingestion is
// idempotent, so passing the same file on every invocation is fine.
func prepareFAQ(ctx context.Context, c *cli.Context, assistant *shopassist.Assistant) error {
	faqPath := c.String("faq")
	if faqPath == "" {
		return nil
	}
	stored, err := assistant.IngestFAQ(ctx, faqPath)
	if err != nil {
		return fmt.Errorf("failed to ingest FAQ corpus: %w", err)
	}
	if stored > 0 {
		fmt.Fprintf(os.Stderr, "Ingested %d FAQ entries from %s\n", stored, faqPath)
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := newAssistant(ctx, c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	faqPath := c.String("faq")
	stored, err := assistant.IngestFAQ(ctx, faqPath)
	if err != nil {
		return fmt.Errorf("failed to ingest FAQ corpus: %w", err)
	}

	if stored == 0 {
		fmt.Fprintf(os.Stderr, "Corpus %s already ingested, nothing to do\n", faqPath)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Ingested %d FAQ entries from %s\n", stored, faqPath)
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	assistant, err := newAssistant(ctx, c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	if err := prepareFAQ(ctx, c, assistant); err != nil {
		return err
	}

	fmt.Println(assistant.Ask(ctx, query))
	return nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := newAssistant(ctx, c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	if err := prepareFAQ(ctx, c, assistant); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Ask about products, policies, or just say hi. Ctrl-D to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		fmt.Println(assistant.Ask(ctx, query))
	}
	return scanner.Err()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
