package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"zeorag-be/internal/bootstrap"
	"zeorag-be/internal/config"
	"zeorag-be/internal/dto"
	"zeorag-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const banner = `
 _____         ____      _    ____
|__  /___  ___|  _ \    / \  / ___|
  / // _ \/ _ \ |_) |  / _ \| |  _
 / /|  __/ (_) |  _ <  / ___ \ |_| |
/____\___|\___/|_| \_\/_/   \_\____|
`

var sessionFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "zeorag",
		Short: "Chat with your scientific paper corpus from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
	}
	rootCmd.Flags().StringVarP(&sessionFlag, "session", "s", "", "session id or name to load (prompted if empty)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runChat() error {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	reader := bufio.NewReader(os.Stdin)

	sessionKey := strings.TrimSpace(sessionFlag)
	if sessionKey == "" {
		color.New(color.FgMagenta, color.Bold).Print("Enter session id to load or create a new one: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		sessionKey = strings.TrimSpace(line)
	}
	if sessionKey == "" {
		sessionKey = "default"
	}

	clearScreen()
	color.New(color.FgMagenta, color.Bold).Print(banner + "\n")

	ctx := context.Background()

	// Replay the transcript so far.
	history, err := container.HistoryService.GetSessionHistory(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to load session history: %w", err)
	}
	for _, message := range history {
		switch message.Type {
		case "ai":
			color.New(color.FgBlue, color.Bold).Print("ZeoRAG: ")
			fmt.Printf("%s\n\n", message.Content)
		case "human":
			color.New(color.FgGreen, color.Bold).Print("You: ")
			fmt.Printf("%s\n\n", message.Content)
		}
	}

	for {
		color.New(color.FgGreen, color.Bold).Print("You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			sayGoodbye()
			return nil
		}
		input := strings.TrimSpace(line)
		fmt.Println()

		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "exit", "quit", "bye":
			sayGoodbye()
			return nil
		}

		stream, err := container.RagService.Query(ctx, &dto.QueryRequest{
			Question:    input,
			SessionName: sessionKey,
		})
		if err != nil {
			log.Printf("Error: %v", err)
			fmt.Println("Sorry, I couldn't find an answer.")
			continue
		}

		color.New(color.FgBlue, color.Bold).Print("ZeoRAG: ")
		streamFailed := false
		for chunk := range stream {
			if chunk.Err != nil {
				streamFailed = true
				continue
			}
			fmt.Print(chunk.Content)
		}
		if streamFailed {
			fmt.Println("\nSorry, I couldn't find an answer.")
		}
		fmt.Print("\n\n")
	}
}

func sayGoodbye() {
	fmt.Println()
	color.New(color.FgRed, color.Bold).Println("Exiting ZeoRAG. Goodbye!")
	fmt.Println()
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}
