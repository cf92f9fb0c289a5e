package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/amimitra/mitra/internal/channel"
	"github.com/amimitra/mitra/internal/config"
	"github.com/amimitra/mitra/internal/conversation"
	"github.com/amimitra/mitra/internal/model/chat"
	"github.com/amimitra/mitra/internal/render"
	"github.com/amimitra/mitra/internal/session"
)

const prompt = "> "

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	adapter, err := channel.Dial(ctx, cfg.Client.ServerURL, channel.DefaultOptions())
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", cfg.Client.ServerURL, err)
	}
	defer adapter.Close()

	store := conversation.NewStore()
	ctrl := session.NewController(store, adapter)
	ctrl.OnBotMessage = func(msg chat.Message) {
		fmt.Printf("\r%s\n\n%s", render.Message(msg), prompt)
	}

	go ctrl.Run(ctx)
	go func() {
		<-ctx.Done()
		fmt.Println()
		os.Exit(0)
	}()

	fmt.Println(render.Banner())

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print(prompt)
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			fmt.Print(prompt)
			continue
		}

		ctrl.Submit(text)
		fmt.Printf("%s\n%s", render.TypingIndicator(), prompt)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("input error: %v", err)
	}
}
