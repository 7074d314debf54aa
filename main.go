package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/growtogether/leetcode-daily/cliparse"
	"github.com/growtogether/leetcode-daily/discord"
	"github.com/growtogether/leetcode-daily/engine"
	"github.com/growtogether/leetcode-daily/leetcode"
	"github.com/growtogether/leetcode-daily/store"
)

func main() {
	// Local development convenience; a missing .env is fine
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load the snapshot; an unparsable file must not be overwritten
	st := store.New(cfg.DatabasePath)
	db, err := st.Load()
	if err != nil {
		slog.Error("database load failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database loaded", "path", cfg.DatabasePath, "guilds", len(db))

	bot, err := discord.New(cfg.Token)
	if err != nil {
		slog.Error("session creation failed", "error", err)
		os.Exit(1)
	}

	eng := engine.New(db, st, bot.Client(), leetcode.New())
	bot.Attach(eng)

	if err := bot.Open(); err != nil {
		slog.Error("gateway connection failed", "error", err)
		os.Exit(1)
	}
	defer bot.Close()
	slog.Info("bot running")

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, syscall.SIGINT, syscall.SIGTERM)
	<-ctrlc
	slog.Info("shutting down")
}
