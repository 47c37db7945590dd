package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardroom/blackjack/cards"
	"github.com/cardroom/blackjack/config"
	"github.com/cardroom/blackjack/events"
	"github.com/cardroom/blackjack/game"
	"github.com/cardroom/blackjack/server"
	"github.com/cardroom/blackjack/server/connection"
)

var CLI struct {
	Addr         string `short:"a" long:"addr" help:"Server address to bind to (overrides environment)"`
	Decks        int    `short:"d" long:"decks" help:"Number of decks in the shoe (overrides environment)"`
	MinBet       int    `long:"min-bet" help:"Minimum bet in dollars (overrides environment)"`
	Bank         int    `long:"bank" help:"Starting bank in dollars (overrides environment)"`
	ManualDealer bool   `long:"manual-dealer" help:"Require explicit dealer step calls instead of automatic playout"`
	Debug        bool   `long:"debug" help:"Enable debug logging"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "err", err)
		ctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.Addr != "" {
		cfg.Addr = CLI.Addr
	}
	if CLI.Decks > 0 {
		cfg.Decks = CLI.Decks
	}
	if CLI.MinBet > 0 {
		cfg.MinBet = CLI.MinBet
	}
	if CLI.Bank > 0 {
		cfg.StartingBank = CLI.Bank
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	logger := log.New(os.Stderr)
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	rules := game.DefaultRules()
	rules.Decks = cfg.Decks
	rules.MinBet = cfg.MinBet
	rules.StartingBank = cfg.StartingBank
	rules.ManualDealer = CLI.ManualDealer

	connMgr := connection.NewManager()
	notifier := server.NewDisplayNotifier(connMgr)
	shoe := cards.NewShoe(rules.Decks)
	store := events.NewInMemoryEventStore()
	table := game.NewTable(rules, shoe, notifier, store, logger, nil)

	srv := server.NewServer(table, connMgr, logger)

	logger.Info("table ready",
		"table", table.ID(),
		"decks", rules.Decks,
		"minBet", rules.MinBet,
		"bank", rules.StartingBank)

	if err := srv.Start(cfg.Addr); err != nil {
		logger.Error("server failed", "err", err)
		ctx.Exit(1)
	}
}
