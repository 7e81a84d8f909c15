package main

import (
	"net/http"
	"time"

	"github.com/amitjaew/mini-poker/internal/appconfig"
	"github.com/amitjaew/mini-poker/internal/ledger"
	"github.com/amitjaew/mini-poker/internal/room"
	"github.com/amitjaew/mini-poker/internal/server"
	"github.com/amitjaew/mini-poker/poker"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	rec, ledgerMode, err := ledger.NewService(cfg.LedgerMode, cfg.LedgerDSN, cfg.LedgerPath)
	if err != nil {
		log.Fatal().Err(err).Msg("init ledger")
	}
	defer rec.Close()

	dir := server.NewDirectory(room.Config{
		TickInterval: time.Duration(cfg.TickMs) * time.Millisecond,
		MailboxSize:  cfg.MailboxSize,
		Game: poker.Config{
			MaxPlayers:   cfg.MaxPlayers,
			TurnDuration: cfg.TurnTicks,
		},
	}, rec)
	defer dir.Shutdown()

	mux := http.NewServeMux()
	server.NewHTTPHandler(dir, rec, cfg.OutboundSize).RegisterRoutes(mux)

	log.Info().Str("ledger", ledgerMode).Str("addr", cfg.Addr).Msg("server starting")
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
