// Package appconfig maps environment variables onto the server's
// runtime configuration.
package appconfig

import "github.com/ilyakaznacheev/cleanenv"

type AppConfig struct {
	Addr string `env:"MINIPOKER_ADDR" env-default:":8080"`

	// Room cadence and turn budget. TurnTicks is in ticks, so the wall
	// clock budget per turn is TickMs * TurnTicks.
	TickMs     int `env:"MINIPOKER_TICK_MS" env-default:"1000"`
	TurnTicks  int `env:"MINIPOKER_TURN_TICKS" env-default:"30"`
	MaxPlayers int `env:"MINIPOKER_MAX_PLAYERS" env-default:"8"`

	MailboxSize  int `env:"MINIPOKER_MAILBOX_SIZE" env-default:"100"`
	OutboundSize int `env:"MINIPOKER_OUTBOUND_SIZE" env-default:"10"`

	LedgerMode string `env:"MINIPOKER_LEDGER_MODE" env-default:"memory"`
	LedgerDSN  string `env:"MINIPOKER_LEDGER_DSN" env-default:""`
	LedgerPath string `env:"MINIPOKER_LEDGER_PATH" env-default:""`

	LogLevel string `env:"MINIPOKER_LOG_LEVEL" env-default:"info"`
}

// Load reads the environment into an AppConfig instance.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
