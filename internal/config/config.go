// Package config loads application configuration from environment
// variables.  Every knob has a default so the service starts with no
// environment at all; a .env file is honoured when present (loaded by
// main via godotenv).
package config

// Config holds the runtime configuration.  Reservation parameters are
// fixed at process start and are not hot-reloadable.
type Config struct {
	Env                string  // application environment (dev/test/prod)
	Port               string  // HTTP port to listen on
	HoldTTLMin         int     // hold lifetime in minutes
	MaxTicketsPerOrder int     // per-order quantity cap for holds and orders
	ServiceFeePercent  float64 // percentage fee applied to the ticket subtotal
	FlatFee            float64 // flat fee added to every order
	SeedDemoData       bool    // load the demo catalog on startup
	QueueEnabled       bool    // publish/consume order events over RabbitMQ
}

// Load reads the configuration from the environment, applying defaults
// and clamping out-of-range reservation parameters.
func Load() Config {
	cfg := Config{
		Env:                envStr("APP_ENV", "dev"),
		Port:               envStr("APP_PORT", "8080"),
		HoldTTLMin:         envInt("HOLD_TTL_MIN", 12),
		MaxTicketsPerOrder: envInt("MAX_TICKETS_PER_ORDER", 8),
		ServiceFeePercent:  envFloat("SERVICE_FEE_PERCENT", 0.12),
		FlatFee:            envFloat("FLAT_FEE", 2.50),
		SeedDemoData:       envBool("SEED_DEMO_DATA", true),
		QueueEnabled:       envBool("QUEUE_ENABLED", false),
	}
	if cfg.HoldTTLMin < 1 {
		cfg.HoldTTLMin = 12
	}
	if cfg.MaxTicketsPerOrder < 1 {
		cfg.MaxTicketsPerOrder = 1
	}
	if cfg.ServiceFeePercent < 0 {
		cfg.ServiceFeePercent = 0
	}
	if cfg.FlatFee < 0 {
		cfg.FlatFee = 0
	}
	return cfg
}
