package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean; defaults suit local development.
type Server struct {
	Addr          string
	JWTSigningKey string

	// PostgresDSN switches document and request persistence from the
	// in-memory stores to PostgreSQL when non-empty.
	PostgresDSN string

	Redis RedisConfig

	// KafkaBrokers switches event emission from the in-memory sink to a
	// Kafka producer when non-empty.
	KafkaBrokers []string
	EventsTopic  string

	Oracle OracleConfig
}

// RedisConfig configures the optional hash-membership cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// OracleConfig identifies the trusted gateway and the generation backend it
// submits prompts to.
type OracleConfig struct {
	// Address is the only identity allowed to deliver oracle responses.
	Address  string
	Provider string
	ModelID  string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("DOCLEDGER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("DOCLEDGER_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default; override in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("DOCLEDGER_EVENTS_TOPIC")
	if topic == "" {
		topic = "docledger.events"
	}

	var brokers []string
	if raw := os.Getenv("DOCLEDGER_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	provider := os.Getenv("DOCLEDGER_ORACLE_PROVIDER")
	if provider == "" {
		provider = "anthropic"
	}
	modelID := os.Getenv("DOCLEDGER_ORACLE_MODEL")
	if modelID == "" {
		modelID = "claude-3-5-sonnet"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		PostgresDSN:   os.Getenv("DOCLEDGER_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("DOCLEDGER_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		KafkaBrokers: brokers,
		EventsTopic:  topic,
		Oracle: OracleConfig{
			Address:  os.Getenv("DOCLEDGER_ORACLE_ADDRESS"),
			Provider: provider,
			ModelID:  modelID,
		},
	}
}
