package config

import (
	"os"
	"strings"
)

// Engine captures engine level configuration. The zero value of every
// optional field means "feature absent": no Redis URL keeps the persistent
// store in memory, no submit endpoint and no brokers keep submissions on
// the clipboard-only path.
type Engine struct {
	RedisURL       string
	PostgresDSN    string
	SubmitEndpoint string
	KafkaBrokers   []string
	KafkaTopic     string
	RequestPrefix  string
	AdminUsername  string
	AdminPassword  string
}

// FromEnv builds an Engine config from environment variables so hosts stay
// lean. Defaults match the shipped site: SASPA request ids and the
// admin/admin bootstrap credential pair.
func FromEnv() Engine {
	prefix := os.Getenv("CURATOR_REQUEST_PREFIX")
	if prefix == "" {
		prefix = "SASPA"
	}

	user := os.Getenv("CURATOR_ADMIN_USER")
	if user == "" {
		user = "admin"
	}
	pass := os.Getenv("CURATOR_ADMIN_PASS")
	if pass == "" {
		// Bootstrap default - the credential pair is not a security boundary.
		pass = "admin"
	}

	var brokers []string
	if raw := os.Getenv("CURATOR_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Engine{
		RedisURL:       os.Getenv("CURATOR_REDIS_URL"),
		PostgresDSN:    os.Getenv("CURATOR_POSTGRES_DSN"),
		SubmitEndpoint: os.Getenv("CURATOR_SUBMIT_ENDPOINT"),
		KafkaBrokers:   brokers,
		KafkaTopic:     os.Getenv("CURATOR_KAFKA_TOPIC"),
		RequestPrefix:  prefix,
		AdminUsername:  user,
		AdminPassword:  pass,
	}
}
