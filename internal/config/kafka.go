package config

import "time"

type Kafka struct {
	// Addresses is empty when item events are disabled.
	Addresses []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	ClientID  string   `env:"KAFKA_CLIENT_ID" envDefault:"items-api"`
	// PublishTimeout bounds how long a request waits for an event to be acknowledged.
	PublishTimeout time.Duration `env:"KAFKA_PUBLISH_TIMEOUT" envDefault:"3s"`
}

// Enabled reports whether at least one seed broker is configured.
func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0
}
