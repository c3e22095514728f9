package domain

import "time"

// DeliveryConfig contains chat delivery settings.
type DeliveryConfig struct {
	DefaultModel    string        `env:"CHAT_DEFAULT_MODEL"    envDefault:"gpt-4"`
	DefaultProducer string        `env:"CHAT_DEFAULT_PRODUCER" envDefault:"canned"`
	PacingDelay     time.Duration `env:"CHAT_PACING_DELAY"     envDefault:"20ms"`
}
