package canned

// Config contains demo producer settings.
type Config struct {
	ResponsesFile string `env:"CHAT_RESPONSES_FILE"`
}
