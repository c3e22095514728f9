package domain

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	completionIDPrefix = "chat_"
	completionIDDigits = 8
)

// CountWords counts whitespace-delimited words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ComputeUsage derives usage from the conversation and the full reply.
func ComputeUsage(messages []Message, completion string) Usage {
	prompt := 0
	for _, msg := range messages {
		prompt += CountWords(msg.Content)
	}

	completionWords := CountWords(completion)

	return Usage{
		PromptTokens:     prompt,
		CompletionTokens: completionWords,
		TotalTokens:      prompt + completionWords,
	}
}

// CompletionID derives a short stable identifier from the reply content.
func CompletionID(content string) string {
	digest := fmt.Sprintf("%016x", xxhash.Sum64String(content))
	return completionIDPrefix + digest[:completionIDDigits]
}
