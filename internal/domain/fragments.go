package domain

import (
	"context"
	"strings"
)

// SplitFragments splits text on whitespace. Every word but the last keeps a
// single trailing space, so the parts concatenate to the words joined by one
// space.
func SplitFragments(text string) []string {
	words := strings.Fields(text)
	parts := make([]string, len(words))
	for i, word := range words {
		if i < len(words)-1 {
			word += " "
		}
		parts[i] = word
	}
	return parts
}

// StreamFragments sends parts on an unbuffered channel from a new goroutine.
// The channel is closed after the last part or as soon as ctx is done.
func StreamFragments(ctx context.Context, parts []string) <-chan Fragment {
	fragments := make(chan Fragment)

	go func() {
		defer close(fragments)

		for i, part := range parts {
			select {
			case <-ctx.Done():
				return
			case fragments <- Fragment{Index: i, Content: part, Err: nil}:
			}
		}
	}()

	return fragments
}
