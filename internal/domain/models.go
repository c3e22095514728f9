package domain

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// Message represents a chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents a chat completion request.
// Stream is a pointer so that an absent field can default to true.
type CompletionRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	Stream      *bool     `json:"stream,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// IsStream reports whether the caller asked for incremental delivery.
func (r *CompletionRequest) IsStream() bool {
	return r.Stream == nil || *r.Stream
}

// LastMessage returns the newest message of the conversation.
func (r *CompletionRequest) LastMessage() (Message, bool) {
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}

// Fragment is one unit of produced text. A fragment carrying Err ends the
// sequence and has no content.
type Fragment struct {
	Index   int
	Content string
	Err     error
}

// Usage is a word-count approximation of token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is the aggregated-mode response.
type CompletionResult struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// EventKind tags a StreamEvent.
type EventKind int

const (
	EventChunk EventKind = iota
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventChunk:
		return "chunk"
	case EventDone:
		return "done"
	default:
		return "unknown"
	}
}

// StreamEvent is the transport representation of one fragment or of the
// end of the stream.
type StreamEvent struct {
	Kind    EventKind
	Content string
}

// ChunkEvent wraps fragment text.
func ChunkEvent(content string) StreamEvent {
	return StreamEvent{Kind: EventChunk, Content: content}
}

// DoneEvent is the terminal sentinel.
func DoneEvent() StreamEvent {
	return StreamEvent{Kind: EventDone, Content: ""}
}
