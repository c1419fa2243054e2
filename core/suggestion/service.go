// Package suggestion defines the contract between the course-suggestion SSE
// relay and the upstream AI completion provider.
package suggestion

import "context"

// Finish reasons reported by the upstream completion stream.
const (
	FinishReasonStop   = "stop"
	FinishReasonLength = "length"
)

// Chunk is one incremental piece of a streamed completion.
type Chunk struct {
	Content      string
	FinishReason string
}

// Done reports whether the chunk terminates the completion.
func (c Chunk) Done() bool {
	return c.FinishReason == FinishReasonStop || c.FinishReason == FinishReasonLength
}

type (
	// Stream yields completion chunks one at a time. Recv returns io.EOF
	// once the upstream closes the stream.
	Stream interface {
		Recv() (Chunk, error)
		Close() error
	}

	// Completer is any service that can stream a course suggestion for a
	// free-text prompt.
	Completer interface {
		StreamSuggestion(ctx context.Context, prompt string) (Stream, error)
	}
)
