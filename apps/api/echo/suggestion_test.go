package echoapi

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/suggestion"
	aisvc "github.com/kazadi/elimu/services/ai"
)

// sseFrames splits a recorded event-stream body into its frames.
func sseFrames(body string) []string {
	var frames []string
	for _, frame := range strings.Split(body, "\n\n") {
		if frame != "" {
			frames = append(frames, frame)
		}
	}
	return frames
}

func TestSuggestionStream(t *testing.T) {
	completer := aisvc.NewServiceMock(
		suggestion.Chunk{Content: "Take "},
		suggestion.Chunk{Content: "Go 101."},
		suggestion.Chunk{FinishReason: suggestion.FinishReasonStop},
	)
	ts := setupServer(t, completer)
	_, token := ts.seedUser(t, "learn@test.cd", role.Student)

	rec := ts.do(newAuthRequest(http.MethodGet, "/course-suggestion/stream?prompt=backend+career", token, nil))
	checkCode(t, rec, http.StatusOK)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	frames := sseFrames(rec.Body.String())
	require.Len(t, frames, 3)
	assert.Equal(t, `data: {"content":"Take "}`, frames[0])
	assert.Equal(t, `data: {"content":"Go 101."}`, frames[1])
	assert.Equal(t, "event: end\ndata: {\"message\":\"stream completed\"}", frames[2])

	require.Len(t, completer.Prompts, 1)
	assert.Equal(t, "backend career", completer.Prompts[0])
}

func TestSuggestionStreamEmptyPrompt(t *testing.T) {
	ts := setupServer(t, nil)
	_, token := ts.seedUser(t, "learn@test.cd", role.Student)

	rec := ts.do(newAuthRequest(http.MethodGet, "/course-suggestion/stream?prompt=+", token, nil))
	checkCode(t, rec, http.StatusBadRequest)
	assert.Equal(t, "prompt is required", errorField(t, rec))
}

func TestSuggestionStreamRequiresAuth(t *testing.T) {
	ts := setupServer(t, nil)

	rec := ts.do(newRequest(http.MethodGet, "/course-suggestion/stream?prompt=x", nil))
	checkCode(t, rec, http.StatusUnauthorized)
	assert.Empty(t, ts.Completer.Prompts, "upstream must not be reached")
}

func TestSuggestionStreamUpstreamErrors(t *testing.T) {
	t.Run("open fails", func(t *testing.T) {
		completer := aisvc.NewServiceMock()
		completer.OpenErr = errors.New("upstream down")
		ts := setupServer(t, completer)
		_, token := ts.seedUser(t, "learn@test.cd", role.Student)

		rec := ts.do(newAuthRequest(http.MethodGet, "/course-suggestion/stream?prompt=x", token, nil))
		// headers are already committed, errors become an event
		checkCode(t, rec, http.StatusOK)
		frames := sseFrames(rec.Body.String())
		require.Len(t, frames, 1)
		assert.True(t, strings.HasPrefix(frames[0], "event: error\n"), "got frame %q", frames[0])
	})

	t.Run("recv fails mid-stream", func(t *testing.T) {
		completer := aisvc.NewServiceMock(suggestion.Chunk{Content: "partial"})
		completer.RecvErr = errors.New("connection reset")
		ts := setupServer(t, completer)
		_, token := ts.seedUser(t, "learn@test.cd", role.Student)

		rec := ts.do(newAuthRequest(http.MethodGet, "/course-suggestion/stream?prompt=x", token, nil))
		checkCode(t, rec, http.StatusOK)
		frames := sseFrames(rec.Body.String())
		require.Len(t, frames, 2)
		assert.Equal(t, `data: {"content":"partial"}`, frames[0])
		assert.Equal(t, "event: error\ndata: {\"error\":\"stream interrupted\"}", frames[1])
	})
}

func TestSuggestionStreamClientDisconnect(t *testing.T) {
	reqCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	completer := aisvc.NewServiceMock(
		suggestion.Chunk{Content: "first"},
		suggestion.Chunk{Content: "never sent"},
		suggestion.Chunk{FinishReason: suggestion.FinishReasonStop},
	)
	// the client goes away while the second chunk is in flight
	completer.OnRecv = func(i int) {
		if i == 1 {
			cancel()
		}
	}
	ts := setupServer(t, completer)
	_, token := ts.seedUser(t, "learn@test.cd", role.Student)

	req := newAuthRequest(http.MethodGet, "/course-suggestion/stream?prompt=x", token, nil).WithContext(reqCtx)
	rec := ts.do(req)

	frames := sseFrames(rec.Body.String())
	require.Len(t, frames, 1, "nothing may be written after the disconnect")
	assert.Equal(t, `data: {"content":"first"}`, frames[0])
	assert.NotContains(t, rec.Body.String(), "event:")
}
