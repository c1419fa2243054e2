package echoapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/suggestion"
)

type suggestionApi struct {
	completer suggestion.Completer
	logger    core.Logger
}

func registerSuggestionAPI(e *echo.Echo, authGuard echo.MiddlewareFunc, completer suggestion.Completer, logger core.Logger) {
	api := suggestionApi{completer: completer, logger: logger}

	e.GET("/course-suggestion/stream", api.stream, authGuard)
}

// stream relays an upstream completion to the client as Server-Sent Events.
// Once the event-stream headers are committed the HTTP status can no longer
// change; upstream failures past that point surface as an `error` event.
func (api suggestionApi) stream(ctx echo.Context) error {
	prompt := strings.TrimSpace(ctx.QueryParam("prompt"))
	if prompt == "" {
		return core.NewValidationError("prompt is required")
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	reqCtx := ctx.Request().Context()
	upstream, err := api.completer.StreamSuggestion(reqCtx, prompt)
	if err != nil {
		api.logger.Error("opening suggestion stream", err)
		writeErrorEvent(res, "could not reach the suggestion service")
		return nil
	}
	defer upstream.Close()

	relayed := false
	for {
		chunk, err := upstream.Recv()
		// the client may have gone away while we were blocked on Recv;
		// nothing must be written after that.
		if reqCtx.Err() != nil {
			return nil
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			api.logger.Error("receiving suggestion chunk", err)
			writeErrorEvent(res, "stream interrupted")
			return nil
		}

		if chunk.Content != "" {
			if err = writeDataEvent(res, chunk.Content); err != nil {
				return nil
			}
			relayed = true
		}
		if chunk.Done() {
			break
		}
	}

	if relayed {
		writeEndEvent(res)
	}
	return nil
}

func writeDataEvent(res *echo.Response, content string) error {
	payload, err := json.Marshal(echo.Map{"content": content})
	if err != nil {
		return errors.Wrap(err, "marshalling event payload")
	}
	if _, err = fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
		return errors.Wrap(err, "writing event")
	}
	res.Flush()
	return nil
}

func writeEndEvent(res *echo.Response) {
	fmt.Fprintf(res, "event: end\ndata: %s\n\n", `{"message":"stream completed"}`)
	res.Flush()
}

func writeErrorEvent(res *echo.Response, msg string) {
	payload, _ := json.Marshal(echo.Map{"error": msg})
	fmt.Fprintf(res, "event: error\ndata: %s\n\n", payload)
	res.Flush()
}
