package echoapi

type (
	// MessageResponse is the `{message}` success envelope.
	MessageResponse struct {
		Message string `json:"message"`
	}

	// DataResponse is the `{data, message}` success envelope.
	DataResponse struct {
		Data    interface{} `json:"data"`
		Message string      `json:"message,omitempty"`
	}

	// ListResponse is the `{data, message, count}` success envelope.
	ListResponse struct {
		Data    interface{} `json:"data"`
		Message string      `json:"message,omitempty"`
		Count   int         `json:"count"`
	}
)
