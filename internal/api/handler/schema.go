package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Rendering happens in the central error handler; this type
// exists for the API documentation.
type errorResponse struct {
	Error string `json:"error"`
}
