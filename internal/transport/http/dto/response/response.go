package response

type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string          `json:"status"`
	Error   string          `json:"error"`
	Details string          `json:"details,omitempty"`
	Fields  map[string]bool `json:"fields,omitempty"`
}

func SuccessResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

// ValidationFailed carries the full per-field map so every invalid field
// can be highlighted at once.
func ValidationFailed(fields map[string]bool) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   "validation_failed",
		Details: "Some required fields are missing",
		Fields:  fields,
	}
}
