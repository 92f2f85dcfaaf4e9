package response

type ErrorResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Data    any     `json:"data,omitempty"`
}

func Error(msg any, data ...any) *ErrorResponse {
	message, ok := msg.(string)
	if !ok {
		message = "Unknown Error"
	}

	response := &ErrorResponse{
		Success: false,
		Message: &message,
	}
	if len(data) > 0 {
		response.Data = data[0]
	}
	return response
}
