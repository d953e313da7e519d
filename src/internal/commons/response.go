package commons

import "strings"

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

// ErrorResponse builds a failed envelope, dropping blank details.
func ErrorResponse[T any](message string, details ...string) Response[T] {
	var errs []string
	for _, detail := range details {
		if strings.TrimSpace(detail) != "" {
			errs = append(errs, detail)
		}
	}

	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

// Recast carries a failed envelope over to another payload type.
func Recast[U any, T any](response Response[T]) Response[U] {
	return ErrorResponse[U](response.Message, response.Errors...)
}
