package handler

import (
	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failure builds the error envelope. detail is only set in development.
func Failure(msg, detail string) Response {
	return Response{Success: false, Message: msg, Error: detail}
}

func respond(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, Response{Success: true, Message: msg, Data: data})
}
