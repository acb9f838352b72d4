package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const problemContentType = "application/problem+json"

// Problem is a problem details response body. Handlers return it as an
// error and the error handler writes it.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`

	cause error
}

func (p *Problem) Error() string {
	if p.cause != nil {
		return fmt.Sprintf("%d %s: %s: %v", p.Status, p.Title, p.Detail, p.cause)
	}
	return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
}

func (p *Problem) Unwrap() error {
	return p.cause
}

func newProblem(status int, title, detail string) *Problem {
	return &Problem{Title: title, Status: status, Detail: detail}
}

func newInvalidPayloadError(cause error) *Problem {
	var syntaxErr *json.SyntaxError
	if errors.As(cause, &syntaxErr) || errors.Is(cause, io.ErrUnexpectedEOF) {
		return &Problem{
			Title:  "Malformed JSON",
			Status: http.StatusBadRequest,
			Detail: "The JSON request body is invalid.",
			cause:  cause,
		}
	}

	return &Problem{
		Title:  "Invalid request payload",
		Status: http.StatusBadRequest,
		Detail: "The request body contains invalid or out-of-range values.",
		cause:  cause,
	}
}

func newInvalidParameterError(name string, cause error) *Problem {
	return &Problem{
		Title:  "Invalid request payload",
		Status: http.StatusBadRequest,
		Detail: fmt.Sprintf("Invalid format for parameter %s.", name),
		cause:  cause,
	}
}

// NewErrorHandler writes every error as problem details. Problems are
// written as they are, echo errors keep their status code and anything
// else becomes a 500 with no internal detail.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		problem := toProblem(err)

		switch {
		case problem.Status >= http.StatusInternalServerError:
			logger.Error("Unhandled error",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err)
		case problem.cause != nil:
			logger.Warn("Bad request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(problem.Status)
		} else {
			err = writeProblem(c, problem)
		}
		if err != nil {
			logger.Error("Failed to write error response", "error", err)
		}
	}
}

func toProblem(err error) *Problem {
	var problem *Problem
	if errors.As(err, &problem) {
		return problem
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == http.StatusBadRequest {
			return newInvalidPayloadError(err)
		}
		return newProblem(httpErr.Code, http.StatusText(httpErr.Code), fmt.Sprint(httpErr.Message))
	}

	return newProblem(
		http.StatusInternalServerError,
		"Internal server error",
		"An unexpected error occurred. Please try again later.",
	)
}

func writeProblem(c echo.Context, problem *Problem) error {
	body, err := json.Marshal(problem)
	if err != nil {
		return err
	}
	return c.Blob(problem.Status, problemContentType, body)
}
