package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"drivelog/internal/core"
)

// sanitizeInput drops control characters except tab and newlines, and trims.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func today(now time.Time) core.Date {
	return core.NewDate(now.Year(), int(now.Month()), now.Day())
}

// statusFor maps journal errors onto response codes: malformed selection
// keys are 400, rejected input is 422 and anything else is a server failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidMonthKey), errors.Is(err, core.ErrInvalidYearKey):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrNegativeAmount),
		errors.Is(err, core.ErrNegativeQuantity),
		errors.Is(err, core.ErrNotesTooLong),
		errors.Is(err, core.ErrInvalidFlag),
		errors.Is(err, core.ErrMissingField):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// pickKey returns requested when set, otherwise the most recent option.
func pickKey(requested string, options []string) string {
	if requested != "" {
		return requested
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}
