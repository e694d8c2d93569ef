package executor

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/taipm/siumai"
)

// ClassifyHTTPError turns a non-2xx HTTP response into a *siumai.Error.
// A provider gets first refusal via Spec.ClassifyHTTPError (e.g.
// Anthropic's "overloaded_error" 529) before this generic table runs.
func ClassifyHTTPError(provider string, statusCode int, bodyText string, headers http.Header) *siumai.Error {
	e := &siumai.Error{Provider: provider, StatusCode: statusCode, Message: bodyText}

	switch {
	case statusCode == http.StatusBadRequest:
		e.Kind = siumai.KindInvalidParameter
	case statusCode == http.StatusUnauthorized:
		e.Kind = siumai.KindAuthentication
	case statusCode == http.StatusForbidden:
		e.Kind = siumai.KindAuthorization
	case statusCode == http.StatusNotFound:
		e.Kind = siumai.KindNotFound
	case statusCode == http.StatusRequestTimeout:
		e.Kind = siumai.KindTimeout
	case statusCode == http.StatusConflict:
		e.Kind = siumai.KindConflict
	case statusCode == http.StatusRequestEntityTooLarge:
		e.Kind = siumai.KindPayloadTooLarge
	case statusCode == http.StatusUnprocessableEntity:
		e.Kind = siumai.KindUnprocessable
	case statusCode == http.StatusTooManyRequests:
		e.Kind = siumai.KindRateLimit
		e.RetryAfter = retryAfter(headers)
	case statusCode >= 500:
		e.Kind = siumai.KindServer
	case statusCode >= 400:
		e.Kind = siumai.KindHTTP
	default:
		e.Kind = siumai.KindHTTP
	}
	return e
}

// retryAfter parses the Retry-After header, which is either a number of
// seconds or an HTTP date; only the seconds form is common across
// providers, so the date form is best-effort.
func retryAfter(headers http.Header) time.Duration {
	v := headers.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
