package middleware

import (
	"context"
	"net/http"

	"github.com/taipm/siumai"
)

// LoggingInterceptor is a built-in, optional HttpInterceptor. It logs
// at Debug for the happy path, Warn for retries and Error for errors, using the
// same Logger contract the rest of the module takes (see logger.go).
type LoggingInterceptor struct {
	Logger siumai.Logger
	ctx    context.Context
}

func NewLoggingInterceptor(logger siumai.Logger) *LoggingInterceptor {
	if logger == nil {
		logger = siumai.NoopLogger{}
	}
	return &LoggingInterceptor{Logger: logger, ctx: context.Background()}
}

func (l *LoggingInterceptor) OnBeforeSend(req *http.Request) error {
	l.Logger.Debug(l.ctx, "sending request", siumai.F("method", req.Method), siumai.F("url", req.URL.String()))
	return nil
}

func (l *LoggingInterceptor) OnResponse(resp *http.Response) {
	l.Logger.Debug(l.ctx, "received response", siumai.F("status", resp.StatusCode))
}

func (l *LoggingInterceptor) OnRetry(err error, attempt int) {
	l.Logger.Warn(l.ctx, "retrying request", siumai.F("attempt", attempt), siumai.F("error", err.Error()))
}

func (l *LoggingInterceptor) OnError(err error) {
	l.Logger.Error(l.ctx, "request failed", siumai.F("error", err.Error()))
}

func (l *LoggingInterceptor) OnSSEEvent(raw string) {
	l.Logger.Debug(l.ctx, "sse event", siumai.F("raw", raw))
}
