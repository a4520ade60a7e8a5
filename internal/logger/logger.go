package logger

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup builds the process logger and installs it as the global zerolog logger.
// Debug mode switches to the console writer at debug level.
func Setup(debug bool) zerolog.Logger {
	return setup(os.Stderr, debug)
}

func setup(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()

	if debug {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}).Level(level).With().Caller().Stack().Logger()
	}

	log.Logger = logger

	return logger
}

var _ http.RoundTripper = (*Transport)(nil)

// Transport logs every backend round trip.
type Transport struct {
	logger zerolog.Logger
	next   http.RoundTripper
}

// NewTransport wraps next, falling back to http.DefaultTransport when nil.
func NewTransport(logger zerolog.Logger, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{logger: logger, next: next}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	started := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Error().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL.Redacted()).
			Str("request_id", req.Header.Get("X-Request-ID")).
			Dur("duration", time.Since(started)).
			Msg("backend request")

		return resp, err
	}

	t.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Int("status", resp.StatusCode).
		Bool("cached", resp.Header.Get("X-From-Cache") == "1").
		Dur("duration", time.Since(started)).
		Msg("backend request")

	return resp, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Handler logs requests served by the local front-end.
func Handler(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		ctx := logger.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", ClientIP(r)).
			Logger().WithContext(r.Context())

		next.ServeHTTP(rec, r.WithContext(ctx))

		zerolog.Ctx(ctx).Info().
			Int("status", rec.status).
			Dur("duration", time.Since(started)).
			Msg("http request")
	})
}

// ClientIP returns the originating address, preferring proxy headers over
// RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
