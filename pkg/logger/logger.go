package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Business logic logging methods

// LogBookingCreated logs when a booking request is recorded
func (l *Logger) LogBookingCreated(ctx context.Context, bookingID, code, explorerID string) {
	l.Logger.InfoContext(ctx,
		"Booking Request Created",
		slog.String("booking_id", bookingID),
		slog.String("booking_code", code),
		slog.String("explorer_id", explorerID),
	)
}

// LogPaymentInitiated logs when a gateway transaction is requested
func (l *Logger) LogPaymentInitiated(ctx context.Context, bookingID, reference string, split bool) {
	l.Logger.InfoContext(ctx,
		"Payment Initiated",
		slog.String("booking_id", bookingID),
		slog.String("reference", reference),
		slog.Bool("split_payment", split),
	)
}

// LogPaymentConfirmed logs a successful charge confirmation
func (l *Logger) LogPaymentConfirmed(ctx context.Context, reference string, amount int64) {
	l.Logger.InfoContext(ctx,
		"Payment Confirmed",
		slog.String("reference", reference),
		slog.Int64("amount", amount),
	)
}

// LogWebhookReceived logs an accepted webhook event
func (l *Logger) LogWebhookReceived(ctx context.Context, event string) {
	l.Logger.InfoContext(ctx,
		"Webhook Received",
		slog.String("event", event),
	)
}

// LogWebhookRejected logs a webhook that failed signature verification
func (l *Logger) LogWebhookRejected(ctx context.Context, ip string) {
	l.Logger.WarnContext(ctx,
		"Webhook Signature Rejected",
		slog.String("ip", ip),
	)
}

// LogSettlementLinked logs the outcome of a reconciliation run
func (l *Logger) LogSettlementLinked(ctx context.Context, settlementID string, linked int64) {
	l.Logger.InfoContext(ctx,
		"Settlement Reconciled",
		slog.String("settlement_id", settlementID),
		slog.Int64("payments_linked", linked),
	)
}

// Security logging methods

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
