// Package audit provides a structured trail of authorization decisions.
// Log entries follow a key=value format suitable for parsing and analysis.
package audit

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// EventType represents the outcome recorded for one authorization request.
type EventType string

const (
	// EventAutoApprove records a command authorized without confirmation.
	EventAutoApprove EventType = "AUTO_APPROVE"
	// EventDefer records a command left to the host's confirmation flow.
	EventDefer EventType = "DEFER"
	// EventDenyHit records a command that matched a deny rule.
	EventDenyHit EventType = "DENY_HIT"
	// EventUnsafe records a command deferred for an unsafe construct.
	EventUnsafe EventType = "UNSAFE"
)

// Event represents one decision audit log entry.
type Event struct {
	// Timestamp is when the decision was made.
	Timestamp time.Time

	// Type is the decision outcome.
	Type EventType

	// Cmd is the raw command that was evaluated.
	Cmd string

	// Pattern is the matched rule (for AUTO_APPROVE and DENY_HIT events).
	Pattern string

	// Reason is the deferral reason (for DEFER and UNSAFE events).
	Reason string
}

// Format returns the log entry as a formatted string.
// Format: 2024-01-15T14:32:05Z DECISION AUTO_APPROVE cmd="npm test" pattern="Bash(npm test:*)"
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" DECISION ")
	b.WriteString(string(e.Type))

	b.WriteString(" cmd=")
	b.WriteString(quoteValue(e.Cmd))

	writeOptionalField(&b, "pattern", e.Pattern)
	writeOptionalField(&b, "reason", e.Reason)

	return b.String()
}

// writeOptionalField appends " key=quoted_value" to the builder if value is non-empty.
func writeOptionalField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(quoteValue(value))
}

// quoteValue returns a quoted string value.
// Values are always quoted for consistency and to handle spaces/special chars.
func quoteValue(s string) string {
	return fmt.Sprintf("%q", s)
}

// Logger writes audit events to an io.Writer. A nil Logger or nil writer
// discards events, so callers never need to branch on whether auditing is
// enabled.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger creates a new audit logger that writes to the given writer.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Log writes an event to the audit log.
func (l *Logger) Log(e *Event) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := e.Format() + "\n"
	_, err := l.w.Write([]byte(line))
	if err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// LogAutoApprove logs an AUTO_APPROVE event.
func (l *Logger) LogAutoApprove(cmd, pattern string) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventAutoApprove,
		Cmd:       cmd,
		Pattern:   pattern,
	})
}

// LogDefer logs a DEFER event.
func (l *Logger) LogDefer(cmd, reason string) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventDefer,
		Cmd:       cmd,
		Reason:    reason,
	})
}

// LogDenyHit logs a DENY_HIT event.
func (l *Logger) LogDenyHit(cmd, pattern string) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventDenyHit,
		Cmd:       cmd,
		Pattern:   pattern,
	})
}

// LogUnsafe logs an UNSAFE event.
func (l *Logger) LogUnsafe(cmd, reason string) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventUnsafe,
		Cmd:       cmd,
		Reason:    reason,
	})
}
