package logger

import (
	"io"
	"regexp"
)

// Redactor redacts sensitive information from logs.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor creates a redactor with default patterns: reflink codes,
// shared secrets, bearer tokens and provider API keys.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*regexp.Regexp{
			// Reflink codes
			regexp.MustCompile(`ref_[a-zA-Z0-9_-]{8,}`),

			// Provider API keys
			regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`),

			// Bearer tokens
			regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`),

			// Generic secrets
			regexp.MustCompile(`secret["\s:=]+[^\s"]+`),
			regexp.MustCompile(`token["\s:=]+[a-zA-Z0-9._-]{20,}`),
		},
	}
}

// AddPattern adds a custom redaction pattern.
func (r *Redactor) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	r.patterns = append(r.patterns, re)
	return nil
}

// Redact redacts sensitive information from a string.
func (r *Redactor) Redact(s string) string {
	result := s
	for _, pattern := range r.patterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}
	return result
}

// Wrap wraps an io.Writer to redact sensitive information.
func (r *Redactor) Wrap(w io.Writer) io.Writer {
	return &redactingWriter{writer: w, redactor: r}
}

type redactingWriter struct {
	writer   io.Writer
	redactor *Redactor
}

func (w *redactingWriter) Write(p []byte) (n int, err error) {
	redacted := w.redactor.Redact(string(p))
	return w.writer.Write([]byte(redacted))
}
