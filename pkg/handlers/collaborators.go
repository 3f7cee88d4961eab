package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// NavigationEvent is one recorded page visit.
type NavigationEvent struct {
	SessionID string    `json:"sessionId"`
	Page      string    `json:"page"`
	Timestamp time.Time `json:"timestamp"`
}

// NavigationLog is a bounded in-memory record of page visits per session.
type NavigationLog struct {
	mu     sync.Mutex
	events []NavigationEvent
	max    int
	now    func() time.Time
}

// NewNavigationLog creates a log keeping at most max events.
func NewNavigationLog(max int) *NavigationLog {
	if max <= 0 {
		max = 1000
	}
	return &NavigationLog{max: max, now: time.Now}
}

// Record appends a visit, dropping the oldest event when full.
func (l *NavigationLog) Record(sessionID, page string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, NavigationEvent{
		SessionID: sessionID,
		Page:      page,
		Timestamp: l.now(),
	})
	if len(l.events) > l.max {
		l.events = l.events[len(l.events)-l.max:]
	}
}

// History returns up to limit events for a session, most recent first.
func (l *NavigationLog) History(sessionID string, limit int) []NavigationEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	out := []NavigationEvent{}
	for i := len(l.events) - 1; i >= 0 && len(out) < limit; i-- {
		if l.events[i].SessionID == sessionID {
			out = append(out, l.events[i])
		}
	}
	return out
}

// ContactMessage is a validated contact-form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ContactSink delivers contact messages. Delivery is not idempotent;
// submissions must not be retried blindly.
type ContactSink interface {
	Submit(ctx context.Context, msg ContactMessage) error
}

// LogContactSink writes submissions to the structured log. Default sink
// until a mail or CRM collaborator is wired in.
type LogContactSink struct {
	Logger zerolog.Logger
}

func (s LogContactSink) Submit(_ context.Context, msg ContactMessage) error {
	s.Logger.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("subject", msg.Subject).
		Msg("Contact form submitted")
	return nil
}

// UploadedFile is the content of one visitor upload.
type UploadedFile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	MIME    string `json:"mime"`
	Content []byte `json:"-"`
}

// FileStore resolves uploaded file ids. Durable storage lives behind this
// boundary.
type FileStore interface {
	Get(ctx context.Context, fileID string) (UploadedFile, error)
}

// MemoryFileStore is a map-backed FileStore for tests and local runs.
type MemoryFileStore struct {
	mu    sync.RWMutex
	files map[string]UploadedFile
}

// NewMemoryFileStore creates an empty store.
func NewMemoryFileStore() *MemoryFileStore {
	return &MemoryFileStore{files: make(map[string]UploadedFile)}
}

// Put stores a file.
func (s *MemoryFileStore) Put(f UploadedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[f.ID] = f
}

// Get implements FileStore.
func (s *MemoryFileStore) Get(_ context.Context, fileID string) (UploadedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[fileID]
	if !ok {
		return UploadedFile{}, fmt.Errorf("file not found: %s", fileID)
	}
	return f, nil
}
