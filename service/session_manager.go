package service

import (
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/beka-birhanu/maze-editor-api/config"
	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/beka-birhanu/maze-editor-api/service/i"
	"github.com/google/uuid"
)

const (
	defaultSessionTTL  = 15 * time.Minute
	defaultSweepEvery  = time.Minute
	defaultMaxSessions = 128
)

// Session manager errors.
var (
	ErrSessionNotFound = errors.New("editor session not found")
	ErrTooManySessions = errors.New("too many active editor sessions")
)

// EditorSessionManager hosts editor sessions, fans their events out to a
// broadcaster, and sweeps sessions that sat idle past their TTL.
type EditorSessionManager struct {
	sessions    map[uuid.UUID]*editor.Session
	broadcaster i.Broadcaster
	ttl         time.Duration
	maxSessions int
	stepDelay   time.Duration
	logger      *log.Logger
	stop        chan bool
	sync.RWMutex
}

// Config holds the dependencies and knobs for a session manager.
type Config struct {
	Broadcaster i.Broadcaster // receives every hosted session's events
	TTL         time.Duration // idle time before a session is swept
	SweepEvery  time.Duration // how often the sweeper looks for idle sessions
	MaxSessions int           // cap on concurrently hosted sessions
	StepDelay   time.Duration // replay step delay for hosted sessions
	Logger      *log.Logger
}

// NewEditorSessionManager creates a session manager and starts its idle
// sweeper.
func NewEditorSessionManager(c *Config) (*EditorSessionManager, error) {
	m := &EditorSessionManager{
		sessions:    make(map[uuid.UUID]*editor.Session),
		broadcaster: c.Broadcaster,
		ttl:         c.TTL,
		maxSessions: c.MaxSessions,
		stepDelay:   c.StepDelay,
		logger:      c.Logger,
		stop:        make(chan bool, 1),
	}
	if m.ttl <= 0 {
		m.ttl = defaultSessionTTL
	}
	if m.maxSessions <= 0 {
		m.maxSessions = defaultMaxSessions
	}
	if m.logger == nil {
		m.logger = log.New(os.Stderr, "session-manager: ", log.LstdFlags)
	}

	sweepEvery := c.SweepEvery
	if sweepEvery <= 0 {
		sweepEvery = defaultSweepEvery
	}
	go m.sweep(sweepEvery)

	return m, nil
}

// Create hosts a new editor session. The manager's logger and step delay
// fill any the config leaves unset.
func (m *EditorSessionManager) Create(cfg editor.Config) (uuid.UUID, *editor.Session, error) {
	m.Lock()
	defer m.Unlock()

	if len(m.sessions) >= m.maxSessions {
		return uuid.Nil, nil, ErrTooManySessions
	}

	if cfg.Logger == nil {
		cfg.Logger = m.logger
	}
	if cfg.StepDelay <= 0 {
		cfg.StepDelay = m.stepDelay
	}

	sess, err := editor.New(cfg)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := m.saveSession(sess)
	go m.listenSession(id, sess)
	m.logger.Printf("%s[INFO]%s hosting editor session: %s", config.LogInfoColor, config.LogColorReset, id)
	return id, sess, nil
}

// Get returns the hosted session with the given id.
func (m *EditorSessionManager) Get(id uuid.UUID) (*editor.Session, error) {
	m.RLock()
	defer m.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Remove closes the session with the given id and discards it.
func (m *EditorSessionManager) Remove(id uuid.UUID) error {
	m.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	sess.Close()
	m.logger.Printf("%s[INFO]%s removed editor session: %s", config.LogInfoColor, config.LogColorReset, id)
	return nil
}

// StopAll closes every hosted session and stops the idle sweeper.
func (m *EditorSessionManager) StopAll() {
	select {
	case m.stop <- true:
	default:
	}

	m.Lock()
	defer m.Unlock()
	for id, sess := range m.sessions {
		sess.Close()
		delete(m.sessions, id)
	}
}

// saveSession stores the session under a fresh id. Callers hold the write
// lock.
func (m *EditorSessionManager) saveSession(sess *editor.Session) uuid.UUID {
	id := uuid.New()
	for {
		if _, ok := m.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}

	m.sessions[id] = sess
	return id
}

// listenSession forwards one session's events to the broadcaster until the
// session closes.
func (m *EditorSessionManager) listenSession(id uuid.UUID, sess *editor.Session) {
	for ev := range sess.Events() {
		if m.broadcaster != nil {
			m.broadcaster.Broadcast(id, ev)
		}
	}
}

// sweep periodically closes sessions that sat idle past the TTL.
func (m *EditorSessionManager) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweepIdle()
		}
	}
}

func (m *EditorSessionManager) sweepIdle() {
	cutoff := time.Now().Add(-m.ttl)

	m.Lock()
	var expired []*editor.Session
	for id, sess := range m.sessions {
		if sess.LastActive().Before(cutoff) {
			expired = append(expired, sess)
			delete(m.sessions, id)
			m.logger.Printf("%s[INFO]%s swept idle editor session: %s", config.LogInfoColor, config.LogColorReset, id)
		}
	}
	m.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
}
