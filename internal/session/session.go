// Package session wires parsing, the transaction store and analytics into the
// import flow used by the CLI and the HTTP API.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/watspent/watspent/internal/analytics"
	"github.com/watspent/watspent/internal/export"
	"github.com/watspent/watspent/internal/history"
	"github.com/watspent/watspent/internal/importer"
	"github.com/watspent/watspent/internal/logging"
	"github.com/watspent/watspent/internal/model"
	"github.com/watspent/watspent/internal/store"
)

// ImportEvent is emitted after every successful import.
type ImportEvent struct {
	Source     string
	Format     string
	Count      int
	Generation uuid.UUID
}

// Params holds the collaborators for a Session.
type Params struct {
	Registry *importer.Registry // nil uses importer.DefaultRegistry(nil)
	Engine   *analytics.Engine  // nil uses analytics.DefaultOptions
	History  *history.Log       // nil disables the import history
	Logger   logrus.FieldLogger // nil discards
}

// Session owns the current store generation.
type Session struct {
	registry *importer.Registry
	store    *store.Store
	engine   *analytics.Engine
	history  *history.Log
	log      logrus.FieldLogger
	now      func() time.Time

	mu        sync.Mutex
	listeners []func(ImportEvent)
}

// New creates a Session with an empty store.
func New(p Params) *Session {
	if p.Registry == nil {
		p.Registry = importer.DefaultRegistry(nil)
	}
	if p.Engine == nil {
		p.Engine = analytics.NewEngine(analytics.DefaultOptions(), nil)
	}
	if p.Logger == nil {
		p.Logger = logging.Discard()
	}
	return &Session{
		registry: p.Registry,
		store:    store.New(),
		engine:   p.Engine,
		history:  p.History,
		log:      p.Logger,
		now:      time.Now,
	}
}

// OnImport registers fn to run after each successful import.
func (s *Session) OnImport(fn func(ImportEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Import parses raw, detecting its format, and replaces the store on success.
// On any failure the store is reset to empty and the parse error is returned
// unchanged so its message can be shown to the user.
func (s *Session) Import(source, raw string) (store.Snapshot, error) {
	return s.ImportFormat(source, "", raw)
}

// ImportFormat is Import with an explicit parser format. Empty means detect.
func (s *Session) ImportFormat(source, format, raw string) (store.Snapshot, error) {
	if format == "" {
		format = importer.Detect(raw)
	}
	log := s.log.WithFields(logrus.Fields{"source": source, "format": format})

	p := s.registry.Get(format)
	if p == nil {
		s.store.Clear()
		err := fmt.Errorf("unknown import format %q", format)
		s.record(source, format, store.Snapshot{}, err)
		return store.Snapshot{}, err
	}

	txns, err := p.Parse(strings.NewReader(raw))
	if err != nil {
		s.store.Clear()
		log.WithError(err).Warn("Session.Import.rejected")
		s.record(source, format, store.Snapshot{}, err)

		var perr *importer.ParseError
		if errors.As(err, &perr) {
			return store.Snapshot{}, perr
		}
		return store.Snapshot{}, fmt.Errorf("importing %s: %w", source, err)
	}

	snap := s.store.Replace(txns)
	log.WithFields(logrus.Fields{"count": snap.Len(), "generation": snap.Generation}).Info("Session.Import.complete")
	s.record(source, format, snap, nil)
	s.notify(ImportEvent{Source: source, Format: format, Count: snap.Len(), Generation: snap.Generation})
	return snap, nil
}

// Reset clears the store.
func (s *Session) Reset() {
	s.store.Clear()
}

// Transactions returns a copy of the current transactions.
func (s *Session) Transactions() []model.Transaction {
	return s.store.Current()
}

// Snapshot returns the current store generation.
func (s *Session) Snapshot() store.Snapshot {
	return s.store.Snapshot()
}

// Report returns analytics for the current generation.
func (s *Session) Report() analytics.Report {
	return s.engine.Report(s.store.Snapshot())
}

// TerminalName resolves a terminal to its venue name.
func (s *Session) TerminalName(terminal string) string {
	return s.engine.Venues().Name(terminal)
}

// Export writes the current transactions as CSV.
func (s *Session) Export(w io.Writer) error {
	return export.Write(w, s.store.Current())
}

// ExportFileName returns the download name for an export made now.
func (s *Session) ExportFileName() string {
	return export.FileName(s.now())
}

func (s *Session) notify(ev ImportEvent) {
	s.mu.Lock()
	listeners := append(([]func(ImportEvent))(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func (s *Session) record(source, format string, snap store.Snapshot, importErr error) {
	if s.history == nil {
		return
	}
	e := history.Entry{
		Timestamp: s.now(),
		Source:    source,
		Format:    format,
		Outcome:   history.OutcomeImported,
		Count:     snap.Len(),
	}
	if importErr != nil {
		e.Outcome = history.OutcomeRejected
		e.Error = importErr.Error()
	} else {
		e.Generation = snap.Generation.String()
	}
	if err := s.history.Append(e); err != nil {
		s.log.WithError(err).Warn("Session.History.append failed")
	}
}
