// Package services hosts the session-level orchestration between the
// reconstructor, the tracker and the layout store.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nibzard/beautiful-mermaid/application/ports"
	"github.com/nibzard/beautiful-mermaid/application/reconstruct"
	"github.com/nibzard/beautiful-mermaid/application/tracker"
	"github.com/nibzard/beautiful-mermaid/domain/layout"
	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
	apperrors "github.com/nibzard/beautiful-mermaid/pkg/errors"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// SceneService owns the live scene sessions: one reconstructed graph
// and one tracker per rendered document. The store is optional; without
// it layouts simply don't survive the process.
type SceneService struct {
	contract primitives.Contract
	th       reconstruct.Thresholds
	codec    ports.DocumentCodec
	store    ports.LayoutStore
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSceneService creates the service. store may be nil.
func NewSceneService(contract primitives.Contract, th reconstruct.Thresholds, codec ports.DocumentCodec, store ports.LayoutStore, logger *zap.Logger) *SceneService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneService{
		contract: contract,
		th:       th,
		codec:    codec,
		store:    store,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Session is one live document: its primitive tree, scene graph and
// tracker. All geometry mutation is single-threaded behind mu; the
// engine itself assumes one interaction source.
type Session struct {
	ID        string
	Namespace string
	Source    string

	mu      sync.Mutex
	doc     *primitives.Element
	graph   *scene.Graph
	tracker *tracker.Tracker

	svc *SceneService
}

// CreateScene parses and reconstructs a document, starts a tracker
// over it and best-effort restores any persisted layout for the same
// source identity.
func (s *SceneService) CreateScene(ctx context.Context, document, namespace string) (*Session, error) {
	doc, err := s.codec.Parse(document)
	if err != nil {
		return nil, apperrors.NewUnprocessableError("unparseable document").WithCause(err)
	}
	graph := reconstruct.NewReconstructor(s.contract, s.th, s.logger).Reconstruct(doc)
	trk := tracker.New(graph, s.th.EndpointSlack, s.logger)

	sess := &Session{
		ID:        uuid.New().String(),
		Namespace: namespace,
		Source:    scene.DeriveDocumentID(namespace, document),
		doc:       doc,
		graph:     graph,
		tracker:   trk,
		svc:       s,
	}
	s.restoreLayout(ctx, sess)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("scene session created",
		zap.String("session", sess.ID),
		zap.String("family", string(graph.Family)),
		zap.Int("nodes", len(graph.Nodes)),
	)
	return sess, nil
}

// Get returns a session by id.
func (s *SceneService) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Remove drops a session.
func (s *SceneService) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// restoreLayout applies a previously persisted position set, if any.
// Anything that goes wrong here degrades to "no saved layout".
func (s *SceneService) restoreLayout(ctx context.Context, sess *Session) {
	if s.store == nil {
		return
	}
	rec, err := s.store.Load(ctx, sess.Source)
	if err != nil {
		s.logger.Warn("layout load failed", zap.String("source", sess.Source), zap.Error(err))
		return
	}
	if rec == nil {
		return
	}
	sess.tracker.SetPositions(rec.Positions)
}

// saveLayout persists the session's current positions, fire-and-forget:
// failure is logged here and never propagated into geometry state.
func (s *SceneService) saveLayout(rec *layout.Record) {
	if s.store == nil {
		return
	}
	go func() {
		if err := s.store.Save(context.Background(), rec); err != nil {
			s.logger.Warn("layout save failed", zap.String("source", rec.Source), zap.Error(err))
		}
	}()
}

// Graph returns the session's scene graph.
func (sess *Session) Graph() *scene.Graph {
	return sess.graph
}

// SVG serializes the session's current (possibly perturbed) document.
func (sess *Session) SVG() string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.svc.codec.Serialize(sess.doc)
}

// StartDrag begins a gesture on a node.
func (sess *Session) StartDrag(nodeID string) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.tracker.StartDrag(scene.NodeID(nodeID))
}

// DragTo handles one movement tick.
func (sess *Session) DragTo(x, y float64) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.tracker.DragTo(x, y)
}

// EndDrag completes the gesture, polishes the layout once and persists
// the result.
func (sess *Session) EndDrag() error {
	sess.mu.Lock()
	if err := sess.tracker.EndDrag(); err != nil {
		sess.mu.Unlock()
		return err
	}
	rec := layout.NewRecord(sess.Source, sess.graph.Family, sess.tracker.Positions())
	sess.mu.Unlock()
	sess.svc.saveLayout(rec)
	return nil
}

// SetPositions bulk-loads a position mapping, ignoring unknown ids.
func (sess *Session) SetPositions(positions map[string]geometry.Point) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.tracker.SetPositions(positions)
}

// ResetPositions restores every node to its rendered position.
func (sess *Session) ResetPositions() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.tracker.ResetAllPositions()
}

// ExportRecord snapshots the current layout as a versioned record.
func (sess *Session) ExportRecord() *layout.Record {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return layout.NewRecord(sess.Source, sess.graph.Family, sess.tracker.Positions())
}

// ImportRecord applies a previously exported record. Identifier drift
// is expected: entries that no longer match are ignored.
func (sess *Session) ImportRecord(rec *layout.Record) {
	sess.SetPositions(rec.Positions)
}

// Reload replaces the session's document: a fresh reconstruction and
// tracker, with the old live positions re-applied by stable identifier
// so unchanged elements keep their place.
func (sess *Session) Reload(document string) error {
	doc, err := sess.svc.codec.Parse(document)
	if err != nil {
		return fmt.Errorf("reload scene: %w", err)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	old := sess.tracker.Positions()
	sess.doc = doc
	sess.graph = reconstruct.NewReconstructor(sess.svc.contract, sess.svc.th, sess.svc.logger).Reconstruct(doc)
	sess.tracker = tracker.New(sess.graph, sess.svc.th.EndpointSlack, sess.svc.logger)
	sess.Source = scene.DeriveDocumentID(sess.Namespace, document)
	sess.tracker.SetPositions(old)
	return nil
}
