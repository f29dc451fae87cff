package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/plantarium-app/plantarium/internal/adapter"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

// PageState is the state machine of one page request:
// Idle -> Loading -> {Loaded | Failed}.
type PageState int

const (
	PageIdle PageState = iota
	PageLoading
	PageLoaded
	PageFailed
)

func (s PageState) String() string {
	switch s {
	case PageIdle:
		return "idle"
	case PageLoading:
		return "loading"
	case PageLoaded:
		return "loaded"
	case PageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PageEvent is one update on a gallery session's stream. Photos always
// carries the full accumulated result snapshot at the time of the event, so
// a failed load still shows everything loaded before it. Err is set only for
// [PageFailed].
type PageEvent struct {
	State  PageState
	Photos []models.UnsplashPhoto
	Err    error
}

// eventBufferSize bounds the session event channel. Producers never block:
// when the buffer is full the oldest event is dropped, the latest snapshot
// always gets through.
const eventBufferSize = 16

// GallerySession is the page cache of one active search string: a growing,
// de-duplicated, cursor-ordered photo sequence shared by every consumer of
// the session without re-fetching. The session exclusively owns its state;
// it is torn down (cancelling any in-flight load) when a new search starts
// or the owning scope closes.
type GallerySession struct {
	id     uuid.UUID
	source *adapter.PhotoPageSource
	logger *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	loading   bool
	closed    bool
	pages     []adapter.Page
	photos    []models.UnsplashPhoto
	seen      map[string]struct{}
	nextKey   *int
	exhausted bool

	events chan PageEvent
}

func newGallerySession(ctx context.Context, source *adapter.PhotoPageSource, log *logger.Logger) *GallerySession {
	sessionCtx, cancel := context.WithCancel(ctx)

	return &GallerySession{
		id:     uuid.New(),
		source: source,
		logger: log,
		ctx:    sessionCtx,
		cancel: cancel,
		seen:   make(map[string]struct{}),
		events: make(chan PageEvent, eventBufferSize),
	}
}

// ID returns the session identifier (used in logs).
func (s *GallerySession) ID() uuid.UUID {
	return s.id
}

// Query returns the search string owning this session.
func (s *GallerySession) Query() string {
	return s.source.Query()
}

// Events returns the session's live stream of page-load updates. Closed when
// the session ends.
func (s *GallerySession) Events() <-chan PageEvent {
	return s.events
}

// Photos returns a copy of the accumulated result snapshot.
func (s *GallerySession) Photos() []models.UnsplashPhoto {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// RefreshKey computes the cursor to reload from for the page nearest to the
// given observed position. See [adapter.RefreshKey].
func (s *GallerySession) RefreshKey(anchorPosition int) *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return adapter.RefreshKey(s.pages, anchorPosition)
}

// RequestNextPage starts loading the next page. At most one load is in
// flight per session; the cursor progresses monotonically. Returns false
// when the request was not issued: a load is already running, all pages are
// loaded, or the session is closed. After a failed load the same cursor is
// retried on the next call.
func (s *GallerySession) RequestNextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.loading || s.exhausted {
		return false
	}

	s.loading = true
	key := s.nextKey
	s.emitLocked(PageEvent{State: PageLoading, Photos: s.snapshotLocked()})

	s.wg.Add(1)
	go s.load(key)

	return true
}

// Close ends the session: the in-flight load (if any) is cancelled and
// awaited, then the event stream is closed.
func (s *GallerySession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	close(s.events)
	s.mu.Unlock()
}

// load fetches one page and folds it into the cache.
func (s *GallerySession) load(key *int) {
	defer s.wg.Done()

	page, err := s.source.Load(s.ctx, key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if s.closed {
		return
	}

	if err != nil {
		// A load failure is terminal for this page only: previously loaded
		// pages stay visible and the session stream stays open.
		s.logger.Err(err).
			Str("func", "GallerySession.load").
			Str("session_id", s.id.String()).
			Str("query", s.source.Query()).
			Msg("page load failed")
		s.emitLocked(PageEvent{State: PageFailed, Photos: s.snapshotLocked(), Err: err})
		return
	}

	s.pages = append(s.pages, page)
	for _, photo := range page.Photos {
		if _, ok := s.seen[photo.ID]; ok {
			continue
		}
		s.seen[photo.ID] = struct{}{}
		s.photos = append(s.photos, photo)
	}
	s.nextKey = page.NextKey
	s.exhausted = page.NextKey == nil

	s.logger.Debug().
		Str("func", "GallerySession.load").
		Str("session_id", s.id.String()).
		Str("query", s.source.Query()).
		Int("page_photos", len(page.Photos)).
		Int("total_photos", len(s.photos)).
		Bool("exhausted", s.exhausted).
		Msg("page loaded")

	s.emitLocked(PageEvent{State: PageLoaded, Photos: s.snapshotLocked()})
}

// snapshotLocked copies the accumulated photos. Callers must hold s.mu.
func (s *GallerySession) snapshotLocked() []models.UnsplashPhoto {
	snapshot := make([]models.UnsplashPhoto, len(s.photos))
	copy(snapshot, s.photos)
	return snapshot
}

// emitLocked delivers an event without ever blocking a producer: when the
// buffer is full the oldest event is dropped. Callers must hold s.mu, which
// serialises producers and makes drop-then-send safe.
func (s *GallerySession) emitLocked(ev PageEvent) {
	select {
	case s.events <- ev:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- ev:
		default:
		}
	}
}

// GalleryService owns at most one gallery session — the one of the active
// search string. Starting a new search discards the previous session's cache
// rather than merging into it.
type GalleryService struct {
	searcher adapter.PhotoSearcher
	pageSize int
	logger   *logger.Logger

	mu      sync.Mutex
	session *GallerySession
}

// NewGalleryService constructs the gallery service over the given searcher.
func NewGalleryService(searcher adapter.PhotoSearcher, pageSize int, log *logger.Logger) *GalleryService {
	return &GalleryService{
		searcher: searcher,
		pageSize: pageSize,
		logger:   log,
	}
}

// Search starts a session for the given search string, tearing down the
// previous session (and abandoning its in-flight load) first, and kicks off
// the first page load.
func (g *GalleryService) Search(ctx context.Context, query string) *GallerySession {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session != nil {
		g.session.Close()
	}

	session := newGallerySession(ctx, adapter.NewPhotoPageSource(g.searcher, query, g.pageSize), g.logger)
	g.session = session

	g.logger.Info().
		Str("func", "GalleryService.Search").
		Str("session_id", session.ID().String()).
		Str("query", query).
		Msg("started gallery session")

	session.RequestNextPage()

	return session
}

// Session returns the active session, or nil when no search has started.
func (g *GalleryService) Session() *GallerySession {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Close tears down the active session.
func (g *GalleryService) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session != nil {
		g.session.Close()
		g.session = nil
	}
}
