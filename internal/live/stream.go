package live

import (
	"context"
	"sync"

	"github.com/plantarium-app/plantarium/internal/logger"
)

// Stream is a live query: it delivers an initial snapshot and then a fresh
// one after every invalidation of the tables its subscription watches.
// Delivery is conflated to the latest snapshot, so an observer that falls
// behind never blocks writers and never sees a torn intermediate state.
//
// A snapshot re-fetch that fails is logged and skipped; the previously
// delivered snapshot stands. Read streams never fail on transient conditions,
// only explicit writes surface errors.
type Stream[T any] struct {
	updates chan T
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
}

// NewStream starts the re-query loop for one observer. fetch must return a
// consistent snapshot of the observed query; sub decides when the snapshot is
// stale. The stream stops when ctx is cancelled, the subscription terminates
// or Close is called; Updates is closed on exit.
func NewStream[T any](ctx context.Context, sub *Subscription, fetch func(context.Context) (T, error), log *logger.Logger) *Stream[T] {
	streamCtx, cancel := context.WithCancel(ctx)
	s := &Stream[T]{
		updates: make(chan T, 1),
		cancel:  cancel,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(s.updates)
		defer sub.Close()

		s.refetch(streamCtx, fetch, log)

		for {
			select {
			case <-streamCtx.Done():
				return
			case <-sub.Done():
				return
			case <-sub.Signal():
				s.refetch(streamCtx, fetch, log)
			}
		}
	}()

	return s
}

// Updates returns the snapshot channel. It is closed when the stream stops.
func (s *Stream[T]) Updates() <-chan T {
	return s.updates
}

// Close tears the stream down and waits until the re-query goroutine has
// fully exited, guaranteeing that no further snapshot is delivered after
// Close returns.
func (s *Stream[T]) Close() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

// refetch runs the query and replaces any undelivered snapshot with the new
// one. The loop goroutine is the only sender, so after draining the buffered
// slot the send cannot block.
func (s *Stream[T]) refetch(ctx context.Context, fetch func(context.Context) (T, error), log *logger.Logger) {
	snapshot, err := fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Err(err).Str("func", "live.Stream.refetch").Msg("live query re-fetch failed, keeping previous snapshot")
		}
		return
	}

	select {
	case <-s.updates:
	default:
	}
	s.updates <- snapshot
}
