package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer periodically reloads the category list into the cache so that
// reads after a TTL expiry do not fall through to Postgres.
type CacheWarmer struct {
	service   *Service
	interval  time.Duration
	timeout   time.Duration
	logger    zerolog.Logger
	shutdownC chan struct{}
	doneC     chan struct{}
}

func NewCacheWarmer(service *Service, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheWarmer{
		service:   service,
		interval:  interval,
		timeout:   4 * time.Second,
		logger:    logger.With().Str("component", "category_warmer").Logger(),
		shutdownC: make(chan struct{}),
		doneC:     make(chan struct{}),
	}
}

// Run refreshes once immediately, then on every tick until Stop is called.
func (w *CacheWarmer) Run() {
	defer close(w.doneC)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh()
	for {
		select {
		case <-w.shutdownC:
			w.logger.Info().Msg("category warmer stopping")
			return
		case <-ticker.C:
			w.refresh()
		}
	}
}

func (w *CacheWarmer) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	n, err := w.service.RefreshCategories(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
		return
	}
	w.logger.Debug().Int("categories", n).Msg("category cache refreshed")
}

// Stop signals Run to return and waits for it.
func (w *CacheWarmer) Stop() {
	close(w.shutdownC)
	<-w.doneC
}
