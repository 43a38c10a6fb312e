package server

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Pages tracks live page sessions and closes the idle ones.
type Pages struct {
	mu    sync.RWMutex
	pages map[string]*Page

	idleTimeout     time.Duration
	cleanupInterval time.Duration
	done            chan struct{}
	cleanupDone     chan struct{}
	shutdownOnce    sync.Once

	logger zerolog.Logger
}

func newPages(idleTimeout, cleanupInterval time.Duration, logger zerolog.Logger) *Pages {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	pm := &Pages{
		pages:           make(map[string]*Page),
		idleTimeout:     idleTimeout,
		cleanupInterval: cleanupInterval,
		done:            make(chan struct{}),
		cleanupDone:     make(chan struct{}),
		logger:          logger,
	}
	go pm.cleanupLoop()
	return pm
}

// Add registers p.
func (pm *Pages) Add(p *Page) {
	pm.mu.Lock()
	pm.pages[p.ID] = p
	count := len(pm.pages)
	pm.mu.Unlock()

	pm.logger.Debug().Str("page", p.ID).Int("pages", count).Msg("page session created")
}

// Get returns the page with id and marks it active, or nil.
func (pm *Pages) Get(id string) *Page {
	pm.mu.RLock()
	p := pm.pages[id]
	pm.mu.RUnlock()
	if p != nil {
		p.touch()
	}
	return p
}

// Count returns the number of live pages.
func (pm *Pages) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.pages)
}

// cleanupLoop periodically removes idle pages.
func (pm *Pages) cleanupLoop() {
	defer close(pm.cleanupDone)

	ticker := time.NewTicker(pm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pm.cleanupExpired(time.Now())
		case <-pm.done:
			return
		}
	}
}

// cleanupExpired closes pages idle for longer than the idle timeout.
func (pm *Pages) cleanupExpired(now time.Time) int {
	pm.mu.Lock()
	var expired []*Page
	for id, p := range pm.pages {
		if now.Sub(p.LastActive()) > pm.idleTimeout {
			expired = append(expired, p)
			delete(pm.pages, id)
		}
	}
	remaining := len(pm.pages)
	pm.mu.Unlock()

	for _, p := range expired {
		p.Close()
	}
	if len(expired) > 0 {
		pm.logger.Info().
			Int("count", len(expired)).
			Int("remaining", remaining).
			Msg("cleaned up idle page sessions")
	}
	return len(expired)
}

// Shutdown stops the cleanup loop and closes every page.
func (pm *Pages) Shutdown() {
	pm.shutdownOnce.Do(func() {
		close(pm.done)
		<-pm.cleanupDone

		pm.mu.Lock()
		pages := pm.pages
		pm.pages = make(map[string]*Page)
		pm.mu.Unlock()

		for _, p := range pages {
			p.Close()
		}
		pm.logger.Info().Int("closed_pages", len(pages)).Msg("page sessions shut down")
	})
}
