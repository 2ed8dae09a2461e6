package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CSRFTokenStore issues one-time tokens for state-changing API calls.
type CSRFTokenStore struct {
	tokens map[string]time.Time
	mutex  sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewCSRFTokenStore starts a goroutine that drops expired tokens every
// cleanupInterval. Call Close to stop it.
func NewCSRFTokenStore(ttl, cleanupInterval time.Duration, logger *zap.Logger) *CSRFTokenStore {
	store := &CSRFTokenStore{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	go store.cleanup(cleanupInterval)

	return store
}

func (store *CSRFTokenStore) cleanup(interval time.Duration) {
	defer close(store.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-store.stop:
			return
		case <-ticker.C:
			if n := store.removeExpired(); n > 0 {
				store.logger.Debug("Removed expired CSRF tokens", zap.Int("count", n))
			}
		}
	}
}

func (store *CSRFTokenStore) removeExpired() int {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	now := store.now()
	removed := 0
	for token, expiry := range store.tokens {
		if now.After(expiry) {
			delete(store.tokens, token)
			removed++
		}
	}
	return removed
}

func (store *CSRFTokenStore) Close() {
	store.closeOnce.Do(func() {
		close(store.stop)
		<-store.done
	})
}

func (store *CSRFTokenStore) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(bytes)

	store.mutex.Lock()
	store.tokens[token] = store.now().Add(store.ttl)
	store.mutex.Unlock()

	return token, nil
}

// ConsumeToken reports whether token is known and unexpired, and removes it.
func (store *CSRFTokenStore) ConsumeToken(token string) bool {
	if token == "" {
		return false
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	expiry, exists := store.tokens[token]
	if !exists {
		return false
	}
	delete(store.tokens, token)

	return !store.now().After(expiry)
}

func CSRFMiddleware(store *CSRFTokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Safe methods never change the menu
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get("X-CSRF-Token")
			if !store.ConsumeToken(token) {
				store.logger.Warn("Rejected request without valid CSRF token",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				http.Error(w, "Invalid or missing CSRF token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CSRFTokenHandler(store *CSRFTokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := store.GenerateToken()
		if err != nil {
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"csrf_token": token})
	}
}
