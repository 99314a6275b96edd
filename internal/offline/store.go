package offline

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Store is the in-memory offline recommendation lookup. Both collections are
// loaded once at startup and never mutated afterwards, so Get is safe for
// unbounded concurrent readers without locking.
type Store struct {
	personal *Collection
	fallback *Collection
	logger   *logrus.Logger

	personalHits atomic.Int64
	fallbackHits atomic.Int64

	collectionHits *prometheus.CounterVec
}

// NewStore wires the loaded collections into a serving store. Missing
// collections are a startup misconfiguration and are rejected here rather
// than surfacing per-request.
func NewStore(personal, fallback *Collection, logger *logrus.Logger) (*Store, error) {
	if personal == nil || personal.Name != CollectionPersonal {
		return nil, fmt.Errorf("offline store: %q collection not loaded", CollectionPersonal)
	}
	if fallback == nil || fallback.Name != CollectionDefault {
		return nil, fmt.Errorf("offline store: %q collection not loaded", CollectionDefault)
	}

	s := &Store{
		personal: personal,
		fallback: fallback,
		logger:   logger,
	}

	s.collectionHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offline_collection_hits_total",
		Help: "Offline lookups served, by collection",
	}, []string{"collection"})

	if err := prometheus.Register(s.collectionHits); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.collectionHits = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, fmt.Errorf("offline store: %w", err)
		}
	}

	return s, nil
}

// Get returns the first k offline recommendations for userID. Users without
// a personal ranking fall back to the shared default list (cold start).
func (s *Store) Get(userID int64, k int) []int64 {
	if k <= 0 {
		return []int64{}
	}

	source := s.fallback.Items
	if items, ok := s.personal.Users[userID]; ok {
		source = items
		s.personalHits.Add(1)
		s.collectionHits.WithLabelValues(CollectionPersonal).Inc()
	} else {
		s.fallbackHits.Add(1)
		s.collectionHits.WithLabelValues(CollectionDefault).Inc()
	}

	if k > len(source) {
		k = len(source)
	}

	recs := make([]int64, k)
	copy(recs, source[:k])
	return recs
}

// Users reports how many users have a personal ranking loaded.
func (s *Store) Users() int {
	return len(s.personal.Users)
}

// FallbackSize reports the length of the shared default ranking.
func (s *Store) FallbackSize() int {
	return len(s.fallback.Items)
}

// LogStats emits the per-collection hit counters. Called once at shutdown.
func (s *Store) LogStats() {
	s.logger.WithFields(logrus.Fields{
		"personal_hits": s.personalHits.Load(),
		"default_hits":  s.fallbackHits.Load(),
	}).Info("Offline store usage")
}
