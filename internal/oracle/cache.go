package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/fleetroute/vrpsolver/internal/model"
)

// MatrixCache is an optional read-through cache for precomputed
// matrices, keyed by a hash of their contents. Repeated solves against
// the same static road network skip re-marshalling large matrices
// across process restarts. A nil *MatrixCache disables caching entirely
// and every call here becomes a no-op — callers never need a nil check.
//
// Adapted from the teacher's "use Redis if REDIS_URL is set, else stay
// in-process" selection in api.NewServer/NewRedisBroker.
type MatrixCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewMatrixCache connects to the given Redis URL. A zero ttl defaults
// to 24h.
func NewMatrixCache(redisURL string, ttl time.Duration) (*MatrixCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MatrixCache{rdb: redis.NewClient(opt), ttl: ttl}, nil
}

func matrixFingerprint(profile string, m model.Matrices) string {
	h := sha256.New()
	h.Write([]byte(profile))
	writeMatrixDigest(h, len(m.Durations))
	for _, row := range m.Durations {
		for _, v := range row {
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(v))
			h.Write(b[:])
		}
	}
	writeMatrixDigest(h, len(m.Distances))
	for _, row := range m.Distances {
		for _, v := range row {
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(v))
			h.Write(b[:])
		}
	}
	writeMatrixDigest(h, len(m.Costs))
	for _, row := range m.Costs {
		for _, v := range row {
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(v))
			h.Write(b[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeMatrixDigest(h interface{ Write([]byte) (int, error) }, n int) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(n))
	h.Write(b[:])
}

// put stores the matrix fingerprint -> matrix mapping; best-effort, any
// error is swallowed since the cache is purely an optimization.
func (c *MatrixCache) put(profile string, m model.Matrices) {
	if c == nil || c.rdb == nil {
		return
	}
	key := "vrpsolver:matrix:" + matrixFingerprint(profile, m)
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Lookup fetches a previously cached matrix by its fingerprint, used by
// callers that want to avoid re-sending a large matrix already known to
// the cache (e.g. a CLI driver resubmitting the same static network).
func (c *MatrixCache) Lookup(ctx context.Context, profile string, fingerprint string) (model.Matrices, bool) {
	if c == nil || c.rdb == nil {
		return model.Matrices{}, false
	}
	key := "vrpsolver:matrix:" + fingerprint
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return model.Matrices{}, false
	}
	var m model.Matrices
	if err := json.Unmarshal(data, &m); err != nil {
		return model.Matrices{}, false
	}
	return m, true
}

// Close releases the underlying Redis client.
func (c *MatrixCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
