package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// JobLocker guards a job against concurrent runs. Acquire returns ok=false
// when another holder owns the lock.
type JobLocker interface {
	Acquire(ctx context.Context, jobID int64) (release func(), ok bool, err error)
}

// MemoryLocker is a process local JobLocker
type MemoryLocker struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

// NewMemoryLocker creates an empty in-process locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[int64]struct{})}
}

// Acquire takes the lock for jobID if it is free
func (l *MemoryLocker) Acquire(_ context.Context, jobID int64) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[jobID]; busy {
		return nil, false, nil
	}
	l.held[jobID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, jobID)
			l.mu.Unlock()
		})
	}, true, nil
}

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares job locks between processes through redis
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// NewRedisLocker creates a locker from a redis:// URL. The TTL bounds how
// long a crashed holder can block a job.
func NewRedisLocker(url string, ttl time.Duration, logger *slog.Logger) (*RedisLocker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		client: redis.NewClient(opts),
		ttl:    ttl,
		prefix: "gtx:job-lock:",
		logger: logger,
	}, nil
}

func (l *RedisLocker) key(jobID int64) string {
	return fmt.Sprintf("%s%d", l.prefix, jobID)
}

// Acquire sets the lock key with NX and a random token
func (l *RedisLocker) Acquire(ctx context.Context, jobID int64) (func(), bool, error) {
	token := uuid.NewString()
	key := l.key(jobID)

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire job lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
				l.logger.Warn("Failed to release job lock", "job_id", jobID, "error", err)
			}
		})
	}, true, nil
}

// Ping checks the redis connection
func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the redis client
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
