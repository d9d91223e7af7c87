package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockNotAcquired is returned when another request holds the booking lock
// for the same doctor and date.
var ErrLockNotAcquired = errors.New("booking lock is held by another request")

// unlockScript releases a lock only if the caller still owns it. Comparing
// the token before DEL prevents releasing a lock that expired and was
// re-acquired by someone else.
var unlockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const lockKeyPrefix = "lock:doctor:"

// SlotLockService serializes booking writes per doctor per date with a Redis
// SET NX lock. The lock only narrows the race window; the database
// transaction re-checks conflicts before inserting, so correctness does not
// depend on Redis being up to date.
type SlotLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSlotLockService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotLockService {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &SlotLockService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func lockKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", lockKeyPrefix, doctorID, date.Format("2006-01-02"))
}

// acquire takes the lock and returns the owner token needed to release it.
func (s *SlotLockService) acquire(ctx context.Context, key string) (string, error) {
	token := uuid.NewString()
	ok, err := s.redisClient.SetNX(ctx, key, token, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return "", ErrLockNotAcquired
	}
	return token, nil
}

func (s *SlotLockService) release(ctx context.Context, key, token string) {
	if err := unlockScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil {
		// The TTL will reclaim the lock; log and move on.
		s.log.Warnf("Failed to release lock %s: %+v", key, err)
	}
}

// WithSlotLock runs fn while holding the booking lock for the doctor and
// date. Returns ErrLockNotAcquired without invoking fn when the lock is
// contended; callers translate that into a retryable busy response.
func (s *SlotLockService) WithSlotLock(ctx context.Context, doctorID uuid.UUID, date time.Time, fn func() error) error {
	key := lockKey(doctorID, date)

	token, err := s.acquire(ctx, key)
	if err != nil {
		return err
	}
	defer s.release(ctx, key, token)

	return fn()
}
