// Package redis holds the shared client and the booking lock. Every
// read-modify-write cycle over the schedule ledgers must run under the lock:
// two concurrent requests booking against the same stale snapshot would both
// pass the feasibility check and jointly overbook a group.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

const (
	bookingLockKey = "bookings:lock"
	lockTTL        = 15 * time.Second
	acquireTimeout = 5 * time.Second
	retryInterval  = 50 * time.Millisecond
)

// ErrLockBusy is returned when the booking lock cannot be acquired within
// the acquire timeout.
var ErrLockBusy = errors.New("booking lock busy")

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// AcquireBookingLock takes the global booking lock, polling until the
// acquire timeout. The returned token must be passed to ReleaseBookingLock.
// The TTL bounds how long a crashed holder can block others.
func AcquireBookingLock(ctx context.Context, token string) error {
	deadline := time.Now().Add(acquireTimeout)
	for {
		ok, err := Rdb.SetNX(ctx, bookingLockKey, token, lockTTL).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrLockBusy
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

// releaseScript deletes the lock only if the caller still owns it, so a
// holder that outlived its TTL cannot release someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// ReleaseBookingLock releases the lock if token still owns it. Best-effort:
// failures are logged, the TTL is the backstop.
func ReleaseBookingLock(ctx context.Context, token string) {
	if err := releaseScript.Run(ctx, Rdb, []string{bookingLockKey}, token).Err(); err != nil {
		log.Error().Err(err).Msg("failed to release booking lock")
	}
}
