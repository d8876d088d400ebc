package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotelbooking/services/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker tuần tự hóa các thao tác trên cùng một key
type Locker interface {
	// Lock chặn đến khi giữ được key hoặc ctx hết hạn
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// RoomNumberLockKey là key khóa của một room-number
func RoomNumberLockKey(roomID uint, number int) string {
	return fmt.Sprintf("room:%d:number:%d", roomID, number)
}

// LocalLocker khóa theo key trong một process
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyLock)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.drop(key, kl)
		})
	}, nil
}

func (l *LocalLocker) drop(key string, kl *keyLock) {
	l.mu.Lock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}

// releaseScript chỉ xóa key khi token còn khớp
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker khóa qua redis để nhiều instance dùng chung
type RedisLocker struct {
	rdb   *redis.Client
	ttl   time.Duration
	retry time.Duration
	log   logger.Logger
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if log == nil {
		log = logger.Discard{}
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, retry: 25 * time.Millisecond, log: log}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := "lock:" + key
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-time.After(l.retry):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// ctx của request có thể đã hủy; vẫn phải nhả khóa
			if err := releaseScript.Run(context.Background(), l.rdb, []string{lockKey}, token).Err(); err != nil {
				l.log.Error("release lock %s: %v", lockKey, err)
			}
		})
	}, nil
}
