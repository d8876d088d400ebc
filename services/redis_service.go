package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotelbooking/constants"
	"hotelbooking/services/logger"
	"hotelbooking/utils"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Hàm lấy data từ Redis. Trả về false khi không có key.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Parse JSON thành object
	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// Hàm lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// Hàm xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}

// RoomCalendar là lịch ngày đã giữ của từng số phòng trong một loại phòng
type RoomCalendar struct {
	RoomID uint                `json:"roomId"`
	From   utils.Day           `json:"from"`
	To     utils.Day           `json:"to"`
	Taken  map[int][]utils.Day `json:"taken"`
}

// CalendarCache cache lịch phòng; lỗi cache không làm hỏng request.
// Version phải được đọc trước khi đọc store; Set bỏ qua nếu Invalidate
// đã chạy sau lần đọc đó.
type CalendarCache interface {
	Get(ctx context.Context, roomID uint, from, to utils.Day) (*RoomCalendar, bool)
	Version(ctx context.Context, roomID uint) int64
	Set(ctx context.Context, cal *RoomCalendar, version int64)
	Invalidate(ctx context.Context, roomID uint)
}

const (
	calendarTTL        = 10 * time.Minute
	calendarVersionTTL = 24 * time.Hour
)

// RedisCalendarCache giữ mọi khoảng ngày của một phòng trong một hash
type RedisCalendarCache struct {
	rdb *redis.Client
	log logger.Logger
}

func NewRedisCalendarCache(rdb *redis.Client, log logger.Logger) *RedisCalendarCache {
	return &RedisCalendarCache{rdb: rdb, log: log}
}

func calendarKey(roomID uint) string {
	return fmt.Sprintf(constants.CacheKeyRoomCalendar, roomID)
}

func calendarVersionKey(roomID uint) string {
	return fmt.Sprintf(constants.CacheKeyRoomCalendarVersion, roomID)
}

func calendarField(from, to utils.Day) string {
	return from.String() + ":" + to.String()
}

func (c *RedisCalendarCache) Get(ctx context.Context, roomID uint, from, to utils.Day) (*RoomCalendar, bool) {
	data, err := c.rdb.HGet(ctx, calendarKey(roomID), calendarField(from, to)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Error("calendar cache get room %d: %v", roomID, err)
		}
		return nil, false
	}
	var cal RoomCalendar
	if err := json.Unmarshal(data, &cal); err != nil {
		return nil, false
	}
	return &cal, true
}

func (c *RedisCalendarCache) Version(ctx context.Context, roomID uint) int64 {
	v, err := c.rdb.Get(ctx, calendarVersionKey(roomID)).Int64()
	if err != nil && err != redis.Nil {
		c.log.Error("calendar cache version room %d: %v", roomID, err)
		return -1
	}
	return v
}

func (c *RedisCalendarCache) Set(ctx context.Context, cal *RoomCalendar, version int64) {
	if version < 0 {
		return
	}
	data, err := json.Marshal(cal)
	if err != nil {
		return
	}
	key, verKey := calendarKey(cal.RoomID), calendarVersionKey(cal.RoomID)

	// WATCH khóa version: Invalidate chen vào giữa thì EXEC thất bại
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, calendarField(cal.From, cal.To), data)
			pipe.Expire(ctx, key, calendarTTL)
			return nil
		})
		return err
	}, verKey)
	if err != nil && err != redis.TxFailedErr {
		c.log.Error("calendar cache set room %d: %v", cal.RoomID, err)
	}
}

func (c *RedisCalendarCache) Invalidate(ctx context.Context, roomID uint) {
	verKey := calendarVersionKey(roomID)
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, verKey)
	pipe.Expire(ctx, verKey, calendarVersionTTL)
	pipe.Del(ctx, calendarKey(roomID))
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Error("calendar cache invalidate room %d: %v", roomID, err)
	}
}

// NoopCalendarCache dùng khi không có redis
type NoopCalendarCache struct{}

func (NoopCalendarCache) Get(context.Context, uint, utils.Day, utils.Day) (*RoomCalendar, bool) {
	return nil, false
}
func (NoopCalendarCache) Version(context.Context, uint) int64       { return 0 }
func (NoopCalendarCache) Set(context.Context, *RoomCalendar, int64) {}
func (NoopCalendarCache) Invalidate(context.Context, uint)          {}

// MemoryCalendarCache là cache trong process cho chế độ demo
type MemoryCalendarCache struct {
	mu       sync.Mutex
	entries  map[uint]map[string]*RoomCalendar
	versions map[uint]int64
}

func NewMemoryCalendarCache() *MemoryCalendarCache {
	return &MemoryCalendarCache{
		entries:  make(map[uint]map[string]*RoomCalendar),
		versions: make(map[uint]int64),
	}
}

func (c *MemoryCalendarCache) Get(_ context.Context, roomID uint, from, to utils.Day) (*RoomCalendar, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cal, ok := c.entries[roomID][calendarField(from, to)]
	return cal, ok
}

func (c *MemoryCalendarCache) Version(_ context.Context, roomID uint) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[roomID]
}

func (c *MemoryCalendarCache) Set(_ context.Context, cal *RoomCalendar, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[cal.RoomID] != version {
		return
	}
	if c.entries[cal.RoomID] == nil {
		c.entries[cal.RoomID] = make(map[string]*RoomCalendar)
	}
	c.entries[cal.RoomID][calendarField(cal.From, cal.To)] = cal
}

func (c *MemoryCalendarCache) Invalidate(_ context.Context, roomID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[roomID]++
	delete(c.entries, roomID)
}
