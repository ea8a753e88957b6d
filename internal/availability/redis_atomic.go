package availability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"driftwood/internal/shared/dates"
)

// HoldStore is the short-lived soft-lock layer over the date calendar.
// A hold is taken when a reservation is created PENDING so two guests
// cannot both carry a quote for the same nights into payment; it expires
// on its own if the guest never confirms.
type HoldStore interface {
	HoldRange(ctx context.Context, days []dates.Date, guestID, holdID string, ttl time.Duration) error
	ReleaseHold(ctx context.Context, holdID string) (int, error)
	HeldDates(ctx context.Context, days []dates.Date, excludeHoldID string) ([]dates.Date, error)
}

// HoldConflictError reports the first held day that blocked a hold attempt.
type HoldConflictError struct {
	Date dates.Date
}

func (e *HoldConflictError) Error() string {
	return fmt.Sprintf("day already held: %s", e.Date)
}

// AtomicRedisOperations handles atomic Redis operations for date-range holding
type AtomicRedisOperations struct {
	redis *redis.Client
}

// NewAtomicRedisOperations creates a new atomic Redis operations handler
func NewAtomicRedisOperations(redisClient *redis.Client) *AtomicRedisOperations {
	return &AtomicRedisOperations{
		redis: redisClient,
	}
}

// Lua script for atomic date-range holding - prevents race conditions
const luaAtomicRangeHold = `
-- KEYS[1] = hold_id
-- ARGV[1] = guest_id
-- ARGV[2] = ttl_seconds
-- ARGV[3..N] = dates (YYYY-MM-DD)

local hold_id = KEYS[1]
local guest_id = ARGV[1]
local ttl = tonumber(ARGV[2])

-- Check that no day in the range is already held
for i = 3, #ARGV do
    local day = ARGV[i]
    local day_hold_key = "day_hold:" .. day

    if redis.call("EXISTS", day_hold_key) == 1 then
        return {0, day}
    end
end

-- All days are free, hold them atomically
local hold_key = "hold:" .. hold_id
local hold_days_key = "hold_days:" .. hold_id
local created_at = redis.call("TIME")[1]

redis.call("HMSET", hold_key,
    "guest_id", guest_id,
    "day_count", #ARGV - 2,
    "created_at", created_at
)
redis.call("EXPIRE", hold_key, ttl)

for i = 3, #ARGV do
    local day = ARGV[i]
    local day_hold_key = "day_hold:" .. day
    local hold_value = guest_id .. ":" .. hold_id

    redis.call("SETEX", day_hold_key, ttl, hold_value)
    redis.call("SADD", hold_days_key, day)
end

redis.call("EXPIRE", hold_days_key, ttl)

return {1, "success"}
`

// Lua script for atomic hold release
const luaAtomicHoldRelease = `
-- KEYS[1] = hold_id
local hold_id = KEYS[1]

local hold_key = "hold:" .. hold_id
local hold_days_key = "hold_days:" .. hold_id

local hold_data = redis.call("HGETALL", hold_key)
if #hold_data == 0 then
    return {0, "hold_not_found"}
end

local days = redis.call("SMEMBERS", hold_days_key)

for i = 1, #days do
    redis.call("DEL", "day_hold:" .. days[i])
end

redis.call("DEL", hold_key)
redis.call("DEL", hold_days_key)

return {1, #days}
`

// HoldRange atomically holds every day in the range using a Lua script.
func (a *AtomicRedisOperations) HoldRange(ctx context.Context, days []dates.Date, guestID, holdID string, ttl time.Duration) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{holdID}
	args := []interface{}{
		guestID,
		strconv.Itoa(int(ttl.Seconds())),
	}
	for _, day := range days {
		args = append(args, day.String())
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicRangeHold, keys, args...).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = a.redis.Eval(ctx, luaAtomicRangeHold, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic range hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		if conflictDay, ok := resultArray[1].(string); ok {
			if day, parseErr := dates.Parse(conflictDay); parseErr == nil {
				return &HoldConflictError{Date: day}
			}
		}
		return fmt.Errorf("failed to hold date range")
	}

	return nil
}

// ReleaseHold atomically releases a hold and returns the number of days freed.
func (a *AtomicRedisOperations) ReleaseHold(ctx context.Context, holdID string) (int, error) {
	if a.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicHoldRelease, []string{holdID}).Result()
	if err != nil {
		result, err = a.redis.Eval(ctx, luaAtomicHoldRelease, []string{holdID}).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute atomic hold release: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return 0, fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		if reason, ok := resultArray[1].(string); ok {
			return 0, fmt.Errorf("failed to release hold: %s", reason)
		}
		return 0, fmt.Errorf("failed to release hold")
	}

	releasedCount, ok := resultArray[1].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid released count in Lua script result")
	}

	return int(releasedCount), nil
}

// HeldDates reports which of the given days carry an active hold, skipping
// any hold matching excludeHoldID (a reservation re-checking its own range).
func (a *AtomicRedisOperations) HeldDates(ctx context.Context, days []dates.Date, excludeHoldID string) ([]dates.Date, error) {
	if a.redis == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	pipe := a.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(days))
	for i, day := range days {
		cmds[i] = pipe.Get(ctx, "day_hold:"+day.String())
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to check held dates: %w", err)
	}

	var held []dates.Date
	for i, cmd := range cmds {
		val, err := cmd.Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check held dates: %w", err)
		}
		if excludeHoldID != "" && holdIDOf(val) == excludeHoldID {
			continue
		}
		held = append(held, days[i])
	}

	return held, nil
}

// holdIDOf extracts the hold ID from a "guest_id:hold_id" hold value.
func holdIDOf(value string) string {
	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			return value[i+1:]
		}
	}
	return ""
}

// PreloadScripts loads Lua scripts into Redis for better performance
func (a *AtomicRedisOperations) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := a.redis.ScriptLoad(ctx, luaAtomicRangeHold).Result(); err != nil {
		return fmt.Errorf("failed to load range hold script: %w", err)
	}

	if _, err := a.redis.ScriptLoad(ctx, luaAtomicHoldRelease).Result(); err != nil {
		return fmt.Errorf("failed to load hold release script: %w", err)
	}

	return nil
}
