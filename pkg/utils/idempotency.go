package utils

import (
	"context"

	"linguaapi/pkg/config"

	"github.com/redis/go-redis/v9"
)

// release only deletes the key when it still holds the claiming owner, so
// a late failure cannot release a key reclaimed by a retry.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		redis.call("DEL", KEYS[1])
		return 1
	end
	return 0
`)

// ClaimIdempotencyKey marks a purchase attempt as in flight. Returns false
// when the key was already claimed (replayed request).
func ClaimIdempotencyKey(redisCli *redis.Client, ctx context.Context, key string, owner string) (bool, error) {
	return redisCli.SetNX(ctx, "purchase:idem:"+key, owner, config.IDEMPOTENCY_KEY_TTL).Result()
}

// ReleaseIdempotencyKey frees a claimed key after a failed commit so the
// client may retry with the same key.
func ReleaseIdempotencyKey(redisCli *redis.Client, ctx context.Context, key string, owner string) error {
	return releaseScript.Run(ctx, redisCli, []string{"purchase:idem:" + key}, owner).Err()
}
