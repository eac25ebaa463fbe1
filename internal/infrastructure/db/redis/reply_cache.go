package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const replyTTL = time.Hour

// ReplyCache stores assistant answers in Redis so repeated questions from the
// same user are served without another model round-trip.
// Key format: assistant:<user_id>:<sha256(normalized question)>
type ReplyCache struct {
	client *redis.Client
}

// NewReplyCache creates a ReplyCache wrapping the given Redis client.
func NewReplyCache(client *redis.Client) *ReplyCache {
	return &ReplyCache{client: client}
}

// Get returns a cached reply for the user's question, if one exists.
func (c *ReplyCache) Get(ctx context.Context, userID, message string) (string, bool, error) {
	reply, err := c.client.Get(ctx, c.key(userID, message)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reply cache get: %w", err)
	}
	return reply, true, nil
}

// Put stores a reply for the user's question (expires after replyTTL).
func (c *ReplyCache) Put(ctx context.Context, userID, message, reply string) error {
	return c.client.Set(ctx, c.key(userID, message), reply, replyTTL).Err()
}

func (c *ReplyCache) key(userID, message string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(message), " "))
	sum := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("assistant:%s:%s", userID, hex.EncodeToString(sum[:]))
}
