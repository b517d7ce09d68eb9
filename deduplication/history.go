package deduplication

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"storyreel/types"
)

// HistoryConfig configures the RedisBloom connection and key
type HistoryConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string
	// TTL is renewed on every insert; zero keeps the filter forever
	TTL time.Duration
	// Capacity and ErrorRate size the filter when it is first reserved
	Capacity  int
	ErrorRate float64
}

// DefaultHistoryKey is the Redis key of the produced-posts filter
const DefaultHistoryKey = "storyreel:posts:bloom"

// History remembers which posts were already turned into videos so repeated
// top-post runs do not render the same story twice. It is a Bloom filter, so
// a small fraction of new posts may be reported as seen.
type History struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewHistory connects to Redis and reserves the filter if it does not exist yet
func NewHistory(ctx context.Context, cfg HistoryConfig) (*History, error) {
	if cfg.Key == "" {
		cfg.Key = DefaultHistoryKey
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 100000
	}
	if cfg.ErrorRate <= 0 {
		cfg.ErrorRate = 0.001
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	exists, err := client.Exists(pingCtx, cfg.Key).Result()
	if err == nil && exists == 0 {
		// BF.RESERVE <key> <error_rate> <capacity>; BF.ADD auto-creates on failure
		_ = client.Do(pingCtx, "BF.RESERVE", cfg.Key, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity).Err()
	}

	return &History{client: client, key: cfg.Key, ttl: cfg.TTL}, nil
}

func (h *History) Close() error {
	return h.client.Close()
}

// Seen reports whether post was produced before
func (h *History) Seen(ctx context.Context, post types.Post) (bool, error) {
	res, err := h.client.Do(ctx, "BF.EXISTS", h.key, PostKey(post)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check history: %w", err)
	}

	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case bool:
		return v, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Mark records post as produced
func (h *History) Mark(ctx context.Context, post types.Post) error {
	if err := h.client.Do(ctx, "BF.ADD", h.key, PostKey(post)).Err(); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	if h.ttl > 0 {
		if err := h.client.Expire(ctx, h.key, h.ttl).Err(); err != nil {
			return fmt.Errorf("failed to refresh history ttl: %w", err)
		}
	}
	return nil
}

// PostKey identifies a post independent of tracking parameters and title
// formatting: sha256(normalizedURL + "|" + normalizedTitle)
func PostKey(post types.Post) string {
	combined := normalizeURL(post.URL) + "|" + normalizeTitle(post.Title)
	h := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(h[:])
}

func normalizeTitle(t string) string {
	return strings.Join(strings.Fields(strings.ToLower(t)), " ")
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" || lk == "share_id" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return strings.TrimRight(u.String(), "/")
}
