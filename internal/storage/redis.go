package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection and retention settings.
type RedisConfig struct {
	// URL is the connection URL, e.g. redis://localhost:6379/0.
	URL          string
	PoolSize     int
	MinIdleConns int

	// KeyPrefix namespaces every key.
	KeyPrefix string
	// MaxEntries caps each mode's ranking; lower entries are trimmed. 0 keeps all.
	MaxEntries int
	// ResultTTL expires stored result bodies. 0 keeps them forever.
	ResultTTL time.Duration
}

// DefaultRedisConfig returns settings for a local server.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		KeyPrefix:    "blocks",
		MaxEntries:   1000,
		ResultTTL:    30 * 24 * time.Hour,
	}
}

// RedisLeaderboard ranks results in one sorted set per mode and keeps each
// result body under its own key.
type RedisLeaderboard struct {
	client *redis.Client
	cfg    RedisConfig
}

var (
	_ Leaderboard = (*RedisLeaderboard)(nil)
	_ Ranker      = (*RedisLeaderboard)(nil)
)

// NewRedisLeaderboard connects and pings the server.
func NewRedisLeaderboard(cfg RedisConfig) (*RedisLeaderboard, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("storage: bad redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot reach redis: %w", err)
	}
	return NewRedisLeaderboardWithClient(client, cfg), nil
}

// NewRedisLeaderboardWithClient wraps an existing client.
func NewRedisLeaderboardWithClient(client *redis.Client, cfg RedisConfig) *RedisLeaderboard {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultRedisConfig().KeyPrefix
	}
	return &RedisLeaderboard{client: client, cfg: cfg}
}

// Close closes the client.
func (l *RedisLeaderboard) Close() error {
	return l.client.Close()
}

// Submit stores the result body and ranks it. Result ids are session ids,
// so submitting the same session twice keeps one entry.
func (l *RedisLeaderboard) Submit(ctx context.Context, r Result) error {
	if r.SessionID == "" {
		return errors.New("storage: result has no session id")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("storage: cannot encode result: %w", err)
	}

	board := l.rankingKey(r.Mode)
	pipe := l.client.TxPipeline()
	pipe.Set(ctx, l.resultKey(r.SessionID), body, l.cfg.ResultTTL)
	pipe.ZAdd(ctx, board, redis.Z{Score: float64(r.RankKey()), Member: r.SessionID})
	pipe.SAdd(ctx, l.modesKey(), r.Mode)
	if l.cfg.MaxEntries > 0 {
		// Ranks run lowest first; keep the top MaxEntries.
		pipe.ZRemRangeByRank(ctx, board, 0, int64(-l.cfg.MaxEntries-1))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: cannot submit result: %w", err)
	}
	return nil
}

// Top returns the best results for mode. Entries whose body expired are skipped.
func (l *RedisLeaderboard) Top(ctx context.Context, mode string, limit int) ([]Result, error) {
	ids, err := l.client.ZRevRange(ctx, l.rankingKey(mode), 0, int64(normLimit(limit)-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read ranking: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = l.resultKey(id)
	}
	bodies, err := l.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read results: %w", err)
	}

	out := make([]Result, 0, len(bodies))
	for _, body := range bodies {
		s, ok := body.(string)
		if !ok {
			continue
		}
		var r Result
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			return nil, fmt.Errorf("storage: cannot decode result: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Rank returns the 1-based position of a session in its mode, best first.
func (l *RedisLeaderboard) Rank(ctx context.Context, mode, sessionID string) (int, error) {
	rank, err := l.client.ZRevRank(ctx, l.rankingKey(mode), sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read rank: %w", err)
	}
	return int(rank) + 1, nil
}

// Modes lists every mode that has a ranking.
func (l *RedisLeaderboard) Modes(ctx context.Context) ([]string, error) {
	modes, err := l.client.SMembers(ctx, l.modesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list modes: %w", err)
	}
	return modes, nil
}
