package storage

import "fmt"

// rankingKey is the sorted set of session ids scored by points.
func (l *RedisLeaderboard) rankingKey(mode string) string {
	return fmt.Sprintf("%s:ranking:%s", l.cfg.KeyPrefix, mode)
}

// resultKey holds one result as JSON.
func (l *RedisLeaderboard) resultKey(sessionID string) string {
	return fmt.Sprintf("%s:result:%s", l.cfg.KeyPrefix, sessionID)
}

// modesKey is the set of modes with a ranking.
func (l *RedisLeaderboard) modesKey() string {
	return fmt.Sprintf("%s:modes", l.cfg.KeyPrefix)
}
