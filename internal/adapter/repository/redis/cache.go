package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
)

// StatementCache implements usecase.StatementCache using Redis.
// Each account has a version counter. The statements of one version live in
// a hash keyed by start date; Invalidate bumps the counter, leaving the old
// hash unreachable until its TTL drops it.
type StatementCache struct {
	client redis.Cmdable
	prefix string
}

// NewStatementCache creates a new StatementCache.
func NewStatementCache(client redis.Cmdable) *StatementCache {
	return &StatementCache{
		client: client,
		prefix: "bank:statement:",
	}
}

type cachedLine struct {
	Timestamp      time.Time       `json:"timestamp"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

type cachedStatement struct {
	AccountID int64        `json:"account_id"`
	Lines     []cachedLine `json:"lines"`
}

// Version returns the current version of accountID, zero when the account
// was never invalidated.
func (c *StatementCache) Version(ctx context.Context, accountID int64) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey(accountID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// Get returns the statement of accountID starting at fromDate cached under version.
func (c *StatementCache) Get(ctx context.Context, accountID, version int64, fromDate time.Time) (*domain.AccountStatement, bool, error) {
	raw, err := c.client.HGet(ctx, c.key(accountID, version), field(fromDate)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cached cachedStatement
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached statement: %w", err)
	}

	statement := &domain.AccountStatement{
		AccountID: cached.AccountID,
		Lines:     make([]domain.StatementLine, 0, len(cached.Lines)),
	}
	for _, l := range cached.Lines {
		statement.Lines = append(statement.Lines, domain.StatementLine{
			Timestamp:      l.Timestamp,
			Amount:         l.Amount,
			RunningBalance: l.RunningBalance,
		})
	}

	return statement, true, nil
}

// Set stores statement under version and refreshes the TTL of that hash.
// A statement stored under a superseded version is never read back.
func (c *StatementCache) Set(ctx context.Context, accountID, version int64, fromDate time.Time, statement *domain.AccountStatement, ttl time.Duration) error {
	cached := cachedStatement{
		AccountID: statement.AccountID,
		Lines:     make([]cachedLine, 0, len(statement.Lines)),
	}
	for _, l := range statement.Lines {
		cached.Lines = append(cached.Lines, cachedLine(l))
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	key := c.key(accountID, version)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field(fromDate), raw)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// Invalidate moves accountID to a new version and drops the hash of the
// version it leaves.
func (c *StatementCache) Invalidate(ctx context.Context, accountID int64) error {
	version, err := c.client.Incr(ctx, c.versionKey(accountID)).Result()
	if err != nil {
		return err
	}
	return c.client.Del(ctx, c.key(accountID, version-1)).Err()
}

func (c *StatementCache) key(accountID, version int64) string {
	return c.prefix + strconv.FormatInt(accountID, 10) + ":v" + strconv.FormatInt(version, 10)
}

func (c *StatementCache) versionKey(accountID int64) string {
	return c.prefix + strconv.FormatInt(accountID, 10) + ":version"
}

func field(fromDate time.Time) string {
	return strconv.FormatInt(fromDate.UnixNano(), 10)
}
