package fraud

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fundhub/crowdfunding/pkg/logger"
	"github.com/fundhub/crowdfunding/pkg/redis"
	"go.uber.org/zap"
)

// ResultCache caches analysis results on the caller side. The scoring core
// stays side-effect free; only the handler layer reads and writes here.
// Entries are keyed by campaign id plus a digest of the snapshot, so a
// campaign edit invalidates naturally.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a result cache with the given TTL.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns the cached result for the snapshot, or nil on miss.
func (c *ResultCache) Get(ctx context.Context, snapshot *CampaignSnapshot) *FraudAnalysisResult {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.GetBytes(ctx, cacheKey(snapshot))
	if err != nil {
		if !redis.IsNil(err) {
			logger.WithContext(ctx).Warn("fraud result cache read failed", zap.Error(err))
		}
		return nil
	}
	var result FraudAnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

// Set stores the result for the snapshot. Cache failures are logged and
// swallowed; caching is best effort.
func (c *ResultCache) Set(ctx context.Context, snapshot *CampaignSnapshot, result *FraudAnalysisResult) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.SetWithExpiration(ctx, cacheKey(snapshot), data, c.ttl); err != nil {
		logger.WithContext(ctx).Warn("fraud result cache write failed", zap.Error(err))
	}
}

func cacheKey(snapshot *CampaignSnapshot) string {
	payload, _ := json.Marshal(snapshot)
	digest := sha256.Sum256(payload)
	return fmt.Sprintf("fraud:analysis:%s:%s", snapshot.ID, hex.EncodeToString(digest[:8]))
}
