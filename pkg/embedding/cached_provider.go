package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// CachedProvider memoizes embeddings in process and, when a redis client is
// given, in a shared cache so repeated questions skip the embedding service.
type CachedProvider struct {
	next      EmbeddingProvider
	namespace string
	local     *cache.Cache
	redis     *redis.Client
	ttl       time.Duration
}

var _ EmbeddingProvider = (*CachedProvider)(nil)

// NewCachedProvider wraps next. namespace should identify the model so vectors
// from different models never mix. rdb may be nil.
func NewCachedProvider(next EmbeddingProvider, namespace string, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedProvider{
		next:      next,
		namespace: namespace,
		local:     cache.New(ttl, 10*time.Minute),
		redis:     rdb,
		ttl:       ttl,
	}
}

func (p *CachedProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	key := p.key(text, taskType)

	if v, ok := p.local.Get(key); ok {
		return v.(*EmbeddingResponse), nil
	}

	if p.redis != nil {
		// a miss or an unreachable redis both fall through to the provider
		if raw, err := p.redis.Get(ctx, key).Bytes(); err == nil {
			var resp EmbeddingResponse
			if json.Unmarshal(raw, &resp) == nil && len(resp.Embedding.Values) > 0 {
				p.local.SetDefault(key, &resp)
				return &resp, nil
			}
		}
	}

	resp, err := p.next.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}

	p.local.SetDefault(key, resp)
	if p.redis != nil {
		if raw, err := json.Marshal(resp); err == nil {
			// a failed write only costs a future recompute
			_ = p.redis.Set(ctx, key, raw, p.ttl).Err()
		}
	}
	return resp, nil
}

func (p *CachedProvider) key(text, taskType string) string {
	sum := sha256.Sum256([]byte(taskType + "\x00" + text))
	return "embedding:" + p.namespace + ":" + hex.EncodeToString(sum[:])
}
