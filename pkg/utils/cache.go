package utils

import (
	"sync"
	"time"
)

// 命名缓存槽
const (
	CacheSlotProducts    = "products"
	CacheSlotCollections = "collections"
)

// DefaultCacheTTL 查询缓存的固定生存时间
const DefaultCacheTTL = 5 * time.Minute

// cacheItem 内部结构，包含数据和绝对过期时间
type cacheItem struct {
	data       interface{}
	expiration int64
}

// QueryCache 查询缓存接口
// 清空与在途的 fetch 之间不加锁：清空可能立刻被回填覆盖，
// 该过期窗口由 TTL 兜底，属于已接受的行为
type QueryCache interface {
	// GetOrFetch 命中且未过期直接返回；否则调 fetch，
	// eligible 为 true 时写回缓存槽
	GetOrFetch(slot string, eligible bool, fetch func() (interface{}, error)) (interface{}, error)
	// Clear 清空所有缓存槽 (webhook 触发)
	Clear()
}

// memoryCache 进程内实现，sync.Map 保证并发安全
type memoryCache struct {
	slots sync.Map
	ttl   time.Duration
}

var _ QueryCache = (*memoryCache)(nil)

// NewQueryCache 创建查询缓存，ttl 为 0 时用默认 5 分钟
func NewQueryCache(ttl time.Duration) QueryCache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &memoryCache{ttl: ttl}
}

func (c *memoryCache) GetOrFetch(slot string, eligible bool, fetch func() (interface{}, error)) (interface{}, error) {
	if eligible {
		if val, ok := c.slots.Load(slot); ok {
			item := val.(cacheItem)
			if time.Now().UnixNano() < item.expiration {
				return item.data, nil
			}
			// 懒删除
			c.slots.Delete(slot)
		}
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	if eligible {
		c.slots.Store(slot, cacheItem{
			data:       data,
			expiration: time.Now().Add(c.ttl).UnixNano(),
		})
	}

	return data, nil
}

func (c *memoryCache) Clear() {
	c.slots.Delete(CacheSlotProducts)
	c.slots.Delete(CacheSlotCollections)
}
