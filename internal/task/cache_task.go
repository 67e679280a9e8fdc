package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"loja_backend_v1/internal/service"
)

// ==================== CacheWarmTask 缓存预热任务 ====================

// CacheWarmTask 周期性预热商品/集合查询缓存
// 缓存 TTL 5 分钟，预热周期 4 分钟保证前台基本不落到冷路径
type CacheWarmTask struct {
	shopifyService *service.ShopifyService
	cron           *cron.Cron
}

// NewCacheWarmTask 创建缓存预热任务
func NewCacheWarmTask(shopifyService *service.ShopifyService) *CacheWarmTask {
	return &CacheWarmTask{
		shopifyService: shopifyService,
		cron:           cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *CacheWarmTask) Start() {
	// 首次预热（延迟 5 秒，等服务就绪）
	go func() {
		time.Sleep(5 * time.Second)
		t.warm()
	}()

	// 每 4 分钟刷新一次
	_, _ = t.cron.AddFunc("0 */4 * * * *", func() {
		t.warm()
	})

	t.cron.Start()
	log.Println("[CacheWarmTask] 缓存预热任务已启动")
}

// Stop 停止任务
func (t *CacheWarmTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[CacheWarmTask] 缓存预热任务已停止")
}

func (t *CacheWarmTask) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if _, err := t.shopifyService.GetProducts(ctx, service.ProductQuery{}); err != nil {
		log.Printf("[CacheWarmTask] 商品缓存预热失败: %v", err)
	}
	if _, err := t.shopifyService.GetCollections(ctx); err != nil {
		log.Printf("[CacheWarmTask] 集合缓存预热失败: %v", err)
	}
}
