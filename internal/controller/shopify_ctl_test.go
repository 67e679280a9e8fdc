package controller

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/service"
	"loja_backend_v1/pkg/shopify"
	"loja_backend_v1/pkg/utils"
)

type fakeWebhookRepo struct {
	events []*model.WebhookEvent
}

func (r *fakeWebhookRepo) Create(ctx context.Context, event *model.WebhookEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *fakeWebhookRepo) ListRecent(ctx context.Context, limit int) ([]model.WebhookEvent, error) {
	out := make([]model.WebhookEvent, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

// newWebhookTestRouter 假 GraphQL 上游 + webhook 路由，返回上游请求计数
func newWebhookTestRouter(t *testing.T, secret string) (*gin.Engine, *service.ShopifyService, *fakeWebhookRepo, *int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var upstream int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&upstream, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"products": {"pageInfo": {"hasNextPage": false, "endCursor": null}, "nodes": []}}}`))
	}))
	t.Cleanup(server.Close)

	client := shopify.NewClientWithEndpoint(server.URL, "test-token", 0)
	svc := service.NewShopifyService(client, utils.NewQueryCache(time.Minute), nil)

	repo := &fakeWebhookRepo{}
	ctrl := NewShopifyController(svc, repo, secret)

	router := gin.New()
	router.POST("/api/webhooks/shopify", ctrl.Webhook)
	return router, svc, repo, &upstream
}

func signWebhook(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(router *gin.Engine, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/shopify", bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhook_签名有效时清缓存(t *testing.T) {
	router, svc, repo, upstream := newWebhookTestRouter(t, "shh")
	ctx := context.Background()

	// 预热商品缓存
	svc.GetProducts(ctx, service.ProductQuery{})

	body := []byte(`{"id": 7890, "title": "Camiseta"}`)
	w := postWebhook(router, body, map[string]string{
		"X-Shopify-Hmac-Sha256": signWebhook("shh", body),
		"X-Shopify-Topic":       "products/update",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Body.String() != `{"received":true}` {
		t.Errorf("body = %s", w.Body.String())
	}

	if len(repo.events) != 1 || repo.events[0].Topic != "products/update" {
		t.Errorf("事件未落库: %+v", repo.events)
	}

	// 缓存已清，下一次查询应打到上游
	svc.GetProducts(ctx, service.ProductQuery{})
	if got := atomic.LoadInt64(upstream); got != 2 {
		t.Errorf("webhook 后缓存应失效, 上游请求数 = %d, want 2", got)
	}
}

func TestWebhook_签名无效返回401(t *testing.T) {
	router, svc, repo, upstream := newWebhookTestRouter(t, "shh")
	ctx := context.Background()

	svc.GetProducts(ctx, service.ProductQuery{})

	w := postWebhook(router, []byte(`{}`), map[string]string{
		"X-Shopify-Hmac-Sha256": "bm90LWEtdmFsaWQtc2lnbmF0dXJl",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if len(repo.events) != 0 {
		t.Errorf("签名无效不应落库")
	}

	// 缓存应保持有效
	svc.GetProducts(ctx, service.ProductQuery{})
	if got := atomic.LoadInt64(upstream); got != 1 {
		t.Errorf("签名无效不应清缓存, 上游请求数 = %d, want 1", got)
	}
}

func TestWebhook_未配置密钥时不校验(t *testing.T) {
	router, _, repo, _ := newWebhookTestRouter(t, "")

	w := postWebhook(router, []byte(`{"id": 1}`), map[string]string{
		"X-Shopify-Hmac-Sha256": "qualquer-coisa",
		"X-Shopify-Topic":       "collections/update",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("未配置密钥应直接受理, status = %d", w.Code)
	}
	if len(repo.events) != 1 {
		t.Errorf("事件应落库")
	}
}

func TestWebhook_无签名头时跳过校验(t *testing.T) {
	router, _, _, _ := newWebhookTestRouter(t, "shh")

	w := postWebhook(router, []byte(`{"id": 1}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("无签名头应跳过校验, status = %d", w.Code)
	}
}
