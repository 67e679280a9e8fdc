package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/pkg/shopify"
	"loja_backend_v1/pkg/utils"
)

// newCountingService 假 GraphQL 端点，固定响应并统计请求数
func newCountingService(t *testing.T, data string) (*ShopifyService, *int64) {
	t.Helper()

	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":` + data + `}`))
	}))
	t.Cleanup(server.Close)

	client := shopify.NewClientWithEndpoint(server.URL, "test-token", 0)
	svc := NewShopifyService(client, utils.NewQueryCache(time.Minute), nil)
	return svc, &calls
}

const emptyProductsData = `{"products": {"pageInfo": {"hasNextPage": false, "endCursor": null}, "nodes": []}}`

func TestGetProducts_无参数走缓存(t *testing.T) {
	svc, calls := newCountingService(t, emptyProductsData)
	ctx := context.Background()

	if _, err := svc.GetProducts(ctx, ProductQuery{}); err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if _, err := svc.GetProducts(ctx, ProductQuery{}); err != nil {
		t.Fatalf("GetProducts: %v", err)
	}

	if got := atomic.LoadInt64(calls); got != 1 {
		t.Errorf("无参数查询应命中缓存, 上游请求数 = %d, want 1", got)
	}
}

func TestGetProducts_带参数绕过缓存(t *testing.T) {
	svc, calls := newCountingService(t, emptyProductsData)
	ctx := context.Background()

	svc.GetProducts(ctx, ProductQuery{})
	svc.GetProducts(ctx, ProductQuery{Query: "camiseta"})
	svc.GetProducts(ctx, ProductQuery{After: "cursor"})
	svc.GetProducts(ctx, ProductQuery{SortKey: "PRICE", Reverse: true})

	if got := atomic.LoadInt64(calls); got != 4 {
		t.Errorf("带筛选参数应绕过缓存, 上游请求数 = %d, want 4", got)
	}
}

func TestShopifyService_ClearCache(t *testing.T) {
	svc, calls := newCountingService(t, emptyProductsData)
	ctx := context.Background()

	svc.GetProducts(ctx, ProductQuery{})
	svc.ClearCache()
	svc.GetProducts(ctx, ProductQuery{})

	if got := atomic.LoadInt64(calls); got != 2 {
		t.Errorf("清缓存后应重新取数, 上游请求数 = %d, want 2", got)
	}
}

func TestGetCollections_缓存(t *testing.T) {
	svc, calls := newCountingService(t, `{"collections": {"nodes": [
		{"id": "gid://shopify/Collection/1", "title": "Camisetas", "handle": "camisetas"}
	]}}`)
	ctx := context.Background()

	resp, err := svc.GetCollections(ctx)
	if err != nil {
		t.Fatalf("GetCollections: %v", err)
	}
	if len(resp.Collections) != 1 || resp.Collections[0].Slug != "camisetas" {
		t.Fatalf("归一化错误: %+v", resp.Collections)
	}

	svc.GetCollections(ctx)
	if got := atomic.LoadInt64(calls); got != 1 {
		t.Errorf("集合列表应命中缓存, 上游请求数 = %d, want 1", got)
	}
}

func TestGetProductByID_未找到(t *testing.T) {
	svc, _ := newCountingService(t, `{"product": null}`)

	_, err := svc.GetProductByID(context.Background(), "999")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestGetStoriesCollections_按metafield过滤(t *testing.T) {
	svc, _ := newCountingService(t, `{"collections": {"nodes": [
		{"id": "gid://shopify/Collection/1", "title": "Com Stories", "handle": "com-stories",
		 "image": {"url": "https://cdn.example.com/capa.jpg"},
		 "metafields": [{"key": "stories", "value": "Sim"}]},
		{"id": "gid://shopify/Collection/2", "title": "Sem Stories", "handle": "sem-stories",
		 "metafields": [{"key": "stories", "value": "nao"}]},
		{"id": "gid://shopify/Collection/3", "title": "Sem Metafield", "handle": "sem-metafield",
		 "metafields": []}
	]}}`)

	resp, err := svc.GetStoriesCollections(context.Background())
	if err != nil {
		t.Fatalf("GetStoriesCollections: %v", err)
	}
	if len(resp.Collections) != 1 {
		t.Fatalf("应只保留 stories=sim 的集合, got %d", len(resp.Collections))
	}
	story := resp.Collections[0]
	if story.ID != 1 || story.Gid != "gid://shopify/Collection/1" {
		t.Errorf("id 解析错误: %+v", story)
	}
	if story.Image == nil || *story.Image != "https://cdn.example.com/capa.jpg" {
		t.Errorf("Image = %v", story.Image)
	}
}

func TestGetProductsByCollection_集合不存在(t *testing.T) {
	svc, _ := newCountingService(t, `{"collection": null}`)

	resp, err := svc.GetProductsByCollection(context.Background(), "gid://shopify/Collection/404", ProductQuery{})
	if err != nil {
		t.Fatalf("集合不存在不应返回错误: %v", err)
	}
	if len(resp.Products) != 0 || resp.PageInfo.HasNextPage {
		t.Errorf("应返回空列表: %+v", resp)
	}
}

func TestCreateCheckout_UserErrors(t *testing.T) {
	svc, _ := newCountingService(t, `{"cartCreate": {
		"cart": null,
		"userErrors": [{"field": ["lines"], "message": "Variant is invalid"}]
	}}`)

	_, err := svc.CreateCheckout(context.Background(), []dto.CheckoutLine{
		{MerchandiseID: "gid://shopify/ProductVariant/1", Quantity: 1},
	})

	var validationErr *CheckoutValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want CheckoutValidationError", err)
	}
	if validationErr.Message != "Variant is invalid" {
		t.Errorf("Message = %q", validationErr.Message)
	}
}

func TestCreateCheckout_成功(t *testing.T) {
	svc, _ := newCountingService(t, `{"cartCreate": {
		"cart": {"checkoutUrl": "https://loja.example.com/checkout/abc"},
		"userErrors": []
	}}`)

	resp, err := svc.CreateCheckout(context.Background(), []dto.CheckoutLine{
		{MerchandiseID: "gid://shopify/ProductVariant/1", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if resp.CheckoutURL != "https://loja.example.com/checkout/abc" {
		t.Errorf("CheckoutURL = %q", resp.CheckoutURL)
	}
}

func TestCreateCheckout_无结账地址(t *testing.T) {
	svc, _ := newCountingService(t, `{"cartCreate": {"cart": null, "userErrors": []}}`)

	_, err := svc.CreateCheckout(context.Background(), []dto.CheckoutLine{
		{MerchandiseID: "gid://shopify/ProductVariant/1", Quantity: 1},
	})

	var empty *shopify.EmptyResponseError
	if !errors.As(err, &empty) {
		t.Errorf("err = %v, want EmptyResponseError 包装", err)
	}
}

func TestGetShopMetafields(t *testing.T) {
	svc, _ := newCountingService(t, `{"shop": {"metafields": [
		{"key": "bannerHomeMobile", "value": "https://cdn.example.com/banner.jpg"}
	]}}`)

	resp, err := svc.GetShopMetafields(context.Background())
	if err != nil {
		t.Fatalf("GetShopMetafields: %v", err)
	}
	if resp.BannerHomeMobile == nil || *resp.BannerHomeMobile != "https://cdn.example.com/banner.jpg" {
		t.Errorf("BannerHomeMobile = %v", resp.BannerHomeMobile)
	}
}
