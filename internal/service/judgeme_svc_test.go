package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJudgeMe_未配置时返回兜底数据(t *testing.T) {
	svc := NewJudgeMeService(&JudgeMeConfig{})

	resp, err := svc.GetReviews(context.Background(), JudgeMeQuery{PerPage: 3})
	if err != nil {
		t.Fatalf("GetReviews: %v", err)
	}
	if resp.Rating != 4.8 {
		t.Errorf("兜底评分 = %v, want 4.8", resp.Rating)
	}
	if resp.Total != 3 || len(resp.Reviews) != 3 {
		t.Fatalf("Total = %d, Reviews = %d, want 3", resp.Total, len(resp.Reviews))
	}
	if resp.Reviews[0].Name != "Maria Silva" {
		t.Errorf("首条兜底评价 = %q", resp.Reviews[0].Name)
	}

	// perPage 超出兜底条数时截断
	resp, _ = svc.GetReviews(context.Background(), JudgeMeQuery{PerPage: 50})
	if resp.Total != 6 {
		t.Errorf("兜底最多 6 条, got %d", resp.Total)
	}
}

func TestJudgeMe_评价归一化(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_token") != "tok" || q.Get("shop_domain") != "loja.myshopify.com" {
			t.Errorf("凭证参数缺失: %v", q)
		}
		if q.Get("published") != "true" {
			t.Errorf("published = %q", q.Get("published"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"rating": 4.6,
			"reviews": [
				{
					"id": 101,
					"title": "Ótimo",
					"body": "Produto excelente",
					"rating": 5,
					"reviewer": {"name": "Fernanda Rocha"},
					"created_at": "2025-01-15T10:00:00Z",
					"verified": "yes",
					"pictures": [{"urls": {"compact": "https://cdn.judge.me/c.jpg", "small": "https://cdn.judge.me/s.jpg"}}],
					"product_external_id": "7890",
					"product_title": "Camiseta",
					"product_handle": "camiseta"
				},
				{
					"id": 102,
					"title": null,
					"body": "Bom",
					"rating": 4,
					"reviewer": {"name": ""},
					"created_at": "not-a-date",
					"verified": "buyer",
					"pictures": []
				}
			]
		}`))
	}))
	defer server.Close()

	svc := NewJudgeMeServiceWithEndpoint(&JudgeMeConfig{APIToken: "tok", ShopDomain: "loja.myshopify.com"}, server.URL)

	resp, err := svc.GetReviews(context.Background(), JudgeMeQuery{Published: true})
	if err != nil {
		t.Fatalf("GetReviews: %v", err)
	}
	if resp.Rating != 4.6 || resp.Total != 2 {
		t.Fatalf("Rating = %v, Total = %d", resp.Rating, resp.Total)
	}

	first := resp.Reviews[0]
	if first.ImageURL != "https://cdn.judge.me/c.jpg" {
		t.Errorf("应优先 compact 图, got %q", first.ImageURL)
	}
	if first.Date != "15 Jan 2025" {
		t.Errorf("Date = %q, want 葡语短日期", first.Date)
	}
	if !first.Verified {
		t.Errorf("verified=yes 应为 true")
	}
	if first.ProductID == nil || *first.ProductID != "7890" {
		t.Errorf("ProductID = %v", first.ProductID)
	}

	second := resp.Reviews[1]
	if second.Name != "Cliente" {
		t.Errorf("无名评价应回退为 Cliente, got %q", second.Name)
	}
	if second.ImageURL != "https://ui-avatars.com/api/?name=Cliente&background=1054ff&color=fff&size=400" {
		t.Errorf("无图应生成默认头像, got %q", second.ImageURL)
	}
	if second.Date != "Recente" {
		t.Errorf("日期非法应回退 Recente, got %q", second.Date)
	}
	if second.Verified {
		t.Errorf("verified != yes 应为 false")
	}
	if second.Title != nil {
		t.Errorf("空标题应为 nil")
	}
}

func TestJudgeMe_上游错误(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewJudgeMeServiceWithEndpoint(&JudgeMeConfig{APIToken: "bad", ShopDomain: "loja.myshopify.com"}, server.URL)
	if _, err := svc.GetReviews(context.Background(), JudgeMeQuery{}); err == nil {
		t.Fatalf("HTTP 401 应返回错误")
	}
}

func TestGetProductReviews_标识判别(t *testing.T) {
	var gotProductID, gotHandle string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotProductID = r.URL.Query().Get("product_id")
		gotHandle = r.URL.Query().Get("product_handle")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rating": 5, "reviews": []}`))
	}))
	defer server.Close()

	svc := NewJudgeMeServiceWithEndpoint(&JudgeMeConfig{APIToken: "tok", ShopDomain: "loja.myshopify.com"}, server.URL)
	ctx := context.Background()

	svc.GetProductReviews(ctx, "7890", 10, 1)
	if gotProductID != "7890" || gotHandle != "" {
		t.Errorf("纯数字应按 product_id 查询: id=%q handle=%q", gotProductID, gotHandle)
	}

	svc.GetProductReviews(ctx, "camiseta-basica", 10, 1)
	if gotProductID != "" || gotHandle != "camiseta-basica" {
		t.Errorf("handle 应按 product_handle 查询: id=%q handle=%q", gotProductID, gotHandle)
	}
}

func TestFormatPtBRDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-01-15T10:00:00Z", "15 Jan 2025"},
		{"2024-12-28", "28 Dez 2024"},
		{"2025-02-01T00:00:00-03:00", "1 Fev 2025"},
		{"", "Recente"},
		{"amanhã", "Recente"},
	}
	for _, tt := range tests {
		if got := formatPtBRDate(tt.input); got != tt.want {
			t.Errorf("formatPtBRDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDefaultAvatarURL(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Maria Silva", "https://ui-avatars.com/api/?name=Maria+Silva&background=1054ff&color=fff&size=400"},
		{"Ana Beatriz Costa Souza", "https://ui-avatars.com/api/?name=Ana+Beatriz&background=1054ff&color=fff&size=400"},
		{"", "https://ui-avatars.com/api/?name=Cliente&background=1054ff&color=fff&size=400"},
	}
	for _, tt := range tests {
		if got := defaultAvatarURL(tt.name); got != tt.want {
			t.Errorf("defaultAvatarURL(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
