package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	storefrontTokenHeader = "X-Shopify-Storefront-Access-Token"
	defaultAPIVersion     = "2024-10"
	defaultTimeout        = 20 * time.Second
)

// ==================== 配置 ====================

// Config Storefront API 配置
type Config struct {
	StoreDomain     string // 例如 my-store.myshopify.com
	StorefrontToken string
	APIVersion      string
	Timeout         time.Duration
}

// ==================== 客户端 ====================

// Client Storefront GraphQL 客户端
// 不带重试：重试策略属于调用方，不属于传输层
type Client struct {
	endpoint string
	http     *resty.Client
}

// NewClient 创建客户端
func NewClient(cfg *Config) (*Client, error) {
	if cfg.StoreDomain == "" || cfg.StorefrontToken == "" {
		return nil, fmt.Errorf("shopify storefront credentials are not configured")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader(storefrontTokenHeader, cfg.StorefrontToken)

	return &Client{
		endpoint: fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.StoreDomain, cfg.APIVersion),
		http:     httpClient,
	}, nil
}

// NewClientWithEndpoint 测试用：指定完整 endpoint (httptest)
func NewClientWithEndpoint(endpoint, token string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader(storefrontTokenHeader, token),
	}
}

// ==================== 请求执行 ====================

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Execute 发送一次 GraphQL 请求并把 data 解码到 out
// 失败分三类：TransportError (网络/不可解析)、GraphQLError (envelope.errors 非空)、
// EmptyResponseError (data 缺失)
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&graphqlRequest{Query: query, Variables: variables}).
		Post(c.endpoint)
	if err != nil {
		return &TransportError{Err: err}
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		// 有响应体但不是合法 JSON：按传输失败处理
		return &TransportError{Err: fmt.Errorf("status %d: unparseable body: %w", resp.StatusCode(), err)}
	}

	if len(envelope.Errors) > 0 {
		return &GraphQLError{Message: envelope.Errors[0].Message}
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return &EmptyResponseError{}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &TransportError{Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}
