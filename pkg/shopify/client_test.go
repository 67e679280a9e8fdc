package shopify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClientWithEndpoint(server.URL, "test-token", 0)
}

func TestClient_Execute_GraphQLError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"message":"Field 'foo' doesn't exist"},{"message":"second"}]}`))
	})

	err := client.Execute(context.Background(), "query { foo }", nil, nil)

	var gqlErr *GraphQLError
	if !errors.As(err, &gqlErr) {
		t.Fatalf("期望 GraphQLError, got %T: %v", err, err)
	}
	if gqlErr.Message != "Field 'foo' doesn't exist" {
		t.Errorf("应取第一条错误消息, got %q", gqlErr.Message)
	}
}

func TestClient_Execute_EmptyData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"data 为 null", `{"data": null}`},
		{"data 缺失", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			err := client.Execute(context.Background(), "query { shop }", nil, nil)

			var emptyErr *EmptyResponseError
			if !errors.As(err, &emptyErr) {
				t.Fatalf("期望 EmptyResponseError, got %T: %v", err, err)
			}
		})
	}
}

func TestClient_Execute_UnparseableBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	err := client.Execute(context.Background(), "query { shop }", nil, nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("期望 TransportError, got %T: %v", err, err)
	}
}

func TestClient_Execute_DecodesData(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Shopify-Storefront-Access-Token"); got != "test-token" {
			t.Errorf("缺少访问令牌头, got %q", got)
		}
		w.Write([]byte(`{"data":{"collections":{"nodes":[{"id":"gid://shopify/Collection/1","title":"Novidades","handle":"novidades"}]}}}`))
	})

	var data CollectionsData
	if err := client.Execute(context.Background(), "query { collections }", map[string]interface{}{"first": 50}, &data); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(data.Collections.Nodes) != 1 || data.Collections.Nodes[0].Handle != "novidades" {
		t.Errorf("解码结果不符: %+v", data.Collections)
	}
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	if _, err := NewClient(&Config{}); err == nil {
		t.Error("缺少凭证时应报错")
	}
	if _, err := NewClient(&Config{StoreDomain: "x.myshopify.com", StorefrontToken: "tok"}); err != nil {
		t.Errorf("凭证齐全时不应报错: %v", err)
	}
}
