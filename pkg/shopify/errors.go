package shopify

import "fmt"

// ==================== 错误类型 ====================

// TransportError 网络层失败 (连不上、超时、非 2xx 且无法解析响应体)
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("shopify transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// GraphQLError 上游返回了结构化错误 (envelope.errors 非空)
// 只保留第一条错误信息，避免把原始错误对象泄漏给调用方
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("shopify graphql error: %s", e.Message)
}

// EmptyResponseError 上游返回成功但 data 为空
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "shopify returned an empty response"
}
