package shopify

import (
	"regexp"
	"strconv"
	"strings"
)

// GID 前缀
const (
	ProductGidPrefix = "gid://shopify/Product/"
	VariantGidPrefix = "gid://shopify/ProductVariant/"
)

var trailingIDRe = regexp.MustCompile(`/(\d+)$`)

// ParseNumericID 取 GID 末尾的数字 id，取不到返回 0
func ParseNumericID(gid string) int64 {
	m := trailingIDRe.FindStringSubmatch(gid)
	if m == nil {
		return 0
	}
	id, _ := strconv.ParseInt(m[1], 10, 64)
	return id
}

// ProductGid 把裸数字 id 补全成商品 GID，已是 GID 则原样返回
func ProductGid(id string) string {
	if strings.HasPrefix(id, "gid://shopify/Product/") {
		return id
	}
	return ProductGidPrefix + id
}

// MetafieldGid 把裸数字 id 补全成 metafield GID
func MetafieldGid(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/Metafield/" + id
}

// ContainsProductGid 文本里是否带商品 GID
func ContainsProductGid(value string) bool {
	return strings.Contains(value, ProductGidPrefix)
}

// ContainsVariantGid 文本里是否带变体 GID
func ContainsVariantGid(value string) bool {
	return strings.Contains(value, VariantGidPrefix)
}
