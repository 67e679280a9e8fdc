package service

import (
	"strconv"
	"strings"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/pkg/shopify"
)

// ==================== 商品归一化 ====================

// mapProduct 把 Storefront 原始商品归一化成前端消费的形状
// 第一个集合作为商品分类
func mapProduct(product *shopify.ProductNode) dto.Product {
	mapped := mapProductWithoutCollections(product)

	if len(product.Collections.Nodes) > 0 {
		collection := product.Collections.Nodes[0]
		categoryID := shopify.ParseNumericID(collection.ID)
		mapped.CategoryID = &categoryID
		mapped.Category = &dto.CategoryRef{
			ID:   categoryID,
			Name: collection.Title,
			Slug: collection.Handle,
		}
	}

	return mapped
}

// mapProductWithoutCollections 集合子查询不带 collections 字段时的归一化
func mapProductWithoutCollections(product *shopify.ProductNode) dto.Product {
	productID := shopify.ParseNumericID(product.ID)

	// compareAtPrice 取所有变体中的最大值
	var compareAtPrice *float64
	for _, variant := range product.Variants.Nodes {
		if variant.CompareAtPrice == nil {
			continue
		}
		price, ok := parseAmount(variant.CompareAtPrice.Amount)
		if !ok {
			continue
		}
		if compareAtPrice == nil || price > *compareAtPrice {
			value := price
			compareAtPrice = &value
		}
	}

	// 最低价为 0 时回退到变体里最小的正数价格
	productPrice, _ := parseAmount(product.PriceRange.MinVariantPrice.Amount)
	if productPrice == 0 {
		for _, variant := range product.Variants.Nodes {
			price, ok := parseAmount(variant.Price.Amount)
			if !ok || price <= 0 {
				continue
			}
			if productPrice == 0 || price < productPrice {
				productPrice = price
			}
		}
	}

	sku := product.Handle
	if len(product.Variants.Nodes) > 0 && product.Variants.Nodes[0].SKU != "" {
		sku = product.Variants.Nodes[0].SKU
	}

	images := make([]dto.ProductImage, 0, len(product.Images.Nodes))
	for _, image := range product.Images.Nodes {
		var altText *string
		if image.AltText != "" {
			alt := image.AltText
			altText = &alt
		}
		images = append(images, dto.ProductImage{URL: image.URL, AltText: altText})
	}

	variants := make([]dto.Variant, 0, len(product.Variants.Nodes))
	for _, variant := range product.Variants.Nodes {
		variants = append(variants, mapVariant(&variant, productID))
	}

	return dto.Product{
		ID:              productID,
		Title:           product.Title,
		Description:     product.Description,
		Price:           productPrice,
		CompareAtPrice:  compareAtPrice,
		SKU:             sku,
		Images:          images,
		Metafield01Foto: metafieldImageURL(product.Metafields, "01_foto"),
		Metafield02Foto: metafieldImageURL(product.Metafields, "02_foto"),
		Metafield03Foto: metafieldImageURL(product.Metafields, "03_foto"),
		TabelaMedida:    metafieldValue(product.Metafields, "tabelamedida"),
		BulletPoints:    metafieldRawValue(product.Metafields, "bulletsMobile"),
		Variants:        variants,
	}
}

// mapVariant 归一化单个变体
func mapVariant(variant *shopify.VariantNode, productID int64) dto.Variant {
	var size, color *string
	for _, option := range variant.SelectedOptions {
		name := strings.ToLower(option.Name)
		switch name {
		case "size", "tamanho":
			if size == nil {
				value := option.Value
				size = &value
			}
		case "color", "cor":
			if color == nil {
				value := option.Value
				color = &value
			}
		}
	}

	sku := variant.SKU
	if sku == "" {
		sku = variant.Title
	}

	stock := 0
	if variant.QuantityAvailable != nil {
		stock = *variant.QuantityAvailable
	}

	price, _ := parseAmount(variant.Price.Amount)

	var compareAtPrice *float64
	if variant.CompareAtPrice != nil {
		if value, ok := parseAmount(variant.CompareAtPrice.Amount); ok {
			compareAtPrice = &value
		}
	}

	var image *string
	if variant.Image != nil && variant.Image.URL != "" {
		url := variant.Image.URL
		image = &url
	}

	return dto.Variant{
		ID:             shopify.ParseNumericID(variant.ID),
		ProductID:      productID,
		SKU:            sku,
		Size:           size,
		Color:          color,
		Stock:          stock,
		Price:          price,
		CompareAtPrice: compareAtPrice,
		Image:          image,
		Available:      variant.AvailableForSale,
	}
}

// ==================== metafield 读取 ====================

func findMetafield(metafields []shopify.Metafield, key string) *shopify.Metafield {
	for i := range metafields {
		if metafields[i].Key == key {
			return &metafields[i]
		}
	}
	return nil
}

// metafieldImageURL 读图片类 metafield
// reference.image.url 优先，value 本身是 URL 时直接用
func metafieldImageURL(metafields []shopify.Metafield, key string) *string {
	mf := findMetafield(metafields, key)
	if mf == nil {
		return nil
	}

	if mf.Reference != nil && mf.Reference.Image != nil && mf.Reference.Image.URL != "" {
		url := mf.Reference.Image.URL
		return &url
	}

	if strings.HasPrefix(mf.Value, "http://") || strings.HasPrefix(mf.Value, "https://") {
		url := mf.Value
		return &url
	}

	return nil
}

// metafieldValue 读通用 metafield
// 优先级: reference.url > reference.image.url > 去空白后的 value
func metafieldValue(metafields []shopify.Metafield, key string) *string {
	mf := findMetafield(metafields, key)
	if mf == nil {
		return nil
	}

	if mf.Reference != nil {
		if mf.Reference.URL != "" {
			url := mf.Reference.URL
			return &url
		}
		if mf.Reference.Image != nil && mf.Reference.Image.URL != "" {
			url := mf.Reference.Image.URL
			return &url
		}
	}

	trimmed := strings.TrimSpace(mf.Value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// metafieldRawValue 原样返回 value (bulletsMobile 这类 JSON 文本)
func metafieldRawValue(metafields []shopify.Metafield, key string) *string {
	mf := findMetafield(metafields, key)
	if mf == nil || mf.Value == "" {
		return nil
	}
	value := mf.Value
	return &value
}

// ==================== 数值解析 ====================

// parseAmount 解析十进制金额字符串
func parseAmount(amount string) (float64, bool) {
	if amount == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// parseIntPrefix 解析前导整数，如 "4" / "4.5" -> 4
func parseIntPrefix(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	value, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, false
	}
	return value, true
}
