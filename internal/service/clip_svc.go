package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/pkg/shopify"
)

// ==================== GraphQL 查询 ====================

// clip metaobject 的多态引用片段在两条查询里保持一致
const clipReferenceFragment = `
reference {
  ... on Product { id title handle }
  ... on Collection { id title handle }
  ... on ProductVariant { id product { id } }
  ... on MediaImage { image { url altText } }
  ... on GenericFile { url }
  ... on Video {
    sources { url mimeType format width height }
    previewImage { url }
  }
}`

const clipsByMetafieldQuery = `
query ClipsByMetafield($id: ID!, $first: Int!) {
  node(id: $id) {
    ... on Metafield {
      id
      references(first: $first) {
        nodes {
          ... on Metaobject {
            id
            handle
            type
            fields {
              key
              value
              type
              ` + clipReferenceFragment + `
            }
          }
        }
      }
    }
  }
}`

const clipsByTypeQuery = `
query ClipsByType($type: String!, $first: Int!) {
  metaobjects(type: $type, first: $first) {
    nodes {
      id
      handle
      type
      fields {
        key
        value
        type
        ` + clipReferenceFragment + `
      }
    }
  }
}`

const resolveMediaQuery = `
query ResolveMedia($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Video {
      id
      sources { url mimeType format width height }
      previewImage { url }
    }
    ... on MediaImage {
      id
      image { url }
    }
    ... on GenericFile {
      id
      url
    }
  }
}`

const resolveVariantsQuery = `
query ResolveVariants($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on ProductVariant {
      id
      title
      price { amount }
      compareAtPrice { amount }
      image { url altText }
      selectedOptions { name value }
      product { id }
    }
  }
}`

const resolveProductPricesQuery = `
query ResolveProductPrices($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      priceRange { minVariantPrice { amount } }
      variants(first: 1) {
        nodes { compareAtPrice { amount } }
      }
    }
  }
}`

// ==================== Clips ====================

const defaultClipSortOrder = 9999

// GetClips 拉取推广短视频并做归一化、过滤、排序和三轮批量补全
// referenceMetafieldID / metaobjectType 为空时用配置的默认值
func (s *ShopifyService) GetClips(ctx context.Context, referenceMetafieldID, metaobjectType string) (*dto.ClipListResp, error) {
	rawMetafieldID := referenceMetafieldID
	if rawMetafieldID == "" {
		rawMetafieldID = s.opts.ClipsReferenceListID
	}
	clipsType := metaobjectType
	if clipsType == "" {
		clipsType = s.opts.ClipsMetaobjectType
	}

	metafieldGid := shopify.MetafieldGid(rawMetafieldID)

	var data shopify.MetafieldReferencesData
	variables := map[string]interface{}{"id": metafieldGid, "first": 100}
	if err := s.client.Execute(ctx, clipsByMetafieldQuery, variables, &data); err != nil {
		return nil, err
	}

	var nodes []shopify.MetaobjectNode
	if data.Node != nil && data.Node.References != nil {
		nodes = data.Node.References.Nodes
	}

	// 引用列表为空时回退到按 metaobject 类型全量拉取
	if len(nodes) == 0 {
		var typed shopify.MetaobjectsData
		typeVars := map[string]interface{}{"type": clipsType, "first": 100}
		if err := s.client.Execute(ctx, clipsByTypeQuery, typeVars, &typed); err != nil {
			return nil, err
		}
		nodes = typed.Metaobjects.Nodes
	}

	now := time.Now()

	clips := make([]dto.Clip, 0, len(nodes))
	for _, node := range nodes {
		clip := mapClip(node, now)
		if clip.VideoURL == "" || !clip.IsActive || !clip.InWindow {
			continue
		}
		clips = append(clips, clip)
	}

	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].SortOrder < clips[j].SortOrder
	})

	clips, err := s.resolveClipMediaGids(ctx, clips)
	if err != nil {
		return nil, err
	}
	clips, err = s.enrichClipsFromVariantGids(ctx, clips)
	if err != nil {
		return nil, err
	}
	clips, err = s.enrichClipsWithProductPrice(ctx, clips)
	if err != nil {
		return nil, err
	}

	return &dto.ClipListResp{
		SourceMetafieldID:    rawMetafieldID,
		SourceMetafieldGid:   metafieldGid,
		SourceMetaobjectType: clipsType,
		Total:                len(clips),
		Clips:                clips,
	}, nil
}

// mapClip 从 metaobject 字段归一化一条 clip
func mapClip(node shopify.MetaobjectNode, now time.Time) dto.Clip {
	fields := node.Fields

	title := shopify.ReadFieldValue(fields, []string{"title", "nome", "name"})
	if title == "" {
		title = node.Handle
	}

	videoURL := shopify.NormalizeMediaValue(firstNonEmpty(
		shopify.ReadReferenceVideoURL(fields, []string{"video_url", "video", "video_file"}),
		shopify.ReadFieldValue(fields, []string{
			"video_url", "video", "videoUrl", "url", "video_link", "video_mp4", "url_video",
		}),
	))

	thumbURL := shopify.NormalizeMediaValue(firstNonEmpty(
		shopify.ReadReferenceImage(fields, []string{"thumb", "thumbnail", "cover", "preview", "thumb_url", "preview_image"}),
		shopify.ReadFieldValue(fields, []string{"thumb_url", "thumbnail", "cover", "preview_image"}),
	))

	ctaLabel := shopify.ReadFieldValue(fields, []string{"cta_label", "ctaLabel", "button_label"})
	if ctaLabel == "" {
		ctaLabel = "Confira agora"
	}
	ctaTypeRaw := shopify.ReadFieldValue(fields, []string{"cta_type", "ctaType"})
	ctaTarget := shopify.ReadFieldValue(fields, []string{"cta_target", "ctaTarget", "url"})

	productRef := shopify.ReadReference(fields, []string{"product", "produto"})
	variantRef := shopify.ReadReference(fields, []string{"variant", "variante", "product_variant", "cta_target"})
	collectionRef := shopify.ReadReference(fields, []string{"collection", "colecao"})

	variantProductGid := ""
	if variantRef != nil && variantRef.Product != nil {
		variantProductGid = variantRef.Product.ID
	}

	// CTA 类型：未显式给出时按引用推断
	productIDFromTarget := parsePotentialProductID(ctaTarget)
	ctaType := strings.ToLower(ctaTypeRaw)
	if ctaType == "" {
		switch {
		case (productRef != nil && productRef.ID != "") || variantProductGid != "" || productIDFromTarget != 0:
			ctaType = "product"
		case collectionRef != nil && collectionRef.ID != "":
			ctaType = "collection"
		case ctaTarget != "":
			ctaType = "url"
		default:
			ctaType = "none"
		}
	}

	// url 类型但目标是变体/商品时纠正为 product
	if ctaType == "url" && (variantProductGid != "" || shopify.ContainsVariantGid(ctaTarget)) {
		ctaType = "product"
	}

	sortOrder := defaultClipSortOrder
	if v, ok := toNumber(shopify.ReadFieldValue(fields, []string{"order", "sort_order", "position"})); ok {
		sortOrder = int(v)
	}
	likes := 0
	if v, ok := toNumber(shopify.ReadFieldValue(fields, []string{"likes", "like_count"})); ok {
		likes = int(v)
	}

	isActive := true
	if raw := shopify.ReadFieldValue(fields, []string{"is_active", "active", "enabled", "status"}); raw != "" {
		isActive = toBoolean(raw)
	}

	startAt, startValid := parseClipTime(shopify.ReadFieldValue(fields, []string{"start_at", "startAt", "published_at"}))
	endAt, endValid := parseClipTime(shopify.ReadFieldValue(fields, []string{"end_at", "endAt", "expires_at"}))

	inWindow := startValid && endValid &&
		(startAt == nil || !startAt.After(now)) &&
		(endAt == nil || !endAt.Before(now))

	clip := dto.Clip{
		ID:        node.ID,
		Handle:    node.Handle,
		Title:     title,
		VideoURL:  videoURL,
		Likes:     likes,
		IsActive:  isActive,
		SortOrder: sortOrder,
		CtaLabel:  ctaLabel,
		CtaType:   ctaType,
		InWindow:  inWindow,
	}

	if v := shopify.ReadFieldValue(fields, []string{"subtitle", "subtitulo", "description", "descricao"}); v != "" {
		clip.Subtitle = &v
	}
	if thumbURL != "" {
		clip.ThumbURL = &thumbURL
	}
	if ctaTarget != "" {
		clip.CtaTarget = &ctaTarget
	}

	// 商品归属：显式引用 > 变体所属商品 > cta_target 里解析出的 id
	switch {
	case productRef != nil && productRef.ID != "":
		gid := productRef.ID
		id := shopify.ParseNumericID(gid)
		clip.ProductGid = &gid
		clip.ProductID = &id
	case variantProductGid != "":
		gid := variantProductGid
		id := shopify.ParseNumericID(gid)
		clip.ProductGid = &gid
		clip.ProductID = &id
	default:
		if gid := parsePotentialProductGid(ctaTarget); gid != "" {
			clip.ProductGid = &gid
		}
		if productIDFromTarget != 0 {
			id := productIDFromTarget
			clip.ProductID = &id
		}
	}

	if variantRef != nil && variantRef.ID != "" {
		gid := variantRef.ID
		clip.ProductVariantGid = &gid
	} else if gid := parsePotentialVariantGid(ctaTarget); gid != "" {
		clip.ProductVariantGid = &gid
	}

	if collectionRef != nil && collectionRef.ID != "" {
		gid := collectionRef.ID
		clip.CollectionGid = &gid
	}

	if v := shopify.ReadFieldValue(fields, []string{"color", "cor", "product_color"}); v != "" {
		clip.Color = &v
	}
	if v := firstNonEmpty(
		shopify.ReadFieldValue(fields, []string{"variant", "variante", "variant_label"}),
		shopify.ReadFieldValue(fields, []string{"color", "cor", "product_color"}),
	); v != "" {
		clip.VariantLabel = &v
	}

	if startAt != nil {
		iso := startAt.UTC().Format(time.RFC3339)
		clip.StartAt = &iso
	}
	if endAt != nil {
		iso := endAt.UTC().Format(time.RFC3339)
		clip.EndAt = &iso
	}

	return clip
}

// ==================== 批量补全 ====================

// resolveClipMediaGids 把 videoUrl/thumbUrl 里残留的媒体 GID 批量换成真实 URL
// 没有 GID 时不发请求
func (s *ShopifyService) resolveClipMediaGids(ctx context.Context, clips []dto.Clip) ([]dto.Clip, error) {
	gidSet := make(map[string]bool)
	for i := range clips {
		if gid := shopify.ExtractMediaGid(shopify.NormalizeMediaValue(clips[i].VideoURL)); gid != "" {
			gidSet[gid] = true
		}
		if clips[i].ThumbURL != nil {
			if gid := shopify.ExtractMediaGid(shopify.NormalizeMediaValue(*clips[i].ThumbURL)); gid != "" {
				gidSet[gid] = true
			}
		}
	}
	if len(gidSet) == 0 {
		return clips, nil
	}

	ids := make([]string, 0, len(gidSet))
	for gid := range gidSet {
		ids = append(ids, gid)
	}
	sort.Strings(ids)

	var data shopify.NodesData
	if err := s.client.Execute(ctx, resolveMediaQuery, map[string]interface{}{"ids": ids}, &data); err != nil {
		return nil, err
	}

	resolved := make(map[string]string)
	for _, node := range data.Nodes {
		if node == nil || node.ID == "" {
			continue
		}
		url := shopify.ChoosePreferredVideoSource(node.Sources)
		if url == "" && node.Image != nil {
			url = node.Image.URL
		}
		if url == "" && node.PreviewImage != nil {
			url = node.PreviewImage.URL
		}
		if url == "" {
			url = node.URL
		}
		if url != "" {
			resolved[node.ID] = url
		}
	}

	for i := range clips {
		rawVideo := firstNonEmpty(shopify.NormalizeMediaValue(clips[i].VideoURL), clips[i].VideoURL)
		if gid := shopify.ExtractMediaGid(rawVideo); gid != "" {
			if url, ok := resolved[gid]; ok {
				rawVideo = url
			}
		}
		clips[i].VideoURL = rawVideo

		if clips[i].ThumbURL != nil {
			rawThumb := firstNonEmpty(shopify.NormalizeMediaValue(*clips[i].ThumbURL), *clips[i].ThumbURL)
			if gid := shopify.ExtractMediaGid(rawThumb); gid != "" {
				if url, ok := resolved[gid]; ok {
					rawThumb = url
				}
			}
			clips[i].ThumbURL = &rawThumb
		}
	}

	return clips, nil
}

// enrichClipsFromVariantGids 按变体 GID 批量补全变体信息
// 只填空缺字段，已有值不覆盖
func (s *ShopifyService) enrichClipsFromVariantGids(ctx context.Context, clips []dto.Clip) ([]dto.Clip, error) {
	gidSet := make(map[string]bool)
	for i := range clips {
		if clips[i].ProductVariantGid != nil && strings.HasPrefix(*clips[i].ProductVariantGid, shopify.VariantGidPrefix) {
			gidSet[*clips[i].ProductVariantGid] = true
		}
	}
	if len(gidSet) == 0 {
		return clips, nil
	}

	ids := make([]string, 0, len(gidSet))
	for gid := range gidSet {
		ids = append(ids, gid)
	}
	sort.Strings(ids)

	var data shopify.NodesData
	if err := s.client.Execute(ctx, resolveVariantsQuery, map[string]interface{}{"ids": ids}, &data); err != nil {
		return nil, err
	}

	type resolvedVariant struct {
		title         string
		color         string
		productGid    string
		productID     int64
		price         *float64
		originalPrice *float64
		thumbURL      string
	}

	variants := make(map[string]resolvedVariant)
	for _, node := range data.Nodes {
		if node == nil || node.ID == "" {
			continue
		}
		rv := resolvedVariant{title: node.Title}
		for _, option := range node.SelectedOptions {
			name := strings.ToLower(strings.TrimSpace(option.Name))
			if name == "color" || name == "cor" {
				rv.color = option.Value
				break
			}
		}
		if node.Product != nil && node.Product.ID != "" {
			rv.productGid = node.Product.ID
			rv.productID = shopify.ParseNumericID(node.Product.ID)
		}
		if node.Price != nil {
			if price, ok := parseAmount(node.Price.Amount); ok {
				rv.price = &price
			}
		}
		if node.CompareAtPrice != nil {
			if price, ok := parseAmount(node.CompareAtPrice.Amount); ok {
				rv.originalPrice = &price
			}
		}
		if node.Image != nil {
			rv.thumbURL = node.Image.URL
		}
		variants[node.ID] = rv
	}

	for i := range clips {
		if clips[i].ProductVariantGid == nil {
			continue
		}
		rv, ok := variants[*clips[i].ProductVariantGid]
		if !ok {
			continue
		}

		if clips[i].VariantLabel == nil && rv.title != "" {
			title := rv.title
			clips[i].VariantLabel = &title
		}
		if clips[i].Color == nil && rv.color != "" {
			color := rv.color
			clips[i].Color = &color
		}
		if clips[i].ProductGid == nil && rv.productGid != "" {
			gid := rv.productGid
			clips[i].ProductGid = &gid
		}
		if clips[i].ProductID == nil && rv.productID != 0 {
			id := rv.productID
			clips[i].ProductID = &id
		}
		if clips[i].Price == nil && rv.price != nil {
			clips[i].Price = rv.price
		}
		if clips[i].OriginalPrice == nil && rv.originalPrice != nil {
			clips[i].OriginalPrice = rv.originalPrice
		}
		if clips[i].ThumbURL == nil && rv.thumbURL != "" {
			url := rv.thumbURL
			clips[i].ThumbURL = &url
		}
	}

	return clips, nil
}

// enrichClipsWithProductPrice 对有商品归属但没有价格的 clip 批量补全商品价
func (s *ShopifyService) enrichClipsWithProductPrice(ctx context.Context, clips []dto.Clip) ([]dto.Clip, error) {
	gidSet := make(map[string]bool)
	for i := range clips {
		if clipHasPrice(&clips[i]) {
			continue
		}
		if clips[i].ProductID == nil || clips[i].ProductGid == nil {
			continue
		}
		if strings.HasPrefix(*clips[i].ProductGid, shopify.ProductGidPrefix) {
			gidSet[*clips[i].ProductGid] = true
		}
	}
	if len(gidSet) == 0 {
		return clips, nil
	}

	ids := make([]string, 0, len(gidSet))
	for gid := range gidSet {
		ids = append(ids, gid)
	}
	sort.Strings(ids)

	var data shopify.NodesData
	if err := s.client.Execute(ctx, resolveProductPricesQuery, map[string]interface{}{"ids": ids}, &data); err != nil {
		return nil, err
	}

	type resolvedPrice struct {
		price         float64
		originalPrice *float64
	}

	prices := make(map[string]resolvedPrice)
	for _, node := range data.Nodes {
		if node == nil || node.ID == "" || node.PriceRange == nil {
			continue
		}
		price, ok := parseAmount(node.PriceRange.MinVariantPrice.Amount)
		if !ok || price == 0 {
			continue
		}
		rp := resolvedPrice{price: price}
		if node.Variants != nil && len(node.Variants.Nodes) > 0 && node.Variants.Nodes[0].CompareAtPrice != nil {
			if original, ok := parseAmount(node.Variants.Nodes[0].CompareAtPrice.Amount); ok {
				rp.originalPrice = &original
			}
		}
		prices[node.ID] = rp
	}

	for i := range clips {
		if clipHasPrice(&clips[i]) || clips[i].ProductGid == nil {
			continue
		}
		rp, ok := prices[*clips[i].ProductGid]
		if !ok {
			continue
		}
		price := rp.price
		clips[i].Price = &price
		if clips[i].OriginalPrice == nil && rp.originalPrice != nil {
			clips[i].OriginalPrice = rp.originalPrice
		}
	}

	return clips, nil
}

func clipHasPrice(clip *dto.Clip) bool {
	return clip.Price != nil && *clip.Price != 0
}

// ==================== 解析辅助 ====================

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseClipTime 解析投放窗口时间
// 返回的 bool 表示值缺失或可解析；格式非法时 false (该 clip 不进窗口)
func parseClipTime(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// parsePotentialProductID 从 cta_target 里解析出商品数字 id
func parsePotentialProductID(value string) int64 {
	if value == "" {
		return 0
	}
	if shopify.ContainsProductGid(value) {
		return shopify.ParseNumericID(value)
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil && id > 0 {
		return id
	}
	return 0
}

func parsePotentialProductGid(value string) string {
	if shopify.ContainsProductGid(value) {
		return value
	}
	return ""
}

func parsePotentialVariantGid(value string) string {
	if shopify.ContainsVariantGid(value) {
		return value
	}
	return ""
}

// toNumber 解析数字，逗号小数点归一成点
func toNumber(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// toBoolean 宽松布尔解析，真值集合固定
func toBoolean(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "sim", "active", "ativo":
		return true
	}
	return false
}
