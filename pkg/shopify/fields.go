package shopify

import (
	"encoding/json"
	"strings"
)

// ==================== 字段读取 ====================
// metaobject 的字段按候选 key 列表 (大小写不敏感) 查找，命中第一个

// FindField 在字段列表中定位第一个匹配的字段
func FindField(fields []MetaobjectField, keys []string) *MetaobjectField {
	for i := range fields {
		fieldKey := strings.ToLower(fields[i].Key)
		for _, k := range keys {
			if fieldKey == strings.ToLower(k) {
				return &fields[i]
			}
		}
	}
	return nil
}

// ReadFieldValue 读取字段的可用值
// 优先级: reference.url > reference.image.url > value (JSON 对象里的 url 优先)
func ReadFieldValue(fields []MetaobjectField, keys []string) string {
	field := FindField(fields, keys)
	if field == nil {
		return ""
	}

	if ref := field.Reference; ref != nil {
		if ref.URL != "" {
			return ref.URL
		}
		if ref.Image != nil && ref.Image.URL != "" {
			return ref.Image.URL
		}
	}

	raw := strings.TrimSpace(field.Value)
	if raw == "" {
		return ""
	}

	// file_reference 类字段有时序列化成 {"url": "..."} 形式的 JSON
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		var parsed struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			if url := strings.TrimSpace(parsed.URL); url != "" {
				return url
			}
		}
	}

	return raw
}

// ==================== 富文本 ====================

type richTextNode struct {
	Type     string         `json:"type"`
	Value    string         `json:"value"`
	Children []richTextNode `json:"children"`
}

// ReadRichTextPlain 从 rich_text_field 的 JSON 文档树提取纯文本
// 深度优先拼接所有 {type:"text"} 叶子节点，解析失败或结果为空时返回 ""
func ReadRichTextPlain(fields []MetaobjectField, keys []string) string {
	field := FindField(fields, keys)
	if field == nil {
		return ""
	}
	raw := strings.TrimSpace(field.Value)
	if raw == "" {
		return ""
	}

	var root richTextNode
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return ""
	}

	var texts []string
	var walk func(node *richTextNode)
	walk = func(node *richTextNode) {
		if node.Type == "text" && node.Value != "" {
			texts = append(texts, strings.TrimSpace(node.Value))
		}
		for i := range node.Children {
			walk(&node.Children[i])
		}
	}
	walk(&root)

	return strings.TrimSpace(strings.Join(texts, " "))
}

// ==================== 引用读取 ====================

// ReadReference 读取字段的多态引用
func ReadReference(fields []MetaobjectField, keys []string) *FieldReference {
	field := FindField(fields, keys)
	if field == nil {
		return nil
	}
	return field.Reference
}

// ReadReferenceImage 从引用中取图片地址
// 优先级: image.url > previewImage.url > url
func ReadReferenceImage(fields []MetaobjectField, keys []string) string {
	ref := ReadReference(fields, keys)
	if ref == nil {
		return ""
	}

	if ref.Image != nil {
		if url := strings.TrimSpace(ref.Image.URL); url != "" {
			return url
		}
	}
	if ref.PreviewImage != nil {
		if url := strings.TrimSpace(ref.PreviewImage.URL); url != "" {
			return url
		}
	}
	return strings.TrimSpace(ref.URL)
}

// ReadReferenceVideoURL 从视频引用中取最佳播放地址
// 先在 sources 里挑最优编码，兜底用 GenericFile 的 url
func ReadReferenceVideoURL(fields []MetaobjectField, keys []string) string {
	ref := ReadReference(fields, keys)
	if ref == nil {
		return ""
	}

	if url := ChoosePreferredVideoSource(ref.Sources); url != "" {
		return url
	}
	return strings.TrimSpace(ref.URL)
}
