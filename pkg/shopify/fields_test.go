package shopify

import "testing"

func TestFindField(t *testing.T) {
	fields := []MetaobjectField{
		{Key: "Titulo", Value: "a"},
		{Key: "video_url", Value: "b"},
	}

	tests := []struct {
		name    string
		keys    []string
		wantKey string
		wantNil bool
	}{
		{"大小写不敏感", []string{"titulo"}, "Titulo", false},
		{"候选列表命中第一个存在的", []string{"missing", "VIDEO_URL"}, "video_url", false},
		{"没有命中", []string{"nope"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindField(fields, tt.keys)
			if tt.wantNil {
				if got != nil {
					t.Errorf("FindField() = %v, want nil", got)
				}
				return
			}
			if got == nil || got.Key != tt.wantKey {
				t.Errorf("FindField() = %v, want key %q", got, tt.wantKey)
			}
		})
	}
}

func TestReadFieldValue(t *testing.T) {
	tests := []struct {
		name   string
		fields []MetaobjectField
		keys   []string
		want   string
	}{
		{
			name: "reference.url 最优先",
			fields: []MetaobjectField{{
				Key:       "file",
				Value:     "ignored",
				Reference: &FieldReference{URL: "https://cdn.shopify.com/file.pdf"},
			}},
			keys: []string{"file"},
			want: "https://cdn.shopify.com/file.pdf",
		},
		{
			name: "reference.image.url 次之",
			fields: []MetaobjectField{{
				Key:       "foto",
				Value:     "ignored",
				Reference: &FieldReference{Image: &Image{URL: "https://cdn.shopify.com/img.jpg"}},
			}},
			keys: []string{"foto"},
			want: "https://cdn.shopify.com/img.jpg",
		},
		{
			name: "value 是 JSON 时取 url 键",
			fields: []MetaobjectField{{
				Key:   "media",
				Value: `{"url":"https://cdn.shopify.com/from-json.mp4"}`,
			}},
			keys: []string{"media"},
			want: "https://cdn.shopify.com/from-json.mp4",
		},
		{
			name:   "普通 value 去空白返回",
			fields: []MetaobjectField{{Key: "title", Value: "  ok  "}},
			keys:   []string{"title"},
			want:   "ok",
		},
		{
			name:   "空 value 返回空",
			fields: []MetaobjectField{{Key: "title", Value: "   "}},
			keys:   []string{"title"},
			want:   "",
		},
		{
			name:   "字段缺失返回空",
			fields: nil,
			keys:   []string{"title"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadFieldValue(tt.fields, tt.keys); got != tt.want {
				t.Errorf("ReadFieldValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadRichTextPlain(t *testing.T) {
	doc := `{
		"type": "root",
		"children": [
			{"type": "paragraph", "children": [
				{"type": "text", "value": "Ótimo"},
				{"type": "text", "value": "produto"}
			]},
			{"type": "paragraph", "children": [
				{"type": "text", "value": "recomendo"}
			]}
		]
	}`

	fields := []MetaobjectField{{Key: "avaliacao", Value: doc}}
	got := ReadRichTextPlain(fields, []string{"avaliacao"})
	want := "Ótimo produto recomendo"
	if got != want {
		t.Errorf("ReadRichTextPlain() = %q, want %q", got, want)
	}

	// 非富文本 JSON 返回空
	plain := []MetaobjectField{{Key: "avaliacao", Value: "texto simples"}}
	if got := ReadRichTextPlain(plain, []string{"avaliacao"}); got != "" {
		t.Errorf("非 JSON value 应返回空, got %q", got)
	}
}

func TestReadReferenceVideoURL(t *testing.T) {
	fields := []MetaobjectField{{
		Key: "video",
		Reference: &FieldReference{
			Sources: []VideoSource{
				{URL: "https://cdn.shopify.com/v.m3u8", Format: "m3u8"},
				{URL: "https://cdn.shopify.com/v.mp4", Format: "mp4"},
			},
		},
	}}

	if got := ReadReferenceVideoURL(fields, []string{"video"}); got != "https://cdn.shopify.com/v.mp4" {
		t.Errorf("应挑选 MP4 源, got %q", got)
	}

	// 无 sources 时回退到 GenericFile url
	fallback := []MetaobjectField{{
		Key:       "video",
		Reference: &FieldReference{URL: "https://cdn.shopify.com/file.mp4"},
	}}
	if got := ReadReferenceVideoURL(fallback, []string{"video"}); got != "https://cdn.shopify.com/file.mp4" {
		t.Errorf("应回退到引用 url, got %q", got)
	}
}

func TestParseNumericID(t *testing.T) {
	tests := []struct {
		gid  string
		want int64
	}{
		{"gid://shopify/Product/123456", 123456},
		{"gid://shopify/ProductVariant/42", 42},
		{"gid://shopify/Product/abc", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := ParseNumericID(tt.gid); got != tt.want {
			t.Errorf("ParseNumericID(%q) = %d, want %d", tt.gid, got, tt.want)
		}
	}
}

func TestProductGid(t *testing.T) {
	if got := ProductGid("123"); got != "gid://shopify/Product/123" {
		t.Errorf("裸 id 应补全前缀, got %q", got)
	}
	full := "gid://shopify/Product/123"
	if got := ProductGid(full); got != full {
		t.Errorf("完整 GID 应原样返回, got %q", got)
	}
}
