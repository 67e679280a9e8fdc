package shopify

import "testing"

func TestChoosePreferredVideoSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []VideoSource
		want    string
	}{
		{
			name: "MP4 优先于 HLS",
			sources: []VideoSource{
				{URL: "https://cdn.shopify.com/video.m3u8", MimeType: "application/x-mpegURL"},
				{URL: "https://cdn.shopify.com/video.mp4", MimeType: "video/mp4"},
			},
			want: "https://cdn.shopify.com/video.mp4",
		},
		{
			name: "低码率 MP4 优先",
			sources: []VideoSource{
				{URL: "https://cdn.shopify.com/video-8mbps.mp4", Height: 720},
				{URL: "https://cdn.shopify.com/video-1.5mbps.mp4", Height: 720},
			},
			want: "https://cdn.shopify.com/video-1.5mbps.mp4",
		},
		{
			name: "超过 720 的分辨率扣分",
			sources: []VideoSource{
				{URL: "https://cdn.shopify.com/hd-1.5mbps.mp4", Height: 1080},
				{URL: "https://cdn.shopify.com/sd-1.5mbps.mp4", Height: 720},
			},
			want: "https://cdn.shopify.com/sd-1.5mbps.mp4",
		},
		{
			name: "平分时保持原顺序",
			sources: []VideoSource{
				{URL: "https://cdn.shopify.com/a-2mbps.mp4", Height: 480},
				{URL: "https://cdn.shopify.com/b-2mbps.mp4", Height: 480},
			},
			want: "https://cdn.shopify.com/a-2mbps.mp4",
		},
		{
			name: "format 字段识别 mp4",
			sources: []VideoSource{
				{URL: "https://cdn.shopify.com/master", Format: "m3u8", Height: 720},
				{URL: "https://cdn.shopify.com/progressive", Format: "mp4", Height: 720},
			},
			want: "https://cdn.shopify.com/progressive",
		},
		{
			name: "无高度时用宽度",
			sources: []VideoSource{
				{URL: "https://cdn.shopify.com/wide-1mbps.mp4", Width: 1920},
				{URL: "https://cdn.shopify.com/narrow-1mbps.mp4", Width: 720},
			},
			want: "https://cdn.shopify.com/narrow-1mbps.mp4",
		},
		{
			name:    "空列表返回空",
			sources: nil,
			want:    "",
		},
		{
			name: "空 URL 被跳过",
			sources: []VideoSource{
				{URL: "   "},
				{URL: "https://cdn.shopify.com/only.mp4"},
			},
			want: "https://cdn.shopify.com/only.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChoosePreferredVideoSource(tt.sources)
			if got != tt.want {
				t.Errorf("ChoosePreferredVideoSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractMediaGid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"标准 Video GID", "gid://shopify/Video/123456", "gid://shopify/Video/123456"},
		{"文本中嵌入的 GID", `{"id":"gid://shopify/MediaImage/789"}`, "gid://shopify/MediaImage/789"},
		{"GenericFile GID", "gid://shopify/GenericFile/42", "gid://shopify/GenericFile/42"},
		{"Product GID 不匹配", "gid://shopify/Product/123", ""},
		{"纯 URL 不匹配", "https://cdn.shopify.com/video.mp4", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractMediaGid(tt.value); got != tt.want {
				t.Errorf("ExtractMediaGid(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeMediaValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "URL 原样返回",
			value: "https://cdn.shopify.com/video.mp4",
			want:  "https://cdn.shopify.com/video.mp4",
		},
		{
			name:  "裸 GID 提取",
			value: "gid://shopify/Video/123",
			want:  "gid://shopify/Video/123",
		},
		{
			name:  "JSON 对象按 url 键提取",
			value: `{"url":"https://cdn.shopify.com/a.mp4","alt":"x"}`,
			want:  "https://cdn.shopify.com/a.mp4",
		},
		{
			name:  "JSON 对象嵌套 reference",
			value: `{"reference":{"url":"https://cdn.shopify.com/nested.mp4"}}`,
			want:  "https://cdn.shopify.com/nested.mp4",
		},
		{
			name:  "JSON 数组取第一个有效值",
			value: `[null, "gid://shopify/Video/55"]`,
			want:  "gid://shopify/Video/55",
		},
		{
			name:  "优先 key 覆盖非优先 key",
			value: `{"zalt":"https://cdn.shopify.com/wrong.mp4","src":"https://cdn.shopify.com/right.mp4"}`,
			want:  "https://cdn.shopify.com/right.mp4",
		},
		{
			name:  "非法 JSON 原样返回",
			value: `{"url": broken`,
			want:  `{"url": broken`,
		},
		{
			name:  "普通文本去空白返回",
			value: "  some-handle  ",
			want:  "some-handle",
		},
		{
			name:  "空串返回空",
			value: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMediaValue(tt.value); got != tt.want {
				t.Errorf("NormalizeMediaValue(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeMediaValue_DepthLimit(t *testing.T) {
	// 深度超过上限时放弃解析
	deep := `{"value":{"value":{"value":{"value":{"value":{"url":"https://cdn.shopify.com/deep.mp4"}}}}}}`
	if got := NormalizeMediaValue(deep); got != "" {
		t.Errorf("超过深度上限应返回空, got %q", got)
	}
}
