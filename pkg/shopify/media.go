package shopify

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ==================== 视频源挑选 ====================

// 文件名里的码率标记，如 1.5mbps / 8Mbps
var bitrateRe = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)mbps`)

// ChoosePreferredVideoSource 在多个编码产物中挑渐进下载质量最优的一个
// 打分规则 (权重顺序是既定策略，测试依赖它，勿调整):
//
//	MP4 +1000 / HLS -200 / 超过 720 的分辨率按差值扣分 / 码率每 Mbps 扣 10 分(缺省 99)
//
// 全序比较，平分按原始顺序取先者 (稳定排序)
func ChoosePreferredVideoSource(sources []VideoSource) string {
	if len(sources) == 0 {
		return ""
	}

	type candidate struct {
		url   string
		score int
	}

	candidates := make([]candidate, 0, len(sources))
	for _, source := range sources {
		url := strings.TrimSpace(source.URL)
		if url == "" {
			continue
		}

		lowerURL := strings.ToLower(url)
		mimeType := strings.ToLower(source.MimeType)
		format := strings.ToLower(source.Format)

		isMp4 := strings.Contains(lowerURL, ".mp4") ||
			strings.Contains(mimeType, "mp4") ||
			format == "mp4"
		isHls := strings.Contains(lowerURL, ".m3u8") ||
			strings.Contains(mimeType, "mpegurl") ||
			format == "m3u8" || format == "hls"

		resolution := 1080
		if source.Height > 0 {
			resolution = source.Height
		} else if source.Width > 0 {
			resolution = source.Width
		}

		bitrate := 99.0
		if m := bitrateRe.FindStringSubmatch(url); m != nil {
			if parsed, err := strconv.ParseFloat(m[1], 64); err == nil {
				bitrate = parsed
			}
		}

		score := 0
		if isMp4 {
			score += 1000
		}
		if isHls {
			score -= 200
		}
		if resolution > 720 {
			score -= resolution - 720
		}
		score -= int(math.Round(bitrate * 10))

		candidates = append(candidates, candidate{url: url, score: score})
	}

	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates[0].url
}

// ==================== GID 提取 ====================

var mediaGidRe = regexp.MustCompile(`gid://shopify/(Video|MediaImage|GenericFile)/\d+`)

// ExtractMediaGid 从任意文本中提取媒体类 GID，没有则返回 ""
func ExtractMediaGid(value string) string {
	return mediaGidRe.FindString(value)
}

// ==================== 不透明媒体值归一化 ====================

const maxExtractDepth = 4

// NormalizeMediaValue 把可能是 URL / JSON 片段 / 数组 / GID 的原始值归一成
// 单个可用的 URL 或 GID，无法归一时返回 ""
func NormalizeMediaValue(value string) string {
	if value == "" {
		return ""
	}
	return extractMediaValue(value, 0)
}

// extractMediaValue 对未知 JSON 形状做带深度上限的递归下降
// object 先按固定优先级探测 key，再扫剩余 key；array 取第一个非空结果
func extractMediaValue(input interface{}, depth int) string {
	if input == nil || depth > maxExtractDepth {
		return ""
	}

	switch v := input.(type) {
	case string:
		raw := strings.TrimSpace(v)
		if raw == "" {
			return ""
		}

		if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
			return raw
		}

		if gid := ExtractMediaGid(raw); gid != "" {
			return gid
		}

		looksJSON := (strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}")) ||
			(strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"))
		if looksJSON {
			var parsed interface{}
			if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
				return raw
			}
			return extractMediaValue(parsed, depth+1)
		}

		return raw

	case []interface{}:
		for _, item := range v {
			if result := extractMediaValue(item, depth+1); result != "" {
				return result
			}
		}
		return ""

	case map[string]interface{}:
		preferredKeys := []string{
			"url", "src", "originalSrc", "id", "gid",
			"value", "video", "file", "media", "reference",
		}

		probed := make(map[string]bool, len(preferredKeys))
		for _, key := range preferredKeys {
			item, ok := v[key]
			if !ok {
				continue
			}
			probed[key] = true
			if result := extractMediaValue(item, depth+1); result != "" {
				return result
			}
		}

		// 剩余 key 按稳定顺序扫描
		rest := make([]string, 0, len(v))
		for key := range v {
			if !probed[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			if result := extractMediaValue(v[key], depth+1); result != "" {
				return result
			}
		}
		return ""
	}

	return ""
}
