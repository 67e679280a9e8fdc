package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"loja_backend_v1/internal/api/dto"
)

// ==================== Judge.me 评价服务 ====================

const (
	judgeMeBaseURL = "https://judge.me/api/v1"
	judgeMeTimeout = 10 * time.Second
)

var numericIdentifierRe = regexp.MustCompile(`^\d+$`)

// 葡语月份缩写
var ptBRMonths = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// JudgeMeConfig Judge.me API 配置
type JudgeMeConfig struct {
	APIToken   string
	ShopDomain string
}

// IsConfigured 是否配置完整
func (c *JudgeMeConfig) IsConfigured() bool {
	return c.APIToken != "" && c.ShopDomain != ""
}

// JudgeMeQuery 评价查询参数
type JudgeMeQuery struct {
	PerPage       int
	Page          int
	Published     bool
	Rating        int    // 0 表示不过滤
	HasPhotos     bool
	ProductID     string
	ProductHandle string
}

// judgeMeRawReview Judge.me 原始评价数据
type judgeMeRawReview struct {
	ID       int     `json:"id"`
	Title    *string `json:"title"`
	Body     string  `json:"body"`
	Rating   int     `json:"rating"`
	Reviewer struct {
		Name string `json:"name"`
	} `json:"reviewer"`
	CreatedAt string `json:"created_at"`
	Verified  string `json:"verified"`
	Pictures  []struct {
		URLs struct {
			Original string `json:"original"`
			Small    string `json:"small"`
			Compact  string `json:"compact"`
			Huge     string `json:"huge"`
		} `json:"urls"`
	} `json:"pictures"`
	ProductExternalID string `json:"product_external_id"`
	ProductTitle      string `json:"product_title"`
	ProductHandle     string `json:"product_handle"`
}

// judgeMeRawResponse Judge.me 响应
type judgeMeRawResponse struct {
	Rating  float64            `json:"rating"`
	Reviews []judgeMeRawReview `json:"reviews"`
}

// JudgeMeService Judge.me 评价服务
type JudgeMeService struct {
	config  *JudgeMeConfig
	client  *resty.Client
	baseURL string
}

// NewJudgeMeService 创建 Judge.me 服务
func NewJudgeMeService(config *JudgeMeConfig) *JudgeMeService {
	return &JudgeMeService{
		config:  config,
		client:  resty.New().SetTimeout(judgeMeTimeout),
		baseURL: judgeMeBaseURL,
	}
}

// NewJudgeMeServiceWithEndpoint 创建指定端点的服务（测试用）
func NewJudgeMeServiceWithEndpoint(config *JudgeMeConfig, baseURL string) *JudgeMeService {
	svc := NewJudgeMeService(config)
	svc.baseURL = baseURL
	return svc
}

// GetReviews 拉取评价列表，未配置凭证时返回兜底数据
func (s *JudgeMeService) GetReviews(ctx context.Context, query JudgeMeQuery) (*dto.JudgeMeReviewListResp, error) {
	if query.PerPage <= 0 {
		query.PerPage = 10
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	if !s.config.IsConfigured() {
		return s.fallbackReviews(query.PerPage), nil
	}

	params := url.Values{}
	params.Set("api_token", s.config.APIToken)
	params.Set("shop_domain", s.config.ShopDomain)
	params.Set("per_page", strconv.Itoa(query.PerPage))
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("published", strconv.FormatBool(query.Published))
	if query.Rating > 0 {
		params.Set("rating", strconv.Itoa(query.Rating))
	}
	if query.HasPhotos {
		params.Set("has_photos", "true")
	}
	if query.ProductID != "" {
		params.Set("product_id", query.ProductID)
	}
	if query.ProductHandle != "" {
		params.Set("product_handle", query.ProductHandle)
	}

	var raw judgeMeRawResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&raw).
		Get(s.baseURL + "/reviews")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch reviews: HTTP %d", resp.StatusCode())
	}

	rating := raw.Rating
	if rating == 0 {
		rating = 5
	}

	reviews := make([]dto.JudgeMeReview, 0, len(raw.Reviews))
	for _, r := range raw.Reviews {
		reviews = append(reviews, normalizeJudgeMeReview(r))
	}

	return &dto.JudgeMeReviewListResp{
		Rating:  rating,
		Total:   len(reviews),
		Reviews: reviews,
	}, nil
}

// GetStoreReviews 店铺评价（默认 4 星以上）
func (s *JudgeMeService) GetStoreReviews(ctx context.Context, perPage, page, minRating int, hasPhotos bool) (*dto.JudgeMeReviewListResp, error) {
	if perPage <= 0 {
		perPage = 20
	}
	if minRating <= 0 {
		minRating = 4
	}
	return s.GetReviews(ctx, JudgeMeQuery{
		PerPage:   perPage,
		Page:      page,
		Published: true,
		Rating:    minRating,
		HasPhotos: hasPhotos,
	})
}

// GetProductReviews 商品评价，identifier 为纯数字按 ID 查询，否则按 handle
func (s *JudgeMeService) GetProductReviews(ctx context.Context, identifier string, perPage, page int) (*dto.JudgeMeReviewListResp, error) {
	query := JudgeMeQuery{
		PerPage:   perPage,
		Page:      page,
		Published: true,
	}
	if numericIdentifierRe.MatchString(identifier) {
		query.ProductID = identifier
	} else {
		query.ProductHandle = identifier
	}
	return s.GetReviews(ctx, query)
}

// GetHomeReviews 首页展示评价
func (s *JudgeMeService) GetHomeReviews(ctx context.Context, count int) ([]dto.JudgeMeReview, error) {
	if count <= 0 {
		count = 6
	}
	result, err := s.GetStoreReviews(ctx, count, 1, 4, false)
	if err != nil {
		return nil, err
	}
	return result.Reviews, nil
}

// normalizeJudgeMeReview 规整单条评价
func normalizeJudgeMeReview(r judgeMeRawReview) dto.JudgeMeReview {
	name := r.Reviewer.Name
	if name == "" {
		name = "Cliente"
	}

	imageURL := ""
	if len(r.Pictures) > 0 {
		if r.Pictures[0].URLs.Compact != "" {
			imageURL = r.Pictures[0].URLs.Compact
		} else if r.Pictures[0].URLs.Small != "" {
			imageURL = r.Pictures[0].URLs.Small
		}
	}
	if imageURL == "" {
		imageURL = defaultAvatarURL(r.Reviewer.Name)
	}

	var title *string
	if r.Title != nil && *r.Title != "" {
		title = r.Title
	}

	var productID, productTitle, productHandle *string
	if r.ProductExternalID != "" {
		productID = &r.ProductExternalID
	}
	if r.ProductTitle != "" {
		productTitle = &r.ProductTitle
	}
	if r.ProductHandle != "" {
		productHandle = &r.ProductHandle
	}

	return dto.JudgeMeReview{
		ID:            r.ID,
		Name:          name,
		Rating:        r.Rating,
		Title:         title,
		Text:          r.Body,
		ImageURL:      imageURL,
		Date:          formatPtBRDate(r.CreatedAt),
		Verified:      r.Verified == "yes",
		ProductID:     productID,
		ProductTitle:  productTitle,
		ProductHandle: productHandle,
	}
}

// defaultAvatarURL 按姓名生成固定头像
// 名字用 + 连接，不做转义，和兜底数据保持同一形态
func defaultAvatarURL(name string) string {
	if name == "" {
		return "https://ui-avatars.com/api/?name=Cliente&background=1054ff&color=fff&size=400"
	}
	parts := splitAvatarName(name)
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=1054ff&color=fff&size=400", parts)
}

func splitAvatarName(name string) string {
	fields := regexp.MustCompile(`\s+`).Split(name, -1)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += "+"
		}
		out += f
	}
	return out
}

// formatPtBRDate 格式化为葡语短日期，如 "15 Jan 2025"
func formatPtBRDate(isoDate string) string {
	t, err := time.Parse(time.RFC3339, isoDate)
	if err != nil {
		t, err = time.Parse("2006-01-02", isoDate)
		if err != nil {
			return "Recente"
		}
	}
	return fmt.Sprintf("%d %s %d", t.Day(), ptBRMonths[t.Month()-1], t.Year())
}

// fallbackReviews 未配置凭证时的兜底评价集
func (s *JudgeMeService) fallbackReviews(count int) *dto.JudgeMeReviewListResp {
	str := func(v string) *string { return &v }
	all := []dto.JudgeMeReview{
		{ID: 1, Name: "Maria Silva", Rating: 5, Title: str("Qualidade excepcional"), Text: "Produto de excelente qualidade, super recomendo! Tecido muito confortável.", ImageURL: "https://ui-avatars.com/api/?name=Maria+Silva&background=1054ff&color=fff&size=400", Date: "15 Jan 2025", Verified: true},
		{ID: 2, Name: "João Santos", Rating: 5, Title: str("Adorei!"), Text: "Chegou rápido e bem embalado. Superou minhas expectativas!", ImageURL: "https://ui-avatars.com/api/?name=João+Santos&background=1054ff&color=fff&size=400", Date: "10 Jan 2025", Verified: true},
		{ID: 3, Name: "Ana Costa", Rating: 4, Title: str("Muito bom"), Text: "Produto bonito e confortável. Vale a pena!", ImageURL: "https://ui-avatars.com/api/?name=Ana+Costa&background=1054ff&color=fff&size=400", Date: "5 Jan 2025", Verified: false},
		{ID: 4, Name: "Pedro Lima", Rating: 5, Title: str("Perfeito"), Text: "Exatamente como esperava. Qualidade top!", ImageURL: "https://ui-avatars.com/api/?name=Pedro+Lima&background=1054ff&color=fff&size=400", Date: "28 Dez 2024", Verified: true},
		{ID: 5, Name: "Carla Mendes", Rating: 5, Title: str("Recomendo"), Text: "Minha terceira compra, sempre perfeito!", ImageURL: "https://ui-avatars.com/api/?name=Carla+Mendes&background=1054ff&color=fff&size=400", Date: "20 Dez 2024", Verified: true},
		{ID: 6, Name: "Lucas Oliveira", Rating: 4, Title: str("Satisfeito"), Text: "Produto de qualidade, entrega rápida.", ImageURL: "https://ui-avatars.com/api/?name=Lucas+Oliveira&background=1054ff&color=fff&size=400", Date: "15 Dez 2024", Verified: false},
	}
	if count > len(all) {
		count = len(all)
	}
	return &dto.JudgeMeReviewListResp{
		Rating:  4.8,
		Total:   count,
		Reviews: all[:count],
	}
}
