package dto

// JudgeMeReview judge.me 归一化评价
type JudgeMeReview struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Rating        int     `json:"rating"`
	Title         *string `json:"title"`
	Text          string  `json:"text"`
	ImageURL      string  `json:"imageUrl"`
	Date          string  `json:"date"`
	Verified      bool    `json:"verified"`
	ProductID     *string `json:"productId"`
	ProductTitle  *string `json:"productTitle"`
	ProductHandle *string `json:"productHandle"`
}

// JudgeMeReviewListResp judge.me 评价列表响应
type JudgeMeReviewListResp struct {
	Rating  float64         `json:"rating"`
	Total   int             `json:"total"`
	Reviews []JudgeMeReview `json:"reviews"`
}
