package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loja_backend_v1/internal/service"
)

// JudgeMeController judge.me 评价接口
type JudgeMeController struct {
	judgeMeService *service.JudgeMeService
}

// NewJudgeMeController 创建控制器
func NewJudgeMeController(judgeMeService *service.JudgeMeService) *JudgeMeController {
	return &JudgeMeController{judgeMeService: judgeMeService}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

// GetStoreReviews 店铺评价
// @Summary 获取店铺评价列表
// @Tags JudgeMe
// @Param perPage query int false "每页数量" default(20)
// @Param page query int false "页码" default(1)
// @Param minRating query int false "最低星级" default(4)
// @Param hasPhotos query bool false "只要带图评价"
// @Success 200 {object} dto.JudgeMeReviewListResp
// @Router /api/judgeme/reviews [get]
func (ctrl *JudgeMeController) GetStoreReviews(c *gin.Context) {
	data, err := ctrl.judgeMeService.GetStoreReviews(
		c.Request.Context(),
		queryInt(c, "perPage", 20),
		queryInt(c, "page", 1),
		queryInt(c, "minRating", 4),
		c.Query("hasPhotos") == "true",
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching store reviews", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetProductReviews 商品评价
// @Summary 按商品 id 或 handle 获取评价
// @Tags JudgeMe
// @Param identifier path string true "商品 id 或 handle"
// @Success 200 {object} dto.JudgeMeReviewListResp
// @Router /api/judgeme/products/{identifier} [get]
func (ctrl *JudgeMeController) GetProductReviews(c *gin.Context) {
	identifier := c.Param("identifier")
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "identifier is required"})
		return
	}

	data, err := ctrl.judgeMeService.GetProductReviews(
		c.Request.Context(),
		identifier,
		queryInt(c, "perPage", 10),
		queryInt(c, "page", 1),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product reviews", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetHomeReviews 首页展示评价
// @Summary 首页评价精选
// @Tags JudgeMe
// @Param count query int false "数量" default(6)
// @Success 200 {array} dto.JudgeMeReview
// @Router /api/judgeme/home [get]
func (ctrl *JudgeMeController) GetHomeReviews(c *gin.Context) {
	reviews, err := ctrl.judgeMeService.GetHomeReviews(c.Request.Context(), queryInt(c, "count", 6))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching home reviews", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
