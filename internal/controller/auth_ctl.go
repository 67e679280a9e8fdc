package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/service"
)

// AuthController 认证接口
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 创建控制器
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register 注册
// @Summary 用户注册
// @Tags Auth
// @Param body body dto.RegisterReq true "注册信息"
// @Success 201 {object} dto.UserResp
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的注册参数: " + err.Error()})
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "Email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "注册失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": user})
}

// Login 登录
// @Summary 用户登录
// @Tags Auth
// @Param body body dto.LoginReq true "登录信息"
// @Success 200 {object} dto.LoginResp
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的登录参数: " + err.Error()})
		return
	}

	resp, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "登录失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": resp})
}

// Verify 校验 token
// @Summary 校验 token 并返回用户信息
// @Tags Auth
// @Param body body dto.VerifyReq true "token"
// @Success 200 {object} dto.UserResp
// @Router /api/auth/verify [post]
func (ctrl *AuthController) Verify(c *gin.Context) {
	var req dto.VerifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "token is required"})
		return
	}

	user, err := ctrl.authService.Verify(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": user})
}
