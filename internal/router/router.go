package router

import (
	"github.com/gin-gonic/gin"

	"loja_backend_v1/internal/controller"
	"loja_backend_v1/internal/middleware"
	"loja_backend_v1/internal/model"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	productCtrl *controller.ProductController,
	categoryCtrl *controller.CategoryController,
	cartCtrl *controller.CartController,
	orderCtrl *controller.OrderController,
	shopifyCtrl *controller.ShopifyController,
	judgeMeCtrl *controller.JudgeMeController) {

	api := r.Group("/api")
	{
		// 健康检查
		api.GET("/health", shopifyCtrl.Health)

		// auth 鉴权组 (公开)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authCtrl.Register)
			auth.POST("/login", authCtrl.Login)
			auth.POST("/verify", authCtrl.Verify)
		}

		// 自营商品：读公开，写需要管理员
		products := api.Group("/products")
		{
			products.GET("", productCtrl.GetProducts)
			products.GET("/:id", productCtrl.GetProduct)
			products.GET("/:id/variants", productCtrl.GetVariants)

			admin := products.Group("", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
			{
				admin.POST("", productCtrl.AddProduct)
				admin.PUT("/:id", productCtrl.UpdateProduct)
				admin.DELETE("/:id", productCtrl.DeleteProduct)
				admin.POST("/:id/variants", productCtrl.AddVariant)
			}
		}

		// 自营分类：读公开，写需要管理员
		categories := api.Group("/categories")
		{
			categories.GET("", categoryCtrl.GetAllCategories)
			categories.GET("/:id", categoryCtrl.GetCategoryByID)

			admin := categories.Group("", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
			{
				admin.POST("", categoryCtrl.CreateCategory)
				admin.PUT("/:id", categoryCtrl.UpdateCategory)
				admin.DELETE("/:id", categoryCtrl.DeleteCategory)
			}
		}

		// Shopify Storefront 聚合 (公开)
		shopify := api.Group("/shopify")
		{
			shopify.GET("/products", shopifyCtrl.GetProducts)
			shopify.GET("/products/:id", shopifyCtrl.GetProductByID)
			shopify.GET("/collections", shopifyCtrl.GetCollections)
			shopify.GET("/stories-collections", shopifyCtrl.GetStoriesCollections)
			shopify.GET("/collection-products", shopifyCtrl.GetProductsByCollection)
			shopify.GET("/shop-metafields", shopifyCtrl.GetShopMetafields)
			shopify.GET("/clips", shopifyCtrl.GetClips)
			shopify.GET("/reviews", shopifyCtrl.GetProductReviews)
			shopify.POST("/checkout", shopifyCtrl.CreateCheckout)
		}

		// judge.me 评价 (公开)
		judgeme := api.Group("/judgeme")
		{
			judgeme.GET("/reviews", judgeMeCtrl.GetStoreReviews)
			judgeme.GET("/home", judgeMeCtrl.GetHomeReviews)
			judgeme.GET("/products/:identifier", judgeMeCtrl.GetProductReviews)
		}

		// 购物车 (登录用户)
		cart := api.Group("/cart", middleware.JWTAuth())
		{
			cart.POST("", cartCtrl.AddToCart)
			cart.GET("", cartCtrl.GetCart)
			cart.PUT("/:id", cartCtrl.UpdateCartItem)
			cart.DELETE("/:id", cartCtrl.RemoveFromCart)
			cart.DELETE("", cartCtrl.ClearCart)
		}

		// 订单 (登录用户)
		orders := api.Group("/orders", middleware.JWTAuth())
		{
			orders.POST("", orderCtrl.CreateOrder)
			orders.GET("", orderCtrl.GetUserOrders)
			orders.GET("/:id", orderCtrl.GetOrderByID)
		}

		// 订单管理 (管理员)
		adminOrders := api.Group("/admin/orders", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
		{
			adminOrders.GET("", orderCtrl.GetAllOrders)
			adminOrders.PUT("/:id/status", orderCtrl.UpdateOrderStatus)
			adminOrders.DELETE("/:id", orderCtrl.DeleteOrder)
		}

		// Shopify webhook (签名校验在控制器内)
		api.POST("/webhooks/shopify", shopifyCtrl.Webhook)
	}
}
