package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"loja_backend_v1/internal/controller"
	"loja_backend_v1/internal/middleware"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/repository"
	"loja_backend_v1/internal/router"
	"loja_backend_v1/internal/service"
	"loja_backend_v1/internal/task"
	"loja_backend_v1/pkg/database"
	"loja_backend_v1/pkg/shopify"
	"loja_backend_v1/pkg/utils"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Product,
		deps.Controllers.Category,
		deps.Controllers.Cart,
		deps.Controllers.Order,
		deps.Controllers.Shopify,
		deps.Controllers.JudgeMe,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User     repository.UserRepository
	Product  repository.ProductRepository
	Category repository.CategoryRepository
	Cart     repository.CartRepository
	Order    repository.OrderRepository
	Webhook  repository.WebhookEventRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Product  *service.ProductService
	Category *service.CategoryService
	Cart     *service.CartService
	Order    *service.OrderService
	Payment  *service.PaymentService
	Shopify  *service.ShopifyService
	JudgeMe  *service.JudgeMeService
}

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Product  *controller.ProductController
	Category *controller.CategoryController
	Cart     *controller.CartController
	Order    *controller.OrderController
	Shopify  *controller.ShopifyController
	JudgeMe  *controller.JudgeMeController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_URL", fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=America/Sao_Paulo",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "loja"),
		getEnv("DB_PORT", "5432"),
	))

	return database.InitDB(dsn,
		// 用户
		&model.User{},
		// 自营目录
		&model.Category{}, &model.Product{}, &model.ProductVariant{},
		// 购物车与订单
		&model.CartItem{}, &model.Order{}, &model.OrderItem{},
		// Webhook 记录
		&model.WebhookEvent{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- JWT 配置 --------
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey: getEnv("JWT_SECRET", "loja-secret-key-change-in-production"),
		TokenTTL:  24 * time.Hour,
		Issuer:    "loja-backend",
	})

	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- Shopify 客户端 --------
	shopifyClient, err := shopify.NewClient(&shopify.Config{
		StoreDomain:     getEnv("SHOPIFY_STORE_DOMAIN", ""),
		StorefrontToken: getEnv("SHOPIFY_STOREFRONT_TOKEN", ""),
		APIVersion:      getEnv("SHOPIFY_API_VERSION", "2024-10"),
	})
	if err != nil {
		log.Fatalf("Shopify 客户端初始化失败: %v", err)
	}

	queryCache := utils.NewQueryCache(utils.DefaultCacheTTL)

	// -------- 业务服务 --------
	services := &Services{
		Auth:     service.NewAuthService(repos.User),
		Product:  service.NewProductService(repos.Product),
		Category: service.NewCategoryService(repos.Category),
		Cart:     service.NewCartService(repos.Cart, repos.Product),
		Order:    service.NewOrderService(repos.Order, repos.Product),
		Payment:  service.NewPaymentService(),
		Shopify: service.NewShopifyService(shopifyClient, queryCache, &service.ShopifyOptions{
			ReviewsMetaobjectType: getEnv("SHOPIFY_REVIEWS_METAOBJECT_TYPE", ""),
			ClipsReferenceListID:  getEnv("SHOPIFY_CLIPS_REFERENCE_LIST_ID", ""),
			ClipsMetaobjectType:   getEnv("SHOPIFY_CLIPS_METAOBJECT_TYPE", ""),
		}),
		JudgeMe: service.NewJudgeMeService(&service.JudgeMeConfig{
			APIToken:   getEnv("JUDGEME_API_TOKEN", ""),
			ShopDomain: getEnv("JUDGEME_SHOP_DOMAIN", getEnv("SHOPIFY_STORE_DOMAIN", "")),
		}),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Product:  controller.NewProductController(services.Product),
		Category: controller.NewCategoryController(services.Category),
		Cart:     controller.NewCartController(services.Cart),
		Order:    controller.NewOrderController(services.Order),
		Shopify: controller.NewShopifyController(
			services.Shopify,
			repos.Webhook,
			getEnv("SHOPIFY_WEBHOOK_SECRET", ""),
		),
		JudgeMe: controller.NewJudgeMeController(services.JudgeMe),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     repository.NewUserRepository(db),
		Product:  repository.NewProductRepository(db),
		Category: repository.NewCategoryRepository(db),
		Cart:     repository.NewCartRepository(db),
		Order:    repository.NewOrderRepository(db),
		Webhook:  repository.NewWebhookEventRepository(db),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 缓存预热
	if getEnv("CACHE_WARM_ENABLED", "true") == "true" {
		warmTask := task.NewCacheWarmTask(deps.Services.Shopify)
		warmTask.Start()
	}

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
