package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore_api/internal/controller"
	"bookstore_api/internal/middleware"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"
	"bookstore_api/internal/router"
	"bookstore_api/internal/service"
	"bookstore_api/internal/task"
	"bookstore_api/pkg/config"
	"bookstore_api/pkg/database"
	"bookstore_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @title Bookstore API
// @version 1.0
// @description 在线书店后端接口文档
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := &cli.App{
		Name:  "bookstore",
		Usage: "在线书店后端",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "配置文件路径",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "启动 HTTP 服务",
				Action: runServe,
			},
			{
				Name:   "seed",
				Usage:  "写入状态字典和初始管理员",
				Action: runSeed,
			},
		},
		// 不带子命令时默认 serve
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
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
	User        repository.UserRepository
	Token       repository.TokenRepository
	Book        repository.BookRepository
	Cart        repository.CartRepository
	Order       repository.OrderRepository
	OrderStatus repository.OrderStatusRepository
	Review      repository.ReviewRepository
}

// Services 服务集合
type Services struct {
	Auth   *service.AuthService
	User   *service.UserService
	Book   *service.BookService
	Cart   *service.CartService
	Order  *service.OrderService
	Review *service.ReviewService
}

// Controllers 控制器集合
type Controllers struct {
	Auth      *controller.AuthController
	User      *controller.UserController
	AdminUser *controller.AdminUserController
	Book      *controller.BookController
	Cart      *controller.CartController
	Order     *controller.OrderController
	Review    *controller.ReviewController
}

// ==================== 初始化函数 ====================

func setup(c *cli.Context) (*config.Config, *Dependencies, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	if _, err := logger.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		return nil, nil, err
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenTTL: cfg.JWT.AccessTTL,
		Issuer:         cfg.JWT.Issuer,
	})

	db, err := initDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, initDependencies(db), nil
}

// initDatabase 初始化数据库并迁移全部模型
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	opts := database.DefaultOptions()
	opts.MaxIdleConns = cfg.Postgres.MaxIdleConns
	opts.MaxOpenConns = cfg.Postgres.MaxOpenConns
	opts.LogSQL = cfg.Postgres.LogSQL

	db, err := database.InitDB(cfg.Postgres.DSN(), opts,
		// 账号
		&model.User{}, &model.AccessToken{},
		// 图书目录
		&model.Book{}, &model.Category{}, &model.Tag{}, &model.Publisher{},
		// 购物车
		&model.CartItem{},
		// 订单
		&model.OrderStatus{}, &model.Order{}, &model.OrderItem{},
		// 书评
		&model.Review{},
	)
	if err != nil {
		return nil, err
	}

	// 状态字典必须在任何下单之前就绪
	if err := repository.SeedOrderStatuses(db); err != nil {
		return nil, err
	}

	return db, nil
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	repos := &Repositories{
		User:        repository.NewUserRepository(db),
		Token:       repository.NewTokenRepository(db),
		Book:        repository.NewBookRepository(db),
		Cart:        repository.NewCartRepository(db),
		Order:       repository.NewOrderRepository(db),
		OrderStatus: repository.NewOrderStatusRepository(db),
		Review:      repository.NewReviewRepository(db),
	}

	services := &Services{
		Auth:   service.NewAuthService(repos.User, repos.Token),
		User:   service.NewUserService(repos.User, repos.Token),
		Book:   service.NewBookService(repos.Book),
		Cart:   service.NewCartService(repos.Cart, repos.Book),
		Order:  service.NewOrderService(repos.Order, repos.OrderStatus, repos.Book),
		Review: service.NewReviewService(repos.Review, repos.Book),
	}

	controllers := &Controllers{
		Auth:      controller.NewAuthController(services.Auth),
		User:      controller.NewUserController(services.User),
		AdminUser: controller.NewAdminUserController(services.User),
		Book:      controller.NewBookController(services.Book),
		Cart:      controller.NewCartController(services.Cart),
		Order:     controller.NewOrderController(services.Order),
		Review:    controller.NewReviewController(services.Review),
	}

	return &Dependencies{DB: db, Repos: repos, Services: services, Controllers: controllers}
}

// ==================== serve ====================

func runServe(c *cli.Context) error {
	cfg, deps, err := setup(c)
	if err != nil {
		return err
	}

	// 定时任务
	tokenTask := task.NewTokenTask(deps.Repos.Token)
	if err := tokenTask.Start(); err != nil {
		return fmt.Errorf("启动令牌清理任务失败: %w", err)
	}
	defer tokenTask.Stop()

	// 路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(zap.L()), gin.Recovery())
	router.InitRoutes(r, deps.Repos.Token, deps.Repos.User,
		deps.Controllers.Auth,
		deps.Controllers.User,
		deps.Controllers.AdminUser,
		deps.Controllers.Book,
		deps.Controllers.Cart,
		deps.Controllers.Order,
		deps.Controllers.Review,
	)

	return startServer(r, cfg.Server.Port)
}

// startServer 启动服务并等待退出信号
func startServer(r *gin.Engine, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("服务启动", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("服务启动失败: %w", err)
	case <-quit:
	}

	zap.L().Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}

	zap.L().Info("服务已退出")
	return nil
}

// ==================== seed ====================

// runSeed 初始化状态字典（InitDB 已做）并创建初始管理员
func runSeed(c *cli.Context) error {
	cfg, deps, err := setup(c)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if cfg.Admin.Password == "" {
		return fmt.Errorf("admin.password is required for seed")
	}

	existing, err := deps.Repos.User.GetByEmail(ctx, cfg.Admin.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		zap.L().Info("管理员已存在，跳过", zap.String("email", cfg.Admin.Email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: string(hash),
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := deps.Repos.User.Create(ctx, admin); err != nil {
		return err
	}

	zap.L().Info("初始管理员已创建", zap.String("email", admin.Email), zap.Int64("id", admin.ID))
	return nil
}
