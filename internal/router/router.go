package router

import (
	"bookstore_api/internal/controller"
	"bookstore_api/internal/middleware"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bookstore_api/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	tokenRepo repository.TokenRepository,
	userRepo repository.UserRepository,
	authCtl *controller.AuthController,
	userCtl *controller.UserController,
	adminUserCtl *controller.AdminUserController,
	bookCtl *controller.BookController,
	cartCtl *controller.CartController,
	orderCtl *controller.OrderController,
	reviewCtl *controller.ReviewController) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// 公开接口，无需登录
		api.POST("/register", authCtl.Register)
		api.POST("/login", authCtl.Login)

		// books 图书目录，读接口公开
		api.GET("/books", bookCtl.List)
		api.GET("/books/:id", bookCtl.Get)
		api.GET("/books/:id/reviews", reviewCtl.ListByBook)

		// 登录态接口
		auth := api.Group("")
		auth.Use(middleware.JWTAuth(tokenRepo, userRepo))
		{
			auth.POST("/logout", authCtl.Logout)

			// profile 个人资料
			auth.GET("/user/profile", userCtl.GetProfile)
			auth.PUT("/user/profile", userCtl.UpdateProfile)

			// cart 购物车
			// /cart/clear 必须注册在 /cart/:id 之前匹配到静态段
			cart := auth.Group("/cart")
			{
				cart.GET("", cartCtl.List)
				cart.POST("", cartCtl.Add)
				cart.DELETE("/clear", cartCtl.Clear)
				cart.PUT("/:id", cartCtl.Update)
				cart.DELETE("/:id", cartCtl.Remove)
			}

			// orders 订单
			orders := auth.Group("/orders")
			{
				orders.GET("", orderCtl.ListMine)
				orders.POST("", orderCtl.Place)
				orders.POST("/:id/cancel", orderCtl.Cancel)
			}

			// reviews 书评
			auth.POST("/books/:id/reviews", reviewCtl.Submit)
			auth.DELETE("/reviews/:id", reviewCtl.Delete)

			// admin 管理端接口
			admin := auth.Group("/admin")
			admin.Use(middleware.RequireRole(model.RoleAdmin))
			{
				// 用户管理
				admin.GET("/users", adminUserCtl.List)
				admin.PATCH("/users/:id/toggle-active", adminUserCtl.ToggleActive)
				admin.PATCH("/users/:id/make-admin", adminUserCtl.MakeAdmin)
				admin.DELETE("/users/:id", adminUserCtl.Delete)

				// 图书管理
				admin.POST("/books", bookCtl.Create)
				admin.PUT("/books/:id", bookCtl.Update)
				admin.DELETE("/books/:id", bookCtl.Delete)

				// 订单管理
				admin.GET("/orders", orderCtl.AdminList)
				admin.PUT("/orders/:id", orderCtl.AdminUpdateStatus)

				// 书评管理
				admin.GET("/feedbacks", reviewCtl.AdminList)
			}
		}
	}
}
