package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sudo-init-do/bloghub/internal/admin"
	"github.com/sudo-init-do/bloghub/internal/alerts"
	"github.com/sudo-init-do/bloghub/internal/auth"
	"github.com/sudo-init-do/bloghub/internal/comment"
	"github.com/sudo-init-do/bloghub/internal/config"
	"github.com/sudo-init-do/bloghub/internal/contact"
	"github.com/sudo-init-do/bloghub/internal/db"
	mware "github.com/sudo-init-do/bloghub/internal/middleware"
	"github.com/sudo-init-do/bloghub/internal/post"
	"github.com/sudo-init-do/bloghub/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db.Init(cfg)
	auth.Init(cfg.JWTSecret, cfg.JWTTTL)
	alerts.Init(cfg.RedisAddr, cfg.AdminEmail)
	defer alerts.Close()

	e := echo.New()
	e.HideBanner = true

	// Basic middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Blog API is running!"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/api/auth")
	authPublic := authGroup.Group("")
	authPublic.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authPublic.POST("/register", auth.Register)
	authPublic.POST("/login", auth.Login)
	authPublic.POST("/password/forgot", auth.ForgotPassword)
	authPublic.POST("/password/reset", auth.ResetPassword)

	authProtected := authGroup.Group("")
	authProtected.Use(mware.RequireAuth)
	authProtected.GET("/profile", auth.GetProfile)
	authProtected.PUT("/profile", user.UpdateProfile)
	authProtected.PUT("/password", auth.UpdatePassword)

	// Admin routes: valid token AND administrator role
	adminGroup := authGroup.Group("/admin")
	adminGroup.Use(mware.RequireAuth)
	adminGroup.Use(mware.AdminGuard)
	adminGroup.GET("/stats", admin.Stats)
	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.GET("/users/:id", admin.GetUser)
	adminGroup.DELETE("/users/:id", admin.DeleteUser)
	adminGroup.PUT("/users/:id/role", admin.UpdateUserRole)

	// Public user profiles
	e.GET("/api/users/:id", user.GetPublicProfile)

	// Posts: reads are public, mutations require authentication
	e.GET("/api/posts", post.GetAllPosts)
	e.GET("/api/posts/category/:category", post.GetPostsByCategory)
	e.GET("/api/posts/:id", post.GetPostByID)

	postsAuth := e.Group("/api/posts")
	postsAuth.Use(mware.RequireAuth)
	postsAuth.POST("", post.CreatePost)
	postsAuth.PUT("/:id", post.UpdatePost)
	postsAuth.DELETE("/:id", post.DeletePost)
	postsAuth.POST("/:id/like", post.LikePost)
	postsAuth.DELETE("/:id/like", post.UnlikePost)

	// Comments
	e.GET("/api/comments", comment.GetAllComments)
	e.GET("/api/comments/post/:postId", comment.GetCommentsByPost)

	commentsAuth := e.Group("/api/comments")
	commentsAuth.Use(mware.RequireAuth)
	commentsAuth.POST("", comment.AddComment)
	commentsAuth.DELETE("/:id", comment.DeleteComment)

	// Contact: anyone may submit, moderation is admin-only
	e.POST("/api/contact", contact.Submit)

	contactAdmin := e.Group("/api/contact")
	contactAdmin.Use(mware.RequireAuth)
	contactAdmin.Use(mware.AdminGuard)
	contactAdmin.GET("", contact.ListMessages)
	contactAdmin.PUT("/:id/read", contact.MarkAsRead)
	contactAdmin.DELETE("/:id", contact.DeleteMessage)

	if err := e.Start(cfg.HTTPAddress()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
