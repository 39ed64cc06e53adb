package main

import (
	"os"

	"burger-blog/pkg/config"
	"burger-blog/pkg/handlers"
	"burger-blog/pkg/logger"
	"burger-blog/pkg/services"
	"burger-blog/pkg/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Initialize config
	config.Init()
	defer logger.Sync()

	db, err := storage.Connect(config.DatabaseDSN)
	if err != nil {
		logger.Fatal("database connect", zap.Error(err))
	}

	api := handlers.NewAPI(
		services.NewPostRepository(config.ContentDir),
		storage.NewCommentStore(db),
		storage.NewProfileStore(db),
	)

	r := gin.Default()

	// Session Setup
	store := cookie.NewStore([]byte(os.Getenv("SESSION_SECRET")))
	r.Use(sessions.Sessions("blogsession", store))

	// Post images
	r.Static(config.ImagePathPrefix, config.ImageDir)

	// --- Auth Routes ---
	r.GET("/login", handlers.LoginPage)
	r.GET("/login/github", handlers.GithubLogin)
	r.GET("/auth/callback", api.AuthCallback)
	r.GET("/logout", handlers.Logout)

	// --- Public read surface ---
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/posts", api.ListPosts)
		apiGroup.GET("/posts/:slug", api.GetPost)
		apiGroup.GET("/comments", api.ListComments)
		apiGroup.POST("/comments", api.CreateComment)
	}

	// --- Admin (Authorized) ---
	admin := apiGroup.Group("/admin")
	admin.Use(handlers.AuthRequired)
	{
		admin.GET("/stats", api.AdminStats)
	}

	r.Run(config.Addr)
}
