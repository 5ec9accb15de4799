// Package server assembles the HTTP engine from the configured stores.
package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"fornex/internal/config"
	"fornex/internal/domain/auth"
	"fornex/internal/domain/catalog"
	"fornex/internal/domain/inquiry"
	"fornex/internal/domain/profile"
	"fornex/internal/domain/upload"
	"fornex/internal/middleware"
	"fornex/internal/pkg/logger"
	"fornex/internal/pkg/response"
	"fornex/internal/repository"
)

func NewRouter(cfg *config.Config, stores *repository.Stores, log *logger.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	uploads := upload.NewService(cfg.UploadDir, upload.StaticURLBase, cfg.UploadMaxBytes)

	authHandler := auth.NewHandler(auth.NewService(stores.Users, stores.Companies, log), log)
	catalogHandler := catalog.NewHandler(catalog.NewService(stores.Companies, uploads, cfg.CategoriesFile, log), log)
	profileHandler := profile.NewClientHandler(profile.NewService(stores.Users, uploads, log), log)
	inquiryHandler := inquiry.NewHandler(inquiry.NewService(stores.Inquiries, stores.Companies, stores.Users, log), log)

	r := gin.New()
	r.MaxMultipartMemory = cfg.UploadMaxBytes
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler.RegisterRoutes(r)

	api := r.Group("/api")
	{
		catalogHandler.RegisterRoutes(api)
		profile.RegisterRoutes(api, profileHandler)
		inquiry.RegisterRoutes(api, inquiryHandler)
	}

	r.Static(upload.StaticURLBase, uploads.BaseDir())
	mountSite(r, cfg.PublicDir, log)

	return r
}

// mountSite serves the browser pages from dir. "/" always lands on the
// login page; anything else unmatched gets the JSON 404 envelope.
func mountSite(r *gin.Engine, dir string, log *logger.Logger) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, auth.LoginPage)
	})

	notFound := func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recurso não encontrado.")
	}

	if dir == "" {
		r.NoRoute(notFound)
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Warn().Str("dir", dir).Msg("public dir not found, static site disabled")
		r.NoRoute(notFound)
		return
	}

	fs := gin.Dir(dir, false)
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			notFound(c)
			return
		}
		c.FileFromFS(c.Request.URL.Path, fs)
	})
}
