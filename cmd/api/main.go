package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"photodrop/internal/cache"
	"photodrop/internal/config"
	"photodrop/internal/gallery"
	"photodrop/internal/handler"
	"photodrop/internal/httpmiddleware"
	"photodrop/internal/imagekit"
	"photodrop/internal/store"
	"photodrop/internal/student"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	var (
		listingCache cache.Cache
		redisClient  *store.Redis
	)
	if cfg.CacheBackend == "memory" {
		listingCache = cache.NewMemory()
	} else {
		redisClient = store.NewRedis(cfg.RedisAddr)
		listingCache = cache.NewRedis(redisClient.Client, "photodrop:listings")
	}

	media := imagekit.New(cfg.ImageKitEndpoint, cfg.ImageKitAPIURL, cfg.ImageKitPublicKey, cfg.ImageKitPrivateKey)
	if cfg.ImageKitPrivateKey == "" {
		log.Println("ImageKit not configured (IMAGEKIT_ENDPOINT / IMAGEKIT_PRIVATE_KEY not set)")
	} else {
		log.Println("ImageKit configured:", cfg.ImageKitEndpoint)
	}

	repo := student.NewRepository(db.Client)
	students := student.NewService(repo, student.ReferenceRule{Kind: cfg.ReferenceKind, RollLength: cfg.RollLength})
	galleries := gallery.NewService(media, listingCache, cfg.GalleryCacheTTL)
	bundler := gallery.NewBundler(30 * time.Second)

	h := handler.New(cfg, students, galleries, media, bundler)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", healthzHandler(db.Client.PingContext, redisClient))

	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // zip downloads stream for a while
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// healthzHandler reports db and cache reachability. The redis check only
// runs when a redis client was configured; with the memory cache backend a
// dead redis is irrelevant and must not fail health probes.
func healthzHandler(dbPing func(context.Context) error, redisClient *store.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbHealthy := dbPing(c.Request.Context()) == nil
		resp := gin.H{"status": "ok", "db": dbHealthy}
		healthy := dbHealthy
		if redisClient != nil {
			redisHealthy := redisClient.Healthy(c.Request.Context())
			resp["redis"] = redisHealthy
			healthy = healthy && redisHealthy
		}
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
			resp["status"] = "degraded"
		}
		c.JSON(status, resp)
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
