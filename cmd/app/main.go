package main

import (
	"context"
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pattaradanai-k/product-recommend-backend/internal/category"
	"github.com/pattaradanai-k/product-recommend-backend/internal/config"
	"github.com/pattaradanai-k/product-recommend-backend/internal/embedding"
	"github.com/pattaradanai-k/product-recommend-backend/internal/interaction"
	"github.com/pattaradanai-k/product-recommend-backend/internal/logging"
	"github.com/pattaradanai-k/product-recommend-backend/internal/product"
	"github.com/pattaradanai-k/product-recommend-backend/internal/recommend"
	"github.com/pattaradanai-k/product-recommend-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := mustOpenDB(cfg.DatabaseURL, logger)
	defer db.Close()
	ensureSchema(db, logger)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// repositories and services
	userService := user.NewService(user.NewPostgresRepository(db))
	categoryService := category.NewService(category.NewPostgresRepository(db))
	productService := product.NewService(product.NewPostgresRepository(db), cfg.SearchMaxConcurrent)
	interactionService := interaction.NewService(interaction.NewPostgresRepository(db))

	// recommendation cache is optional; without redis the engine just skips it
	var cache recommend.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, running without recommendation cache", zap.Error(err))
		} else {
			cache = recommend.NewRedisCache(client, cfg.RecommendCacheTTL)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := recommend.NewMetrics()
	if err := metrics.Register(registry); err != nil {
		logger.Fatal("metrics registration failed", zap.Error(err))
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	recommendService := recommend.NewService(
		userService, categoryService, productService, interactionService,
		cache, metrics, logger,
	)

	userHandler := user.NewHandler(userService, []byte(cfg.JWTSecret))
	categoryHandler := category.NewHandler(categoryService)
	productHandler := product.NewHandler(productService, interactionService)
	interactionHandler := interaction.NewHandler(interactionService, userService, productService)
	recommendHandler := recommend.NewHandler(recommendService)

	// public surface
	userHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	recommendHandler.RegisterPublicRoutes(app)

	// everything below requires a valid bearer token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))
	categoryHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	interactionHandler.RegisterProtectedRoutes(app)

	// daily placeholder embedding refresh
	updater := embedding.NewUpdater(
		productService,
		embedding.NewPostgresStore(db),
		embedding.StubEncoder{Dim: 128},
		logger,
	)
	sched := cron.New()
	if _, err := sched.AddFunc("@every 24h", func() {
		if _, err := updater.RefreshAll(); err != nil {
			logger.Error("embedding refresh failed", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("scheduling embedding refresh failed", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	logger.Info("starting server", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func mustOpenDB(url string, logger *zap.Logger) *sql.DB {
	if url == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}
	return db
}

// ensureSchema creates the tables on first run so a fresh database works out
// of the box. Existing installations are untouched.
func ensureSchema(db *sql.DB, logger *zap.Logger) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			parent_category_id INT REFERENCES categories(category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DOUBLE PRECISION NOT NULL,
			category_id INT REFERENCES categories(category_id),
			image_url VARCHAR(255),
			embedding TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS user_interactions (
			interaction_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(user_id),
			product_id INT NOT NULL REFERENCES products(product_id),
			rating INT,
			view_count INT NOT NULL DEFAULT 0,
			purchase_count INT NOT NULL DEFAULT 0,
			interaction_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_feedback (
			feedback_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(user_id),
			product_id INT NOT NULL REFERENCES products(product_id),
			rating INT NOT NULL,
			feedback_text TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			logger.Fatal("schema setup failed", zap.Error(err))
		}
	}
}
