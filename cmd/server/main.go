package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	accounts := service.NewAccountService(store, cfg.BcryptCost)
	movies := service.NewMovieService(store)
	names := service.NewNameService(store)
	ratings := service.NewRatingService(store)
	reviews := service.NewReviewService(store)

	authH := handler.NewAuthHandler(cfg, accounts)
	userH := handler.NewUserHandler(accounts)
	movieH := handler.NewMovieHandler(movies)
	nameH := handler.NewNameHandler(names)
	ratingH := handler.NewRatingHandler(ratings)
	reviewH := handler.NewReviewHandler(reviews)
	searchH := handler.NewSearchHandler(movies, names)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis is optional; without it the limiter and cache are no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and response caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewResponseCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e, movieH, nameH, reviewH, searchH)
	router.RegisterAccount(e, authH, userH, cfg.JWTSecret)
	router.RegisterCatalog(e, movieH, nameH, cfg.JWTSecret)
	router.RegisterReviews(e, reviewH, ratingH, cfg.JWTSecret)

	// Background consumer logs rating refresh events; it reconnects on
	// its own and never takes the API down.
	go func() {
		if err := queue.StartRatingConsumer(); err != nil {
			log.Printf("rating consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
