package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"order-cluster-service/internal/adapters/cache"
	"order-cluster-service/internal/adapters/market"
	"order-cluster-service/internal/adapters/repositories"
	"order-cluster-service/internal/api"
	"order-cluster-service/internal/config"
	"order-cluster-service/internal/platform/db"
	"order-cluster-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Agmarknet) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	agmarkKey := os.Getenv("AGMARK_API_KEY")
	if strings.TrimSpace(agmarkKey) == "" {
		log.Fatal("AGMARK_API_KEY is required")
	}

	port := config.Get("PORT", "8080")

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Price quotes are cached in Redis when available; without it every
	// lookup goes to the upstream (rate-limited, so configure Redis in
	// anything beyond local runs).
	var priceCache ports.PriceCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		priceCache = cache.NewRedisPriceCache(client)
		defer client.Close()
	} else {
		log.Println("REDIS_ADDR not set, price quotes will not be cached")
	}

	prices, err := market.NewAgmarkPriceProvider(agmarkKey, priceCache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewPostgresOrderRepository(pool)
	router := api.NewRouter(repo, prices, config.ClusteringFromEnv())

	// Write timeout covers cold-cache price enrichment (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
