package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"github.com/rl1809/rice-trace/internal/adapter/handler"
	"github.com/rl1809/rice-trace/internal/adapter/ledger"
	"github.com/rl1809/rice-trace/internal/adapter/storage"
	"github.com/rl1809/rice-trace/internal/config"
	"github.com/rl1809/rice-trace/internal/core/service"
	"github.com/rl1809/rice-trace/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var (
		journals []port.Journal
		reader   port.JournalReader
		closers  []func() error
	)

	// Initialize MySQL
	if cfg.MySQL.Enabled {
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		log.Println("connected to mysql")

		mysqlAdapter := storage.NewMySQLAdapter(db)
		if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to prepare journal table: %v", err)
		}
		journals = append(journals, mysqlAdapter)
		reader = mysqlAdapter
		closers = append(closers, db.Close)
	}

	// Initialize Redis
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		log.Println("connected to redis")

		redisAdapter := storage.NewRedisAdapter(rdb, cfg.Journal.RecentLimit)
		journals = append(journals, redisAdapter)
		// recent entries are cheaper to serve from redis
		reader = redisAdapter
		closers = append(closers, rdb.Close)
	}

	var journal port.Journal
	if len(journals) > 0 {
		journal = storage.MultiJournal(journals)
	}

	// Initialize service
	gateway := ledger.NewHTTPGateway(cfg.Ledger.BaseURL, nil)
	actionService := service.NewActionService(gateway, journal)
	log.Printf("ledger service at %s", cfg.Ledger.BaseURL)

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	handler.RegisterActionServiceServer(grpcServer, handler.NewGRPCHandler(actionService))

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPC.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	mux := http.NewServeMux()
	handler.NewHTTPHandler(actionService, reader).Routes(mux)

	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	// Stop HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	// Stop gRPC server
	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")

	// Close connections
	for _, c := range closers {
		c()
	}
	log.Println("connections closed")
}
