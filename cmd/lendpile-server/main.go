package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/hoozter/lendpile/internal/server"
	"github.com/hoozter/lendpile/internal/store"
	"github.com/hoozter/lendpile/pkg/constants"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", "", "listen address, defaults to PORT env or "+constants.DefaultServerAddress)
	redisAddr := flag.String("redis", "", "redis address for loan storage; empty means in-memory")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	listenAddr := *addr
	if listenAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			listenAddr = ":" + port
		} else {
			listenAddr = constants.DefaultServerAddress
		}
	}

	var repo store.Repository
	if *redisAddr != "" {
		redisRepo := store.NewRedisRepository(*redisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisRepo.Ping(ctx); err != nil {
			logger.Fatal("redis unreachable",
				zap.String("addr", *redisAddr),
				zap.Error(err),
			)
		}
		repo = redisRepo
		logger.Info("using redis loan store", zap.String("addr", *redisAddr))
	} else {
		repo = store.NewMemoryRepository()
		logger.Info("using in-memory loan store")
	}

	srv := server.New(logger, repo)
	logger.Info("lendpile server starting", zap.String("addr", listenAddr))
	if err := fasthttp.ListenAndServe(listenAddr, srv.Handler()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
