package main

import (
	"log"

	"github.com/craftandcart/storefront/cmd/server"
	"github.com/craftandcart/storefront/internal/auth"
	"github.com/craftandcart/storefront/internal/config"
	"github.com/craftandcart/storefront/internal/features/payment"
	"github.com/craftandcart/storefront/internal/logger"
	"github.com/craftandcart/storefront/internal/storage"
	"go.uber.org/zap"
)

var (
	srvAddr                 = config.Env.ServerAddr
	postgresConnStr         = config.Env.PostgresConnStr
	redisAddr               = config.Env.RedisAddr
	accessTokenSecret       = config.Env.AccessTokenSecret
	accessTokenExpiryInSecs = config.Env.AccessTokenExpiryInSecs
)

func main() {
	zapLogger, err := logger.New(config.Env.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer zapLogger.Sync()

	db, err := storage.NewPostgresDB(postgresConnStr)
	if err != nil {
		zapLogger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	rdb := storage.NewRedisClient(redisAddr)

	srv := server.NewServer(&server.ServerConfig{
		Addr:  srvAddr,
		DB:    db,
		Redis: rdb,
		TokenManager: auth.NewTokenService(
			accessTokenSecret,
			accessTokenExpiryInSecs,
		),
		Gateway: payment.NewBraintreeGateway(config.Env.Braintree),
		Logger:  zapLogger,
	})

	if err := srv.Run(); err != nil {
		zapLogger.Fatal("server exited with error", zap.Error(err))
	}
}
