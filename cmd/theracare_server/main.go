package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"theracare_server/internal/config"
	dao "theracare_server/internal/dao/mysql"
	myredis "theracare_server/internal/dao/redis"
	"theracare_server/internal/gateway/websocket"
	"theracare_server/internal/handler"
	"theracare_server/internal/httpserver"
	"theracare_server/internal/infrastructure/llm"
	"theracare_server/internal/infrastructure/logger"
	"theracare_server/internal/infrastructure/mq"
	"theracare_server/internal/infrastructure/sms"
	"theracare_server/internal/service"
	"theracare_server/pkg/util/jwt"
	"theracare_server/pkg/util/snowflake"
)

func main() {
	conf := config.GetConfig()

	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger ready")

	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("validator translator init failed", zap.Error(err))
	}

	repos := dao.Init()
	zap.L().Info("database ready")

	myredis.Init()
	cacheService := myredis.GetCacheService()
	zap.L().Info("redis ready")

	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	reminderSender, err := sms.Init(cacheService)
	if err != nil {
		zap.L().Fatal("sms init failed", zap.Error(err))
	}

	broker := mq.NewBroker(&conf.KafkaConfig)
	gateway := websocket.NewGateway(broker)

	llmClient := llm.NewOpenAIClient(&conf.OpenAIConfig)

	service.InitServices(repos, cacheService, broker, llmClient, reminderSender)
	zap.L().Info("services ready")

	handlers := handler.NewHandlers(service.Svc, gateway)
	engine := httpserver.Init(handlers)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		zap.L().Info("listening", zap.String("addr", addr))
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	gateway.Close()
	if err := broker.Close(); err != nil {
		zap.L().Warn("broker close failed", zap.Error(err))
	}
	zap.L().Info("bye")
}
