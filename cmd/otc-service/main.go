package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/LavaJover/shvark-otc-service/internal/client"
	"github.com/LavaJover/shvark-otc-service/internal/config"
	"github.com/LavaJover/shvark-otc-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/arbitration"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/deal"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/merchant"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/order"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.OTCDB.MigrationPath != "" {
		if err := migrate.Run(db, cfg.OTCDB.MigrationPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		logger.Info("migrations applied", "path", cfg.OTCDB.MigrationPath)
	}
	store := repository.NewSQLStore(db)

	// Trading parameters
	tradingProvider, err := config.NewStaticTradingProvider(cfg.Trading)
	if err != nil {
		log.Fatalf("failed to build trading config: %v", err)
	}

	// Kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewKafkaPublisher(brokers, logger)
	defer publisher.Close()

	// Collaborator clients
	transferClient, err := client.NewHTTPTransferClient(fmt.Sprintf("http://%s:%s", cfg.BankService.Host, cfg.BankService.Port))
	if err != nil {
		log.Fatalf("failed to init transfer client: %v", err)
	}
	settleClient := client.NewHTTPSettleClient(fmt.Sprintf("http://%s:%s", cfg.SettleService.Host, cfg.SettleService.Port))
	authClient := client.NewHTTPAuthClient(fmt.Sprintf("http://%s:%s", cfg.AuthService.Host, cfg.AuthService.Port))

	// Metrics
	otcMetrics := metrics.NewOTCMetrics()

	// Usecases
	orderUsecase := order.NewDefaultOrderUsecase(store, tradingProvider, publisher, otcMetrics)
	dealUsecase := deal.NewDefaultDealUsecase(store, tradingProvider, publisher, transferClient, settleClient, otcMetrics)
	arbitrationUsecase := arbitration.NewDefaultArbitrationUsecase(store, tradingProvider, publisher, transferClient, otcMetrics)
	merchantUsecase := merchant.NewDefaultMerchantUsecase(store, tradingProvider, publisher, transferClient, otcMetrics)

	// HTTP delivery
	router := handlers.NewRouter(
		handlers.NewOrderHandler(orderUsecase),
		handlers.NewDealHandler(dealUsecase),
		handlers.NewArbitrationHandler(arbitrationUsecase),
		handlers.NewMerchantHandler(merchantUsecase),
		authClient,
		logger,
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	logger.Info("starting otc service", "addr", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}
