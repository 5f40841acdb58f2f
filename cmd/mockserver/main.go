package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/langchou/parkpic/internal/mockapi"
	"github.com/langchou/parkpic/internal/models"
)

func main() {
	addr := flag.String("addr", ":4000", "listen address")
	seed := flag.Bool("seed", true, "seed demo data")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	logger := initLogger(*debug)
	defer logger.Sync()

	srv := mockapi.NewServer(logger)
	if *seed {
		seedDemo(srv)
		logger.Info("Demo data seeded",
			zap.String("identifier", "pic@example.com"),
			zap.String("password", "password123"))
	}

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("Mock backend listening", zap.String("addr", *addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

// seedDemo 注入一套演示数据：一个 PIC 用户、一条待处理请求、两辆车、一个待取车预订
func seedDemo(srv *mockapi.Server) {
	srv.SeedUser(models.User{
		ID:     "1",
		Name:   "Demo PIC",
		Email:  "pic@example.com",
		Number: "9000000001",
		Role:   "pic",
	}, "pic@example.com", "password123")

	srv.SeedParkingLot(models.ParkingLot{
		ID:   1,
		Name: "Demo Parking",
		City: "Pune",
	})

	srv.SeedRequest(models.CarRequest{
		ID:        11,
		CarName:   "Maruti Swift",
		CarNumber: "MH12AB1234",
		VendorID:  2,
		ParkingID: 1,
		Status:    models.RequestStatusParkingAssigned,
	})

	srv.SeedCar(models.Car{
		ID:        21,
		Name:      "Hyundai i20",
		Number:    "MH12CD5678",
		ParkingID: 1,
		Status:    models.CarStatusAvailable,
	})
	srv.SeedCar(models.Car{
		ID:        22,
		Name:      "Tata Nexon",
		Number:    "MH12EF9012",
		ParkingID: 1,
		Status:    models.CarStatusUnavailable,
	})

	srv.SeedBooking(models.Booking{
		ID:     31,
		CarID:  21,
		Status: "PENDING_PICKUP",
	}, "4321")
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, _ := config.Build()
	return logger
}
