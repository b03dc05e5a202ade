package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/config"
	"github.com/sitedesk/sitedesk-engine/pkg/database"
	"github.com/sitedesk/sitedesk-engine/pkg/facade"
	"github.com/sitedesk/sitedesk-engine/pkg/handlers"
	"github.com/sitedesk/sitedesk-engine/pkg/logging"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
	"github.com/sitedesk/sitedesk-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dataDir, err := cfg.EnsureDataDir()
	if err != nil {
		logger.Fatal("Failed to prepare data directory", zap.Error(err))
	}

	manager := database.NewManager(dataDir, logger)

	userRepo := repositories.NewUserRepository()
	projectRepo := repositories.NewProjectRepository()
	memberRepo := repositories.NewProjectUserRepository()
	planRepo := repositories.NewFloorPlanRepository()
	roomRepo := repositories.NewRoomRepository()
	taskRepo := repositories.NewTaskRepository()
	checklistRepo := repositories.NewChecklistItemRepository()
	commentRepo := repositories.NewTaskCommentRepository()
	historyRepo := repositories.NewTaskHistoryRepository()

	svc := facade.Services{
		Users:      services.NewUserService(userRepo, logger),
		Projects:   services.NewProjectService(projectRepo, memberRepo, planRepo, roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		FloorPlans: services.NewFloorPlanService(planRepo, roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		Rooms:      services.NewRoomService(roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		Tasks:      services.NewTaskService(taskRepo, roomRepo, checklistRepo, commentRepo, historyRepo, logger),
		Checklists: services.NewChecklistService(checklistRepo, taskRepo, historyRepo, logger),
		Comments:   services.NewCommentService(commentRepo, taskRepo, logger),
	}

	var data *facade.Facade
	if cfg.Remote.Enabled {
		data = facade.NewRemote(svc, facade.NewRemoteClient(cfg.Remote.BaseURL, logger), logger)
		logger.Info("Remote mode enabled", zap.String("base_url", cfg.Remote.BaseURL))
	} else {
		data = facade.New(svc, logger)
	}

	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler: handlers.NewRouter(cfg, manager, data, logger),
	}

	go func() {
		logger.Info("Starting sitedesk-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version),
			zap.String("data_dir", dataDir),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("Server shutdown failed", zap.Error(err))
	}
	// Closing the manager is the logout guarantee: the active user's store is
	// released before the process exits.
	if err := manager.Close(); err != nil {
		logger.Warn("Failed to close database manager", zap.Error(err))
	}
}
