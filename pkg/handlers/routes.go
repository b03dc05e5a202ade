package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/config"
	"github.com/sitedesk/sitedesk-engine/pkg/database"
	"github.com/sitedesk/sitedesk-engine/pkg/facade"
	"github.com/sitedesk/sitedesk-engine/pkg/middleware"
)

// NewRouter assembles the full HTTP surface. Session and health routes live
// outside the scope middleware; every data route requires an active user
// session.
func NewRouter(cfg *config.Config, manager *database.Manager, data *facade.Facade, logger *zap.Logger) http.Handler {
	root := http.NewServeMux()
	NewHealthHandler(cfg, logger).RegisterRoutes(root)
	NewSessionHandler(manager, data, logger).RegisterRoutes(root)

	api := http.NewServeMux()
	NewUserHandler(data, logger).RegisterRoutes(api)
	NewProjectHandler(data, logger).RegisterRoutes(api)
	NewFloorPlanHandler(data, logger).RegisterRoutes(api)
	NewRoomHandler(data, logger).RegisterRoutes(api)
	NewTaskHandler(data, logger).RegisterRoutes(api)

	scoped := middleware.RequireScope(manager)(api)
	root.Handle("/api/users", scoped)
	root.Handle("/api/users/", scoped)
	root.Handle("/api/projects", scoped)
	root.Handle("/api/projects/", scoped)
	root.Handle("/api/floorplans", scoped)
	root.Handle("/api/floorplans/", scoped)
	root.Handle("/api/rooms", scoped)
	root.Handle("/api/rooms/", scoped)
	root.Handle("/api/tasks", scoped)
	root.Handle("/api/tasks/", scoped)
	root.Handle("/api/checklist-items", scoped)
	root.Handle("/api/checklist-items/", scoped)
	root.Handle("/api/comments", scoped)
	root.Handle("/api/comments/", scoped)

	return middleware.RequestLogger(logger)(root)
}
