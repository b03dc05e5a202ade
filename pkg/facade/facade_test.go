package facade

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/database"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
	"github.com/sitedesk/sitedesk-engine/pkg/services"
)

func newOfflineFacade(t *testing.T) (*Facade, context.Context) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := database.SetScope(context.Background(), &database.Scope{DB: db.DB, UserID: "test"})

	logger := zap.NewNop()
	userRepo := repositories.NewUserRepository()
	projectRepo := repositories.NewProjectRepository()
	memberRepo := repositories.NewProjectUserRepository()
	planRepo := repositories.NewFloorPlanRepository()
	roomRepo := repositories.NewRoomRepository()
	taskRepo := repositories.NewTaskRepository()
	checklistRepo := repositories.NewChecklistItemRepository()
	commentRepo := repositories.NewTaskCommentRepository()
	historyRepo := repositories.NewTaskHistoryRepository()

	svc := Services{
		Users:      services.NewUserService(userRepo, logger),
		Projects:   services.NewProjectService(projectRepo, memberRepo, planRepo, roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		FloorPlans: services.NewFloorPlanService(planRepo, roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		Rooms:      services.NewRoomService(roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		Tasks:      services.NewTaskService(taskRepo, roomRepo, checklistRepo, commentRepo, historyRepo, logger),
		Checklists: services.NewChecklistService(checklistRepo, taskRepo, historyRepo, logger),
		Comments:   services.NewCommentService(commentRepo, taskRepo, logger),
	}
	return New(svc, logger), ctx
}

func TestOfflineFacade_RoundTrip(t *testing.T) {
	f, ctx := newOfflineFacade(t)

	user, err := f.CreateUser(ctx, services.CreateUserInput{Name: "Jane Doe"})
	require.NoError(t, err)

	project, err := f.CreateProject(ctx, services.CreateProjectInput{Name: "Renovation", CreatedBy: user.ID})
	require.NoError(t, err)

	projects, err := f.FetchProjectsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, project.ID, projects[0].ID)

	members, err := f.FetchProjectMembers(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleOwner, members[0].Role)
}

func TestOfflineFacade_ErrorsAreTyped(t *testing.T) {
	f, ctx := newOfflineFacade(t)

	_, err := f.FetchProject(ctx, uuid.New())
	require.Error(t, err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeProjectNotFound, appErr.Code)

	// A missing scope surfaces as a database error, not a panic or a raw
	// error string.
	_, err = f.FetchUsers(context.Background())
	require.Error(t, err)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
}

func TestOfflineFacade_EnsureUser(t *testing.T) {
	f, ctx := newOfflineFacade(t)

	first, err := f.EnsureUser(ctx, "Jane Doe")
	require.NoError(t, err)
	second, err := f.EnsureUser(ctx, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestRemoteFacade_EnsureUserCreatesOnMiss(t *testing.T) {
	created := &models.User{ID: uuid.New(), Name: "Jane Doe"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/api/users/by-name/Jane Doe", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    string(apperrors.CodeUserNotFound),
				"message": "user not found",
			})
		case http.MethodPost:
			assert.Equal(t, "/api/users", r.URL.Path)
			require.NoError(t, json.NewEncoder(w).Encode(created))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	logger := zap.NewNop()
	f := NewRemote(Services{}, NewRemoteClient(server.URL, logger), logger)

	user, err := f.EnsureUser(context.Background(), "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRemoteFacade_RoutesToAPI(t *testing.T) {
	want := &models.Project{ID: uuid.New(), Name: "Hosted"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects/"+want.ID.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(want))
	}))
	defer server.Close()

	logger := zap.NewNop()
	f := NewRemote(Services{}, NewRemoteClient(server.URL, logger), logger)

	got, err := f.FetchProject(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, "Hosted", got.Name)
}

func TestRemoteFacade_DecodesErrorShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    string(apperrors.CodeTaskNotFound),
			"message": "task not found",
		})
	}))
	defer server.Close()

	logger := zap.NewNop()
	f := NewRemote(Services{}, NewRemoteClient(server.URL, logger), logger)

	_, err := f.FetchTask(context.Background(), uuid.New())
	require.Error(t, err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeTaskNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestRemoteFacade_GarbledErrorBecomesDatabaseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	logger := zap.NewNop()
	f := NewRemote(Services{}, NewRemoteClient(server.URL, logger), logger)

	_, err := f.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.CodeOf(err))
}
