package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/database"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
)

// newTestContext opens a fresh on-disk SQLite store and returns a context
// scoped to it. The store is in-process, so repository tests run against the
// real thing.
func newTestContext(t *testing.T) context.Context {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.SetScope(context.Background(), &database.Scope{DB: db.DB, UserID: "test"})
}

func createTestUser(t *testing.T, ctx context.Context, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name}
	require.NoError(t, NewUserRepository().Create(ctx, user))
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewUserRepository()

	user := createTestUser(t, ctx, "Jane Doe")
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)

	byName, err := repo.GetByName(ctx, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserRepository_DuplicateName(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewUserRepository()

	createTestUser(t, ctx, "Jane Doe")
	err := repo.Create(ctx, &models.User{Name: "Jane Doe"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyExists, apperrors.CodeOf(err))
}

func TestUserRepository_GetMissing(t *testing.T) {
	ctx := newTestContext(t)

	_, err := NewUserRepository().GetByID(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUserNotFound, apperrors.CodeOf(err))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRepositories_RequireScope(t *testing.T) {
	// No scope in context: every repository refuses to run.
	ctx := context.Background()

	_, err := NewUserRepository().List(ctx)
	assert.Error(t, err)
	_, err = NewTaskRepository().List(ctx)
	assert.Error(t, err)
	err = NewProjectRepository().Delete(ctx, uuid.New())
	assert.Error(t, err)
}

func TestProjectRepository_ListByUser(t *testing.T) {
	ctx := newTestContext(t)
	projectRepo := NewProjectRepository()
	memberRepo := NewProjectUserRepository()
	owner := createTestUser(t, ctx, "Owner")
	outsider := createTestUser(t, ctx, "Outsider")

	project := &models.Project{Name: "Renovation", CreatedBy: owner.ID}
	require.NoError(t, projectRepo.Create(ctx, project))
	assert.Equal(t, models.ProjectPlanning, project.Status)

	require.NoError(t, memberRepo.Create(ctx, &models.ProjectUser{
		ProjectID: project.ID, UserID: owner.ID, Role: models.RoleOwner,
	}))

	mine, err := projectRepo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, project.ID, mine[0].ID)

	theirs, err := projectRepo.ListByUser(ctx, outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestProjectUserRepository_UniquePair(t *testing.T) {
	ctx := newTestContext(t)
	memberRepo := NewProjectUserRepository()
	user := createTestUser(t, ctx, "Member")
	projectID := uuid.New()

	require.NoError(t, memberRepo.Create(ctx, &models.ProjectUser{
		ProjectID: projectID, UserID: user.ID, Role: models.RoleMember,
	}))

	err := memberRepo.Create(ctx, &models.ProjectUser{
		ProjectID: projectID, UserID: user.ID, Role: models.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyExists, apperrors.CodeOf(err))
}

func TestTaskRepository_RoundTripWithOptionals(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewTaskRepository()
	creator := createTestUser(t, ctx, "Creator")
	assignee := createTestUser(t, ctx, "Assignee")
	roomID := uuid.New()

	task := &models.Task{
		Title:       "Install outlets",
		RoomID:      &roomID,
		PositionLat: 120.5,
		PositionLng: 340.25,
		CreatedBy:   creator.ID,
		AssignedTo:  &assignee.ID,
	}
	require.NoError(t, repo.Create(ctx, task))
	assert.Equal(t, models.StatusNotStarted, task.Status)

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RoomID)
	assert.Equal(t, roomID, *got.RoomID)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, assignee.ID, *got.AssignedTo)
	assert.Nil(t, got.CompletedAt)
	assert.InDelta(t, 120.5, got.PositionLat, 1e-9)

	// Optional fields can be cleared and set.
	now := time.Now()
	got.RoomID = nil
	got.Status = models.StatusDone
	got.CompletedAt = &now
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RoomID)
	require.NotNil(t, got.CompletedAt)
	assert.WithinDuration(t, now, *got.CompletedAt, time.Second)
}

func TestTaskRepository_ListByRoomNewestFirst(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewTaskRepository()
	creator := createTestUser(t, ctx, "Creator")
	roomID := uuid.New()

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &models.Task{
			Title: title, RoomID: &roomID, CreatedBy: creator.ID,
		}))
		time.Sleep(5 * time.Millisecond)
	}

	tasks, err := repo.ListByRoom(ctx, roomID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "first", tasks[2].Title)
}

func TestTaskRepository_UpdateMissing(t *testing.T) {
	ctx := newTestContext(t)

	err := NewTaskRepository().Update(ctx, &models.Task{ID: uuid.New(), Title: "ghost"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTaskNotFound, apperrors.CodeOf(err))
}

func TestChecklistItemRepository_AppendsOrderIndex(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewChecklistItemRepository()
	taskID := uuid.New()

	for i := 0; i < 3; i++ {
		item := &models.ChecklistItem{TaskID: taskID, Title: "step", OrderIndex: -1}
		require.NoError(t, repo.Create(ctx, item))
		assert.Equal(t, i, item.OrderIndex)
	}

	items, err := repo.ListByTask(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, i, item.OrderIndex)
	}
}

func TestChecklistItemRepository_SetOrderIndexes(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewChecklistItemRepository()
	taskID := uuid.New()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		item := &models.ChecklistItem{TaskID: taskID, Title: "step", OrderIndex: -1}
		require.NoError(t, repo.Create(ctx, item))
		ids = append(ids, item.ID)
	}

	// Reverse the ranking.
	require.NoError(t, repo.SetOrderIndexes(ctx, taskID, []uuid.UUID{ids[2], ids[1], ids[0]}))

	items, err := repo.ListByTask(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ids[2], items[0].ID)
	assert.Equal(t, ids[0], items[2].ID)
}

func TestChecklistItemRepository_SetOrderIndexesUnknownID(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewChecklistItemRepository()
	taskID := uuid.New()

	item := &models.ChecklistItem{TaskID: taskID, Title: "step", OrderIndex: -1}
	require.NoError(t, repo.Create(ctx, item))

	err := repo.SetOrderIndexes(ctx, taskID, []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeChecklistItemNotFound, apperrors.CodeOf(err))

	// The failed transaction must not have disturbed the existing ranking.
	items, err := repo.ListByTask(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].OrderIndex)
}

func TestTaskHistoryRepository_AppendAndJoinNames(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewTaskHistoryRepository()
	user := createTestUser(t, ctx, "Jane Doe")
	taskID := uuid.New()

	require.NoError(t, repo.Append(ctx, &models.TaskHistory{
		TaskID:    taskID,
		UserID:    user.ID,
		OldStatus: models.StatusNotStarted,
		NewStatus: models.StatusInProgress,
	}))

	itemID := uuid.New()
	itemName := "Check wiring"
	require.NoError(t, repo.Append(ctx, &models.TaskHistory{
		TaskID:            taskID,
		UserID:            user.ID,
		OldStatus:         models.StatusInProgress,
		NewStatus:         models.StatusDone,
		ChecklistItemID:   &itemID,
		ChecklistItemName: &itemName,
	}))

	entries, err := repo.ListByTaskWithNames(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, models.StatusDone, entries[0].NewStatus)
	require.NotNil(t, entries[0].ChecklistItemName)
	assert.Equal(t, "Check wiring", *entries[0].ChecklistItemName)
	assert.Equal(t, "Jane Doe", entries[0].UserName)
	assert.Nil(t, entries[1].ChecklistItemID)
}
