package services

import (
	"context"
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
)

// fixture wires every service onto one fresh SQLite store.
type fixture struct {
	ctx        context.Context
	users      UserService
	projects   ProjectService
	plans      FloorPlanService
	rooms      RoomService
	tasks      TaskService
	checklists ChecklistService
	comments   CommentService

	taskRepo      repositories.TaskRepository
	checklistRepo repositories.ChecklistItemRepository
	commentRepo   repositories.TaskCommentRepository
	historyRepo   repositories.TaskHistoryRepository
	planRepo      repositories.FloorPlanRepository
	roomRepo      repositories.RoomRepository
	memberRepo    repositories.ProjectUserRepository
}

func newFixture(t *testing.T) *fixture {
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

	return &fixture{
		ctx:        ctx,
		users:      NewUserService(userRepo, logger),
		projects:   NewProjectService(projectRepo, memberRepo, planRepo, roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		plans:      NewFloorPlanService(planRepo, roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		rooms:      NewRoomService(roomRepo, taskRepo, checklistRepo, commentRepo, logger),
		tasks:      NewTaskService(taskRepo, roomRepo, checklistRepo, commentRepo, historyRepo, logger),
		checklists: NewChecklistService(checklistRepo, taskRepo, historyRepo, logger),
		comments:   NewCommentService(commentRepo, taskRepo, logger),

		taskRepo:      taskRepo,
		checklistRepo: checklistRepo,
		commentRepo:   commentRepo,
		historyRepo:   historyRepo,
		planRepo:      planRepo,
		roomRepo:      roomRepo,
		memberRepo:    memberRepo,
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := f.users.Create(f.ctx, CreateUserInput{Name: name})
	require.NoError(t, err)
	return user
}

func (f *fixture) project(t *testing.T, owner *models.User) *models.Project {
	t.Helper()
	project, err := f.projects.Create(f.ctx, CreateProjectInput{Name: "Site", CreatedBy: owner.ID})
	require.NoError(t, err)
	return project
}

func (f *fixture) plan(t *testing.T, projectID uuid.UUID) *models.FloorPlan {
	t.Helper()
	plan, err := f.plans.Create(f.ctx, CreateFloorPlanInput{
		ProjectID: projectID, Name: "Ground floor", ImageURL: "plans/ground.png",
		ImageWidth: 1200, ImageHeight: 800, ScalePixelsPerMeter: 40,
	})
	require.NoError(t, err)
	return plan
}

func (f *fixture) room(t *testing.T, planID uuid.UUID) *models.Room {
	t.Helper()
	room, err := f.rooms.Create(f.ctx, CreateRoomInput{FloorPlanID: planID, Name: "Kitchen", RoomType: "kitchen"})
	require.NoError(t, err)
	return room
}

func (f *fixture) task(t *testing.T, roomID uuid.UUID, creator *models.User) *models.Task {
	t.Helper()
	task, err := f.tasks.Create(f.ctx, CreateTaskInput{Title: "Tile wall", RoomID: &roomID, CreatedBy: creator.ID})
	require.NoError(t, err)
	return task
}

func TestProjectCreate_GrantsOwnerRole(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")

	project := f.project(t, owner)

	member, err := f.memberRepo.GetByProjectAndUser(f.ctx, project.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, member.Role)
}

func TestProjectMutations_ViewerDenied(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	viewer := f.user(t, "Viewer")
	project := f.project(t, owner)

	_, err := f.projects.AddMember(f.ctx, project.ID, viewer.ID, models.RoleViewer, owner.ID)
	require.NoError(t, err)

	name := "Renamed"
	_, err = f.projects.Update(f.ctx, project.ID, UpdateProjectInput{Name: &name}, viewer.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAccessDenied, apperrors.CodeOf(err))

	err = f.projects.Delete(f.ctx, project.ID, viewer.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAccessDenied, apperrors.CodeOf(err))

	// The owner still can.
	_, err = f.projects.Update(f.ctx, project.ID, UpdateProjectInput{Name: &name}, owner.ID)
	require.NoError(t, err)
}

func TestProjectMutations_NonMemberDenied(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	outsider := f.user(t, "Outsider")
	project := f.project(t, owner)

	name := "Renamed"
	_, err := f.projects.Update(f.ctx, project.ID, UpdateProjectInput{Name: &name}, outsider.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAccessDenied, apperrors.CodeOf(err))
}

func TestProjectDelete_CascadePreservesHistory(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	_, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: "Grout"})
	require.NoError(t, err)
	_, err = f.comments.Add(f.ctx, CreateCommentInput{TaskID: task.ID, UserID: owner.ID, Content: "Started"})
	require.NoError(t, err)
	_, err = f.tasks.UpdateStatus(f.ctx, task.ID, models.StatusInProgress, owner.ID)
	require.NoError(t, err)

	require.NoError(t, f.projects.Delete(f.ctx, project.ID, owner.ID))

	_, err = f.planRepo.GetByID(f.ctx, plan.ID)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = f.roomRepo.GetByID(f.ctx, room.ID)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = f.taskRepo.GetByID(f.ctx, task.ID)
	assert.True(t, apperrors.IsNotFound(err))

	items, err := f.checklistRepo.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	comments, err := f.commentRepo.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// The audit trail survives the cascade.
	history, err := f.historyRepo.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRoomDelete_CascadeStopsAtRoom(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)
	otherRoom := f.room(t, plan.ID)
	otherTask := f.task(t, otherRoom.ID, owner)

	require.NoError(t, f.rooms.Delete(f.ctx, room.ID))

	_, err := f.taskRepo.GetByID(f.ctx, task.ID)
	assert.True(t, apperrors.IsNotFound(err))

	// The sibling room and its task are untouched.
	_, err = f.roomRepo.GetByID(f.ctx, otherRoom.ID)
	require.NoError(t, err)
	_, err = f.taskRepo.GetByID(f.ctx, otherTask.ID)
	require.NoError(t, err)
}

func TestTaskStatus_DoneStampsAndClearsCompletedAt(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	done, err := f.tasks.UpdateStatus(f.ctx, task.ID, models.StatusDone, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)

	reopened, err := f.tasks.UpdateStatus(f.ctx, done.ID, models.StatusInProgress, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)
}

func TestTaskStatus_HistoryOnlyOnChange(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	_, err := f.tasks.UpdateStatus(f.ctx, task.ID, models.StatusInProgress, owner.ID)
	require.NoError(t, err)
	// Same status again: no new row.
	_, err = f.tasks.UpdateStatus(f.ctx, task.ID, models.StatusInProgress, owner.ID)
	require.NoError(t, err)
	_, err = f.tasks.UpdateStatus(f.ctx, task.ID, models.StatusDone, owner.ID)
	require.NoError(t, err)

	history, err := f.tasks.History(f.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StatusDone, history[0].NewStatus)
	assert.Equal(t, models.StatusInProgress, history[0].OldStatus)
	assert.Equal(t, "Owner", history[0].UserName)
	assert.Equal(t, models.StatusNotStarted, history[1].OldStatus)
}

func TestTaskUpdate_RejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	bogus := "paused"
	_, err := f.tasks.Update(f.ctx, task.ID, UpdateTaskInput{Status: &bogus}, owner.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}

func TestChecklistUpdate_StatusChangeTagsHistory(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	item, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: "Primer coat"})
	require.NoError(t, err)

	status := string(models.StatusDone)
	updated, err := f.checklists.UpdateItem(f.ctx, item.ID, UpdateChecklistItemInput{Status: &status}, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)

	history, err := f.tasks.History(f.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].ChecklistItemID)
	assert.Equal(t, item.ID, *history[0].ChecklistItemID)
	require.NotNil(t, history[0].ChecklistItemName)
	assert.Equal(t, "Primer coat", *history[0].ChecklistItemName)

	// Title-only edit appends nothing.
	title := "Primer coat, north wall"
	_, err = f.checklists.UpdateItem(f.ctx, item.ID, UpdateChecklistItemInput{Title: &title}, owner.ID)
	require.NoError(t, err)
	history, err = f.tasks.History(f.ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestChecklist_DenseOrderingAcrossOperations(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	var ids []uuid.UUID
	for _, title := range []string{"a", "b", "c", "d"} {
		item, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: title})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	assertDense := func() []*models.ChecklistItem {
		items, err := f.checklists.ListByTask(f.ctx, task.ID)
		require.NoError(t, err)
		for i, item := range items {
			require.Equal(t, i, item.OrderIndex)
		}
		return items
	}
	assertDense()

	// Move "d" to the front.
	require.NoError(t, f.checklists.MoveItem(f.ctx, ids[3], 0))
	items := assertDense()
	assert.Equal(t, "d", items[0].Title)
	assert.Equal(t, "a", items[1].Title)

	// Delete from the middle; survivors compact.
	require.NoError(t, f.checklists.DeleteItem(f.ctx, ids[1]))
	items = assertDense()
	require.Len(t, items, 3)
	assert.Equal(t, "d", items[0].Title)
	assert.Equal(t, "a", items[1].Title)
	assert.Equal(t, "c", items[2].Title)

	// Move with an out-of-range index clamps to the end.
	require.NoError(t, f.checklists.MoveItem(f.ctx, ids[3], 99))
	items = assertDense()
	assert.Equal(t, "d", items[2].Title)
}

func TestChecklistAdd_ExplicitIndexStaysDense(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	_, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: "a"})
	require.NoError(t, err)

	// An index past the end clamps to the last position instead of leaving a
	// gap.
	five := 5
	b, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: "b", OrderIndex: &five})
	require.NoError(t, err)
	assert.Equal(t, 1, b.OrderIndex)

	// Inserting at the front shifts the others instead of duplicating index 0.
	zero := 0
	c, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: "c", OrderIndex: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, c.OrderIndex)

	items, err := f.checklists.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, i, item.OrderIndex)
	}
	assert.Equal(t, "c", items[0].Title)
	assert.Equal(t, "a", items[1].Title)
	assert.Equal(t, "b", items[2].Title)

	minusOne := -1
	_, err = f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: "d", OrderIndex: &minusOne})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}

func TestChecklistReorder_RejectsPartialSet(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	first, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: "one"})
	require.NoError(t, err)
	_, err = f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: "two"})
	require.NoError(t, err)

	err = f.checklists.Reorder(f.ctx, task.ID, []uuid.UUID{first.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	err = f.checklists.Reorder(f.ctx, task.ID, []uuid.UUID{first.ID, uuid.New()})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}

func TestTaskProgress_ChecklistRatio(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)
	task := f.task(t, room.ID, owner)

	// No checklist yet: defined as zero.
	progress, err := f.tasks.Progress(f.ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskProgress{}, progress)

	var items []*models.ChecklistItem
	for _, title := range []string{"one", "two", "three"} {
		item, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: task.ID, Title: title})
		require.NoError(t, err)
		items = append(items, item)
	}
	status := string(models.StatusDone)
	_, err = f.checklists.UpdateItem(f.ctx, items[0].ID, UpdateChecklistItemInput{Status: &status}, owner.ID)
	require.NoError(t, err)

	progress, err = f.tasks.Progress(f.ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Completed)
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 33, progress.Percentage)
}

func TestRoomStats_DoneOverTotal(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)

	first := f.task(t, room.ID, owner)
	f.task(t, room.ID, owner)
	_, err := f.tasks.UpdateStatus(f.ctx, first.ID, models.StatusDone, owner.ID)
	require.NoError(t, err)

	stats, err := f.rooms.GetWithStats(f.ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TaskCount)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 50, stats.ProgressPercentage)
}

func TestFloorPlanStats_CountsRoomsAndTasks(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	roomA := f.room(t, plan.ID)
	roomB := f.room(t, plan.ID)

	done := f.task(t, roomA.ID, owner)
	f.task(t, roomA.ID, owner)
	f.task(t, roomB.ID, owner)
	_, err := f.tasks.UpdateStatus(f.ctx, done.ID, models.StatusDone, owner.ID)
	require.NoError(t, err)

	stats, err := f.plans.ListByProjectWithStats(f.ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].RoomCount)
	assert.Equal(t, 3, stats[0].TaskCount)
	assert.Equal(t, 1, stats[0].CompletedTasks)
}

func TestProjectStats_MeanOfTaskPercentages(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)
	plan := f.plan(t, project.ID)
	room := f.room(t, plan.ID)

	// Task one: checklist fully done (100%). Task two: no checklist (0%).
	taskOne := f.task(t, room.ID, owner)
	f.task(t, room.ID, owner)
	item, err := f.checklists.AddItem(f.ctx, CreateChecklistItemInput{TaskID: taskOne.ID, Title: "only step"})
	require.NoError(t, err)
	status := string(models.StatusDone)
	_, err = f.checklists.UpdateItem(f.ctx, item.ID, UpdateChecklistItemInput{Status: &status}, owner.ID)
	require.NoError(t, err)

	stats, err := f.projects.GetWithStats(f.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TaskCount)
	assert.Equal(t, 50, stats.Progress)
	assert.GreaterOrEqual(t, stats.Progress, 0)
	assert.LessOrEqual(t, stats.Progress, 100)
}

func TestProjectStats_EmptyProjectIsZero(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)

	stats, err := f.projects.GetWithStats(f.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TaskCount)
	assert.Equal(t, 0, stats.Progress)
}

func TestFloorPlan_RejectsNonPositiveDimensions(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Owner")
	project := f.project(t, owner)

	_, err := f.plans.Create(f.ctx, CreateFloorPlanInput{
		ProjectID: project.ID, Name: "Basement", ImageURL: "plans/basement.png",
		ImageWidth: 0, ImageHeight: 800, ScalePixelsPerMeter: 40,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	plan := f.plan(t, project.ID)

	badWidth := -10
	_, err = f.plans.Update(f.ctx, plan.ID, UpdateFloorPlanInput{ImageWidth: &badWidth})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	badScale := 0.0
	_, err = f.plans.Update(f.ctx, plan.ID, UpdateFloorPlanInput{ScalePixelsPerMeter: &badScale})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	// Nothing bad was persisted.
	stored, err := f.plans.Get(f.ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200, stored.ImageWidth)
	assert.Equal(t, 40.0, stored.ScalePixelsPerMeter)
}

func TestUserService_GetOrCreateByName(t *testing.T) {
	f := newFixture(t)

	first, err := f.users.GetOrCreateByName(f.ctx, "Jane Doe")
	require.NoError(t, err)
	second, err := f.users.GetOrCreateByName(f.ctx, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := f.users.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserService_GetOrCreateByName_PropagatesStoreErrors(t *testing.T) {
	f := newFixture(t)

	scope, ok := database.GetScope(f.ctx)
	require.True(t, ok)
	_, err := scope.DB.Exec(`DROP TABLE users`)
	require.NoError(t, err)

	// A broken store must surface the lookup failure, not fall through to a
	// create attempt.
	_, err = f.users.GetOrCreateByName(f.ctx, "Jane Doe")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to get user by name")
}

func TestCreateInputs_Validated(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Create(f.ctx, CreateUserInput{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	_, err = f.projects.Create(f.ctx, CreateProjectInput{Name: "No creator"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	owner := f.user(t, "Owner")
	_, err = f.projects.Create(f.ctx, CreateProjectInput{Name: "Bad status", Status: "archived", CreatedBy: owner.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	_, err = f.rooms.Create(f.ctx, CreateRoomInput{FloorPlanID: uuid.New(), Name: "Attic", RoomType: "garage"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}
