// Package facade is the single data-access surface consumed by the UI layer.
// One method per logical operation; offline mode routes to the local
// services, remote mode to the hosted API. Callers never branch on mode, and
// every error leaves the facade as an *apperrors.Error.
package facade

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/services"
)

// Services bundles the local service implementations the facade routes to in
// offline mode.
type Services struct {
	Users      services.UserService
	Projects   services.ProjectService
	FloorPlans services.FloorPlanService
	Rooms      services.RoomService
	Tasks      services.TaskService
	Checklists services.ChecklistService
	Comments   services.CommentService
}

// Facade routes data operations to the local services or the remote API.
type Facade struct {
	svc    Services
	remote *RemoteClient
	logger *zap.Logger
}

// New creates an offline facade.
func New(svc Services, logger *zap.Logger) *Facade {
	return &Facade{svc: svc, logger: logger}
}

// NewRemote creates a facade routing every operation to the hosted API.
func NewRemote(svc Services, client *RemoteClient, logger *zap.Logger) *Facade {
	return &Facade{svc: svc, remote: client, logger: logger}
}

// normalize funnels every offline result through the uniform error shape.
func normalize[T any](value T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, apperrors.From(err)
	}
	return value, nil
}

func normalizeErr(err error) error {
	if err != nil {
		return apperrors.From(err)
	}
	return nil
}

// --- Users ---

func (f *Facade) CreateUser(ctx context.Context, input services.CreateUserInput) (*models.User, error) {
	if f.remote != nil {
		return remoteSend[*models.User](ctx, f.remote, http.MethodPost, "/api/users", input)
	}
	return normalize(f.svc.Users.Create(ctx, input))
}

func (f *Facade) FetchUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.remote != nil {
		return remoteGet[*models.User](ctx, f.remote, "/api/users/"+id.String())
	}
	return normalize(f.svc.Users.Get(ctx, id))
}

func (f *Facade) FetchUserByName(ctx context.Context, name string) (*models.User, error) {
	if f.remote != nil {
		return remoteGet[*models.User](ctx, f.remote, "/api/users/by-name/"+name)
	}
	return normalize(f.svc.Users.GetByName(ctx, name))
}

// EnsureUser returns the user with the given display name, creating it on
// first use. Session switches call this so a fresh store always has its owner
// row.
func (f *Facade) EnsureUser(ctx context.Context, name string) (*models.User, error) {
	if f.remote != nil {
		user, err := remoteGet[*models.User](ctx, f.remote, "/api/users/by-name/"+name)
		if err == nil {
			return user, nil
		}
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		return remoteSend[*models.User](ctx, f.remote, http.MethodPost, "/api/users",
			services.CreateUserInput{Name: name})
	}
	return normalize(f.svc.Users.GetOrCreateByName(ctx, name))
}

func (f *Facade) FetchUsers(ctx context.Context) ([]*models.User, error) {
	if f.remote != nil {
		return remoteGet[[]*models.User](ctx, f.remote, "/api/users")
	}
	return normalize(f.svc.Users.List(ctx))
}

func (f *Facade) RenameUser(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	if f.remote != nil {
		return remoteSend[*models.User](ctx, f.remote, http.MethodPut, "/api/users/"+id.String(),
			services.CreateUserInput{Name: name})
	}
	return normalize(f.svc.Users.Rename(ctx, id, name))
}

func (f *Facade) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if f.remote != nil {
		return remoteDelete(ctx, f.remote, "/api/users/"+id.String())
	}
	return normalizeErr(f.svc.Users.Delete(ctx, id))
}

// --- Projects ---

func (f *Facade) CreateProject(ctx context.Context, input services.CreateProjectInput) (*models.Project, error) {
	if f.remote != nil {
		return remoteSend[*models.Project](ctx, f.remote, http.MethodPost, "/api/projects", input)
	}
	return normalize(f.svc.Projects.Create(ctx, input))
}

func (f *Facade) FetchProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if f.remote != nil {
		return remoteGet[*models.Project](ctx, f.remote, "/api/projects/"+id.String())
	}
	return normalize(f.svc.Projects.Get(ctx, id))
}

func (f *Facade) FetchProjectsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	if f.remote != nil {
		return remoteGet[[]*models.Project](ctx, f.remote, "/api/users/"+userID.String()+"/projects")
	}
	return normalize(f.svc.Projects.ListByUser(ctx, userID))
}

func (f *Facade) FetchProjectsByUserWithStats(ctx context.Context, userID uuid.UUID) ([]*models.ProjectWithStats, error) {
	if f.remote != nil {
		return remoteGet[[]*models.ProjectWithStats](ctx, f.remote, "/api/users/"+userID.String()+"/projects/stats")
	}
	return normalize(f.svc.Projects.ListByUserWithStats(ctx, userID))
}

func (f *Facade) FetchProjectWithStats(ctx context.Context, id uuid.UUID) (*models.ProjectWithStats, error) {
	if f.remote != nil {
		return remoteGet[*models.ProjectWithStats](ctx, f.remote, "/api/projects/"+id.String()+"/stats")
	}
	return normalize(f.svc.Projects.GetWithStats(ctx, id))
}

func (f *Facade) UpdateProject(ctx context.Context, id uuid.UUID, input services.UpdateProjectInput, callerID uuid.UUID) (*models.Project, error) {
	if f.remote != nil {
		return remoteSend[*models.Project](ctx, f.remote, http.MethodPut, "/api/projects/"+id.String(), input)
	}
	return normalize(f.svc.Projects.Update(ctx, id, input, callerID))
}

func (f *Facade) DeleteProject(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	if f.remote != nil {
		return remoteDelete(ctx, f.remote, "/api/projects/"+id.String())
	}
	return normalizeErr(f.svc.Projects.Delete(ctx, id, callerID))
}

func (f *Facade) AddProjectMember(ctx context.Context, projectID, userID uuid.UUID, role models.Role, callerID uuid.UUID) (*models.ProjectUser, error) {
	if f.remote != nil {
		return remoteSend[*models.ProjectUser](ctx, f.remote, http.MethodPost,
			"/api/projects/"+projectID.String()+"/members",
			map[string]string{"user_id": userID.String(), "role": string(role)})
	}
	return normalize(f.svc.Projects.AddMember(ctx, projectID, userID, role, callerID))
}

func (f *Facade) UpdateProjectMemberRole(ctx context.Context, projectID, userID uuid.UUID, role models.Role, callerID uuid.UUID) error {
	if f.remote != nil {
		_, err := remoteSend[*models.ProjectUser](ctx, f.remote, http.MethodPut,
			"/api/projects/"+projectID.String()+"/members/"+userID.String(),
			map[string]string{"role": string(role)})
		return err
	}
	return normalizeErr(f.svc.Projects.UpdateMemberRole(ctx, projectID, userID, role, callerID))
}

func (f *Facade) RemoveProjectMember(ctx context.Context, projectID, userID uuid.UUID, callerID uuid.UUID) error {
	if f.remote != nil {
		return remoteDelete(ctx, f.remote, "/api/projects/"+projectID.String()+"/members/"+userID.String())
	}
	return normalizeErr(f.svc.Projects.RemoveMember(ctx, projectID, userID, callerID))
}

func (f *Facade) FetchProjectMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectUser, error) {
	if f.remote != nil {
		return remoteGet[[]*models.ProjectUser](ctx, f.remote, "/api/projects/"+projectID.String()+"/members")
	}
	return normalize(f.svc.Projects.ListMembers(ctx, projectID))
}

// --- Floor plans ---

func (f *Facade) CreateFloorPlan(ctx context.Context, input services.CreateFloorPlanInput) (*models.FloorPlan, error) {
	if f.remote != nil {
		return remoteSend[*models.FloorPlan](ctx, f.remote, http.MethodPost, "/api/floorplans", input)
	}
	return normalize(f.svc.FloorPlans.Create(ctx, input))
}

func (f *Facade) FetchFloorPlan(ctx context.Context, id uuid.UUID) (*models.FloorPlan, error) {
	if f.remote != nil {
		return remoteGet[*models.FloorPlan](ctx, f.remote, "/api/floorplans/"+id.String())
	}
	return normalize(f.svc.FloorPlans.Get(ctx, id))
}

func (f *Facade) FetchFloorPlansByProject(ctx context.Context, projectID uuid.UUID) ([]*models.FloorPlan, error) {
	if f.remote != nil {
		return remoteGet[[]*models.FloorPlan](ctx, f.remote, "/api/projects/"+projectID.String()+"/floorplans")
	}
	return normalize(f.svc.FloorPlans.ListByProject(ctx, projectID))
}

func (f *Facade) FetchFloorPlansByProjectWithStats(ctx context.Context, projectID uuid.UUID) ([]*models.FloorPlanWithStats, error) {
	if f.remote != nil {
		return remoteGet[[]*models.FloorPlanWithStats](ctx, f.remote, "/api/projects/"+projectID.String()+"/floorplans/stats")
	}
	return normalize(f.svc.FloorPlans.ListByProjectWithStats(ctx, projectID))
}

func (f *Facade) UpdateFloorPlan(ctx context.Context, id uuid.UUID, input services.UpdateFloorPlanInput) (*models.FloorPlan, error) {
	if f.remote != nil {
		return remoteSend[*models.FloorPlan](ctx, f.remote, http.MethodPut, "/api/floorplans/"+id.String(), input)
	}
	return normalize(f.svc.FloorPlans.Update(ctx, id, input))
}

func (f *Facade) DeleteFloorPlan(ctx context.Context, id uuid.UUID) error {
	if f.remote != nil {
		return remoteDelete(ctx, f.remote, "/api/floorplans/"+id.String())
	}
	return normalizeErr(f.svc.FloorPlans.Delete(ctx, id))
}

// --- Rooms ---

func (f *Facade) CreateRoom(ctx context.Context, input services.CreateRoomInput) (*models.Room, error) {
	if f.remote != nil {
		return remoteSend[*models.Room](ctx, f.remote, http.MethodPost, "/api/rooms", input)
	}
	return normalize(f.svc.Rooms.Create(ctx, input))
}

func (f *Facade) FetchRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	if f.remote != nil {
		return remoteGet[*models.Room](ctx, f.remote, "/api/rooms/"+id.String())
	}
	return normalize(f.svc.Rooms.Get(ctx, id))
}

func (f *Facade) FetchRoomsByFloorPlan(ctx context.Context, floorPlanID uuid.UUID) ([]*models.Room, error) {
	if f.remote != nil {
		return remoteGet[[]*models.Room](ctx, f.remote, "/api/floorplans/"+floorPlanID.String()+"/rooms")
	}
	return normalize(f.svc.Rooms.ListByFloorPlan(ctx, floorPlanID))
}

func (f *Facade) FetchRoomsByFloorPlanWithStats(ctx context.Context, floorPlanID uuid.UUID) ([]*models.RoomWithStats, error) {
	if f.remote != nil {
		return remoteGet[[]*models.RoomWithStats](ctx, f.remote, "/api/floorplans/"+floorPlanID.String()+"/rooms/stats")
	}
	return normalize(f.svc.Rooms.ListByFloorPlanWithStats(ctx, floorPlanID))
}

func (f *Facade) FetchRoomWithStats(ctx context.Context, id uuid.UUID) (*models.RoomWithStats, error) {
	if f.remote != nil {
		return remoteGet[*models.RoomWithStats](ctx, f.remote, "/api/rooms/"+id.String()+"/stats")
	}
	return normalize(f.svc.Rooms.GetWithStats(ctx, id))
}

func (f *Facade) UpdateRoom(ctx context.Context, id uuid.UUID, input services.UpdateRoomInput) (*models.Room, error) {
	if f.remote != nil {
		return remoteSend[*models.Room](ctx, f.remote, http.MethodPut, "/api/rooms/"+id.String(), input)
	}
	return normalize(f.svc.Rooms.Update(ctx, id, input))
}

func (f *Facade) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if f.remote != nil {
		return remoteDelete(ctx, f.remote, "/api/rooms/"+id.String())
	}
	return normalizeErr(f.svc.Rooms.Delete(ctx, id))
}

// --- Tasks ---

func (f *Facade) CreateTask(ctx context.Context, input services.CreateTaskInput) (*models.Task, error) {
	if f.remote != nil {
		return remoteSend[*models.Task](ctx, f.remote, http.MethodPost, "/api/tasks", input)
	}
	return normalize(f.svc.Tasks.Create(ctx, input))
}

func (f *Facade) FetchTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if f.remote != nil {
		return remoteGet[*models.Task](ctx, f.remote, "/api/tasks/"+id.String())
	}
	return normalize(f.svc.Tasks.Get(ctx, id))
}

func (f *Facade) FetchTasks(ctx context.Context) ([]*models.Task, error) {
	if f.remote != nil {
		return remoteGet[[]*models.Task](ctx, f.remote, "/api/tasks")
	}
	return normalize(f.svc.Tasks.List(ctx))
}

func (f *Facade) FetchTasksByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Task, error) {
	if f.remote != nil {
		return remoteGet[[]*models.Task](ctx, f.remote, "/api/rooms/"+roomID.String()+"/tasks")
	}
	return normalize(f.svc.Tasks.ListByRoom(ctx, roomID))
}

func (f *Facade) FetchTasksByRoomWithDetails(ctx context.Context, roomID uuid.UUID) ([]*models.TaskWithDetails, error) {
	if f.remote != nil {
		return remoteGet[[]*models.TaskWithDetails](ctx, f.remote, "/api/rooms/"+roomID.String()+"/tasks/details")
	}
	return normalize(f.svc.Tasks.ListByRoomWithDetails(ctx, roomID))
}

func (f *Facade) UpdateTask(ctx context.Context, id uuid.UUID, input services.UpdateTaskInput, actorID uuid.UUID) (*models.Task, error) {
	if f.remote != nil {
		return remoteSend[*models.Task](ctx, f.remote, http.MethodPut, "/api/tasks/"+id.String(), input)
	}
	return normalize(f.svc.Tasks.Update(ctx, id, input, actorID))
}

func (f *Facade) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus, actorID uuid.UUID) (*models.Task, error) {
	if f.remote != nil {
		return remoteSend[*models.Task](ctx, f.remote, http.MethodPut, "/api/tasks/"+id.String()+"/status",
			map[string]string{"status": string(status)})
	}
	return normalize(f.svc.Tasks.UpdateStatus(ctx, id, status, actorID))
}

func (f *Facade) FetchTaskProgress(ctx context.Context, id uuid.UUID) (models.TaskProgress, error) {
	if f.remote != nil {
		return remoteGet[models.TaskProgress](ctx, f.remote, "/api/tasks/"+id.String()+"/progress")
	}
	return normalize(f.svc.Tasks.Progress(ctx, id))
}

func (f *Facade) FetchTaskHistory(ctx context.Context, id uuid.UUID) ([]*models.TaskHistoryWithNames, error) {
	if f.remote != nil {
		return remoteGet[[]*models.TaskHistoryWithNames](ctx, f.remote, "/api/tasks/"+id.String()+"/history")
	}
	return normalize(f.svc.Tasks.History(ctx, id))
}

func (f *Facade) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if f.remote != nil {
		return remoteDelete(ctx, f.remote, "/api/tasks/"+id.String())
	}
	return normalizeErr(f.svc.Tasks.Delete(ctx, id))
}

// --- Checklist items ---

func (f *Facade) AddChecklistItem(ctx context.Context, input services.CreateChecklistItemInput) (*models.ChecklistItem, error) {
	if f.remote != nil {
		return remoteSend[*models.ChecklistItem](ctx, f.remote, http.MethodPost, "/api/checklist-items", input)
	}
	return normalize(f.svc.Checklists.AddItem(ctx, input))
}

func (f *Facade) FetchChecklist(ctx context.Context, taskID uuid.UUID) ([]*models.ChecklistItem, error) {
	if f.remote != nil {
		return remoteGet[[]*models.ChecklistItem](ctx, f.remote, "/api/tasks/"+taskID.String()+"/checklist")
	}
	return normalize(f.svc.Checklists.ListByTask(ctx, taskID))
}

func (f *Facade) UpdateChecklistItem(ctx context.Context, id uuid.UUID, input services.UpdateChecklistItemInput, actorID uuid.UUID) (*models.ChecklistItem, error) {
	if f.remote != nil {
		return remoteSend[*models.ChecklistItem](ctx, f.remote, http.MethodPut, "/api/checklist-items/"+id.String(), input)
	}
	return normalize(f.svc.Checklists.UpdateItem(ctx, id, input, actorID))
}

func (f *Facade) ReorderChecklist(ctx context.Context, taskID uuid.UUID, orderedIDs []uuid.UUID) error {
	if f.remote != nil {
		_, err := remoteSend[[]*models.ChecklistItem](ctx, f.remote, http.MethodPut,
			"/api/tasks/"+taskID.String()+"/checklist/order",
			map[string][]uuid.UUID{"ordered_ids": orderedIDs})
		return err
	}
	return normalizeErr(f.svc.Checklists.Reorder(ctx, taskID, orderedIDs))
}

func (f *Facade) MoveChecklistItem(ctx context.Context, id uuid.UUID, newIndex int) error {
	if f.remote != nil {
		_, err := remoteSend[*models.ChecklistItem](ctx, f.remote, http.MethodPut,
			"/api/checklist-items/"+id.String()+"/position",
			map[string]int{"new_index": newIndex})
		return err
	}
	return normalizeErr(f.svc.Checklists.MoveItem(ctx, id, newIndex))
}

func (f *Facade) DeleteChecklistItem(ctx context.Context, id uuid.UUID) error {
	if f.remote != nil {
		return remoteDelete(ctx, f.remote, "/api/checklist-items/"+id.String())
	}
	return normalizeErr(f.svc.Checklists.DeleteItem(ctx, id))
}

// --- Comments ---

func (f *Facade) AddComment(ctx context.Context, input services.CreateCommentInput) (*models.TaskComment, error) {
	if f.remote != nil {
		return remoteSend[*models.TaskComment](ctx, f.remote, http.MethodPost, "/api/comments", input)
	}
	return normalize(f.svc.Comments.Add(ctx, input))
}

func (f *Facade) FetchComments(ctx context.Context, taskID uuid.UUID) ([]*models.TaskComment, error) {
	if f.remote != nil {
		return remoteGet[[]*models.TaskComment](ctx, f.remote, "/api/tasks/"+taskID.String()+"/comments")
	}
	return normalize(f.svc.Comments.ListByTask(ctx, taskID))
}

func (f *Facade) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if f.remote != nil {
		return remoteDelete(ctx, f.remote, "/api/comments/"+id.String())
	}
	return normalizeErr(f.svc.Comments.Delete(ctx, id))
}
