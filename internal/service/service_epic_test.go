package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/mock"
	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/MKhiriev/go-project-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testActor = models.Actor{UserID: 1, Login: "alice"}

type epicDeps struct {
	items         *mock.MockWorkItemRepository
	phases        *mock.MockPhaseRepository
	notifications *mock.MockNotificationRepository
}

// newTestEpicSvc builds an epicService on gomock repositories. The real
// notificationService is used so notification side effects show up as
// repository calls.
func newTestEpicSvc(t *testing.T, ctrl *gomock.Controller) (*epicService, epicDeps) {
	t.Helper()

	deps := epicDeps{
		items:         mock.NewMockWorkItemRepository(ctrl),
		phases:        mock.NewMockPhaseRepository(ctrl),
		notifications: mock.NewMockNotificationRepository(ctrl),
	}
	notifications := NewNotificationService(deps.notifications, logger.Nop())

	svc := NewEpicService(deps.items, deps.phases, notifications, config.Workers{FanOutLimit: 2}, logger.Nop()).(*epicService)
	return svc, deps
}

func ptr[T any](v T) *T { return &v }

// ── Create ───────────────────────────────────────────────────────────────────

func TestEpicService_CreateEpic_AppliesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	payload := map[string]any{
		"title":       "Launch",
		"start_date":  start,
		"customer_id": float64(3),
		"unknown":     "ignored",
	}

	deps.items.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.WorkItem) (models.WorkItem, error) {
			assert.Equal(t, models.KindEpic, item.Kind)
			assert.Equal(t, "Launch", item.Title)
			assert.Equal(t, models.StatusTodo, item.Status)
			assert.Equal(t, models.PriorityMedium, item.Priority)
			assert.Equal(t, testActor.UserID, item.CreatedBy)
			assert.Nil(t, item.ParentID)
			require.NotNil(t, item.CustomerID)
			assert.Equal(t, int64(3), *item.CustomerID)
			require.NotNil(t, item.StartDate)
			assert.True(t, start.Equal(*item.StartDate))
			item.ID = 10
			return item, nil
		},
	)

	epic, err := svc.CreateEpic(ctx, testActor, payload)
	require.NoError(t, err)
	assert.Equal(t, int64(10), epic.ID)
}

func TestEpicService_Create_RequiresActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestEpicSvc(t, ctrl)

	_, err := svc.CreateEpic(context.Background(), models.Actor{}, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ErrActorRequired)
}

func TestEpicService_CreateStory_ParentChecks(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		setup   func(deps epicDeps)
		wantErr error
	}{
		{
			name:    "missing parent id",
			payload: map[string]any{"title": "s"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "fractional parent id",
			payload: map[string]any{"title": "s", "parent_id": 1.5},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "parent does not exist",
			payload: map[string]any{"title": "s", "parent_id": float64(7)},
			setup: func(deps epicDeps) {
				deps.items.EXPECT().Get(gomock.Any(), int64(7)).Return(models.WorkItem{}, store.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:    "parent is a task",
			payload: map[string]any{"title": "s", "parent_id": float64(7)},
			setup: func(deps epicDeps) {
				deps.items.EXPECT().Get(gomock.Any(), int64(7)).Return(models.WorkItem{ID: 7, Kind: models.KindTask}, nil)
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, deps := newTestEpicSvc(t, ctrl)
			if tt.setup != nil {
				tt.setup(deps)
			}

			_, err := svc.CreateStory(context.Background(), testActor, tt.payload)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEpicService_CreateTask_NotifiesAssignee(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		deps.items.EXPECT().Get(ctx, int64(2)).Return(models.WorkItem{ID: 2, Kind: models.KindStory}, nil),
		deps.items.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, item models.WorkItem) (models.WorkItem, error) {
				assert.Equal(t, int64(2), *item.ParentID)
				item.ID = 30
				return item, nil
			},
		),
		deps.notifications.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, n models.Notification) (models.Notification, error) {
				assert.Equal(t, int64(5), n.UserID)
				assert.Equal(t, models.NotificationAssigned, n.Kind)
				assert.Equal(t, models.KindTask, n.EntityKind)
				assert.Equal(t, int64(30), n.EntityID)
				return n, nil
			},
		),
	)

	_, err := svc.CreateTask(ctx, testActor, map[string]any{"title": "t", "parent_id": float64(2), "assignee_id": float64(5)})
	require.NoError(t, err)
}

func TestEpicService_CreateTask_SelfAssignmentIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(2)).Return(models.WorkItem{ID: 2, Kind: models.KindStory}, nil)
	deps.items.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.WorkItem) (models.WorkItem, error) { return item, nil },
	)

	_, err := svc.CreateTask(context.Background(), testActor, map[string]any{"title": "t", "parent_id": float64(2), "assignee_id": float64(testActor.UserID)})
	require.NoError(t, err)
}

func TestEpicService_Create_UnknownReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(models.WorkItem{}, fmt.Errorf("%w: fk", store.ErrReferenceNotFound))

	_, err := svc.CreateEpic(context.Background(), testActor, map[string]any{"title": "e", "phase_id": float64(99)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ── Get / Update / Delete ────────────────────────────────────────────────────

func TestEpicService_Get_WrongKindIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(4)).Return(models.WorkItem{ID: 4, Kind: models.KindStory}, nil)

	_, err := svc.GetEpic(context.Background(), 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEpicService_UpdateStory(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()

	current := models.WorkItem{ID: 4, Kind: models.KindStory, Title: "old"}
	deps.items.EXPECT().Get(ctx, int64(4)).Return(current, nil)
	deps.items.EXPECT().Update(ctx, int64(4), map[string]any{"title": "new", "due_date": nil}).
		Return(models.WorkItem{ID: 4, Kind: models.KindStory, Title: "new"}, nil)

	// end_date does not exist on stories and is dropped
	updated, err := svc.UpdateStory(ctx, testActor, 4, map[string]any{"title": "new", "due_date": nil, "end_date": "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
}

func TestEpicService_Update_NothingToChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	current := models.WorkItem{ID: 4, Kind: models.KindTask, Title: "same"}
	deps.items.EXPECT().Get(gomock.Any(), int64(4)).Return(current, nil)

	got, err := svc.UpdateTask(context.Background(), testActor, 4, map[string]any{"id": float64(9)})
	require.NoError(t, err)
	assert.Equal(t, current, got)
}

func TestEpicService_Update_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(4)).Return(models.WorkItem{ID: 4, Kind: models.KindTask}, nil)

	_, err := svc.UpdateTask(context.Background(), testActor, 4, map[string]any{"status": "someday"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEpicService_DeleteSubtask(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	gomock.InOrder(
		deps.items.EXPECT().Get(gomock.Any(), int64(8)).Return(models.WorkItem{ID: 8, Kind: models.KindSubtask}, nil),
		deps.items.EXPECT().Delete(gomock.Any(), int64(8)).Return(nil),
	)

	require.NoError(t, svc.DeleteSubtask(context.Background(), 8))
}

// ── Hierarchy ────────────────────────────────────────────────────────────────

func item(id int64, kind models.EntityKind, parent int64) models.WorkItem {
	it := models.WorkItem{ID: id, Kind: kind, Title: fmt.Sprintf("%s-%d", kind, id)}
	if parent > 0 {
		it.ParentID = ptr(parent)
	}
	return it
}

func TestEpicService_GetEpicHierarchy(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		deps.items.EXPECT().Get(ctx, int64(1)).Return(item(1, models.KindEpic, 0), nil),
		deps.items.EXPECT().List(ctx, models.WorkItemFilter{Kind: models.KindStory, ParentIDs: []int64{1}}).
			Return([]models.WorkItem{item(3, models.KindStory, 1), item(2, models.KindStory, 1)}, nil),
		deps.items.EXPECT().List(ctx, models.WorkItemFilter{Kind: models.KindTask, ParentIDs: []int64{3, 2}}).
			Return([]models.WorkItem{item(10, models.KindTask, 2), item(11, models.KindTask, 3)}, nil),
		deps.items.EXPECT().List(ctx, models.WorkItemFilter{Kind: models.KindSubtask, ParentIDs: []int64{10, 11}}).
			Return([]models.WorkItem{item(20, models.KindSubtask, 10)}, nil),
	)

	tree, err := svc.GetEpicHierarchy(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), tree.ID)
	require.Len(t, tree.Children, 2)
	// stories keep the position order the store returned
	assert.Equal(t, int64(3), tree.Children[0].ID)
	assert.Equal(t, int64(2), tree.Children[1].ID)

	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, int64(11), tree.Children[0].Children[0].ID)
	assert.Empty(t, tree.Children[0].Children[0].Children)

	require.Len(t, tree.Children[1].Children, 1)
	task := tree.Children[1].Children[0]
	assert.Equal(t, int64(10), task.ID)
	require.Len(t, task.Children, 1)
	assert.Equal(t, int64(20), task.Children[0].ID)
}

func TestEpicService_GetEpicHierarchy_StopsWhenLevelEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(1)).Return(item(1, models.KindEpic, 0), nil)
	deps.items.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

	tree, err := svc.GetEpicHierarchy(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, tree.Children)
}

func TestEpicService_ListEpics_WithChildren(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()

	filter := models.WorkItemFilter{Status: models.StatusTodo, ParentID: ptr(int64(9))}
	gomock.InOrder(
		deps.items.EXPECT().List(ctx, models.WorkItemFilter{Kind: models.KindEpic, Status: models.StatusTodo}).
			Return([]models.WorkItem{item(1, models.KindEpic, 0), item(2, models.KindEpic, 0)}, nil),
		deps.items.EXPECT().List(ctx, models.WorkItemFilter{Kind: models.KindStory, ParentIDs: []int64{1, 2}}).
			Return([]models.WorkItem{item(5, models.KindStory, 2)}, nil),
	)

	nodes, err := svc.ListEpics(ctx, filter, true)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Empty(t, nodes[0].Children)
	require.Len(t, nodes[1].Children, 1)
	assert.Equal(t, int64(5), nodes[1].Children[0].ID)
}

// ── Story tasks fan-out ──────────────────────────────────────────────────────

func TestEpicService_GetStoryTasks_PreservesTaskOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	storyID := int64(2)
	tasks := []models.WorkItem{item(10, models.KindTask, 2), item(11, models.KindTask, 2), item(12, models.KindTask, 2)}
	// earlier tasks answer later
	delays := map[int64]time.Duration{10: 30 * time.Millisecond, 11: 15 * time.Millisecond, 12: 0}

	deps.items.EXPECT().Get(gomock.Any(), storyID).Return(item(2, models.KindStory, 1), nil)
	deps.items.EXPECT().List(gomock.Any(), models.WorkItemFilter{Kind: models.KindTask, ParentID: &storyID}).Return(tasks, nil)
	deps.items.EXPECT().List(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, f models.WorkItemFilter) ([]models.WorkItem, error) {
			assert.Equal(t, models.KindSubtask, f.Kind)
			time.Sleep(delays[*f.ParentID])
			return []models.WorkItem{item(*f.ParentID*10, models.KindSubtask, *f.ParentID)}, nil
		},
	)

	result, err := svc.GetStoryTasks(context.Background(), storyID, true)
	require.NoError(t, err)
	require.Len(t, result, 3)
	for i, task := range tasks {
		assert.Equal(t, task.ID, result[i].ID)
		require.Len(t, result[i].Subtasks, 1)
		assert.Equal(t, task.ID*10, result[i].Subtasks[0].ID)
	}
}

func TestEpicService_GetStoryTasks_WithoutSubtasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(2)).Return(item(2, models.KindStory, 1), nil)
	deps.items.EXPECT().List(gomock.Any(), gomock.Any()).Return([]models.WorkItem{item(10, models.KindTask, 2)}, nil).Times(1)

	result, err := svc.GetStoryTasks(context.Background(), 2, false)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Nil(t, result[0].Subtasks)
}

func TestEpicService_GetStoryTasks_FirstErrorWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	boom := errors.New("connection reset")
	storyID := int64(2)
	deps.items.EXPECT().Get(gomock.Any(), storyID).Return(item(2, models.KindStory, 1), nil)
	deps.items.EXPECT().List(gomock.Any(), models.WorkItemFilter{Kind: models.KindTask, ParentID: &storyID}).
		Return([]models.WorkItem{item(10, models.KindTask, 2), item(11, models.KindTask, 2)}, nil)
	deps.items.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, f models.WorkItemFilter) ([]models.WorkItem, error) {
			if *f.ParentID == 11 {
				return nil, boom
			}
			return nil, nil
		},
	)

	_, err := svc.GetStoryTasks(context.Background(), storyID, true)
	assert.ErrorIs(t, err, boom)
}

// ── Bulk, reorder, phase ─────────────────────────────────────────────────────

func TestEpicService_BulkUpdateTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()

	req := models.BulkUpdateRequest{IDs: []int64{10, 11}, Changes: map[string]any{"status": "done", "priority": "high"}}
	gomock.InOrder(
		deps.items.EXPECT().BulkUpdate(ctx, models.KindTask, req.IDs, map[string]any{"status": "done", "priority": "high"}).Return(nil),
		deps.items.EXPECT().List(ctx, models.WorkItemFilter{Kind: models.KindTask, IDs: req.IDs}).
			Return([]models.WorkItem{item(10, models.KindTask, 2), item(11, models.KindTask, 2)}, nil),
	)

	updated, err := svc.BulkUpdateTasks(ctx, testActor, req)
	require.NoError(t, err)
	assert.Len(t, updated, 2)
}

func TestEpicService_BulkUpdateTasks_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  models.BulkUpdateRequest
	}{
		{"no ids", models.BulkUpdateRequest{Changes: map[string]any{"status": "done"}}},
		{"duplicate ids", models.BulkUpdateRequest{IDs: []int64{1, 1}, Changes: map[string]any{"status": "done"}}},
		{"no usable changes", models.BulkUpdateRequest{IDs: []int64{1}, Changes: map[string]any{"parent_id": float64(3)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _ := newTestEpicSvc(t, ctrl)

			_, err := svc.BulkUpdateTasks(context.Background(), testActor, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEpicService_BulkUpdateTasks_MissingTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().BulkUpdate(gomock.Any(), models.KindTask, gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: 1 of 2", store.ErrNotFound))

	_, err := svc.BulkUpdateTasks(context.Background(), testActor, models.BulkUpdateRequest{IDs: []int64{1, 2}, Changes: map[string]any{"status": "done"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEpicService_ReorderStories(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()
	epicID := int64(1)

	gomock.InOrder(
		deps.items.EXPECT().Get(ctx, epicID).Return(item(1, models.KindEpic, 0), nil),
		deps.items.EXPECT().Reorder(ctx, epicID, []int64{3, 2}).Return(nil),
		deps.items.EXPECT().List(ctx, models.WorkItemFilter{Kind: models.KindStory, ParentID: &epicID}).
			Return([]models.WorkItem{item(3, models.KindStory, 1), item(2, models.KindStory, 1)}, nil),
	)

	stories, err := svc.ReorderStories(ctx, epicID, []int64{3, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stories[0].ID)
}

func TestEpicService_ReorderStories_IncompleteList(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(1)).Return(item(1, models.KindEpic, 0), nil)
	deps.items.EXPECT().Reorder(gomock.Any(), int64(1), []int64{3}).Return(fmt.Errorf("%w: parent 1 has 2 children", store.ErrNotFound))

	_, err := svc.ReorderStories(context.Background(), 1, []int64{3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEpicService_MoveStoryToPhase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()

	story := item(2, models.KindStory, 1)
	story.AssigneeID = ptr(int64(5))
	moved := story
	moved.PhaseID = ptr(int64(4))

	gomock.InOrder(
		deps.items.EXPECT().Get(ctx, int64(2)).Return(story, nil),
		deps.phases.EXPECT().Get(ctx, int64(4)).Return(models.Phase{ID: 4, Name: "Build"}, nil),
		deps.items.EXPECT().Get(ctx, int64(1)).Return(models.WorkItem{ID: 1, Kind: models.KindEpic, Status: models.StatusInProgress}, nil),
		deps.items.EXPECT().Update(ctx, int64(2), map[string]any{"phase_id": int64(4)}).Return(moved, nil),
		deps.notifications.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, n models.Notification) (models.Notification, error) {
				assert.Equal(t, models.NotificationPhaseChanged, n.Kind)
				assert.Contains(t, n.Message, "Build")
				return n, nil
			},
		),
	)

	got, err := svc.MoveStoryToPhase(ctx, testActor, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), *got.PhaseID)
}

func TestEpicService_MoveStoryToPhase_ClosedEpic(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(2)).Return(item(2, models.KindStory, 1), nil)
	deps.phases.EXPECT().Get(gomock.Any(), int64(4)).Return(models.Phase{ID: 4}, nil)
	deps.items.EXPECT().Get(gomock.Any(), int64(1)).Return(models.WorkItem{ID: 1, Kind: models.KindEpic, Status: models.StatusDone}, nil)

	_, err := svc.MoveStoryToPhase(context.Background(), testActor, 2, 4)

	var appErr *ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestEpicService_MoveStoryToPhase_UnknownPhase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(2)).Return(item(2, models.KindStory, 1), nil)
	deps.phases.EXPECT().Get(gomock.Any(), int64(4)).Return(models.Phase{}, store.ErrNotFound)

	_, err := svc.MoveStoryToPhase(context.Background(), testActor, 2, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEpicService_UpdateStory_PhaseUnderClosedEpic(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(2)).Return(item(2, models.KindStory, 1), nil)
	deps.phases.EXPECT().Get(gomock.Any(), int64(4)).Return(models.Phase{ID: 4}, nil)
	deps.items.EXPECT().Get(gomock.Any(), int64(1)).Return(models.WorkItem{ID: 1, Kind: models.KindEpic, Status: models.StatusDone}, nil)
	deps.items.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.UpdateStory(context.Background(), testActor, 2, map[string]any{"phase_id": float64(4)})

	var appErr *ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestEpicService_UpdateStory_UnknownPhase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)

	deps.items.EXPECT().Get(gomock.Any(), int64(2)).Return(item(2, models.KindStory, 1), nil)
	deps.phases.EXPECT().Get(gomock.Any(), int64(9)).Return(models.Phase{}, store.ErrNotFound)
	deps.items.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.UpdateStory(context.Background(), testActor, 2, map[string]any{"phase_id": float64(9)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEpicService_UpdateStory_PhaseUnderOpenEpic(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	ctx := context.Background()

	moved := item(2, models.KindStory, 1)
	moved.PhaseID = ptr(int64(4))

	gomock.InOrder(
		deps.items.EXPECT().Get(ctx, int64(2)).Return(item(2, models.KindStory, 1), nil),
		deps.phases.EXPECT().Get(ctx, int64(4)).Return(models.Phase{ID: 4}, nil),
		deps.items.EXPECT().Get(ctx, int64(1)).Return(models.WorkItem{ID: 1, Kind: models.KindEpic, Status: models.StatusInProgress}, nil),
		deps.items.EXPECT().Update(ctx, int64(2), map[string]any{"phase_id": int64(4)}).Return(moved, nil),
	)

	got, err := svc.UpdateStory(ctx, testActor, 2, map[string]any{"phase_id": float64(4)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), *got.PhaseID)
}

func TestEpicLoggingService_PassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, deps := newTestEpicSvc(t, ctrl)
	wrapped := NewEpicLoggingService().Wrap(svc)

	deps.items.EXPECT().Get(gomock.Any(), int64(1)).Return(models.WorkItem{}, store.ErrNotFound)
	deps.items.EXPECT().Get(gomock.Any(), int64(2)).Return(item(2, models.KindEpic, 0), nil)

	_, err := wrapped.GetEpic(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	epic, err := wrapped.GetEpic(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), epic.ID)
}
