package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
)

// EpicLoggingService decorates an EpicService with one log line per call:
// method, duration and the error if any. Not-found and input errors are
// logged at debug level since they are the caller's fault.
type EpicLoggingService struct {
	inner EpicService
}

func NewEpicLoggingService() EpicServiceWrapper {
	return &EpicLoggingService{}
}

func (l *EpicLoggingService) Wrap(inner EpicService) EpicService {
	l.inner = inner
	return l
}

func (l *EpicLoggingService) observe(ctx context.Context, method string, start time.Time, err error) {
	log := logger.FromContext(ctx)

	event := log.Debug()
	if err != nil && !isClientError(err) {
		event = log.Error().Err(err)
	} else if err != nil {
		event = event.Str("reason", err.Error())
	}

	event.Str("func", "EpicService."+method).
		Dur("duration", time.Since(start)).
		Msg("epic service call")
}

func (l *EpicLoggingService) CreateEpic(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.CreateEpic(ctx, actor, payload)
	l.observe(ctx, "CreateEpic", start, err)
	return res, err
}

func (l *EpicLoggingService) GetEpic(ctx context.Context, id int64) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.GetEpic(ctx, id)
	l.observe(ctx, "GetEpic", start, err)
	return res, err
}

func (l *EpicLoggingService) UpdateEpic(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.UpdateEpic(ctx, actor, id, payload)
	l.observe(ctx, "UpdateEpic", start, err)
	return res, err
}

func (l *EpicLoggingService) DeleteEpic(ctx context.Context, id int64) error {
	start := time.Now()
	err := l.inner.DeleteEpic(ctx, id)
	l.observe(ctx, "DeleteEpic", start, err)
	return err
}

func (l *EpicLoggingService) CreateStory(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.CreateStory(ctx, actor, payload)
	l.observe(ctx, "CreateStory", start, err)
	return res, err
}

func (l *EpicLoggingService) GetStory(ctx context.Context, id int64) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.GetStory(ctx, id)
	l.observe(ctx, "GetStory", start, err)
	return res, err
}

func (l *EpicLoggingService) UpdateStory(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.UpdateStory(ctx, actor, id, payload)
	l.observe(ctx, "UpdateStory", start, err)
	return res, err
}

func (l *EpicLoggingService) DeleteStory(ctx context.Context, id int64) error {
	start := time.Now()
	err := l.inner.DeleteStory(ctx, id)
	l.observe(ctx, "DeleteStory", start, err)
	return err
}

func (l *EpicLoggingService) CreateTask(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.CreateTask(ctx, actor, payload)
	l.observe(ctx, "CreateTask", start, err)
	return res, err
}

func (l *EpicLoggingService) GetTask(ctx context.Context, id int64) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.GetTask(ctx, id)
	l.observe(ctx, "GetTask", start, err)
	return res, err
}

func (l *EpicLoggingService) UpdateTask(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.UpdateTask(ctx, actor, id, payload)
	l.observe(ctx, "UpdateTask", start, err)
	return res, err
}

func (l *EpicLoggingService) DeleteTask(ctx context.Context, id int64) error {
	start := time.Now()
	err := l.inner.DeleteTask(ctx, id)
	l.observe(ctx, "DeleteTask", start, err)
	return err
}

func (l *EpicLoggingService) CreateSubtask(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.CreateSubtask(ctx, actor, payload)
	l.observe(ctx, "CreateSubtask", start, err)
	return res, err
}

func (l *EpicLoggingService) GetSubtask(ctx context.Context, id int64) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.GetSubtask(ctx, id)
	l.observe(ctx, "GetSubtask", start, err)
	return res, err
}

func (l *EpicLoggingService) UpdateSubtask(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.UpdateSubtask(ctx, actor, id, payload)
	l.observe(ctx, "UpdateSubtask", start, err)
	return res, err
}

func (l *EpicLoggingService) DeleteSubtask(ctx context.Context, id int64) error {
	start := time.Now()
	err := l.inner.DeleteSubtask(ctx, id)
	l.observe(ctx, "DeleteSubtask", start, err)
	return err
}

func (l *EpicLoggingService) ListEpics(ctx context.Context, filter models.WorkItemFilter, includeChildren bool) ([]models.HierarchyNode, error) {
	start := time.Now()
	res, err := l.inner.ListEpics(ctx, filter, includeChildren)
	l.observe(ctx, "ListEpics", start, err)
	return res, err
}

func (l *EpicLoggingService) GetEpicHierarchy(ctx context.Context, id int64) (models.HierarchyNode, error) {
	start := time.Now()
	res, err := l.inner.GetEpicHierarchy(ctx, id)
	l.observe(ctx, "GetEpicHierarchy", start, err)
	return res, err
}

func (l *EpicLoggingService) GetStoryTasks(ctx context.Context, storyID int64, includeSubtasks bool) ([]models.TaskWithSubtasks, error) {
	start := time.Now()
	res, err := l.inner.GetStoryTasks(ctx, storyID, includeSubtasks)
	l.observe(ctx, "GetStoryTasks", start, err)
	return res, err
}

func (l *EpicLoggingService) BulkUpdateTasks(ctx context.Context, actor models.Actor, req models.BulkUpdateRequest) ([]models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.BulkUpdateTasks(ctx, actor, req)
	l.observe(ctx, "BulkUpdateTasks", start, err)
	return res, err
}

func (l *EpicLoggingService) ReorderStories(ctx context.Context, epicID int64, ids []int64) ([]models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.ReorderStories(ctx, epicID, ids)
	l.observe(ctx, "ReorderStories", start, err)
	return res, err
}

func (l *EpicLoggingService) MoveStoryToPhase(ctx context.Context, actor models.Actor, storyID, phaseID int64) (models.WorkItem, error) {
	start := time.Now()
	res, err := l.inner.MoveStoryToPhase(ctx, actor, storyID, phaseID)
	l.observe(ctx, "MoveStoryToPhase", start, err)
	return res, err
}
