// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/MKhiriev/go-project-tracker/models"
	"golang.org/x/sync/errgroup"
)

const defaultFanOutLimit = 8

// epicService is the concrete implementation of EpicService. All four
// hierarchy levels live in one repository; kind checks keep an id of one
// level from being served through the endpoints of another.
type epicService struct {
	workItems store.WorkItemRepository
	phases    store.PhaseRepository

	notifications NotificationService

	// fanOutLimit bounds concurrent subtask lookups in GetStoryTasks.
	fanOutLimit int

	logger *logger.Logger
}

// NewEpicService constructs an EpicService backed by the given repositories.
func NewEpicService(workItems store.WorkItemRepository, phases store.PhaseRepository, notifications NotificationService, cfg config.Workers, logger *logger.Logger) EpicService {
	limit := cfg.FanOutLimit
	if limit <= 0 {
		limit = defaultFanOutLimit
	}

	return &epicService{
		workItems:     workItems,
		phases:        phases,
		notifications: notifications,
		fanOutLimit:   limit,
		logger:        logger,
	}
}

func (s *epicService) CreateEpic(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	return s.create(ctx, models.KindEpic, actor, payload)
}

func (s *epicService) GetEpic(ctx context.Context, id int64) (models.WorkItem, error) {
	return s.get(ctx, models.KindEpic, id)
}

func (s *epicService) UpdateEpic(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	return s.update(ctx, models.KindEpic, actor, id, payload)
}

func (s *epicService) DeleteEpic(ctx context.Context, id int64) error {
	return s.delete(ctx, models.KindEpic, id)
}

func (s *epicService) CreateStory(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	return s.create(ctx, models.KindStory, actor, payload)
}

func (s *epicService) GetStory(ctx context.Context, id int64) (models.WorkItem, error) {
	return s.get(ctx, models.KindStory, id)
}

func (s *epicService) UpdateStory(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	return s.update(ctx, models.KindStory, actor, id, payload)
}

func (s *epicService) DeleteStory(ctx context.Context, id int64) error {
	return s.delete(ctx, models.KindStory, id)
}

func (s *epicService) CreateTask(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	return s.create(ctx, models.KindTask, actor, payload)
}

func (s *epicService) GetTask(ctx context.Context, id int64) (models.WorkItem, error) {
	return s.get(ctx, models.KindTask, id)
}

func (s *epicService) UpdateTask(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	return s.update(ctx, models.KindTask, actor, id, payload)
}

func (s *epicService) DeleteTask(ctx context.Context, id int64) error {
	return s.delete(ctx, models.KindTask, id)
}

func (s *epicService) CreateSubtask(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	return s.create(ctx, models.KindSubtask, actor, payload)
}

func (s *epicService) GetSubtask(ctx context.Context, id int64) (models.WorkItem, error) {
	return s.get(ctx, models.KindSubtask, id)
}

func (s *epicService) UpdateSubtask(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	return s.update(ctx, models.KindSubtask, actor, id, payload)
}

func (s *epicService) DeleteSubtask(ctx context.Context, id int64) error {
	return s.delete(ctx, models.KindSubtask, id)
}

// create checks the actor and the parent, then stores the item at the end
// of its parent's children.
func (s *epicService) create(ctx context.Context, kind models.EntityKind, actor models.Actor, payload map[string]any) (models.WorkItem, error) {
	if actor.UserID <= 0 {
		return models.WorkItem{}, ErrActorRequired
	}

	changes, err := workItemChanges(kind, payload)
	if err != nil {
		return models.WorkItem{}, err
	}

	item := models.WorkItem{
		Kind:      kind,
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
		CreatedBy: actor.UserID,
	}
	applyChanges(&item, changes)

	if parentKind, ok := kind.ParentKind(); ok {
		parentID, err := s.checkParent(ctx, parentKind, payload["parent_id"])
		if err != nil {
			return models.WorkItem{}, err
		}
		item.ParentID = &parentID
	}

	created, err := s.workItems.Create(ctx, item)
	if err != nil {
		return models.WorkItem{}, mapStoreError(err, string(kind))
	}

	s.notifyAssignee(ctx, actor, created, models.NotificationAssigned,
		fmt.Sprintf("You were assigned to %s %q", kind, created.Title))

	return created, nil
}

// checkParent resolves the parent id from a payload value and verifies it
// points at an item of parentKind.
func (s *epicService) checkParent(ctx context.Context, parentKind models.EntityKind, raw any) (int64, error) {
	if raw == nil {
		return 0, fmt.Errorf("%w: parent_id is required", ErrInvalidInput)
	}
	parentID, err := toID(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parent_id: %w", ErrInvalidInput, err)
	}

	parent, err := s.workItems.Get(ctx, parentID)
	if err != nil {
		return 0, mapStoreError(err, fmt.Sprintf("parent %s %d", parentKind, parentID))
	}
	if parent.Kind != parentKind {
		return 0, fmt.Errorf("%w: parent %d is a %s, expected a %s", ErrInvalidInput, parentID, parent.Kind, parentKind)
	}

	return parentID, nil
}

func (s *epicService) get(ctx context.Context, kind models.EntityKind, id int64) (models.WorkItem, error) {
	item, err := s.workItems.Get(ctx, id)
	if err != nil {
		return models.WorkItem{}, mapStoreError(err, fmt.Sprintf("%s %d", kind, id))
	}
	if item.Kind != kind {
		return models.WorkItem{}, fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}
	return item, nil
}

func (s *epicService) update(ctx context.Context, kind models.EntityKind, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error) {
	current, err := s.get(ctx, kind, id)
	if err != nil {
		return models.WorkItem{}, err
	}

	changes, err := workItemChanges(kind, payload)
	if err != nil {
		return models.WorkItem{}, err
	}
	if len(changes) == 0 {
		return current, nil
	}

	if phaseID, ok := changes["phase_id"]; ok && kind == models.KindStory && !sameID(current.PhaseID, idPtr(phaseID)) {
		if _, err := s.checkPhaseChange(ctx, current, idPtr(phaseID)); err != nil {
			return models.WorkItem{}, err
		}
	}

	updated, err := s.workItems.Update(ctx, id, changes)
	if err != nil {
		return models.WorkItem{}, mapStoreError(err, fmt.Sprintf("%s %d", kind, id))
	}

	if !sameID(current.AssigneeID, updated.AssigneeID) {
		s.notifyAssignee(ctx, actor, updated, models.NotificationAssigned,
			fmt.Sprintf("You were assigned to %s %q", kind, updated.Title))
	}

	return updated, nil
}

func (s *epicService) delete(ctx context.Context, kind models.EntityKind, id int64) error {
	if _, err := s.get(ctx, kind, id); err != nil {
		return err
	}

	if err := s.workItems.Delete(ctx, id); err != nil {
		return mapStoreError(err, fmt.Sprintf("%s %d", kind, id))
	}
	return nil
}

func (s *epicService) ListEpics(ctx context.Context, filter models.WorkItemFilter, includeChildren bool) ([]models.HierarchyNode, error) {
	filter.Kind = models.KindEpic
	filter.ParentID, filter.ParentIDs = nil, nil

	epics, err := s.workItems.List(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err, "epics")
	}

	nodes := make([]models.HierarchyNode, len(epics))
	for i, epic := range epics {
		nodes[i] = models.HierarchyNode{WorkItem: epic}
	}
	if !includeChildren || len(epics) == 0 {
		return nodes, nil
	}

	stories, err := s.workItems.List(ctx, models.WorkItemFilter{Kind: models.KindStory, ParentIDs: itemIDs(epics)})
	if err != nil {
		return nil, mapStoreError(err, "stories")
	}

	byParent := groupByParent(stories)
	for i := range nodes {
		for _, story := range byParent[nodes[i].ID] {
			nodes[i].Children = append(nodes[i].Children, models.HierarchyNode{WorkItem: story})
		}
	}

	return nodes, nil
}

// GetEpicHierarchy loads the tree one level per query: stories of the
// epic, tasks of those stories, subtasks of those tasks.
func (s *epicService) GetEpicHierarchy(ctx context.Context, id int64) (models.HierarchyNode, error) {
	epic, err := s.get(ctx, models.KindEpic, id)
	if err != nil {
		return models.HierarchyNode{}, err
	}

	byParent := make(map[int64][]models.WorkItem)
	parentIDs := []int64{epic.ID}

	for _, kind := range models.WorkItemKinds[1:] {
		if len(parentIDs) == 0 {
			break
		}

		children, err := s.workItems.List(ctx, models.WorkItemFilter{Kind: kind, ParentIDs: parentIDs})
		if err != nil {
			return models.HierarchyNode{}, mapStoreError(err, string(kind))
		}

		for parentID, items := range groupByParent(children) {
			byParent[parentID] = items
		}
		parentIDs = itemIDs(children)
	}

	return buildNode(epic, byParent), nil
}

func buildNode(item models.WorkItem, byParent map[int64][]models.WorkItem) models.HierarchyNode {
	node := models.HierarchyNode{WorkItem: item}
	for _, child := range byParent[item.ID] {
		node.Children = append(node.Children, buildNode(child, byParent))
	}
	return node
}

// GetStoryTasks fans the subtask lookups out with a bounded errgroup. Each
// goroutine writes to its own slot, so the result follows task order
// whatever order the lookups finish in.
func (s *epicService) GetStoryTasks(ctx context.Context, storyID int64, includeSubtasks bool) ([]models.TaskWithSubtasks, error) {
	if _, err := s.get(ctx, models.KindStory, storyID); err != nil {
		return nil, err
	}

	tasks, err := s.workItems.List(ctx, models.WorkItemFilter{Kind: models.KindTask, ParentID: &storyID})
	if err != nil {
		return nil, mapStoreError(err, fmt.Sprintf("tasks of story %d", storyID))
	}

	result := make([]models.TaskWithSubtasks, len(tasks))
	for i, task := range tasks {
		result[i] = models.TaskWithSubtasks{WorkItem: task}
	}
	if !includeSubtasks {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOutLimit)

	for i, task := range tasks {
		g.Go(func() error {
			subtasks, err := s.workItems.List(gctx, models.WorkItemFilter{Kind: models.KindSubtask, ParentID: &task.ID})
			if err != nil {
				return mapStoreError(err, fmt.Sprintf("subtasks of task %d", task.ID))
			}
			result[i].Subtasks = subtasks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*epicService.GetStoryTasks").Int64("story_id", storyID).Msg("subtask lookup failed")
		return nil, err
	}

	return result, nil
}

func (s *epicService) BulkUpdateTasks(ctx context.Context, actor models.Actor, req models.BulkUpdateRequest) ([]models.WorkItem, error) {
	if err := checkIDs(req.IDs); err != nil {
		return nil, err
	}

	changes, err := workItemChanges(models.KindTask, req.Changes)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: no changes given", ErrInvalidInput)
	}

	if err := s.workItems.BulkUpdate(ctx, models.KindTask, req.IDs, changes); err != nil {
		return nil, mapStoreError(err, "tasks")
	}

	updated, err := s.workItems.List(ctx, models.WorkItemFilter{Kind: models.KindTask, IDs: req.IDs})
	if err != nil {
		return nil, mapStoreError(err, "tasks")
	}

	if _, assigned := changes["assignee_id"]; assigned {
		for _, task := range updated {
			s.notifyAssignee(ctx, actor, task, models.NotificationAssigned,
				fmt.Sprintf("You were assigned to task %q", task.Title))
		}
	}

	return updated, nil
}

func (s *epicService) ReorderStories(ctx context.Context, epicID int64, ids []int64) ([]models.WorkItem, error) {
	if _, err := s.get(ctx, models.KindEpic, epicID); err != nil {
		return nil, err
	}
	if err := checkIDs(ids); err != nil {
		return nil, err
	}

	if err := s.workItems.Reorder(ctx, epicID, ids); err != nil {
		// the store reports a mismatched id list as not found
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: ids must list every story of epic %d exactly once", ErrInvalidInput, epicID)
		}
		return nil, mapStoreError(err, "stories")
	}

	stories, err := s.workItems.List(ctx, models.WorkItemFilter{Kind: models.KindStory, ParentID: &epicID})
	if err != nil {
		return nil, mapStoreError(err, "stories")
	}
	return stories, nil
}

func (s *epicService) MoveStoryToPhase(ctx context.Context, actor models.Actor, storyID, phaseID int64) (models.WorkItem, error) {
	story, err := s.get(ctx, models.KindStory, storyID)
	if err != nil {
		return models.WorkItem{}, err
	}

	phase, err := s.checkPhaseChange(ctx, story, &phaseID)
	if err != nil {
		return models.WorkItem{}, err
	}

	if story.PhaseID != nil && *story.PhaseID == phase.ID {
		return story, nil
	}

	moved, err := s.workItems.Update(ctx, storyID, map[string]any{"phase_id": phase.ID})
	if err != nil {
		return models.WorkItem{}, mapStoreError(err, fmt.Sprintf("story %d", storyID))
	}

	s.notifyAssignee(ctx, actor, moved, models.NotificationPhaseChanged,
		fmt.Sprintf("Story %q moved to phase %q", moved.Title, phase.Name))

	return moved, nil
}

// checkPhaseChange guards every path that changes a story's phase: the
// target phase must exist and the parent epic must still be open. A nil
// phaseID clears the phase and only needs the epic check.
func (s *epicService) checkPhaseChange(ctx context.Context, story models.WorkItem, phaseID *int64) (models.Phase, error) {
	var phase models.Phase
	if phaseID != nil {
		var err error
		if phase, err = s.phases.Get(ctx, *phaseID); err != nil {
			return models.Phase{}, mapStoreError(err, fmt.Sprintf("phase %d", *phaseID))
		}
	}

	if story.ParentID != nil {
		epic, err := s.get(ctx, models.KindEpic, *story.ParentID)
		if err != nil {
			return models.Phase{}, err
		}
		if epic.Status.IsClosed() {
			return models.Phase{}, NewApplicationError(http.StatusConflict,
				fmt.Sprintf("epic %d is %s, its stories cannot change phase", epic.ID, epic.Status))
		}
	}

	return phase, nil
}

// notifyAssignee tells the item's assignee about a change made by someone
// else.
func (s *epicService) notifyAssignee(ctx context.Context, actor models.Actor, item models.WorkItem, kind models.NotificationKind, message string) {
	if s.notifications == nil || item.AssigneeID == nil || *item.AssigneeID == actor.UserID {
		return
	}

	s.notifications.Notify(ctx, models.Notification{
		UserID:     *item.AssigneeID,
		Kind:       kind,
		EntityKind: item.Kind,
		EntityID:   item.ID,
		Message:    message,
	})
}

func checkIDs(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: id %d is not valid", ErrInvalidInput, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: id %d listed twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func itemIDs(items []models.WorkItem) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// groupByParent keeps the incoming order within each parent.
func groupByParent(items []models.WorkItem) map[int64][]models.WorkItem {
	out := make(map[int64][]models.WorkItem)
	for _, item := range items {
		if item.ParentID == nil {
			continue
		}
		out[*item.ParentID] = append(out[*item.ParentID], item)
	}
	return out
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
