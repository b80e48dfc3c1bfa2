package http

import (
	"context"

	"github.com/MKhiriev/go-project-tracker/models"
)

// ─────────────────────────────────────────────
// Func-field service mocks
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	ensureUserFn   func(ctx context.Context, login, password string) error
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) EnsureUser(ctx context.Context, login, password string) error {
	return m.ensureUserFn(ctx, login, password)
}

type itemPayloadFn func(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error)
type itemUpdateFn func(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error)
type itemGetFn func(ctx context.Context, id int64) (models.WorkItem, error)
type itemDeleteFn func(ctx context.Context, id int64) error

// mockEpicService routes the per-kind CRUD methods to one set of funcs; the
// kind argument tells them apart.
type mockEpicService struct {
	createFn func(kind models.EntityKind) itemPayloadFn
	getFn    func(kind models.EntityKind) itemGetFn
	updateFn func(kind models.EntityKind) itemUpdateFn
	deleteFn func(kind models.EntityKind) itemDeleteFn

	listEpicsFn        func(ctx context.Context, filter models.WorkItemFilter, includeChildren bool) ([]models.HierarchyNode, error)
	hierarchyFn        func(ctx context.Context, id int64) (models.HierarchyNode, error)
	storyTasksFn       func(ctx context.Context, storyID int64, includeSubtasks bool) ([]models.TaskWithSubtasks, error)
	bulkUpdateTasksFn  func(ctx context.Context, actor models.Actor, req models.BulkUpdateRequest) ([]models.WorkItem, error)
	reorderStoriesFn   func(ctx context.Context, epicID int64, ids []int64) ([]models.WorkItem, error)
	moveStoryToPhaseFn func(ctx context.Context, actor models.Actor, storyID, phaseID int64) (models.WorkItem, error)
}

func (m *mockEpicService) CreateEpic(ctx context.Context, a models.Actor, p map[string]any) (models.WorkItem, error) {
	return m.createFn(models.KindEpic)(ctx, a, p)
}

func (m *mockEpicService) GetEpic(ctx context.Context, id int64) (models.WorkItem, error) {
	return m.getFn(models.KindEpic)(ctx, id)
}

func (m *mockEpicService) UpdateEpic(ctx context.Context, a models.Actor, id int64, p map[string]any) (models.WorkItem, error) {
	return m.updateFn(models.KindEpic)(ctx, a, id, p)
}

func (m *mockEpicService) DeleteEpic(ctx context.Context, id int64) error {
	return m.deleteFn(models.KindEpic)(ctx, id)
}

func (m *mockEpicService) CreateStory(ctx context.Context, a models.Actor, p map[string]any) (models.WorkItem, error) {
	return m.createFn(models.KindStory)(ctx, a, p)
}

func (m *mockEpicService) GetStory(ctx context.Context, id int64) (models.WorkItem, error) {
	return m.getFn(models.KindStory)(ctx, id)
}

func (m *mockEpicService) UpdateStory(ctx context.Context, a models.Actor, id int64, p map[string]any) (models.WorkItem, error) {
	return m.updateFn(models.KindStory)(ctx, a, id, p)
}

func (m *mockEpicService) DeleteStory(ctx context.Context, id int64) error {
	return m.deleteFn(models.KindStory)(ctx, id)
}

func (m *mockEpicService) CreateTask(ctx context.Context, a models.Actor, p map[string]any) (models.WorkItem, error) {
	return m.createFn(models.KindTask)(ctx, a, p)
}

func (m *mockEpicService) GetTask(ctx context.Context, id int64) (models.WorkItem, error) {
	return m.getFn(models.KindTask)(ctx, id)
}

func (m *mockEpicService) UpdateTask(ctx context.Context, a models.Actor, id int64, p map[string]any) (models.WorkItem, error) {
	return m.updateFn(models.KindTask)(ctx, a, id, p)
}

func (m *mockEpicService) DeleteTask(ctx context.Context, id int64) error {
	return m.deleteFn(models.KindTask)(ctx, id)
}

func (m *mockEpicService) CreateSubtask(ctx context.Context, a models.Actor, p map[string]any) (models.WorkItem, error) {
	return m.createFn(models.KindSubtask)(ctx, a, p)
}

func (m *mockEpicService) GetSubtask(ctx context.Context, id int64) (models.WorkItem, error) {
	return m.getFn(models.KindSubtask)(ctx, id)
}

func (m *mockEpicService) UpdateSubtask(ctx context.Context, a models.Actor, id int64, p map[string]any) (models.WorkItem, error) {
	return m.updateFn(models.KindSubtask)(ctx, a, id, p)
}

func (m *mockEpicService) DeleteSubtask(ctx context.Context, id int64) error {
	return m.deleteFn(models.KindSubtask)(ctx, id)
}

func (m *mockEpicService) ListEpics(ctx context.Context, filter models.WorkItemFilter, includeChildren bool) ([]models.HierarchyNode, error) {
	return m.listEpicsFn(ctx, filter, includeChildren)
}

func (m *mockEpicService) GetEpicHierarchy(ctx context.Context, id int64) (models.HierarchyNode, error) {
	return m.hierarchyFn(ctx, id)
}

func (m *mockEpicService) GetStoryTasks(ctx context.Context, storyID int64, includeSubtasks bool) ([]models.TaskWithSubtasks, error) {
	return m.storyTasksFn(ctx, storyID, includeSubtasks)
}

func (m *mockEpicService) BulkUpdateTasks(ctx context.Context, actor models.Actor, req models.BulkUpdateRequest) ([]models.WorkItem, error) {
	return m.bulkUpdateTasksFn(ctx, actor, req)
}

func (m *mockEpicService) ReorderStories(ctx context.Context, epicID int64, ids []int64) ([]models.WorkItem, error) {
	return m.reorderStoriesFn(ctx, epicID, ids)
}

func (m *mockEpicService) MoveStoryToPhase(ctx context.Context, actor models.Actor, storyID, phaseID int64) (models.WorkItem, error) {
	return m.moveStoryToPhaseFn(ctx, actor, storyID, phaseID)
}

type mockPhaseService struct {
	createPhaseFn func(ctx context.Context, phase models.Phase) (models.Phase, error)
	listPhasesFn  func(ctx context.Context) ([]models.Phase, error)
}

func (m *mockPhaseService) CreatePhase(ctx context.Context, phase models.Phase) (models.Phase, error) {
	return m.createPhaseFn(ctx, phase)
}

func (m *mockPhaseService) ListPhases(ctx context.Context) ([]models.Phase, error) {
	return m.listPhasesFn(ctx)
}

type mockCustomerService struct {
	createFn func(ctx context.Context, customer models.Customer) (models.Customer, error)
	getFn    func(ctx context.Context, id int64) (models.Customer, error)
	listFn   func(ctx context.Context) ([]models.Customer, error)
	updateFn func(ctx context.Context, id int64, payload map[string]any) (models.Customer, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockCustomerService) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	return m.createFn(ctx, customer)
}

func (m *mockCustomerService) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	return m.getFn(ctx, id)
}

func (m *mockCustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return m.listFn(ctx)
}

func (m *mockCustomerService) UpdateCustomer(ctx context.Context, id int64, payload map[string]any) (models.Customer, error) {
	return m.updateFn(ctx, id, payload)
}

func (m *mockCustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockTemplateService struct {
	createFn      func(ctx context.Context, actor models.Actor, template models.Template) (models.Template, error)
	getFn         func(ctx context.Context, id int64) (models.Template, error)
	listFn        func(ctx context.Context, kind models.EntityKind) ([]models.Template, error)
	instantiateFn func(ctx context.Context, actor models.Actor, id int64, overrides map[string]any) (models.WorkItem, error)
}

func (m *mockTemplateService) CreateTemplate(ctx context.Context, actor models.Actor, template models.Template) (models.Template, error) {
	return m.createFn(ctx, actor, template)
}

func (m *mockTemplateService) GetTemplate(ctx context.Context, id int64) (models.Template, error) {
	return m.getFn(ctx, id)
}

func (m *mockTemplateService) ListTemplates(ctx context.Context, kind models.EntityKind) ([]models.Template, error) {
	return m.listFn(ctx, kind)
}

func (m *mockTemplateService) Instantiate(ctx context.Context, actor models.Actor, id int64, overrides map[string]any) (models.WorkItem, error) {
	return m.instantiateFn(ctx, actor, id, overrides)
}

type mockCommentService struct {
	addFn    func(ctx context.Context, actor models.Actor, comment models.Comment) (models.Comment, error)
	listFn   func(ctx context.Context, kind models.EntityKind, entityID int64) ([]models.Comment, error)
	deleteFn func(ctx context.Context, actor models.Actor, id int64) error
}

func (m *mockCommentService) AddComment(ctx context.Context, actor models.Actor, comment models.Comment) (models.Comment, error) {
	return m.addFn(ctx, actor, comment)
}

func (m *mockCommentService) ListComments(ctx context.Context, kind models.EntityKind, entityID int64) ([]models.Comment, error) {
	return m.listFn(ctx, kind, entityID)
}

func (m *mockCommentService) DeleteComment(ctx context.Context, actor models.Actor, id int64) error {
	return m.deleteFn(ctx, actor, id)
}

type mockNotificationService struct {
	listFn     func(ctx context.Context, actor models.Actor, unreadOnly bool) ([]models.Notification, error)
	markReadFn func(ctx context.Context, actor models.Actor, id int64) error
}

func (m *mockNotificationService) Notify(context.Context, models.Notification) {}

func (m *mockNotificationService) ListNotifications(ctx context.Context, actor models.Actor, unreadOnly bool) ([]models.Notification, error) {
	return m.listFn(ctx, actor, unreadOnly)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, actor models.Actor, id int64) error {
	return m.markReadFn(ctx, actor, id)
}

func (m *mockNotificationService) Pending(context.Context, int) ([]models.Notification, error) {
	return nil, nil
}

func (m *mockNotificationService) MarkDelivered(context.Context, []int64) error {
	return nil
}
