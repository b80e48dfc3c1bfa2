package http

import (
	"github.com/MKhiriev/go-project-tracker/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestSize(maxBodySize))
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api", func(api chi.Router) {
		// routes without authorization
		api.Group(func(r chi.Router) {
			r.Post("/auth/register", h.register)
			r.Post("/auth/login", h.login)
			r.Get("/health", h.health)
		})

		api.Group(func(r chi.Router) {
			r.Use(h.auth)

			epics := h.services.EpicService

			r.Route("/epics", func(r chi.Router) {
				r.Post("/", h.withActor(h.createWorkItem(models.KindEpic, epics.CreateEpic)))
				r.Get("/", h.listEpics)
				r.Get("/{id}", h.getWorkItem(epics.GetEpic))
				r.Put("/{id}", h.withActor(h.updateWorkItem(models.KindEpic, epics.UpdateEpic)))
				r.Delete("/{id}", h.deleteWorkItem(models.KindEpic, epics.DeleteEpic))
				r.Get("/{id}/hierarchy", h.epicHierarchy)
				r.Post("/{id}/stories/reorder", h.reorderStories)
			})

			r.Route("/stories", func(r chi.Router) {
				r.Post("/", h.withActor(h.createWorkItem(models.KindStory, epics.CreateStory)))
				r.Get("/{id}", h.getWorkItem(epics.GetStory))
				r.Put("/{id}", h.withActor(h.updateWorkItem(models.KindStory, epics.UpdateStory)))
				r.Delete("/{id}", h.deleteWorkItem(models.KindStory, epics.DeleteStory))
				r.Get("/{id}/tasks", h.storyTasks)
				r.Post("/{id}/phase", h.withActor(h.moveStoryToPhase))
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", h.withActor(h.createWorkItem(models.KindTask, epics.CreateTask)))
				r.Patch("/bulk", h.withActor(h.bulkUpdateTasks))
				r.Get("/{id}", h.getWorkItem(epics.GetTask))
				r.Put("/{id}", h.withActor(h.updateWorkItem(models.KindTask, epics.UpdateTask)))
				r.Delete("/{id}", h.deleteWorkItem(models.KindTask, epics.DeleteTask))
			})

			r.Route("/subtasks", func(r chi.Router) {
				r.Post("/", h.withActor(h.createWorkItem(models.KindSubtask, epics.CreateSubtask)))
				r.Get("/{id}", h.getWorkItem(epics.GetSubtask))
				r.Put("/{id}", h.withActor(h.updateWorkItem(models.KindSubtask, epics.UpdateSubtask)))
				r.Delete("/{id}", h.deleteWorkItem(models.KindSubtask, epics.DeleteSubtask))
			})

			r.Get("/phases", h.listPhases)
			r.Post("/phases", h.createPhase)

			r.Route("/customers", func(r chi.Router) {
				r.Post("/", h.createCustomer)
				r.Get("/", h.listCustomers)
				r.Get("/{id}", h.getCustomer)
				r.Put("/{id}", h.updateCustomer)
				r.Delete("/{id}", h.deleteCustomer)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Post("/", h.withActor(h.createTemplate))
				r.Get("/", h.listTemplates)
				r.Get("/{id}", h.getTemplate)
				r.Post("/{id}/instantiate", h.withActor(h.instantiateTemplate))
			})

			r.Post("/comments", h.withActor(h.addComment))
			r.Get("/comments", h.listComments)
			r.Delete("/comments/{id}", h.withActor(h.deleteComment))

			r.Get("/notifications", h.withActor(h.listNotifications))
			r.Post("/notifications/{id}/read", h.withActor(h.markNotificationRead))
		})
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router
}
