// internal/handlers/router.go
package handlers

import (
	"github.com/go-chi/chi/v5"

	"propcheck/internal/handlers/admin"
	"propcheck/internal/handlers/inspections"
	"propcheck/internal/handlers/inspectors"
	"propcheck/internal/handlers/notifications"
	"propcheck/internal/handlers/properties"
	"propcheck/internal/inspection"
	mw "propcheck/internal/middleware"
	"propcheck/internal/models"
	"propcheck/internal/photos"
	"propcheck/internal/repo"
)

// RegisterRoutes mounts the authenticated API surface. Auth endpoints
// (/auth/*) are mounted separately in main so they stay outside
// RequireAuth.
func RegisterRoutes(r chi.Router, rp repo.Repo, svc *inspection.Service, store photos.Store) {
	insp := inspections.New(rp, svc, store)
	props := properties.New(rp)
	team := inspectors.New(rp)
	notif := notifications.New(rp)

	staff := mw.RequireRole(models.RoleInspector, models.RoleSupervisor, models.RoleAdmin)
	supervise := mw.RequireRole(models.RoleSupervisor, models.RoleAdmin)
	adminOnly := mw.RequireRole(models.RoleAdmin)

	r.Route("/api", func(api chi.Router) {
		// Templates are static reference data; anyone may read them, but
		// an attached session still flows through for request logging.
		api.With(mw.OptionalAuth(rp)).Get("/checklist/template", insp.Template)

		api.Group(func(api chi.Router) {
			api.Use(mw.RequireAuth(rp))

			api.Route("/inspections", func(ir chi.Router) {
				ir.Get("/", insp.List)
				ir.With(supervise).Post("/schedule", insp.Schedule)
				ir.With(staff).Patch("/items/{itemID}", insp.PatchItem)
				ir.Route("/{id}", func(one chi.Router) {
					one.Get("/", insp.Get)
					one.With(staff).Put("/", insp.Save)
					one.With(staff).Post("/start", insp.Start)
					one.With(staff).Post("/complete", insp.Complete)
					one.With(supervise).Post("/cancel", insp.Cancel)
					one.With(adminOnly).Delete("/", insp.Delete)
				})
			})

			api.With(staff).Post("/photos/upload/{inspectionID}", insp.Upload)

			api.Route("/properties", func(pr chi.Router) {
				pr.Get("/", props.List)
				pr.Get("/{id}", props.Get)
				pr.With(supervise).Post("/", props.Create)
				pr.With(supervise).Put("/{id}", props.Update)
				pr.With(adminOnly).Delete("/{id}", props.Delete)
			})

			api.Route("/inspectors", func(tr chi.Router) {
				tr.Get("/", team.List)
				tr.Get("/{id}", team.Get)
				tr.With(supervise).Post("/", team.Create)
				tr.With(supervise).Put("/{id}", team.Update)
			})

			api.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", notif.List)
				nr.Post("/{id}/read", notif.MarkRead)
			})
		})
	})

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(mw.RequireAuth(rp), adminOnly)
		ar.Get("/sessions", admin.ListSessionsHandler())
		ar.Get("/users", admin.ListUsersHandler(rp))
		ar.Post("/users/role", admin.SetRoleHandler(rp))
		ar.Post("/users/deny", admin.DenyUserHandler())
		ar.Post("/users/allow", admin.AllowUserHandler())
	})
}
