package assignments

import (
	"github.com/gofiber/fiber/v2"

	"banrai-schools/app/routes/auth"
)

// SetupRoutes registers the assignment engine endpoints. Mutating routes sit
// behind operator authentication; read-only routes are open.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/assignments")

	api.Get("/pending/:date", PendingAssignmentsAPI)
	api.Get("/report/:date", ReportAPI)

	api.Post("/run", auth.RequireAuth, RunAssignmentsAPI)
	api.Post("/reconcile", auth.RequireAuth, ReconcileAPI)
	api.Post("/expire", auth.RequireAuth, ExpireAPI)
}
