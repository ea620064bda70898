package assignments

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"banrai-schools/app/config"
	"banrai-schools/app/database"
	"banrai-schools/app/models"
	"banrai-schools/app/services"
)

// RunAssignmentsAPI triggers one assignment run for a date: derives absence
// periods from the leave intake, assigns substitutes, stages the records as
// pending and returns the operator report.
func RunAssignmentsAPI(c *fiber.Ctx) error {
	type RunRequest struct {
		Date string `json:"date"`
	}

	var req RunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	date, err := normalizeDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Date must be YYYY-MM-DD"})
	}

	db := config.GetDB()
	cfg := config.GetEngine()

	ref, err := database.LoadReferenceData(db)
	if err != nil {
		log.Printf("Reference data failed to load: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Reference data unavailable"})
	}

	leaves, err := database.GetLeaveRequestsForDate(db, date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load leave requests"})
	}

	history, err := database.LoadSubstitutionHistory(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load substitution history"})
	}
	term, err := database.GetCurrentTerm(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load current term"})
	}

	fairness := services.BuildFairnessSnapshot(history, term)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	scorer := services.NewScorer(cfg.Weights, services.FairnessWindow(cfg.FairnessWindow), rng)
	engine := services.NewEngine(cfg.DailyCap, scorer)

	periods := services.BuildAbsencePeriods(leaves, ref.Schedule)
	records := engine.AssignSubstitutes(periods, services.AbsentTeachersByDate(leaves), ref, fairness)

	inserted, err := database.InsertPendingAssignments(db, records)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to stage assignments"})
	}
	if inserted < len(records) {
		log.Printf("Run for %s: %d of %d records already staged, kept existing",
			date, len(records)-inserted, len(records))
	}

	staged, err := database.GetAssignmentsByDate(db, date, models.AssignmentPending)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to read staged assignments"})
	}

	gaps := 0
	for i := range staged {
		if !staged[i].HasSubstitute() {
			gaps++
		}
	}
	if gaps > 0 {
		log.Printf("Run for %s: %d period(s) without substitute", date, gaps)
	}

	return c.JSON(fiber.Map{
		"date":          date,
		"periods":       len(staged),
		"staged":        inserted,
		"coverage_gaps": gaps,
		"report":        services.GenerateReport(date, staged, ref),
	})
}

// PendingAssignmentsAPI lists the staged records for a date.
func PendingAssignmentsAPI(c *fiber.Ctx) error {
	date, err := normalizeDate(c.Params("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Date must be YYYY-MM-DD"})
	}

	records, err := database.GetAssignmentsByDate(config.GetDB(), date, models.AssignmentPending)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load pending assignments"})
	}
	return c.JSON(fiber.Map{"date": date, "assignments": records})
}

// ReportAPI re-renders the report for a date from the staged records.
func ReportAPI(c *fiber.Ctx) error {
	date, err := normalizeDate(c.Params("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Date must be YYYY-MM-DD"})
	}

	db := config.GetDB()
	ref, err := database.LoadReferenceData(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Reference data unavailable"})
	}
	records, err := database.GetAssignmentsByDate(db, date, "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load assignments"})
	}
	return c.JSON(fiber.Map{"date": date, "report": services.GenerateReport(date, records, ref)})
}

// ReconcileAPI ingests a possibly hand-edited report message, detects changes
// against the pending records, applies the ones clearing the confidence gate,
// finalizes the touched records and returns the confirmation summary.
func ReconcileAPI(c *fiber.Ctx) error {
	type ReconcileRequest struct {
		Date    string `json:"date"`
		Message string `json:"message"`
	}

	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	date, err := normalizeDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Date must be YYYY-MM-DD"})
	}
	if req.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Message is required"})
	}

	db := config.GetDB()
	cfg := config.GetEngine()

	ref, err := database.LoadReferenceData(db)
	if err != nil {
		log.Printf("Reference data failed to load: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Reference data unavailable"})
	}
	pending, err := database.GetAssignmentsByDate(db, date, models.AssignmentPending)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load pending assignments"})
	}

	resolver := services.NewResolver(cfg.Resolver, ref.NameToID, buildAIMatcher(cfg))

	parsed, warnings := services.ParseEditedReport(req.Message)
	changes := services.DetectChanges(c.UserContext(), date, parsed, warnings, pending, resolver, cfg.Gate, ref)

	var conflicts []models.AssignmentKey
	for _, a := range changes.Applied {
		var sub *string
		if a.NewSubstitute != "" {
			s := a.NewSubstitute
			sub = &s
		}
		err := database.UpdatePendingSubstitute(db, a.Key, sub)
		if errors.Is(err, database.ErrPersistenceConflict) {
			conflicts = append(conflicts, a.Key)
			continue
		}
		if err != nil {
			log.Printf("Failed to apply change for %v: %v", a.Key, err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to apply changes"})
		}
	}

	finalized, finalizeConflicts, err := database.FinalizeAssignments(db, changes.FinalizeKeys())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to finalize assignments"})
	}
	conflicts = append(conflicts, finalizeConflicts...)
	for _, k := range conflicts {
		changes.Notes = append(changes.Notes, fmt.Sprintf(
			"period %d on %s for %s is already finalized, change not applied",
			k.Period, k.Day, ref.DisplayName(k.AbsentTeacherID)))
	}

	return c.JSON(fiber.Map{
		"date":        date,
		"summary":     services.GenerateConfirmationSummary(changes, ref),
		"applied":     changes.Applied,
		"suggestions": changes.Suggestions,
		"rejected":    changes.Rejected,
		"unmatched":   changes.Unmatched,
		"conflicts":   conflicts,
		"finalized":   len(finalized),
		"notes":       changes.Notes,
	})
}

// ExpireAPI manually expires stale pending assignments, the same operation
// the scheduler runs nightly.
func ExpireAPI(c *fiber.Ctx) error {
	expired, err := database.ExpireOldPending(config.GetDB(), config.GetEngine().PendingExpiryDays)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to expire pending assignments"})
	}
	return c.JSON(fiber.Map{"expired": expired})
}

func buildAIMatcher(cfg *config.EngineConfig) services.AIMatcher {
	if !cfg.AI.Enabled {
		return nil
	}
	apiKey := os.Getenv("AI_API_KEY")
	if apiKey == "" {
		log.Println("AI matching enabled but AI_API_KEY is not set, Tier 4 disabled")
		return nil
	}
	return services.NewOpenRouterMatcher(cfg.AI.Endpoint, apiKey, cfg.AI.Model, cfg.AI.Timeout)
}

func normalizeDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return d.Format("2006-01-02"), nil
}
