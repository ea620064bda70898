package services

import (
	"database/sql"
	"log"
	"time"

	"banrai-schools/app/database"
)

// StartScheduler starts the background task scheduler. Pending assignments
// older than the expiry window are marked expired (never deleted) once a day.
func StartScheduler(db *sql.DB, expiryDays int) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 11:00 PM (23:00)
			if now.Hour() == 23 && now.Minute() == 0 {
				log.Println("Triggering scheduled tasks [23:00]...")

				expired, err := database.ExpireOldPending(db, expiryDays)
				if err != nil {
					log.Printf("Error expiring pending assignments: %v", err)
					continue
				}
				if expired > 0 {
					log.Printf("Expired %d stale pending assignments", expired)
				}
			}
		}
	}()
}
