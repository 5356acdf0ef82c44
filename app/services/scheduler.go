package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/Kevin-innovation/dlab-dashboard/app/database"
)

// Stored feedback is capped per teacher; older entries are swept nightly.
const maxFeedbackHistory = 100

// StartScheduler runs nightly maintenance in the background: expired
// session cleanup, attendance progress reconciliation and feedback history
// trimming.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started, nightly maintenance at 00:05")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()
			if now.Hour() != 0 || now.Minute() != 5 {
				continue
			}

			log.Println("Running nightly maintenance...")

			if n, err := database.DeleteExpiredSessions(db); err != nil {
				log.Printf("Error sweeping expired sessions: %v", err)
			} else if n > 0 {
				log.Printf("Removed %d expired session(s)", n)
			}

			if err := ReconcileAllProgress(db); err != nil {
				log.Printf("Error reconciling attendance progress: %v", err)
			}

			if n, err := database.TrimFeedbackHistory(db, maxFeedbackHistory); err != nil {
				log.Printf("Error trimming feedback history: %v", err)
			} else if n > 0 {
				log.Printf("Trimmed %d feedback history row(s)", n)
			}
		}
	}()
}
