package utils

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"learnhub/database"
)

// InitializeStatsScheduler starts the daily catalog stats job.
func InitializeStatsScheduler() {
	c := cron.New()

	// Run daily at midnight
	c.AddFunc("0 0 * * *", LogCatalogStats)

	c.Start()
	log.Println("[STATS-SCHEDULER] Catalog stats scheduler started - runs daily at midnight")
}

// LogCatalogStats logs the published course count and the total video
// views across the catalog.
func LogCatalogStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	published, err := database.Stores.Courses.CountPublished(ctx)
	if err != nil {
		log.Printf("[STATS-SCHEDULER] Error counting published courses: %v", err)
		return
	}
	views, err := database.Stores.Videos.TotalViews(ctx)
	if err != nil {
		log.Printf("[STATS-SCHEDULER] Error summing video views: %v", err)
		return
	}

	log.Printf("[STATS-SCHEDULER] Catalog stats: %d published courses, %d total video views", published, views)
}
