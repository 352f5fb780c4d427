package jobs

import (
	"log"
	"time"

	"autogenics-server/services"
)

// CleanupJob prunes expired and revoked refresh tokens in the background.
type CleanupJob struct {
	jwtService *services.JWTService
	stopChan   chan bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob() *CleanupJob {
	return &CleanupJob{
		jwtService: services.NewJWTService(),
		stopChan:   make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("🚀 Token cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Token cleanup job stopped")
}

// run executes the cleanup job
func (j *CleanupJob) run() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	// Run once at startup so restarts don't leave stale rows around
	j.cleanup()

	for {
		select {
		case <-ticker.C:
			j.cleanup()
		case <-j.stopChan:
			return
		}
	}
}

// cleanup removes refresh tokens that can no longer be redeemed
func (j *CleanupJob) cleanup() {
	if err := j.jwtService.CleanupExpiredTokens(); err != nil {
		log.Printf("❌ Token cleanup failed: %v", err)
	}
}
