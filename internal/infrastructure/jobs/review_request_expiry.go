package jobs

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// reviewRequestExpiryStore is the slice of the repository the job needs
type reviewRequestExpiryStore interface {
	ListExpiredActive(ctx context.Context, before time.Time, limit int) ([]*entities.ReviewRequest, error)
	ExpireMany(ctx context.Context, ids []primitive.ObjectID) error
}

// ReviewRequestExpiryJob closes review invitations whose window has passed
type ReviewRequestExpiryJob struct {
	repo     reviewRequestExpiryStore
	interval time.Duration
	stop     chan struct{}
}

func NewReviewRequestExpiryJob(repo reviewRequestExpiryStore) *ReviewRequestExpiryJob {
	return &ReviewRequestExpiryJob{
		repo:     repo,
		interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *ReviewRequestExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting review request expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Review request expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Review request expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredRequests(ctx)
		}
	}
}

func (j *ReviewRequestExpiryJob) Stop() {
	close(j.stop)
}

func (j *ReviewRequestExpiryJob) processExpiredRequests(ctx context.Context) {
	expired, err := j.repo.ListExpiredActive(ctx, time.Now(), 100)
	if err != nil {
		log.Printf("❌ Error fetching expired review requests: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	var ids []primitive.ObjectID
	for _, req := range expired {
		ids = append(ids, req.ID)
	}

	if err := j.repo.ExpireMany(ctx, ids); err != nil {
		log.Printf("❌ Error expiring review requests: %v", err)
		return
	}

	log.Printf("✅ Expired %d review requests", len(expired))
}
