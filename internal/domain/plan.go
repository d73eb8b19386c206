package domain

import (
	"context"
	"time"
)

type Topic struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Completed   bool   `bson:"completed" json:"completed"`
}

type LearningPlan struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Title            string    `bson:"title" json:"title"`
	Description      string    `bson:"description,omitempty" json:"description,omitempty"`
	Topics           []Topic   `bson:"topics" json:"topics"`
	Progress         int       `bson:"progress" json:"progress"`
	StartDate        time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EstimatedEndDate time.Time `bson:"estimated_end_date,omitempty" json:"estimated_end_date,omitempty"`
	UserEmail        string    `bson:"user_email" json:"user_email"`
	Public           bool      `bson:"public" json:"public"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

type ProgressUpdate struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	PlanID             string    `bson:"plan_id" json:"plan_id"`
	Title              string    `bson:"title,omitempty" json:"title,omitempty"`
	Description        string    `bson:"description,omitempty" json:"description,omitempty"`
	ProgressPercentage int       `bson:"progress_percentage" json:"progress_percentage"`
	UserEmail          string    `bson:"user_email" json:"user_email"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

// TopicProgress derives the plan percentage from its topic list:
// round(100 * completed / total), 0 for an empty list.
func TopicProgress(topics []Topic) int {
	if len(topics) == 0 {
		return 0
	}
	completed := 0
	for _, t := range topics {
		if t.Completed {
			completed++
		}
	}
	return int((float64(completed)/float64(len(topics)))*100 + 0.5)
}

type LearningPlanRepository interface {
	Create(ctx context.Context, plan *LearningPlan) error
	GetByID(ctx context.Context, id string) (*LearningPlan, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]LearningPlan, error)
	ListPublic(ctx context.Context) ([]LearningPlan, error)
	Update(ctx context.Context, plan *LearningPlan) error
	SetProgress(ctx context.Context, id string, progress int) error
	Delete(ctx context.Context, id string) error
}

type ProgressUpdateRepository interface {
	Create(ctx context.Context, update *ProgressUpdate) error
	GetByID(ctx context.Context, id string) (*ProgressUpdate, error)
	ListByPlanAndOwner(ctx context.Context, planID, ownerEmail string) ([]ProgressUpdate, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]ProgressUpdate, error)
	Delete(ctx context.Context, id string) error
}

type LearningPlanUsecase interface {
	Create(ctx context.Context, plan *LearningPlan, ownerEmail string) (*LearningPlan, error)
	GetByID(ctx context.Context, id string) (*LearningPlan, error)
	GetUserPlans(ctx context.Context, ownerEmail string) ([]LearningPlan, error)
	GetPublicPlans(ctx context.Context) ([]LearningPlan, error)
	Update(ctx context.Context, id string, plan *LearningPlan, actorEmail string) (*LearningPlan, error)
	Delete(ctx context.Context, id string, actorEmail string) error
	RecordProgressUpdate(ctx context.Context, update *ProgressUpdate, actorEmail string) (*ProgressUpdate, error)
	DeleteProgressUpdate(ctx context.Context, id string, actorEmail string) error
	ListProgressUpdates(ctx context.Context, planID, actorEmail string) ([]ProgressUpdate, error)
	ListAllProgressUpdates(ctx context.Context, actorEmail string) ([]ProgressUpdate, error)
}
