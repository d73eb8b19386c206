package usecase

import (
	"context"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"strings"
	"time"
)

type planUsecase struct {
	planRepo     domain.LearningPlanRepository
	progressRepo domain.ProgressUpdateRepository
}

func NewLearningPlanUsecase(planRepo domain.LearningPlanRepository, progressRepo domain.ProgressUpdateRepository) domain.LearningPlanUsecase {
	return &planUsecase{planRepo: planRepo, progressRepo: progressRepo}
}

func (u *planUsecase) Create(ctx context.Context, plan *domain.LearningPlan, ownerEmail string) (*domain.LearningPlan, error) {
	if strings.TrimSpace(plan.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	plan.UserEmail = ownerEmail
	plan.Progress = domain.TopicProgress(plan.Topics)
	plan.CreatedAt = time.Now()
	if err := u.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (u *planUsecase) GetByID(ctx context.Context, id string) (*domain.LearningPlan, error) {
	plan, err := u.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Learning plan not found")
	}
	return plan, nil
}

func (u *planUsecase) GetUserPlans(ctx context.Context, ownerEmail string) ([]domain.LearningPlan, error) {
	return u.planRepo.ListByOwner(ctx, ownerEmail)
}

func (u *planUsecase) GetPublicPlans(ctx context.Context) ([]domain.LearningPlan, error) {
	return u.planRepo.ListPublic(ctx)
}

// Update replaces the editable fields and recomputes progress from the new
// topic list with the same rounding rule as Create.
func (u *planUsecase) Update(ctx context.Context, id string, plan *domain.LearningPlan, actorEmail string) (*domain.LearningPlan, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actorEmail, existing.UserEmail) {
		return nil, apperror.Forbidden("You can only update your own learning plans")
	}
	if strings.TrimSpace(plan.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}

	existing.Title = plan.Title
	existing.Description = plan.Description
	existing.Topics = plan.Topics
	existing.StartDate = plan.StartDate
	existing.EstimatedEndDate = plan.EstimatedEndDate
	existing.Public = plan.Public
	existing.Progress = domain.TopicProgress(plan.Topics)
	if err := u.planRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (u *planUsecase) Delete(ctx context.Context, id string, actorEmail string) error {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(actorEmail, existing.UserEmail) {
		return apperror.Forbidden("You can only delete your own learning plans")
	}
	return u.planRepo.Delete(ctx, id)
}

// RecordProgressUpdate persists the update row and sets the parent plan's
// displayed progress to the submitted percentage. The delete path averages
// instead; the two deliberately stay distinct.
func (u *planUsecase) RecordProgressUpdate(ctx context.Context, update *domain.ProgressUpdate, actorEmail string) (*domain.ProgressUpdate, error) {
	if update.ProgressPercentage < 0 || update.ProgressPercentage > 100 {
		return nil, apperror.BadRequest("Progress percentage must be between 0 and 100")
	}

	plan, err := u.GetByID(ctx, update.PlanID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actorEmail, plan.UserEmail) {
		return nil, apperror.Forbidden("You can only record progress on your own learning plans")
	}

	if strings.TrimSpace(update.Title) == "" {
		update.Title = "Progress Update"
	}
	if strings.TrimSpace(update.Description) == "" {
		update.Description = "Updated progress for learning plan"
	}
	update.UserEmail = actorEmail
	update.CreatedAt = time.Now()

	if err := u.progressRepo.Create(ctx, update); err != nil {
		return nil, err
	}
	if err := u.planRepo.SetProgress(ctx, plan.ID, update.ProgressPercentage); err != nil {
		return nil, err
	}
	return update, nil
}

// DeleteProgressUpdate removes the row and recomputes the parent plan's
// progress as the mean of the owner's remaining updates for that plan, or 0
// when none remain.
func (u *planUsecase) DeleteProgressUpdate(ctx context.Context, id string, actorEmail string) error {
	update, err := u.progressRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if update == nil {
		return apperror.NotFound("Progress update not found")
	}
	if !domain.CanMutate(actorEmail, update.UserEmail) {
		return apperror.Forbidden("You can only delete your own progress updates")
	}

	if err := u.progressRepo.Delete(ctx, id); err != nil {
		return err
	}

	remaining, err := u.progressRepo.ListByPlanAndOwner(ctx, update.PlanID, update.UserEmail)
	if err != nil {
		return err
	}
	progress := 0
	if len(remaining) > 0 {
		sum := 0
		for _, r := range remaining {
			sum += r.ProgressPercentage
		}
		progress = int(float64(sum)/float64(len(remaining)) + 0.5)
	}
	return u.planRepo.SetProgress(ctx, update.PlanID, progress)
}

func (u *planUsecase) ListProgressUpdates(ctx context.Context, planID, actorEmail string) ([]domain.ProgressUpdate, error) {
	return u.progressRepo.ListByPlanAndOwner(ctx, planID, actorEmail)
}

func (u *planUsecase) ListAllProgressUpdates(ctx context.Context, actorEmail string) ([]domain.ProgressUpdate, error) {
	return u.progressRepo.ListByOwner(ctx, actorEmail)
}
