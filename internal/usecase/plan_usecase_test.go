package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/internal/usecase"
	"go-cookmate-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func topics(completed, total int) []domain.Topic {
	ts := make([]domain.Topic, total)
	for i := range ts {
		ts[i] = domain.Topic{Title: "Topic", Completed: i < completed}
	}
	return ts
}

func TestPlanProgressFromTopics(t *testing.T) {
	ctx := context.Background()

	t.Run("Should derive progress from the topic list on create", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, new(MockProgressRepo))

		planRepo.On("Create", ctx, mock.AnythingOfType("*domain.LearningPlan")).Return(nil)

		plan, err := uc.Create(ctx, &domain.LearningPlan{Title: "Thai Basics", Topics: topics(1, 4)}, "owner@example.com")
		assert.NoError(t, err)
		assert.Equal(t, 25, plan.Progress)
		assert.Equal(t, "owner@example.com", plan.UserEmail)
	})

	t.Run("Should recompute progress when the topic list changes", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, new(MockProgressRepo))

		existing := &domain.LearningPlan{ID: "plan1", Title: "Thai Basics", UserEmail: "owner@example.com", Topics: topics(1, 4), Progress: 25}
		planRepo.On("GetByID", ctx, "plan1").Return(existing, nil)
		planRepo.On("Update", ctx, mock.AnythingOfType("*domain.LearningPlan")).Return(nil)

		plan, err := uc.Update(ctx, "plan1", &domain.LearningPlan{Title: "Thai Basics", Topics: topics(3, 4)}, "owner@example.com")
		assert.NoError(t, err)
		assert.Equal(t, 75, plan.Progress)
	})

	t.Run("Should treat an empty topic list as zero progress", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, new(MockProgressRepo))

		planRepo.On("Create", ctx, mock.AnythingOfType("*domain.LearningPlan")).Return(nil)

		plan, err := uc.Create(ctx, &domain.LearningPlan{Title: "Empty Plan"}, "owner@example.com")
		assert.NoError(t, err)
		assert.Equal(t, 0, plan.Progress)
	})

	t.Run("Should forbid updating someone else's plan", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, new(MockProgressRepo))

		existing := &domain.LearningPlan{ID: "plan1", Title: "Thai Basics", UserEmail: "owner@example.com"}
		planRepo.On("GetByID", ctx, "plan1").Return(existing, nil)

		_, err := uc.Update(ctx, "plan1", &domain.LearningPlan{Title: "Hijacked"}, "intruder@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only update your own learning plans")
		planRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})
}

func TestRecordProgressUpdate(t *testing.T) {
	ctx := context.Background()
	planFixture := func() *domain.LearningPlan {
		return &domain.LearningPlan{ID: "plan1", Title: "Thai Basics", UserEmail: "owner@example.com", Progress: 25}
	}

	t.Run("Should set plan progress to the submitted percentage", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		progressRepo := new(MockProgressRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, progressRepo)

		planRepo.On("GetByID", ctx, "plan1").Return(planFixture(), nil)
		progressRepo.On("Create", ctx, mock.AnythingOfType("*domain.ProgressUpdate")).Return(nil)
		planRepo.On("SetProgress", ctx, "plan1", 60).Return(nil)

		update, err := uc.RecordProgressUpdate(ctx, &domain.ProgressUpdate{PlanID: "plan1", ProgressPercentage: 60}, "owner@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "owner@example.com", update.UserEmail)
		planRepo.AssertCalled(t, "SetProgress", ctx, "plan1", 60)
	})

	t.Run("Should fill in default title and description", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		progressRepo := new(MockProgressRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, progressRepo)

		planRepo.On("GetByID", ctx, "plan1").Return(planFixture(), nil)
		progressRepo.On("Create", ctx, mock.AnythingOfType("*domain.ProgressUpdate")).Return(nil)
		planRepo.On("SetProgress", ctx, "plan1", 10).Return(nil)

		update, err := uc.RecordProgressUpdate(ctx, &domain.ProgressUpdate{PlanID: "plan1", ProgressPercentage: 10}, "owner@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "Progress Update", update.Title)
		assert.Equal(t, "Updated progress for learning plan", update.Description)
	})

	t.Run("Should reject a percentage outside 0-100", func(t *testing.T) {
		uc := usecase.NewLearningPlanUsecase(new(MockPlanRepo), new(MockProgressRepo))

		_, err := uc.RecordProgressUpdate(ctx, &domain.ProgressUpdate{PlanID: "plan1", ProgressPercentage: 101}, "owner@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "between 0 and 100")

		_, err = uc.RecordProgressUpdate(ctx, &domain.ProgressUpdate{PlanID: "plan1", ProgressPercentage: -1}, "owner@example.com")
		assert.Error(t, err)
	})

	t.Run("Should forbid recording progress on someone else's plan", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		progressRepo := new(MockProgressRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, progressRepo)

		planRepo.On("GetByID", ctx, "plan1").Return(planFixture(), nil)

		_, err := uc.RecordProgressUpdate(ctx, &domain.ProgressUpdate{PlanID: "plan1", ProgressPercentage: 50}, "intruder@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own learning plans")
		progressRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})
}

func TestDeleteProgressUpdate(t *testing.T) {
	ctx := context.Background()
	updateFixture := func() *domain.ProgressUpdate {
		return &domain.ProgressUpdate{ID: "up1", PlanID: "plan1", UserEmail: "owner@example.com", ProgressPercentage: 80}
	}

	t.Run("Should reset plan progress to the mean of the remaining updates", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		progressRepo := new(MockProgressRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, progressRepo)

		progressRepo.On("GetByID", ctx, "up1").Return(updateFixture(), nil)
		progressRepo.On("Delete", ctx, "up1").Return(nil)
		progressRepo.On("ListByPlanAndOwner", ctx, "plan1", "owner@example.com").Return([]domain.ProgressUpdate{
			{ProgressPercentage: 40},
			{ProgressPercentage: 61},
		}, nil)
		planRepo.On("SetProgress", ctx, "plan1", 51).Return(nil)

		err := uc.DeleteProgressUpdate(ctx, "up1", "owner@example.com")
		assert.NoError(t, err)
		planRepo.AssertCalled(t, "SetProgress", ctx, "plan1", 51)
	})

	t.Run("Should reset plan progress to zero when no updates remain", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		progressRepo := new(MockProgressRepo)
		uc := usecase.NewLearningPlanUsecase(planRepo, progressRepo)

		progressRepo.On("GetByID", ctx, "up1").Return(updateFixture(), nil)
		progressRepo.On("Delete", ctx, "up1").Return(nil)
		progressRepo.On("ListByPlanAndOwner", ctx, "plan1", "owner@example.com").Return([]domain.ProgressUpdate{}, nil)
		planRepo.On("SetProgress", ctx, "plan1", 0).Return(nil)

		err := uc.DeleteProgressUpdate(ctx, "up1", "owner@example.com")
		assert.NoError(t, err)
		planRepo.AssertCalled(t, "SetProgress", ctx, "plan1", 0)
	})

	t.Run("Should forbid deleting someone else's update", func(t *testing.T) {
		progressRepo := new(MockProgressRepo)
		uc := usecase.NewLearningPlanUsecase(new(MockPlanRepo), progressRepo)

		progressRepo.On("GetByID", ctx, "up1").Return(updateFixture(), nil)

		err := uc.DeleteProgressUpdate(ctx, "up1", "intruder@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only delete your own progress updates")
		progressRepo.AssertNotCalled(t, "Delete", ctx, "up1")
	})

	t.Run("Should report 404 for a missing update", func(t *testing.T) {
		progressRepo := new(MockProgressRepo)
		uc := usecase.NewLearningPlanUsecase(new(MockPlanRepo), progressRepo)

		progressRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

		err := uc.DeleteProgressUpdate(ctx, "ghost", "owner@example.com")
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
	})
}
