package service

import (
	"context"
	"fmt"

	"daily_diet/internal/models"
	"daily_diet/internal/repository"
)

// ComputeAdherence folds an ordered meal sequence into adherence metrics.
// Pure function: no I/O, no re-sorting. The caller must supply the meals in
// chronological order (ties by insertion order); the streak is defined over
// that sequence alone, regardless of time gaps between meals.
func ComputeAdherence(meals []models.Meal) models.AdherenceMetrics {
	var (
		m      models.AdherenceMetrics
		streak int
	)

	for _, meal := range meals {
		m.Total++
		if meal.IsOnDailyDiet {
			m.OnDietCount++
			streak++
			continue
		}
		m.OffDietCount++
		if streak > m.LongestOnDietStreak {
			m.LongestOnDietStreak = streak
		}
		streak = 0
	}

	// The best streak may be the trailing one, which never hits a reset
	// point inside the loop.
	if streak > m.LongestOnDietStreak {
		m.LongestOnDietStreak = streak
	}
	return m
}

// AdherenceService loads a user's full meal history and runs the analyzer
// over it.
type AdherenceService struct {
	meals repository.Meals
}

func NewAdherenceService(meals repository.Meals) *AdherenceService {
	return &AdherenceService{meals: meals}
}

var _ Adherence = (*AdherenceService)(nil)

func (s *AdherenceService) Metrics(ctx context.Context, owner models.Identity) (models.AdherenceMetrics, error) {
	// Oldest first: the analyzer's streak is chronological.
	meals, err := s.meals.ListByOwner(ctx, owner.ID, false)
	if err != nil {
		return models.AdherenceMetrics{}, fmt.Errorf("load meals for metrics: %w", err)
	}
	return ComputeAdherence(meals), nil
}
