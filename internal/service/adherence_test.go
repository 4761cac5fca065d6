package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"daily_diet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mealsFromFlags builds a chronological meal sequence from diet flags.
func mealsFromFlags(flags []bool) []models.Meal {
	base := time.Date(2024, time.March, 22, 8, 0, 0, 0, time.UTC)
	meals := make([]models.Meal, len(flags))
	for i, onDiet := range flags {
		meals[i] = models.Meal{
			ID:            "meal-" + string(rune('a'+i%26)),
			UserID:        "user-1",
			Name:          "meal",
			Date:          base.Add(time.Duration(i) * time.Hour),
			IsOnDailyDiet: onDiet,
		}
	}
	return meals
}

// longestRun is the reference implementation: length of the longest run of
// true in the sequence, computed independently of the production code.
func longestRun(flags []bool) int {
	best, cur := 0, 0
	for _, f := range flags {
		if !f {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}

func TestComputeAdherence_EmptyInput(t *testing.T) {
	t.Parallel()

	got := ComputeAdherence(nil)
	assert.Equal(t, models.AdherenceMetrics{}, got)
}

// Regression: a trailing on-diet run that is the longest must be captured
// even though it never hits a reset point inside the loop.
func TestComputeAdherence_TrailingStreak(t *testing.T) {
	t.Parallel()

	got := ComputeAdherence(mealsFromFlags([]bool{false, true, true, true}))
	assert.Equal(t, 3, got.LongestOnDietStreak)
}

func TestComputeAdherence_KnownSequences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags []bool
		want  models.AdherenceMetrics
	}{
		{
			name:  "mixed with best streak in the middle",
			flags: []bool{true, true, false, true},
			want:  models.AdherenceMetrics{Total: 4, OnDietCount: 3, OffDietCount: 1, LongestOnDietStreak: 2},
		},
		{
			name:  "all on diet",
			flags: []bool{true, true, true},
			want:  models.AdherenceMetrics{Total: 3, OnDietCount: 3, OffDietCount: 0, LongestOnDietStreak: 3},
		},
		{
			name:  "all off diet",
			flags: []bool{false, false},
			want:  models.AdherenceMetrics{Total: 2, OnDietCount: 0, OffDietCount: 2, LongestOnDietStreak: 0},
		},
		{
			name:  "single on-diet meal",
			flags: []bool{true},
			want:  models.AdherenceMetrics{Total: 1, OnDietCount: 1, OffDietCount: 0, LongestOnDietStreak: 1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ComputeAdherence(mealsFromFlags(tt.flags)))
		})
	}
}

// Property test: for random boolean sequences of length 0-100, the streak
// equals the reference run-length max and the counts always sum to the
// total.
func TestComputeAdherence_Property(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42)) // deterministic
	for i := 0; i < 500; i++ {
		n := r.Intn(101)
		flags := make([]bool, n)
		for j := range flags {
			flags[j] = r.Intn(2) == 1
		}

		got := ComputeAdherence(mealsFromFlags(flags))

		require.Equal(t, longestRun(flags), got.LongestOnDietStreak, "flags=%v", flags)
		require.Equal(t, n, got.Total, "flags=%v", flags)
		require.Equal(t, got.Total, got.OnDietCount+got.OffDietCount, "flags=%v", flags)
	}
}

// End-to-end through the service: meals stored via the meal log feed the
// analyzer in chronological order.
func TestAdherenceService_Metrics(t *testing.T) {
	t.Parallel()

	meals := newFakeMeals()
	mealSvc := NewMealService(meals)
	adherence := NewAdherenceService(meals)

	owner := models.Identity{ID: "user-a", Email: "a@test.com"}
	base := time.Date(2024, time.March, 22, 8, 0, 0, 0, time.UTC)
	for i, onDiet := range []bool{true, true, false, true} {
		_, err := mealSvc.Create(context.Background(), owner, MealInput{
			Name:          "meal",
			Description:   "desc",
			Date:          base.Add(time.Duration(i) * time.Hour),
			IsOnDailyDiet: onDiet,
		})
		require.NoError(t, err)
	}

	got, err := adherence.Metrics(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, models.AdherenceMetrics{Total: 4, OnDietCount: 3, OffDietCount: 1, LongestOnDietStreak: 2}, got)
}

// Meals sharing the same date must keep insertion order when fed to the
// analyzer; the streak depends on it.
func TestAdherenceService_Metrics_DateTies(t *testing.T) {
	t.Parallel()

	meals := newFakeMeals()
	mealSvc := NewMealService(meals)
	adherence := NewAdherenceService(meals)

	owner := models.Identity{ID: "user-a"}
	date := time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)
	for _, onDiet := range []bool{true, false, true, true} {
		_, err := mealSvc.Create(context.Background(), owner, MealInput{
			Name: "meal", Description: "d", Date: date, IsOnDailyDiet: onDiet,
		})
		require.NoError(t, err)
	}

	got, err := adherence.Metrics(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LongestOnDietStreak)
}
