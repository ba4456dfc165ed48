package service

import (
	"context"
	"testing"
	"time"

	"github.com/fitlog-server/internal/models"
	"github.com/fitlog-server/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMealService(db *gorm.DB) *MealService {
	return NewMealService(repository.NewMealRepository(db), NewStatsCache(nil))
}

func TestMealCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	svc := newMealService(db)
	user := createTestUser(t, db, "alice")

	created, err := svc.Create(context.Background(), user.ID, &MealCreateRequest{
		Date:     models.NewDate(2024, time.June, 10),
		MealType: "breakfast",
		Name:     "Oatmeal with banana",
		Calories: floatPtr(350),
		Protein:  floatPtr(12),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", got.MealType)
	assert.Equal(t, 350.0, *got.Calories)
	assert.Equal(t, 12.0, *got.Protein)
	assert.Nil(t, got.Carbs)
	assert.Nil(t, got.Fat)
}

func TestMealListFilters(t *testing.T) {
	db := openTestDB(t)
	svc := newMealService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	seed := []struct {
		day      int
		mealType string
	}{
		{10, "breakfast"},
		{10, "lunch"},
		{10, "dinner"},
		{11, "breakfast"},
	}
	for _, m := range seed {
		_, err := svc.Create(ctx, user.ID, &MealCreateRequest{
			Date:     models.NewDate(2024, time.June, m.day),
			MealType: m.mealType,
			Name:     "Meal",
		})
		require.NoError(t, err)
	}

	date := models.NewDate(2024, time.June, 10)
	meals, total, err := svc.List(user.ID, repository.MealFilter{Date: &date, Limit: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, meals, 3)

	meals, total, err = svc.List(user.ID, repository.MealFilter{MealType: "breakfast", Limit: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, meal := range meals {
		assert.Equal(t, "breakfast", meal.MealType)
	}
}

func TestMealPartialUpdate(t *testing.T) {
	db := openTestDB(t)
	svc := newMealService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, user.ID, &MealCreateRequest{
		Date:     models.NewDate(2024, time.June, 10),
		MealType: "lunch",
		Name:     "Chicken salad",
		Calories: floatPtr(450),
		Protein:  floatPtr(35),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, user.ID, created.ID, &MealUpdateRequest{
		Calories: floatPtr(500),
	})
	require.NoError(t, err)

	assert.Equal(t, 500.0, *updated.Calories)
	assert.Equal(t, 35.0, *updated.Protein) // untouched
	assert.Equal(t, "Chicken salad", updated.Name)
	assert.Equal(t, "lunch", updated.MealType)
}

func TestMealDeleteAndOwnership(t *testing.T) {
	db := openTestDB(t)
	svc := newMealService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	created, err := svc.Create(ctx, alice.ID, &MealCreateRequest{
		Date:     models.NewDate(2024, time.June, 10),
		MealType: "dinner",
		Name:     "Steak",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, bob.ID, created.ID)
	assert.ErrorIs(t, err, repository.ErrMealNotFound)

	require.NoError(t, svc.Delete(ctx, alice.ID, created.ID))

	_, err = svc.Get(alice.ID, created.ID)
	assert.ErrorIs(t, err, repository.ErrMealNotFound)

	err = svc.Delete(ctx, alice.ID, created.ID)
	assert.ErrorIs(t, err, repository.ErrMealNotFound)
}
