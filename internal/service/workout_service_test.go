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

func newWorkoutService(db *gorm.DB) *WorkoutService {
	return NewWorkoutService(repository.NewWorkoutRepository(db), NewStatsCache(nil))
}

func TestWorkoutCreateCompound(t *testing.T) {
	db := openTestDB(t)
	svc := newWorkoutService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, user.ID, &WorkoutCreateRequest{
		Date:     models.NewDate(2024, time.June, 10),
		Name:     "Leg Day",
		Duration: intPtr(60),
		Exercises: []ExerciseCreateRequest{
			{
				Name:     "Squat",
				Category: strPtr("legs"),
				Order:    1,
				Sets: []SetCreateRequest{
					{SetNumber: 1, Reps: intPtr(10), Weight: floatPtr(100)},
					{SetNumber: 2, Reps: intPtr(8), Weight: floatPtr(110), Completed: boolPtr(false)},
				},
			},
			{
				Name:  "Leg Press",
				Order: 2,
				Sets: []SetCreateRequest{
					{SetNumber: 1, Reps: intPtr(12), Weight: floatPtr(180)},
				},
			},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", got.Name)
	assert.Equal(t, "2024-06-10", got.Date.String())
	require.Len(t, got.Exercises, 2)

	squat := got.Exercises[0]
	assert.Equal(t, "Squat", squat.Name)
	require.Len(t, squat.Sets, 2)
	assert.Equal(t, 1, squat.Sets[0].SetNumber)
	assert.True(t, squat.Sets[0].Completed) // defaults to completed
	assert.False(t, squat.Sets[1].Completed)
	assert.Equal(t, 110.0, *squat.Sets[1].Weight)

	assert.Equal(t, "Leg Press", got.Exercises[1].Name)
}

func TestWorkoutExerciseOrdering(t *testing.T) {
	db := openTestDB(t)
	svc := newWorkoutService(db)
	user := createTestUser(t, db, "alice")

	created, err := svc.Create(context.Background(), user.ID, &WorkoutCreateRequest{
		Date: models.NewDate(2024, time.June, 10),
		Name: "Push Day",
		Exercises: []ExerciseCreateRequest{
			{Name: "Dips", Order: 3},
			{Name: "Bench Press", Order: 1},
			{Name: "Overhead Press", Order: 2},
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(user.ID, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 3)
	assert.Equal(t, "Bench Press", got.Exercises[0].Name)
	assert.Equal(t, "Overhead Press", got.Exercises[1].Name)
	assert.Equal(t, "Dips", got.Exercises[2].Name)
}

func TestWorkoutCreateRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)
	svc := newWorkoutService(db)
	user := createTestUser(t, db, "alice")

	// break the deepest nested insert so the transaction fails after the
	// workout and exercise rows have been written
	require.NoError(t, db.Migrator().DropTable(&models.ExerciseSet{}))

	_, err := svc.Create(context.Background(), user.ID, &WorkoutCreateRequest{
		Date: models.NewDate(2024, time.June, 10),
		Name: "Leg Day",
		Exercises: []ExerciseCreateRequest{
			{Name: "Squat", Order: 1, Sets: []SetCreateRequest{
				{SetNumber: 1, Reps: intPtr(10)},
			}},
		},
	})
	require.Error(t, err)

	var workouts int64
	require.NoError(t, db.Model(&models.Workout{}).Where("user_id = ?", user.ID).Count(&workouts).Error)
	assert.Zero(t, workouts)

	var exercises int64
	require.NoError(t, db.Model(&models.Exercise{}).Count(&exercises).Error)
	assert.Zero(t, exercises)
}

func TestWorkoutListFilters(t *testing.T) {
	db := openTestDB(t)
	svc := newWorkoutService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		_, err := svc.Create(ctx, user.ID, &WorkoutCreateRequest{
			Date: models.NewDate(2024, time.June, day),
			Name: "Session",
		})
		require.NoError(t, err)
	}

	start := models.NewDate(2024, time.June, 2)
	end := models.NewDate(2024, time.June, 4)
	workouts, total, err := svc.List(user.ID, repository.WorkoutFilter{
		StartDate: &start,
		EndDate:   &end,
		Limit:     100,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, workouts, 3)
	// newest first
	assert.Equal(t, "2024-06-04", workouts[0].Date.String())
	assert.Equal(t, "2024-06-02", workouts[2].Date.String())

	// paging keeps the unpaged total
	paged, total, err := svc.List(user.ID, repository.WorkoutFilter{Skip: 3, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, paged, 2)
}

func TestWorkoutPartialUpdate(t *testing.T) {
	db := openTestDB(t)
	svc := newWorkoutService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, user.ID, &WorkoutCreateRequest{
		Date:     models.NewDate(2024, time.June, 10),
		Name:     "Leg Day",
		Duration: intPtr(60),
		Notes:    strPtr("felt strong"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, user.ID, created.ID, &WorkoutUpdateRequest{
		Name: strPtr("Heavy Leg Day"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Heavy Leg Day", updated.Name)
	assert.Equal(t, 60, *updated.Duration)
	assert.Equal(t, "felt strong", *updated.Notes)
	assert.Equal(t, "2024-06-10", updated.Date.String())
}

func TestWorkoutDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewWorkoutRepository(db)
	svc := NewWorkoutService(repo, NewStatsCache(nil))
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, user.ID, &WorkoutCreateRequest{
		Date: models.NewDate(2024, time.June, 10),
		Name: "Leg Day",
		Exercises: []ExerciseCreateRequest{
			{Name: "Squat", Order: 1, Sets: []SetCreateRequest{
				{SetNumber: 1, Reps: intPtr(10)},
				{SetNumber: 2, Reps: intPtr(8)},
			}},
		},
	})
	require.NoError(t, err)

	exercises, err := repo.CountExercisesByWorkoutID(created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, exercises)
	sets, err := repo.CountSetsByWorkoutID(created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, sets)

	require.NoError(t, svc.Delete(ctx, user.ID, created.ID))

	_, err = svc.Get(user.ID, created.ID)
	assert.ErrorIs(t, err, repository.ErrWorkoutNotFound)

	exercises, err = repo.CountExercisesByWorkoutID(created.ID)
	require.NoError(t, err)
	assert.Zero(t, exercises)
	sets, err = repo.CountSetsByWorkoutID(created.ID)
	require.NoError(t, err)
	assert.Zero(t, sets)
}

func TestWorkoutOwnershipIsolation(t *testing.T) {
	db := openTestDB(t)
	svc := newWorkoutService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	created, err := svc.Create(ctx, alice.ID, &WorkoutCreateRequest{
		Date: models.NewDate(2024, time.June, 10),
		Name: "Leg Day",
	})
	require.NoError(t, err)

	_, err = svc.Get(bob.ID, created.ID)
	assert.ErrorIs(t, err, repository.ErrWorkoutNotFound)

	_, err = svc.Update(ctx, bob.ID, created.ID, &WorkoutUpdateRequest{Name: strPtr("stolen")})
	assert.ErrorIs(t, err, repository.ErrWorkoutNotFound)

	err = svc.Delete(ctx, bob.ID, created.ID)
	assert.ErrorIs(t, err, repository.ErrWorkoutNotFound)

	workouts, total, err := svc.List(bob.ID, repository.WorkoutFilter{Limit: 100})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, workouts)
}
