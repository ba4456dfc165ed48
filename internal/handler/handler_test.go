package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fitlog-server/internal/config"
	"github.com/fitlog-server/internal/handler"
	"github.com/fitlog-server/internal/middleware"
	"github.com/fitlog-server/internal/models"
	"github.com/fitlog-server/internal/repository"
	"github.com/fitlog-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

// envelope mirrors the standard response structure with the payload left raw
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Workout{},
		&models.Exercise{},
		&models.ExerciseSet{},
		&models.Meal{},
		&models.Measurement{},
		&models.Goal{},
	))

	userRepo := repository.NewUserRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	mealRepo := repository.NewMealRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	cache := service.NewStatsCache(nil)
	authService := service.NewAuthService(userRepo, config.JWTConfig{Secret: "test-secret", ExpireMinutes: 30})
	workoutService := service.NewWorkoutService(workoutRepo, cache)
	mealService := service.NewMealService(mealRepo, cache)
	measurementService := service.NewMeasurementService(measurementRepo, cache)
	goalService := service.NewGoalService(goalRepo, cache)
	statsService := service.NewStatsService(statsRepo, mealRepo, cache)

	router := gin.New()
	api := router.Group("/api")
	authMiddleware := middleware.AuthMiddleware(authService)

	handler.NewAuthHandler(authService).RegisterRoutes(api, authMiddleware)
	handler.NewWorkoutHandler(workoutService, statsService).RegisterRoutes(api, authMiddleware)
	handler.NewMealHandler(mealService, statsService).RegisterRoutes(api, authMiddleware)
	handler.NewMeasurementHandler(measurementService, statsService).RegisterRoutes(api, authMiddleware)
	handler.NewGoalHandler(goalService).RegisterRoutes(api, authMiddleware)
	handler.NewStatsHandler(statsService).RegisterRoutes(api, authMiddleware)

	return &testServer{router: router, db: db}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) postForm(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// registerAndLogin creates a user through the API and returns its bearer token
func (ts *testServer) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	w := ts.request(t, http.MethodPost, "/api/users/register", "", gin.H{
		"email":    username + "@example.com",
		"username": username,
		"password": "SecurePass123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.postForm(t, "/api/users/login", url.Values{
		"username": {username},
		"password": {"SecurePass123"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeData(t, w, &token)
	require.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodPost, "/api/users/register", "", gin.H{
		"email":     "alice@example.com",
		"username":  "alice",
		"password":  "SecurePass123",
		"full_name": "Alice Johnson",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered models.User
	decodeData(t, w, &registered)
	assert.Equal(t, "alice", registered.Username)
	// the password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "password")

	w = ts.postForm(t, "/api/users/login", url.Values{
		"username": {"alice"},
		"password": {"SecurePass123"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var token struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		ExpiresIn   int         `json:"expires_in"`
		User        models.User `json:"user"`
	}
	decodeData(t, w, &token)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 30*60, token.ExpiresIn)
	assert.Equal(t, "alice", token.User.Username)

	w = ts.request(t, http.MethodGet, "/api/users/me", token.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var me models.User
	decodeData(t, w, &me)
	assert.Equal(t, registered.ID, me.ID)
	assert.Equal(t, "Alice Johnson", me.FullName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodPost, "/api/users/register", "", gin.H{
		"email":    "alice@example.com",
		"username": "alice2",
		"password": "SecurePass123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user already exists", decodeEnvelope(t, w).Message)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")

	w := ts.postForm(t, "/api/users/login", url.Values{
		"username": {"alice"},
		"password": {"WrongPass123"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.postForm(t, "/api/users/login", url.Values{
		"username": {"nobody"},
		"password": {"SecurePass123"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodGet, "/api/users/check/alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var check struct {
		Exists bool `json:"exists"`
	}
	decodeData(t, w, &check)
	assert.True(t, check.Exists)

	w = ts.request(t, http.MethodGet, "/api/users/check/bob", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &check)
	assert.False(t, check.Exists)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/workouts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.request(t, http.MethodGet, "/api/workouts", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/dashboard", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	userRepo := repository.NewUserRepository(ts.db)
	user, err := userRepo.GetByUsername("alice")
	require.NoError(t, err)
	require.NoError(t, userRepo.Delete(user.ID))

	w := ts.request(t, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWorkoutLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodPost, "/api/workouts", token, gin.H{
		"date":     "2024-06-10",
		"name":     "Leg Day",
		"duration": 60,
		"exercises": []gin.H{
			{
				"name":     "Squat",
				"category": "legs",
				"order":    1,
				"sets": []gin.H{
					{"set_number": 1, "reps": 10, "weight": 100},
					{"set_number": 2, "reps": 8, "weight": 110},
					{"set_number": 3, "reps": 6, "weight": 120},
				},
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Workout
	decodeData(t, w, &created)
	require.NotZero(t, created.ID)

	// list
	w = ts.request(t, http.MethodGet, "/api/workouts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Items []models.Workout `json:"items"`
		Total int64            `json:"total"`
	}
	decodeData(t, w, &listed)
	assert.EqualValues(t, 1, listed.Total)
	require.Len(t, listed.Items, 1)

	// fetch with nested exercises and sets
	w = ts.request(t, http.MethodGet, fmt.Sprintf("/api/workouts/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Workout
	decodeData(t, w, &got)
	assert.Equal(t, "Leg Day", got.Name)
	require.Len(t, got.Exercises, 1)
	assert.Equal(t, "Squat", got.Exercises[0].Name)
	require.Len(t, got.Exercises[0].Sets, 3)
	assert.Equal(t, 120.0, *got.Exercises[0].Sets[2].Weight)

	// partial update
	w = ts.request(t, http.MethodPut, fmt.Sprintf("/api/workouts/%d", created.ID), token, gin.H{
		"name": "Heavy Leg Day",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &got)
	assert.Equal(t, "Heavy Leg Day", got.Name)
	assert.Equal(t, 60, *got.Duration)

	// delete
	w = ts.request(t, http.MethodDelete, fmt.Sprintf("/api/workouts/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.request(t, http.MethodGet, fmt.Sprintf("/api/workouts/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkoutCrossUserHidden(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.registerAndLogin(t, "alice")
	bobToken := ts.registerAndLogin(t, "bob")

	w := ts.request(t, http.MethodPost, "/api/workouts", aliceToken, gin.H{
		"date": "2024-06-10",
		"name": "Leg Day",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Workout
	decodeData(t, w, &created)

	w = ts.request(t, http.MethodGet, fmt.Sprintf("/api/workouts/%d", created.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.request(t, http.MethodDelete, fmt.Sprintf("/api/workouts/%d", created.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.request(t, http.MethodGet, "/api/workouts", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Total int64 `json:"total"`
	}
	decodeData(t, w, &listed)
	assert.Zero(t, listed.Total)
}

func TestWorkoutCreateRejectsBadDate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodPost, "/api/workouts", token, gin.H{
		"date": "2024-06-10T10:00:00Z",
		"name": "Leg Day",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkoutSummaryEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodGet, "/api/workouts/stats/summary?period=all", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var summary struct {
		TotalWorkouts     int64  `json:"total_workouts"`
		Period            string `json:"period"`
		FavoriteExercises []any  `json:"favorite_exercises"`
	}
	decodeData(t, w, &summary)
	assert.Equal(t, "all", summary.Period)
	assert.NotNil(t, summary.FavoriteExercises)

	w = ts.request(t, http.MethodGet, "/api/workouts/stats/summary?period=decade", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoalCompleteFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodPost, "/api/goals", token, gin.H{
		"title":        "Lose 5kg",
		"target_value": 70,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var goal models.Goal
	decodeData(t, w, &goal)
	assert.Equal(t, "kg", goal.Unit)
	assert.False(t, goal.IsCompleted)

	w = ts.request(t, http.MethodPatch, fmt.Sprintf("/api/goals/%d/complete?current_value=71", goal.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &goal)
	assert.True(t, goal.IsCompleted)
	assert.Equal(t, 71.0, goal.CurrentValue)

	// current_value is mandatory
	w = ts.request(t, http.MethodPatch, fmt.Sprintf("/api/goals/%d/complete", goal.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMealDailySummaryEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	meals := []gin.H{
		{"date": "2024-06-10", "meal_type": "breakfast", "name": "Oatmeal", "calories": 350},
		{"date": "2024-06-10", "meal_type": "dinner", "name": "Steak", "calories": 800},
		{"date": "2024-06-11", "meal_type": "lunch", "name": "Salad", "calories": 300},
	}
	for _, meal := range meals {
		w := ts.request(t, http.MethodPost, "/api/meals", token, meal)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := ts.request(t, http.MethodGet, "/api/meals/daily/summary?target_date=2024-06-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var summary struct {
		Date      models.Date `json:"date"`
		MealCount int         `json:"meal_count"`
		Totals    struct {
			Calories float64 `json:"calories"`
		} `json:"totals"`
	}
	decodeData(t, w, &summary)
	assert.Equal(t, "2024-06-10", summary.Date.String())
	assert.Equal(t, 2, summary.MealCount)
	assert.Equal(t, 1150.0, summary.Totals.Calories)

	// list filtered by type
	w = ts.request(t, http.MethodGet, "/api/meals?meal_type=breakfast", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Total int64 `json:"total"`
	}
	decodeData(t, w, &listed)
	assert.EqualValues(t, 1, listed.Total)
}

func TestMeasurementProgressEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodGet, "/api/measurements/stats/progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var progress struct {
		WeightData  []any `json:"weight_data"`
		BodyFatData []any `json:"body_fat_data"`
		Period      int   `json:"period"`
	}
	decodeData(t, w, &progress)
	assert.Equal(t, 30, progress.Period)
	assert.NotNil(t, progress.WeightData)
	assert.NotNil(t, progress.BodyFatData)

	w = ts.request(t, http.MethodGet, "/api/measurements/stats/progress?period_days=3", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsDashboardEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodGet, "/api/stats/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dashboard struct {
		Workouts struct {
			Total int64 `json:"total"`
		} `json:"workouts"`
		Measurements struct {
			LastWeight *float64 `json:"last_weight"`
		} `json:"measurements"`
	}
	decodeData(t, w, &dashboard)
	assert.Zero(t, dashboard.Workouts.Total)
	assert.Nil(t, dashboard.Measurements.LastWeight)
}

func TestStatsMonthlyValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin(t, "alice")

	w := ts.request(t, http.MethodGet, "/api/stats/workouts/monthly?year=2024&month=6", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.request(t, http.MethodGet, "/api/stats/workouts/monthly?month=13", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
