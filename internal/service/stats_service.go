package service

import (
	"context"
	"errors"
	"time"

	"github.com/fitlog-server/internal/models"
	"github.com/fitlog-server/internal/repository"
)

var (
	ErrInvalidPeriod = errors.New("invalid period")
)

const topExerciseLimit = 5

// StatsService computes read-only summaries over a user's persisted
// records. It never mutates data.
type StatsService struct {
	statsRepo *repository.StatsRepository
	mealRepo  *repository.MealRepository
	cache     *StatsCache
	now       func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo *repository.StatsRepository, mealRepo *repository.MealRepository, cache *StatsCache) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		mealRepo:  mealRepo,
		cache:     cache,
		now:       time.Now,
	}
}

func (s *StatsService) today() models.Date {
	return models.DateOf(s.now())
}

// DashboardWorkouts is the workout block of the dashboard summary
type DashboardWorkouts struct {
	Total      int64 `json:"total"`
	Weekly     int64 `json:"weekly"`
	AvgPerWeek int64 `json:"avg_per_week"`
}

// DashboardNutrition is the nutrition block of the dashboard summary
type DashboardNutrition struct {
	AvgDailyCalories float64 `json:"avg_daily_calories"`
	AvgProtein       float64 `json:"avg_protein"`
	AvgCarbs         float64 `json:"avg_carbs"`
	AvgFat           float64 `json:"avg_fat"`
}

// DashboardMeasurements is the measurement block of the dashboard summary
type DashboardMeasurements struct {
	LastWeight *float64 `json:"last_weight"`
}

// DashboardGoals is the goal block of the dashboard summary
type DashboardGoals struct {
	Active int64 `json:"active"`
}

// DashboardStats is the combined dashboard summary
type DashboardStats struct {
	Workouts     DashboardWorkouts     `json:"workouts"`
	Nutrition    DashboardNutrition    `json:"nutrition"`
	Measurements DashboardMeasurements `json:"measurements"`
	Goals        DashboardGoals        `json:"goals"`
}

// Dashboard computes the caller's dashboard summary: lifetime and
// trailing-week workout counts, trailing-week nutrition averages, latest
// weight and active goal count. Results are cached briefly per user.
func (s *StatsService) Dashboard(ctx context.Context, userID uint) (*DashboardStats, error) {
	if cached, ok := s.cache.GetDashboard(ctx, userID); ok {
		return cached, nil
	}

	weekAgo := s.today().AddDays(-7)

	total, err := s.statsRepo.CountWorkouts(userID)
	if err != nil {
		return nil, err
	}
	weekly, err := s.statsRepo.CountWorkoutsSince(userID, weekAgo)
	if err != nil {
		return nil, err
	}
	macros, err := s.statsRepo.SumMacrosSince(userID, weekAgo)
	if err != nil {
		return nil, err
	}
	lastWeight, err := s.statsRepo.LatestWeight(userID)
	if err != nil {
		return nil, err
	}
	activeGoals, err := s.statsRepo.CountActiveGoals(userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Workouts: DashboardWorkouts{
			Total:      total,
			Weekly:     weekly,
			AvgPerWeek: weekly,
		},
		Measurements: DashboardMeasurements{LastWeight: lastWeight},
		Goals:        DashboardGoals{Active: activeGoals},
	}

	// Nutrition averages stay zero in a week without workouts; see
	// DESIGN.md on this guard.
	if weekly > 0 {
		stats.Nutrition = DashboardNutrition{
			AvgDailyCalories: macros.Calories / 7,
			AvgProtein:       macros.Protein / 7,
			AvgCarbs:         macros.Carbs / 7,
			AvgFat:           macros.Fat / 7,
		}
	}

	s.cache.SetDashboard(ctx, userID, stats)
	return stats, nil
}

// DayRollup is the per-day entry of the monthly workout rollup
type DayRollup struct {
	Day           int `json:"day"`
	Count         int `json:"count"`
	TotalDuration int `json:"total_duration"`
}

// MonthlyWorkoutStats is the monthly rollup response
type MonthlyWorkoutStats struct {
	Year          int                        `json:"year"`
	Month         int                        `json:"month"`
	WorkoutsByDay []DayRollup                `json:"workouts_by_day"`
	TopExercises  []repository.ExerciseCount `json:"top_exercises"`
}

// MonthlyWorkouts groups a month's workouts by day of month and lists the
// month's most frequent exercises. A zero year or month defaults to the
// current one.
func (s *StatsService) MonthlyWorkouts(userID uint, year, month int) (*MonthlyWorkoutStats, error) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	from := models.NewDate(year, time.Month(month), 1)
	to := models.Date{Time: from.AddDate(0, 1, 0)}

	workouts, err := s.statsRepo.WorkoutsInRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	byDay := map[int]*DayRollup{}
	for _, w := range workouts {
		day := w.Date.Day()
		entry, ok := byDay[day]
		if !ok {
			entry = &DayRollup{Day: day}
			byDay[day] = entry
		}
		entry.Count++
		if w.Duration != nil {
			entry.TotalDuration += *w.Duration
		}
	}

	rollups := make([]DayRollup, 0, len(byDay))
	for day := 1; day <= 31; day++ {
		if entry, ok := byDay[day]; ok {
			rollups = append(rollups, *entry)
		}
	}

	topExercises, err := s.statsRepo.TopExercises(userID, &from, &to, topExerciseLimit)
	if err != nil {
		return nil, err
	}
	if topExercises == nil {
		topExercises = make([]repository.ExerciseCount, 0)
	}

	return &MonthlyWorkoutStats{
		Year:          year,
		Month:         month,
		WorkoutsByDay: rollups,
		TopExercises:  topExercises,
	}, nil
}

// MealMacros is one meal entry in the daily nutrition grouping
type MealMacros struct {
	Name     string   `json:"name"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

// DailyNutritionStats is the per-day nutrition breakdown
type DailyNutritionStats struct {
	Date        models.Date             `json:"date"`
	Total       repository.MacroTotals  `json:"total"`
	MealsByType map[string][]MealMacros `json:"meals_by_type"`
}

// DailyNutrition sums a day's macros and groups its meals by meal type
func (s *StatsService) DailyNutrition(userID uint, date *models.Date) (*DailyNutritionStats, error) {
	target := s.today()
	if date != nil {
		target = *date
	}

	meals, err := s.mealRepo.ListByUserIDAndDate(userID, target)
	if err != nil {
		return nil, err
	}

	stats := &DailyNutritionStats{
		Date:        target,
		MealsByType: map[string][]MealMacros{},
	}
	for _, meal := range meals {
		addMacros(&stats.Total, meal)
		stats.MealsByType[meal.MealType] = append(stats.MealsByType[meal.MealType], MealMacros{
			Name:     meal.Name,
			Calories: meal.Calories,
			Protein:  meal.Protein,
			Carbs:    meal.Carbs,
			Fat:      meal.Fat,
		})
	}

	return stats, nil
}

// MealBrief is one meal entry in the daily meal summary
type MealBrief struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DailyMealSummary is the meals-endpoint daily summary
type DailyMealSummary struct {
	Date      models.Date            `json:"date"`
	MealCount int                    `json:"meal_count"`
	Totals    repository.MacroTotals `json:"totals"`
	Meals     []MealBrief            `json:"meals"`
}

// DailyMeals sums a day's macros and lists the day's meals
func (s *StatsService) DailyMeals(userID uint, date *models.Date) (*DailyMealSummary, error) {
	target := s.today()
	if date != nil {
		target = *date
	}

	meals, err := s.mealRepo.ListByUserIDAndDate(userID, target)
	if err != nil {
		return nil, err
	}

	summary := &DailyMealSummary{
		Date:      target,
		MealCount: len(meals),
		Meals:     make([]MealBrief, 0, len(meals)),
	}
	for _, meal := range meals {
		addMacros(&summary.Totals, meal)
		summary.Meals = append(summary.Meals, MealBrief{Name: meal.Name, Type: meal.MealType})
	}

	return summary, nil
}

func addMacros(totals *repository.MacroTotals, meal models.Meal) {
	if meal.Calories != nil {
		totals.Calories += *meal.Calories
	}
	if meal.Protein != nil {
		totals.Protein += *meal.Protein
	}
	if meal.Carbs != nil {
		totals.Carbs += *meal.Carbs
	}
	if meal.Fat != nil {
		totals.Fat += *meal.Fat
	}
}

// ProgressStats is the trailing-window weight and body fat time series
type ProgressStats struct {
	WeightData  []repository.WeightPoint  `json:"weight_data"`
	BodyFatData []repository.BodyFatPoint `json:"body_fat_data"`
	Period      int                       `json:"period"`
}

// Progress returns chronological weight and body fat points for the
// trailing periodDays window; rows missing a metric are left out of that
// metric's series
func (s *StatsService) Progress(userID uint, periodDays int) (*ProgressStats, error) {
	from := s.today().AddDays(-periodDays)

	weightData, err := s.statsRepo.WeightSeries(userID, from)
	if err != nil {
		return nil, err
	}
	bodyFatData, err := s.statsRepo.BodyFatSeries(userID, from)
	if err != nil {
		return nil, err
	}

	if weightData == nil {
		weightData = make([]repository.WeightPoint, 0)
	}
	if bodyFatData == nil {
		bodyFatData = make([]repository.BodyFatPoint, 0)
	}

	return &ProgressStats{
		WeightData:  weightData,
		BodyFatData: bodyFatData,
		Period:      periodDays,
	}, nil
}

// WorkoutPeriodSummary is the named-period workout summary
type WorkoutPeriodSummary struct {
	TotalWorkouts        int64                      `json:"total_workouts"`
	TotalDurationMinutes int64                      `json:"total_duration_minutes"`
	AvgDuration          float64                    `json:"avg_duration"`
	FavoriteExercises    []repository.ExerciseCount `json:"favorite_exercises"`
	Period               string                     `json:"period"`
}

// WorkoutSummary summarizes workouts over a named period: week (trailing 7
// days), month (current calendar month), year (current calendar year) or
// all. The favorite-exercise ranking respects the same window.
func (s *StatsService) WorkoutSummary(userID uint, period string) (*WorkoutPeriodSummary, error) {
	today := s.today()

	var from *models.Date
	switch period {
	case "week":
		d := today.AddDays(-7)
		from = &d
	case "month":
		d := models.NewDate(today.Year(), today.Month(), 1)
		from = &d
	case "year":
		d := models.NewDate(today.Year(), time.January, 1)
		from = &d
	case "all":
		from = nil
	default:
		return nil, ErrInvalidPeriod
	}

	count, totalDuration, err := s.statsRepo.WorkoutTotals(userID, from)
	if err != nil {
		return nil, err
	}

	favorites, err := s.statsRepo.TopExercises(userID, from, nil, topExerciseLimit)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = make([]repository.ExerciseCount, 0)
	}

	avgDuration := float64(0)
	if count > 0 {
		avgDuration = float64(totalDuration) / float64(count)
	}

	return &WorkoutPeriodSummary{
		TotalWorkouts:        count,
		TotalDurationMinutes: totalDuration,
		AvgDuration:          avgDuration,
		FavoriteExercises:    favorites,
		Period:               period,
	}, nil
}
