package services

import (
	"sync"
	"testing"
	"time"

	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/repository"
	"github.com/habithive/habithive-api/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// HabitServiceTestSuite defines the test suite for HabitService
type HabitServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *HabitService
	today   time.Time
}

// SetupTest runs before each test
func (suite *HabitServiceTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Every connection to :memory: is its own database, so keep the pool
	// pinned to a single connection.
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.HabitCompletion{},
	)
	suite.Require().NoError(err)

	habitRepo := repository.NewHabitRepository(suite.db)
	completionRepo := repository.NewCompletionRepository(suite.db)
	suite.service = NewHabitService(habitRepo, completionRepo)

	suite.today = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

// TearDownTest runs after each test
func (suite *HabitServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *HabitServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		DisplayName:  "Test User",
		FriendCode:   email + "_CODE",
	}
	suite.db.Create(user)
	return user
}

func (suite *HabitServiceTestSuite) createTestHabit(name string, ownerID uint64) *models.Habit {
	habit, err := suite.service.CreateHabit(CreateHabitInput{
		OwnerID: ownerID,
		Name:    name,
	})
	suite.Require().NoError(err)
	return habit
}

func (suite *HabitServiceTestSuite) daysAgo(n int) time.Time {
	return suite.today.AddDate(0, 0, -n)
}

func (suite *HabitServiceTestSuite) TestCreateHabit_Defaults() {
	user := suite.createTestUser("create@example.com")

	habit, err := suite.service.CreateHabit(CreateHabitInput{
		OwnerID: user.ID,
		Name:    "  Morning Run  ",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Morning Run", habit.Name)
	assert.Equal(suite.T(), "general", habit.Category)
	assert.Equal(suite.T(), models.FrequencyDaily, habit.Frequency)
	assert.Equal(suite.T(), models.PrivacyPublic, habit.Privacy)
	assert.Equal(suite.T(), 7, habit.CompletionThreshold)
	assert.Equal(suite.T(), models.HabitStatusInProgress, habit.Status)
	assert.True(suite.T(), habit.IsActive)
	assert.Equal(suite.T(), 0, habit.CurrentStreak)
}

func (suite *HabitServiceTestSuite) TestCreateHabit_DuplicateName() {
	user := suite.createTestUser("dup@example.com")
	suite.createTestHabit("Read", user.ID)

	_, err := suite.service.CreateHabit(CreateHabitInput{
		OwnerID: user.ID,
		Name:    "read", // case-insensitive collision
	})

	assert.ErrorIs(suite.T(), err, ErrHabitNameTaken)
}

func (suite *HabitServiceTestSuite) TestCreateHabit_CustomFrequencyRequiresValue() {
	user := suite.createTestUser("custom@example.com")

	_, err := suite.service.CreateHabit(CreateHabitInput{
		OwnerID:   user.ID,
		Name:      "Stretch",
		Frequency: models.FrequencyCustom,
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidCustomValue)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_FirstDay() {
	user := suite.createTestUser("first@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	result, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, result.NewStreak)
	assert.Equal(suite.T(), models.HabitStatusInProgress, result.Status)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_SameDayTwice() {
	user := suite.createTestUser("twice@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	first, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)
	second, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 1, first.NewStreak)
	assert.Equal(suite.T(), 1, second.NewStreak)

	// Exactly one ledger fact for the day
	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_ConsecutiveDays() {
	user := suite.createTestUser("consecutive@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	_, err := suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(2))
	suite.Require().NoError(err)
	_, err = suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(1))
	suite.Require().NoError(err)
	result, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 3, result.NewStreak)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_GapResetsStreak() {
	user := suite.createTestUser("gap@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	_, err := suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(4))
	suite.Require().NoError(err)
	_, err = suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(3))
	suite.Require().NoError(err)

	// Two missed days break the run; the new completion starts over at 1.
	result, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 1, result.NewStreak)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_ThresholdFlipsStatus() {
	user := suite.createTestUser("threshold@example.com")
	habit, err := suite.service.CreateHabit(CreateHabitInput{
		OwnerID:             user.ID,
		Name:                "Meditate",
		CompletionThreshold: 3,
	})
	suite.Require().NoError(err)

	var result *MarkCompleteResult
	for i := 2; i >= 0; i-- {
		result, err = suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(i))
		suite.Require().NoError(err)
	}

	assert.Equal(suite.T(), 3, result.NewStreak)
	assert.Equal(suite.T(), models.HabitStatusCompleted, result.Status)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_CompletedHabitIsNoOp() {
	user := suite.createTestUser("noop@example.com")
	habit, err := suite.service.CreateHabit(CreateHabitInput{
		OwnerID:             user.ID,
		Name:                "Meditate",
		CompletionThreshold: 1,
	})
	suite.Require().NoError(err)

	_, err = suite.service.MarkComplete(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	// A second mark on a Completed habit reports the cached state and
	// writes nothing.
	result, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today.AddDate(0, 0, 1))
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.HabitStatusCompleted, result.Status)

	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_NotFound() {
	user := suite.createTestUser("missing@example.com")

	_, err := suite.service.MarkComplete(9999, user.ID, suite.today)

	assert.ErrorIs(suite.T(), err, ErrHabitNotFound)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_Forbidden() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	habit := suite.createTestHabit("Meditate", owner.ID)

	_, err := suite.service.MarkComplete(habit.ID, intruder.ID, suite.today)

	assert.ErrorIs(suite.T(), err, ErrHabitForbidden)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_ConcurrentSameDay() {
	user := suite.createTestUser("race@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(suite.T(), err)
	}

	// All racers converge on a single ledger fact and a streak of 1.
	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	reloaded, err := suite.service.GetHabit(habit.ID, user.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, reloaded.CurrentStreak)
}

func (suite *HabitServiceTestSuite) TestReopen_ClearsHistoryAndStreaks() {
	user := suite.createTestUser("reopen@example.com")
	habit, err := suite.service.CreateHabit(CreateHabitInput{
		OwnerID:             user.ID,
		Name:                "Meditate",
		CompletionThreshold: 2,
	})
	suite.Require().NoError(err)

	_, err = suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(1))
	suite.Require().NoError(err)
	result, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)
	suite.Require().Equal(models.HabitStatusCompleted, result.Status)

	reopened, err := suite.service.Reopen(habit.ID, user.ID)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 0, reopened.NewStreak)
	assert.Equal(suite.T(), models.HabitStatusInProgress, reopened.Status)

	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	reloaded, err := suite.service.GetHabit(habit.ID, user.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 0, reloaded.LongestStreak)
}

func (suite *HabitServiceTestSuite) TestResetAllForOwner() {
	user := suite.createTestUser("resetall@example.com")
	other := suite.createTestUser("bystander@example.com")

	first := suite.createTestHabit("Meditate", user.ID)
	second := suite.createTestHabit("Run", user.ID)
	theirs := suite.createTestHabit("Swim", other.ID)

	for _, h := range []*models.Habit{first, second, theirs} {
		owner := user.ID
		if h.ID == theirs.ID {
			owner = other.ID
		}
		_, err := suite.service.MarkComplete(h.ID, owner, suite.today)
		suite.Require().NoError(err)
	}

	count, err := suite.service.ResetAllForOwner(user.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, count)

	// The other user's ledger is untouched
	var remaining int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", theirs.ID).Count(&remaining)
	assert.Equal(suite.T(), int64(1), remaining)
}

func (suite *HabitServiceTestSuite) TestWeeklyProgress() {
	user := suite.createTestUser("weekly@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	// Three completions inside the 7-day window, one outside it
	for _, n := range []int{0, 2, 6, 8} {
		day := suite.daysAgo(n)
		_, err := suite.service.MarkComplete(habit.ID, user.ID, day)
		suite.Require().NoError(err)
	}

	progress, err := suite.service.WeeklyProgress(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 3, progress.WeeklyCount)
	assert.Equal(suite.T(), 1, progress.CurrentStreak)
	assert.True(suite.T(), progress.CompletedToday)
	assert.Equal(suite.T(), models.HabitStatusInProgress, progress.Status)
}

func (suite *HabitServiceTestSuite) TestWeeklyProgress_LongestNeverDrops() {
	user := suite.createTestUser("longest@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	// Build a 3-day run, then let it lapse
	for i := 9; i >= 7; i-- {
		_, err := suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(i))
		suite.Require().NoError(err)
	}

	progress, err := suite.service.WeeklyProgress(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 0, progress.CurrentStreak)
	assert.Equal(suite.T(), 3, progress.LongestStreak)
	assert.False(suite.T(), progress.CompletedToday)
}

func (suite *HabitServiceTestSuite) TestWeeklyProgress_GracePeriod() {
	user := suite.createTestUser("grace@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	// Yesterday's completion still anchors the streak today
	_, err := suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(2))
	suite.Require().NoError(err)
	_, err = suite.service.MarkComplete(habit.ID, user.ID, suite.daysAgo(1))
	suite.Require().NoError(err)

	progress, err := suite.service.WeeklyProgress(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 2, progress.CurrentStreak)
	assert.False(suite.T(), progress.CompletedToday)
}

func (suite *HabitServiceTestSuite) TestUpdateHabit_PartialFields() {
	user := suite.createTestUser("update@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	newName := "Evening Meditation"
	privacy := models.PrivacyPrivate
	updated, err := suite.service.UpdateHabit(habit.ID, user.ID, UpdateHabitInput{
		Name:    &newName,
		Privacy: &privacy,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), newName, updated.Name)
	assert.Equal(suite.T(), models.PrivacyPrivate, updated.Privacy)
	assert.Equal(suite.T(), "general", updated.Category)
}

func (suite *HabitServiceTestSuite) TestArchiveHabit_KeepsLedger() {
	user := suite.createTestUser("archive@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	_, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	err = suite.service.ArchiveHabit(habit.ID, user.ID)
	suite.Require().NoError(err)

	// Gone from the default listing
	habits, _, err := suite.service.ListHabits(user.ID, "", 0, 0)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), habits)

	// Ledger intact
	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *HabitServiceTestSuite) TestPurgeHabit_RemovesLedger() {
	user := suite.createTestUser("purge@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	_, err := suite.service.MarkComplete(habit.ID, user.ID, suite.today)
	suite.Require().NoError(err)

	err = suite.service.PurgeHabit(habit.ID, user.ID)
	suite.Require().NoError(err)

	_, err = suite.service.GetHabit(habit.ID, user.ID)
	assert.ErrorIs(suite.T(), err, ErrHabitNotFound)

	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *HabitServiceTestSuite) TestListHabits_CategoryFilter() {
	user := suite.createTestUser("filter@example.com")

	_, err := suite.service.CreateHabit(CreateHabitInput{
		OwnerID: user.ID, Name: "Run", Category: "fitness",
	})
	suite.Require().NoError(err)
	_, err = suite.service.CreateHabit(CreateHabitInput{
		OwnerID: user.ID, Name: "Read", Category: "learning",
	})
	suite.Require().NoError(err)

	habits, total, err := suite.service.ListHabits(user.ID, "fitness", 0, 0)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(habits, 1)
	assert.Equal(suite.T(), "Run", habits[0].Name)
}

func (suite *HabitServiceTestSuite) TestMarkComplete_DateStoredAsDay() {
	user := suite.createTestUser("format@example.com")
	habit := suite.createTestHabit("Meditate", user.ID)

	late := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC)
	_, err := suite.service.MarkComplete(habit.ID, user.ID, late)
	suite.Require().NoError(err)

	var fact models.HabitCompletion
	suite.Require().NoError(suite.db.Where("habit_id = ?", habit.ID).First(&fact).Error)
	assert.Equal(suite.T(), streak.FormatDate(suite.today), fact.Date)
	assert.Equal(suite.T(), "2025-06-15", fact.Date)
}

func TestHabitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HabitServiceTestSuite))
}
