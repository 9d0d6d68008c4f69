package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habithive/habithive-api/internal/constants"
	"github.com/habithive/habithive-api/internal/database"
	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/repository"
	"github.com/habithive/habithive-api/internal/services"
	"github.com/habithive/habithive-api/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// HabitHandlerTestSuite defines the test suite for HabitHandler
type HabitHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *HabitHandler
	service *services.HabitService
}

// SetupTest runs before each test
func (suite *HabitHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

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

	// Set the test DB as the default database
	database.SetDB(suite.db)

	habitRepo := repository.NewHabitRepository(suite.db)
	completionRepo := repository.NewCompletionRepository(suite.db)
	suite.service = services.NewHabitService(habitRepo, completionRepo)
	suite.handler = NewHabitHandler(suite.service)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *HabitHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *HabitHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		DisplayName:  "Test User",
		FriendCode:   email + "_CODE",
	}
	suite.db.Create(user)
	return user
}

func (suite *HabitHandlerTestSuite) createTestHabit(name string, ownerID uint64) *models.Habit {
	habit, err := suite.service.CreateHabit(services.CreateHabitInput{
		OwnerID: ownerID,
		Name:    name,
	})
	suite.Require().NoError(err)
	return habit
}

// Helper function to create authenticated context
func (suite *HabitHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *HabitHandlerTestSuite) setIDParam(c *gin.Context, id string) {
	c.Params = gin.Params{{Key: "id", Value: id}}
}

// TestCreateHabit_Success tests successful habit creation
func (suite *HabitHandlerTestSuite) TestCreateHabit_Success() {
	user := suite.createTestUser("test@example.com")

	requestBody := map[string]interface{}{
		"name":        "Morning Run",
		"description": "5km around the park",
		"category":    "fitness",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/habits", body, user.ID)

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Morning Run", response["name"])
	assert.Equal(suite.T(), "fitness", response["category"])
	assert.Equal(suite.T(), "InProgress", response["status"])
}

// TestCreateHabit_MissingName tests creation without a name
func (suite *HabitHandlerTestSuite) TestCreateHabit_MissingName() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{
		"description": "no name",
	})

	c, w := suite.createAuthContext("POST", "/api/habits", body, user.ID)

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateHabit_DuplicateName tests creation with a taken name
func (suite *HabitHandlerTestSuite) TestCreateHabit_DuplicateName() {
	user := suite.createTestUser("test@example.com")
	suite.createTestHabit("Morning Run", user.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Morning Run",
	})

	c, w := suite.createAuthContext("POST", "/api/habits", body, user.ID)

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestCreateHabit_Unauthorized tests creation without authentication
func (suite *HabitHandlerTestSuite) TestCreateHabit_Unauthorized() {
	body, _ := json.Marshal(map[string]interface{}{
		"name": "Morning Run",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/habits", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.CreateHabit(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestListHabits_Success tests listing the caller's habits
func (suite *HabitHandlerTestSuite) TestListHabits_Success() {
	user := suite.createTestUser("test@example.com")
	suite.createTestHabit("Morning Run", user.ID)
	suite.createTestHabit("Read", user.ID)

	c, w := suite.createAuthContext("GET", "/api/habits", nil, user.ID)

	suite.handler.ListHabits(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "habits")
	assert.Contains(suite.T(), response, "pagination")

	habits := response["habits"].([]interface{})
	assert.Len(suite.T(), habits, 2)
}

// TestMarkComplete_Success tests completing a habit
func (suite *HabitHandlerTestSuite) TestMarkComplete_Success() {
	user := suite.createTestUser("test@example.com")
	habit := suite.createTestHabit("Morning Run", user.ID)

	c, w := suite.createAuthContext("POST", "/api/habits/1/complete", nil, user.ID)
	suite.setIDParam(c, "1")

	suite.handler.MarkComplete(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), true, response["success"])
	assert.Equal(suite.T(), float64(1), response["new_streak"])

	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestMarkComplete_Forbidden tests completing someone else's habit
func (suite *HabitHandlerTestSuite) TestMarkComplete_Forbidden() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	suite.createTestHabit("Morning Run", owner.ID)

	c, w := suite.createAuthContext("POST", "/api/habits/1/complete", nil, intruder.ID)
	suite.setIDParam(c, "1")

	suite.handler.MarkComplete(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestMarkComplete_NotFound tests completing a missing habit
func (suite *HabitHandlerTestSuite) TestMarkComplete_NotFound() {
	user := suite.createTestUser("test@example.com")

	c, w := suite.createAuthContext("POST", "/api/habits/999/complete", nil, user.ID)
	suite.setIDParam(c, "999")

	suite.handler.MarkComplete(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestMarkComplete_InvalidDate tests the date override validation
func (suite *HabitHandlerTestSuite) TestMarkComplete_InvalidDate() {
	user := suite.createTestUser("test@example.com")
	habit := suite.createTestHabit("Morning Run", user.ID)

	c, w := suite.createAuthContext("POST", "/api/habits/1/complete?date=15-06-2025", nil, user.ID)
	suite.setIDParam(c, "1")

	suite.handler.MarkComplete(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Nothing was written
	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestWeeklyProgress_Success tests the progress snapshot
func (suite *HabitHandlerTestSuite) TestWeeklyProgress_Success() {
	user := suite.createTestUser("test@example.com")
	habit := suite.createTestHabit("Morning Run", user.ID)

	today := streak.Today(time.Now())
	for _, n := range []int{0, 1, 2} {
		_, err := suite.service.MarkComplete(habit.ID, user.ID, today.AddDate(0, 0, -n))
		suite.Require().NoError(err)
	}

	c, w := suite.createAuthContext("GET", "/api/habits/1/progress", nil, user.ID)
	suite.setIDParam(c, "1")

	suite.handler.WeeklyProgress(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(3), response["weekly_count"])
	assert.Equal(suite.T(), float64(3), response["streak_current"])
	assert.Equal(suite.T(), true, response["completed_today"])
}

// TestReopen_Success tests restarting a habit
func (suite *HabitHandlerTestSuite) TestReopen_Success() {
	user := suite.createTestUser("test@example.com")
	habit := suite.createTestHabit("Morning Run", user.ID)

	_, err := suite.service.MarkComplete(habit.ID, user.ID, time.Now().UTC())
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("POST", "/api/habits/1/reopen", nil, user.ID)
	suite.setIDParam(c, "1")

	suite.handler.Reopen(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(0), response["new_streak"])

	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestResetAll_Success tests resetting every habit at once
func (suite *HabitHandlerTestSuite) TestResetAll_Success() {
	user := suite.createTestUser("test@example.com")
	first := suite.createTestHabit("Morning Run", user.ID)
	second := suite.createTestHabit("Read", user.ID)

	now := time.Now().UTC()
	for _, h := range []*models.Habit{first, second} {
		_, err := suite.service.MarkComplete(h.ID, user.ID, now)
		suite.Require().NoError(err)
	}

	c, w := suite.createAuthContext("PUT", "/api/habits/reset", nil, user.ID)

	suite.handler.ResetAll(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(2), response["reset_count"])
}

// TestGetHabit_FromContext tests retrieval via the access middleware contract
func (suite *HabitHandlerTestSuite) TestGetHabit_FromContext() {
	user := suite.createTestUser("test@example.com")
	habit := suite.createTestHabit("Morning Run", user.ID)

	c, w := suite.createAuthContext("GET", "/api/habits/1", nil, user.ID)
	c.Set(constants.ContextKeyHabit, *habit)

	suite.handler.GetHabit(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Morning Run", response["name"])
}

// TestGetHabit_NotFoundInContext tests when the habit is not in context
func (suite *HabitHandlerTestSuite) TestGetHabit_NotFoundInContext() {
	user := suite.createTestUser("test@example.com")
	c, w := suite.createAuthContext("GET", "/api/habits/1", nil, user.ID)

	suite.handler.GetHabit(c)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
}

// TestArchiveHabit_Success tests archiving
func (suite *HabitHandlerTestSuite) TestArchiveHabit_Success() {
	user := suite.createTestUser("test@example.com")
	suite.createTestHabit("Morning Run", user.ID)

	c, w := suite.createAuthContext("DELETE", "/api/habits/1", nil, user.ID)
	suite.setIDParam(c, "1")

	suite.handler.ArchiveHabit(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var habit models.Habit
	suite.Require().NoError(suite.db.First(&habit, 1).Error)
	assert.False(suite.T(), habit.IsActive)
}

// TestUpdateHabit_Success tests a partial update
func (suite *HabitHandlerTestSuite) TestUpdateHabit_Success() {
	user := suite.createTestUser("test@example.com")
	suite.createTestHabit("Morning Run", user.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"description": "10km now",
		"privacy":     "private",
	})

	c, w := suite.createAuthContext("PATCH", "/api/habits/1", body, user.ID)
	suite.setIDParam(c, "1")

	suite.handler.UpdateHabit(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "10km now", response["description"])
	assert.Equal(suite.T(), "private", response["privacy"])
}

// TestDashboard_Success tests the aggregated dashboard view
func (suite *HabitHandlerTestSuite) TestDashboard_Success() {
	user := suite.createTestUser("test@example.com")
	habit := suite.createTestHabit("Morning Run", user.ID)
	suite.createTestHabit("Read", user.ID)

	_, err := suite.service.MarkComplete(habit.ID, user.ID, time.Now().UTC())
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("GET", "/api/habits/dashboard", nil, user.ID)

	suite.handler.Dashboard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	habits := response["habits"].([]interface{})
	assert.Len(suite.T(), habits, 2)
}

func TestHabitHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HabitHandlerTestSuite))
}
