package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/habithive/habithive-api/internal/config"
	"github.com/habithive/habithive-api/internal/constants"
	"github.com/habithive/habithive-api/internal/database"
	"github.com/habithive/habithive-api/internal/handlers"
	"github.com/habithive/habithive-api/internal/middleware"
	"github.com/habithive/habithive-api/internal/repository"
	"github.com/habithive/habithive-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	habitService := services.NewHabitService(habitRepo, completionRepo)
	journalService := services.NewJournalService(journalRepo, habitRepo)
	goalService := services.NewGoalService(goalRepo)
	friendService := services.NewFriendService(friendshipRepo, userRepo)
	profileService := services.NewProfileService(userRepo, habitRepo, journalRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	habitHandler := handlers.NewHabitHandler(habitService)
	journalHandler := handlers.NewJournalHandler(journalService)
	goalHandler := handlers.NewGoalHandler(goalService)
	friendHandler := handlers.NewFriendHandler(friendService)
	profileHandler := handlers.NewProfileHandler(profileService)
	mealHandler := handlers.NewMealHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "HabitHive API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Habit routes (protected)
		habits := api.Group("/habits")
		habits.Use(middleware.RequireAuth())
		{
			habits.GET("", habitHandler.ListHabits)
			habits.POST("", habitHandler.CreateHabit)
			habits.PUT("/reset", habitHandler.ResetAll)
			habits.GET("/:id", middleware.RequireHabitAccess(), habitHandler.GetHabit)
			habits.PATCH("/:id", habitHandler.UpdateHabit)
			habits.DELETE("/:id", habitHandler.ArchiveHabit)
			habits.DELETE("/:id/purge", habitHandler.PurgeHabit)
			habits.POST("/:id/complete", habitHandler.MarkComplete)
			habits.POST("/:id/reopen", habitHandler.Reopen)
			habits.GET("/:id/progress", habitHandler.WeeklyProgress)
		}

		// Journal routes (protected)
		journal := api.Group("/journal")
		journal.Use(middleware.RequireAuth())
		{
			journal.GET("", journalHandler.ListEntries)
			journal.POST("", journalHandler.CreateEntry)
		}

		// Goal routes (protected)
		goals := api.Group("/goals")
		goals.Use(middleware.RequireAuth())
		{
			goals.GET("", goalHandler.ListGoals)
			goals.POST("", goalHandler.CreateGoal)
			goals.PATCH("/:id", goalHandler.UpdateProgress)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
		}

		// Friend routes (protected)
		friends := api.Group("/friends")
		friends.Use(middleware.RequireAuth())
		{
			friends.GET("", friendHandler.ListFriends)
			friends.POST("/requests", friendHandler.SendRequest)
			friends.GET("/requests", friendHandler.ListRequests)
			friends.POST("/requests/:id/accept", friendHandler.AcceptRequest)
			friends.POST("/requests/:id/decline", friendHandler.DeclineRequest)
			friends.DELETE("/:id", friendHandler.Unfriend)
		}

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(middleware.RequireAuth())
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PATCH("", profileHandler.UpdateProfile)
		}

		// Dashboard (protected)
		api.GET("/dashboard", middleware.RequireAuth(), habitHandler.Dashboard)

		// Meal plan catalog (protected, read-only)
		api.GET("/meals", middleware.RequireAuth(), mealHandler.ListMealPlans)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
