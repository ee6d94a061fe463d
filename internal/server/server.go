package server

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/strideworks/trackside/internal/config"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/handler"
	"github.com/strideworks/trackside/internal/middleware"
	"github.com/strideworks/trackside/internal/repository"
	"github.com/strideworks/trackside/internal/service"
	"github.com/strideworks/trackside/internal/state"
	"github.com/strideworks/trackside/internal/store"
	"github.com/strideworks/trackside/internal/telemetry"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	AuthClient  service.AuthClient

	// StoreOwner scopes the local state store's keys. Defaults to
	// "local" for the single-profile case.
	StoreOwner string
}

// NewApp creates and configures the Fiber application with the given
// dependencies. State containers are hydrated before routes are
// registered so handlers never observe an uninitialized container.
func NewApp(deps AppDependencies) *fiber.App {
	owner := deps.StoreOwner
	if owner == "" {
		owner = "local"
	}

	// Local persistent store and state containers
	kv := store.NewRedisStore(deps.RedisClient, owner)
	goalStore := state.NewGoalStore(kv)
	trainingStore := state.NewTrainingStore(kv)
	profileStore := state.NewProfileStore(kv)
	recoveryStore := state.NewRecoveryStore(kv)

	hydrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for name, hydrate := range map[string]func(context.Context) error{
		"goals":    goalStore.Hydrate,
		"training": trainingStore.Hydrate,
		"profile":  profileStore.Hydrate,
		"recovery": recoveryStore.Hydrate,
	} {
		if err := hydrate(hydrateCtx); err != nil {
			log.Printf("Warning: failed to hydrate %s state: %v", name, err)
		}
	}

	// Remote repositories
	profileRepo := repository.NewMongoProfileRepository(deps.MongoDB)
	planRepo := repository.NewMongoPlanRepository(deps.MongoDB)
	sessionRepo := repository.NewMongoSessionRepository(deps.MongoDB)
	sessionExerciseRepo := repository.NewMongoSessionExerciseRepository(deps.MongoDB)
	relRepo := repository.NewMongoRelationshipRepository(deps.MongoDB)
	exerciseRepo := repository.NewMongoExerciseRepository(deps.MongoDB)
	cache := repository.NewRedisCache(deps.RedisClient)
	cachedPlanRepo := repository.NewCachedPlanRepository(planRepo, cache)

	mediaRepo, err := repository.NewMediaS3Repository(context.Background(), deps.Config.S3)
	if err != nil {
		log.Printf("Warning: failed to initialize media storage: %v", err)
		mediaRepo = nil
	}

	// Services
	authService := service.NewAuthService(profileRepo, deps.AuthClient, cache, deps.Config.JWT.Secret)
	planService := service.NewPlanService(cachedPlanRepo, sessionRepo, sessionExerciseRepo, exerciseRepo, cache)
	rosterService := service.NewRosterService(profileRepo, relRepo, cache)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	goalHandler := handler.NewGoalHandler(goalStore)
	trainingHandler := handler.NewTrainingHandler(trainingStore)
	profileHandler := handler.NewProfileHandler(profileStore, mediaRepo)
	recoveryHandler := handler.NewRecoveryHandler(recoveryStore)
	planHandler := handler.NewPlanHandler(planService)
	rosterHandler := handler.NewRosterHandler(rosterService)
	exerciseHandler := handler.NewExerciseHandler(exerciseRepo)

	app := fiber.New(fiber.Config{
		AppName:      "Trackside API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.Idempotency(deps.RedisClient, 10*time.Minute))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "trackside",
			"state": fiber.Map{
				"goals":    goalStore.Status().String(),
				"training": trainingStore.Status().String(),
				"profile":  profileStore.Status().String(),
				"recovery": recoveryStore.Status().String(),
			},
		})
	})

	v1 := app.Group("/v1")

	// Auth endpoints (public)
	auth := v1.Group("/auth")
	auth.Post("/sign-in", authHandler.SignIn)
	auth.Post("/sign-out", authHandler.SignOut)

	// Local state endpoints
	goals := v1.Group("/goals")
	goals.Get("/", goalHandler.ListGoals)
	goals.Post("/", goalHandler.CreateGoal)
	goals.Get("/deadlines", goalHandler.UpcomingDeadlines)
	goals.Get("/:id", goalHandler.GetGoal)
	goals.Patch("/:id", goalHandler.UpdateGoal)
	goals.Delete("/:id", goalHandler.DeleteGoal)
	goals.Post("/:id/complete", goalHandler.CompleteGoal)
	goals.Post("/:id/progress", goalHandler.UpdateProgress)
	goals.Post("/:id/milestones/:milestoneID/complete", goalHandler.CompleteMilestone)

	achievements := v1.Group("/achievements")
	achievements.Get("/", goalHandler.ListAchievements)
	achievements.Post("/", goalHandler.UnlockAchievement)

	workouts := v1.Group("/workouts")
	workouts.Get("/", trainingHandler.ListWorkouts)
	workouts.Post("/", trainingHandler.CreateWorkout)
	workouts.Get("/current", trainingHandler.CurrentWorkout)
	workouts.Get("/stats", trainingHandler.Stats)
	workouts.Patch("/:id", trainingHandler.UpdateWorkout)
	workouts.Delete("/:id", trainingHandler.DeleteWorkout)
	workouts.Post("/:id/start", trainingHandler.StartWorkout)
	workouts.Post("/:id/complete", trainingHandler.CompleteWorkout)

	profile := v1.Group("/profile")
	profile.Get("/", profileHandler.GetProfile)
	profile.Patch("/", profileHandler.UpdateProfile)
	profile.Get("/flags", profileHandler.Flags)
	profile.Put("/experience", profileHandler.UpdateExperienceLevel)
	profile.Put("/records", profileHandler.UpdatePersonalRecord)
	profile.Post("/role", profileHandler.SwitchRole)
	profile.Post("/avatar", profileHandler.UploadAvatar)

	recovery := v1.Group("/recovery")
	recovery.Get("/", recoveryHandler.ListRecords)
	recovery.Post("/", recoveryHandler.CreateRecord)
	recovery.Get("/trend", recoveryHandler.Trend)
	recovery.Delete("/:id", recoveryHandler.DeleteRecord)

	// Remote endpoints (session token required)
	sessionAuth := middleware.SessionAuth(deps.Config.JWT.Secret, authService)

	plans := v1.Group("/plans")
	plans.Use(sessionAuth)
	plans.Get("/", planHandler.ListPlans)
	plans.Post("/", planHandler.CreatePlan)
	plans.Put("/:id", planHandler.UpdatePlan)
	plans.Get("/:id/sessions", planHandler.ListSessions)
	plans.Post("/:id/sessions", planHandler.CreateSession)

	sessions := v1.Group("/sessions")
	sessions.Use(sessionAuth)
	sessions.Post("/:sessionID/complete", planHandler.CompleteSession)
	sessions.Get("/:sessionID/exercises", planHandler.ListSessionExercises)
	sessions.Post("/:sessionID/exercises", planHandler.AddSessionExercise)

	sessionExercises := v1.Group("/session-exercises")
	sessionExercises.Use(sessionAuth)
	sessionExercises.Post("/:exerciseID/complete", planHandler.CompleteExercise)

	roster := v1.Group("/roster")
	roster.Use(sessionAuth)
	roster.Get("/coach-code", middleware.RequireRole(string(domain.RoleCoach)), rosterHandler.CoachCode)
	roster.Get("/athletes", middleware.RequireRole(string(domain.RoleCoach)), rosterHandler.Athletes)
	roster.Get("/coaches", middleware.RequireRole(string(domain.RoleAthlete)), rosterHandler.Coaches)
	roster.Post("/link", middleware.RequireRole(string(domain.RoleAthlete)), rosterHandler.LinkAthlete)

	// Exercise catalog: public read, authenticated write
	v1.Get("/exercises", exerciseHandler.ListExercises)
	v1.Get("/exercises/:id", exerciseHandler.GetExercise)
	exercises := v1.Group("/exercises")
	exercises.Use(sessionAuth)
	exercises.Post("/", middleware.RequireRole(string(domain.RoleCoach)), exerciseHandler.CreateExercise)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
