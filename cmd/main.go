package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/21f1006580/quiz-master/config"
	"github.com/21f1006580/quiz-master/database"
	_ "github.com/21f1006580/quiz-master/docs" // Swagger docs - auto-generated
	"github.com/21f1006580/quiz-master/internal/cache"
	"github.com/21f1006580/quiz-master/internal/controller"
	adminctrl "github.com/21f1006580/quiz-master/internal/controller/admin"
	userctrl "github.com/21f1006580/quiz-master/internal/controller/user"
	"github.com/21f1006580/quiz-master/internal/jobs"
	"github.com/21f1006580/quiz-master/internal/logger"
	"github.com/21f1006580/quiz-master/internal/mailer"
	"github.com/21f1006580/quiz-master/internal/middleware"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/21f1006580/quiz-master/internal/service"
)

// @title Quiz Master API
// @version 1.0
// @description Quiz management platform with scheduled availability, auto-expiry, and score tracking.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			cache.NewCache,
			mailer.NewMailer,
			NewGinEngine, // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSubjectRepository,
			repository.NewChapterRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewScoreRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewAvailabilityService,
			service.NewExpiryService,
			service.NewSubjectService,
			service.NewChapterService,
			service.NewQuizAdminService,
			service.NewQuestionService,
			service.NewUserQuizService,
			service.NewSubmissionService,
			service.NewExportService,
			service.NewNotificationService,
		),

		// Background Jobs
		fx.Provide(jobs.NewScheduler),

		// API Controllers Layer
		fx.Provide(
			controller.NewAuthController,
			adminctrl.NewSubjectController,
			adminctrl.NewChapterController,
			adminctrl.NewQuizController,
			adminctrl.NewQuestionController,
			adminctrl.NewExportController,
			userctrl.NewUserController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(EnsureAdminUser),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(StartScheduler),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *controller.AuthController,
	subjectCtrl *adminctrl.SubjectController,
	chapterCtrl *adminctrl.ChapterController,
	quizCtrl *adminctrl.QuizController,
	questionCtrl *adminctrl.QuestionController,
	exportCtrl *adminctrl.ExportController,
	userCtrl *userctrl.UserController,
) {
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/admin/login", authCtrl.AdminLogin)

		authed := auth.Group("", middleware.RequireAuth(cfg))
		authed.GET("/profile", authCtrl.Profile)
		authed.POST("/change-password", authCtrl.ChangePassword)
	}

	adminGroup := api.Group("/admin", middleware.RequireAuth(cfg), middleware.RequireAdmin())
	{
		adminGroup.POST("/subjects", subjectCtrl.CreateSubject)
		adminGroup.GET("/subjects", subjectCtrl.GetSubjects)
		adminGroup.PUT("/subjects/:id", subjectCtrl.UpdateSubject)
		adminGroup.DELETE("/subjects/:id", subjectCtrl.DeleteSubject)
		adminGroup.GET("/subjects/:id/chapters", chapterCtrl.GetChapters)

		adminGroup.POST("/chapters", chapterCtrl.CreateChapter)
		adminGroup.PUT("/chapters/:id", chapterCtrl.UpdateChapter)
		adminGroup.DELETE("/chapters/:id", chapterCtrl.DeleteChapter)
		adminGroup.GET("/chapters/:id/quizzes", quizCtrl.GetQuizzes)

		adminGroup.POST("/quizzes", quizCtrl.CreateQuiz)
		adminGroup.POST("/quizzes/sweep", quizCtrl.SweepExpired)
		adminGroup.PUT("/quizzes/:id", quizCtrl.UpdateQuiz)
		adminGroup.DELETE("/quizzes/:id", quizCtrl.DeleteQuiz)
		adminGroup.POST("/quizzes/:id/expire", quizCtrl.ExpireQuiz)
		adminGroup.GET("/quizzes/:id/questions", questionCtrl.GetQuestions)

		adminGroup.POST("/questions", questionCtrl.CreateQuestion)
		adminGroup.PUT("/questions/:id", questionCtrl.UpdateQuestion)
		adminGroup.DELETE("/questions/:id", questionCtrl.DeleteQuestion)

		adminGroup.POST("/export/users-csv", exportCtrl.ExportUsersCSV)
	}

	userGroup := api.Group("", middleware.RequireAuth(cfg))
	{
		userGroup.GET("/dashboard", userCtrl.GetDashboard)
		userGroup.GET("/subjects/:id/quizzes", userCtrl.GetQuizzesBySubject)
		userGroup.GET("/quizzes/:id", userCtrl.GetQuizForAttempt)
		userGroup.POST("/quizzes/:id/submit", userCtrl.SubmitQuiz)
		userGroup.GET("/scores", userCtrl.GetScores)
		userGroup.GET("/scores/summary", userCtrl.GetScoreSummary)
		userGroup.POST("/export/scores-csv", userCtrl.ExportScoresCSV)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz Master API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func StartScheduler(lc fx.Lifecycle, scheduler *jobs.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Chapter{},
		&model.Quiz{},
		&model.Question{},
		&model.Score{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed")
	return nil
}

func EnsureAdminUser(authService service.AuthService) error {
	return authService.EnsureAdminUser()
}
