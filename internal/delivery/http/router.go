package http

import (
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/delivery/http/controllers"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/delivery/http/controllers/middleware"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	authMw := middleware.NewAuthMiddlewareProvider(l, u.AuthService)

	statusController := controllers.NewStatusHandler()
	authController := controllers.NewAuthHandler(l, u.AuthService)
	lessonController := controllers.NewLessonHandler(l, u.LessonService)
	quizController := controllers.NewQuizHandler(l, u.QuizService)
	progressController := controllers.NewProgressHandler(l, u.ProgressService)
	geoController := controllers.NewGeoHandler(l, u.GeoService)
	adminController := controllers.NewAdminHandler(l, u.AdminService)
	notificationController := controllers.NewNotificationHandler(l, u.NotificationService)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authMw.AuthMiddleware, authController.Me)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh", authController.Refresh)
		}

		lessons := v1.Group("/lessons", authMw.OptionalAuthMiddleware)
		{
			lessons.GET("", lessonController.ListLessons)
			lessons.GET("/search", lessonController.SearchLessons)
			lessons.GET("/:lesson_id", lessonController.LessonByID)
			lessons.GET("/:lesson_id/quizzes", quizController.QuizzesByLesson)

			learner := lessons.Group("", authMw.AuthMiddleware)
			{
				learner.GET("/recommendations", lessonController.RecommendedLessons)
				learner.POST("/:lesson_id/complete", lessonController.CompleteLesson)
			}

			editor := lessons.Group("", authMw.AuthMiddleware, middleware.RequireRoles(models.TeacherRole, models.AdminRole))
			{
				editor.POST("", lessonController.CreateLesson)
				editor.PUT("/:lesson_id", lessonController.UpdateLesson)
				editor.DELETE("/:lesson_id", lessonController.DeleteLesson)
				editor.PATCH("/:lesson_id/publish", lessonController.PublishLesson)
			}
		}

		quizzes := v1.Group("/quizzes", authMw.OptionalAuthMiddleware)
		{
			quizzes.GET("", quizController.ListQuizzes)
			quizzes.GET("/:quiz_id", quizController.QuizByID)

			learner := quizzes.Group("", authMw.AuthMiddleware)
			{
				learner.POST("/:quiz_id/submit", quizController.SubmitQuiz)
				learner.GET("/:quiz_id/results", quizController.QuizResults)
			}

			editor := quizzes.Group("", authMw.AuthMiddleware, middleware.RequireRoles(models.TeacherRole, models.AdminRole))
			{
				editor.POST("", quizController.CreateQuiz)
				editor.PUT("/:quiz_id", quizController.UpdateQuiz)
				editor.DELETE("/:quiz_id", quizController.DeleteQuiz)
			}
		}

		progress := v1.Group("/progress")
		{
			progress.GET("/leaderboard", progressController.Leaderboard)

			authed := progress.Group("", authMw.AuthMiddleware)
			{
				authed.GET("", progressController.UserProgress)
				authed.GET("/overview", progressController.Overview)
				authed.GET("/export", progressController.Export)
			}
		}

		geo := v1.Group("/geo-points")
		{
			geo.GET("", geoController.ListGeoPoints)
			geo.GET("/:point_id", geoController.GeoPointByID)
			geo.GET("/:point_id/media", geoController.MediaURLs)

			editor := geo.Group("", authMw.AuthMiddleware, middleware.RequireRoles(models.TeacherRole, models.AdminRole))
			{
				editor.POST("", geoController.CreateGeoPoint)
				editor.PUT("/:point_id", geoController.UpdateGeoPoint)
				editor.DELETE("/:point_id", geoController.DeleteGeoPoint)
				editor.POST("/:point_id/media", geoController.UploadMedia)
			}
		}

		notifications := v1.Group("/notifications", authMw.AuthMiddleware)
		{
			notifications.GET("", notificationController.List)
			notifications.PATCH("/:notification_id/read", notificationController.MarkRead)
			notifications.PATCH("/read-all", notificationController.MarkAllRead)
		}

		admin := v1.Group("/admin", authMw.AuthMiddleware, middleware.RequireRoles(models.AdminRole))
		{
			admin.GET("/dashboard", adminController.Dashboard)
			admin.DELETE("/users/:user_id", adminController.DeleteUser)
		}
	}
	return r
}
