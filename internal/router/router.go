package router

import (
	"github.com/Ajayrajc1998/wedding/internal/flags"
	"github.com/Ajayrajc1998/wedding/internal/handlers"
	"github.com/Ajayrajc1998/wedding/internal/middleware"
	"github.com/Ajayrajc1998/wedding/internal/services"
	"github.com/Ajayrajc1998/wedding/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Flags       flags.Store
	Hub         *ws.Hub
	Auth        *services.AuthService
	Participant *services.ParticipantService
	Photo       *services.PhotoService
	Quiz        *services.QuizService
	Submission  *services.SubmissionService
	CORSOrigins []string
}

func New(d Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.Auth, d.Flags, d.Hub)
	participantHandler := handlers.NewParticipantHandler(d.Participant, d.Hub)
	photoHandler := handlers.NewPhotoHandler(d.Photo, d.Hub)
	quizHandler := handlers.NewQuizHandler(d.Quiz)
	submissionHandler := handlers.NewSubmissionHandler(d.Submission, d.Hub)
	wsHandler := handlers.NewWSHandler(d.Hub)
	healthHandler := handlers.NewHealthHandler(d.DB)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/healthz", healthHandler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/participation", participantHandler.Register)
	r.POST("/upload_photo", photoHandler.UploadPhoto)
	r.GET("/photos", photoHandler.ListPhotos)
	r.GET("/photos/:id", photoHandler.GetPhoto)
	r.GET("/quiz", quizHandler.ListVisibleQuizzes)
	r.POST("/quiz/submit", submissionHandler.SubmitQuiz)

	r.POST("/admin/login", authHandler.Login)
	r.GET("/admin/ws", middleware.AdminAuthWithQuery(d.Auth), wsHandler.HandleWebSocket)

	admin := r.Group("")
	admin.Use(middleware.AdminAuth(d.Auth))
	{
		admin.POST("/admin/toggle_photos", authHandler.TogglePhotos)
		admin.POST("/admin/toggle_quiz", authHandler.ToggleQuiz)
		admin.GET("/admin/settings", authHandler.GetSettings)

		admin.GET("/participants", participantHandler.ListParticipants)
		admin.GET("/participant/:id", participantHandler.GetParticipant)
		admin.PUT("/participant/:id", participantHandler.UpdateParticipant)
		admin.DELETE("/participant/:id", participantHandler.DeleteParticipant)

		admin.DELETE("/upload_photo/:id", photoHandler.DeletePhoto)

		admin.POST("/admin/quiz", quizHandler.CreateQuiz)
		admin.GET("/admin/quiz", quizHandler.ListQuizzes)
		admin.GET("/admin/quiz/:id", quizHandler.GetQuiz)
		admin.PUT("/admin/quiz/:id", quizHandler.UpdateQuiz)
		admin.DELETE("/admin/quiz/:id", quizHandler.DeleteQuiz)

		admin.GET("/quiz_participants", submissionHandler.ListResults)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
