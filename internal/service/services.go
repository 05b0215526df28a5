package service

import (
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/admin"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/auth"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/geo"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/lesson"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/notification"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/progress"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/quiz"
)

type Collection struct {
	*auth.AuthService
	*lesson.LessonService
	*quiz.QuizService
	*progress.ProgressService
	*geo.GeoService
	*admin.AdminService
	*notification.NotificationService
}
