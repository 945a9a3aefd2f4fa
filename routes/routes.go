package routes

import (
	"net/http"

	"github.com/Dosada05/tennis-system/handlers"
	"github.com/Dosada05/tennis-system/middleware"
	"github.com/Dosada05/tennis-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes собирает все маршруты приложения. Публичный просмотр турниров
// и таблиц доступен без токена; запись счёта, генерация сеток и управление
// кортами закрыты за ролью admin.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	participantHandler *handlers.ParticipantHandler,
	matchHandler *handlers.MatchHandler,
	bookingHandler *handlers.BookingHandler,
	notificationHandler *handlers.NotificationHandler,
	noticeHandler *handlers.NoticeHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Аутентификация
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// WebSocket live-обновления турнира
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	// Турниры
	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{id}", tournamentHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/{id}/my-categories", participantHandler.MyCategories)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", tournamentHandler.Create)
				r.Patch("/{id}/status", tournamentHandler.UpdateStatus)
				r.Post("/{id}/poster", tournamentHandler.UploadPoster)
			})
		})
	})

	// Категории: участники, матчи, таблицы, генерация раундов
	router.Route("/categories/{categoryID}", func(r chi.Router) {
		r.Get("/participants", participantHandler.ListByCategory)
		r.Get("/matches", matchHandler.ListByCategory)
		r.Get("/standings", matchHandler.Standings)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/fixtures", matchHandler.GenerateGroupFixtures)
			r.Post("/semi-finals", matchHandler.GenerateSemiFinals)
			r.Post("/finals", matchHandler.GenerateFinals)
		})
	})

	// Регистрация участников
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/participants", participantHandler.Register)
	})
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)
		r.Delete("/participants/{participantID}", participantHandler.Unregister)
	})

	// Матчи
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)
		r.Post("/matches", matchHandler.Create)
		r.Put("/matches/{matchID}/score", matchHandler.RecordScore)
		r.Delete("/matches/{matchID}", matchHandler.Delete)
	})

	// Корты и бронирование
	router.Route("/slots", func(r chi.Router) {
		r.Get("/", bookingHandler.ListSlots)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{slotID}/book", bookingHandler.BookSlot)
			r.Delete("/{slotID}/book", bookingHandler.CancelBooking)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Patch("/{slotID}/active", bookingHandler.SetSlotActive)
				r.Delete("/{slotID}", bookingHandler.DeleteSlot)
			})
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)
		r.Post("/schedules", bookingHandler.CreateSchedule)
	})

	// Пользователи
	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/me", userHandler.GetMe)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.GetByID)
			r.Patch("/{id}/role", userHandler.UpdateRole)
			r.Patch("/{id}/active", userHandler.SetActive)
			r.Patch("/{id}/password", userHandler.ResetPassword)
			r.Post("/guests", userHandler.CreateGuest)
		})
	})

	// Уведомления (админская лента)
	router.Route("/notifications", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)
		r.Get("/", notificationHandler.List)
		r.Get("/unread-count", notificationHandler.UnreadCount)
		r.Patch("/{id}/read", notificationHandler.MarkRead)
		r.Patch("/read-all", notificationHandler.MarkAllRead)
	})

	// Объявления клуба: баннер публичный, управление админское
	router.Route("/notices", func(r chi.Router) {
		r.Get("/active", noticeHandler.GetActive)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Get("/", noticeHandler.List)
			r.Post("/", noticeHandler.Create)
			r.Patch("/{id}/status", noticeHandler.SetActive)
			r.Delete("/{id}", noticeHandler.Delete)
		})
	})
}
