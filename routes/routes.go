package routes

import (
	"net/http"
	"time"

	"github.com/gasesray/shottrack/handlers"
	"github.com/gasesray/shottrack/middleware"
	"github.com/gasesray/shottrack/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	scheduleHandler *handlers.ScheduleHandler,
	playByPlayHandler *handlers.PlayByPlayHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RateLimit(300, time.Minute))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	organizerOnly := middleware.Authorize(string(models.RoleOrganizer))
	scorerOrOrganizer := middleware.Authorize(string(models.RoleScorer), string(models.RoleOrganizer))

	// Документация API
	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "docs/swagger.json")
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.GetByID)
		r.Get("/{tournamentID}/teams", teamHandler.ListByTournament)
		r.Get("/{tournamentID}/schedules", scheduleHandler.ListByTournament)

		// Защищённые маршруты только для организаторов
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(organizerOnly)

			r.Post("/", tournamentHandler.Create)
			r.Put("/{tournamentID}", tournamentHandler.Update)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)
			r.Post("/{tournamentID}/teams", teamHandler.Create)
			r.Post("/{tournamentID}/schedules", scheduleHandler.Create)
			r.Post("/{tournamentID}/schedules/import", scheduleHandler.Import)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetByID)
		r.Get("/{teamID}/players", playerHandler.ListByTeam)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(organizerOnly)

			r.Put("/{teamID}", teamHandler.Update)
			r.Delete("/{teamID}", teamHandler.Delete)
			r.Put("/{teamID}/logo", teamHandler.UploadLogo)
			r.Post("/{teamID}/players", playerHandler.Create)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(organizerOnly)

			r.Put("/{playerID}", playerHandler.Update)
			r.Delete("/{playerID}", playerHandler.Delete)
		})
	})

	router.Route("/schedules", func(r chi.Router) {
		r.Get("/{scheduleID}", scheduleHandler.GetByID)
		r.Get("/{scheduleID}/stats", scheduleHandler.ListStats)
		r.Get("/{scheduleID}/play-by-play", playByPlayHandler.GetPlayByPlay)
		r.Get("/{scheduleID}/fouls/{quarter}", playByPlayHandler.GetTeamFouls)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			// Live-ввод статистики доступен скорерам и организаторам.
			r.With(scorerOrOrganizer).Post("/{scheduleID}/play-by-play", playByPlayHandler.RecordEvent)
			r.With(organizerOnly).Delete("/{scheduleID}", scheduleHandler.Delete)
		})
	})

	router.Get("/ws/schedules/{scheduleID}", webSocketHandler.ServeWs)
}
