package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/lucianosaints/app-marica-cidadao/internal/ai"
	"github.com/lucianosaints/app-marica-cidadao/internal/config"
	"github.com/lucianosaints/app-marica-cidadao/internal/handlers"
	"github.com/lucianosaints/app-marica-cidadao/internal/middleware"
	"github.com/lucianosaints/app-marica-cidadao/internal/notify"
	"github.com/lucianosaints/app-marica-cidadao/internal/repository/postgres"
	"github.com/lucianosaints/app-marica-cidadao/internal/service"
	"github.com/lucianosaints/app-marica-cidadao/internal/storage"
)

func New(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	// Repos + services
	userRepo := postgres.NewUserRepo(db)
	categoriaRepo := postgres.NewCategoriaRepo(db)
	relatoRepo := postgres.NewRelatoRepo(db)
	historicoRepo := postgres.NewHistoricoRepo(db)

	files := storage.New(cfg.UploadDir)
	notifier := notify.NewLogNotifier(log)
	tickets := service.NewTicketService(relatoRepo, historicoRepo, categoriaRepo, userRepo, notifier, log)
	auth := service.NewAuthService(userRepo, cfg.SessionSecret, cfg.TokenTTL)

	ah := handlers.NewAuthHTTP(auth, files)
	ch := handlers.NewCategoriaHTTP(categoriaRepo)
	rh := handlers.NewRelatoHTTP(tickets, files)
	aih := handlers.NewAIHTTP(ai.NewClassifier(cfg.GeminiAPIKey, cfg.GeminiURL), log)

	// Health
	r.Get("/healthz", handlers.Health())

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/categorias", ch.List())
		r.Post("/cadastro", ah.Cadastro())
		r.Post("/token", ah.Token())

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/analisar-foto", aih.AnalisarFoto())

			r.Route("/relatos", func(r chi.Router) {
				r.Get("/", rh.List())
				r.Post("/", rh.Submit())
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", rh.Get())
					r.Patch("/", rh.Rate())
					r.Get("/historico", rh.History())
					r.With(middleware.RequireStaff).Post("/status", rh.Transition())
				})
			})
		})
	})

	return r
}
