package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caioalmeida/mediateam-backend/api/controllers"
	"github.com/caioalmeida/mediateam-backend/api/middleware"
	"github.com/caioalmeida/mediateam-backend/internal/auth"
	"github.com/caioalmeida/mediateam-backend/internal/events"
	"github.com/caioalmeida/mediateam-backend/internal/feedback"
	"github.com/caioalmeida/mediateam-backend/internal/roles"
	"github.com/caioalmeida/mediateam-backend/internal/rosters"
	"github.com/caioalmeida/mediateam-backend/internal/songs"
	"github.com/caioalmeida/mediateam-backend/internal/swaps"
	"github.com/caioalmeida/mediateam-backend/internal/users"
	"github.com/caioalmeida/mediateam-backend/pkg/auth/session"
	"github.com/caioalmeida/mediateam-backend/pkg/config"
	"github.com/caioalmeida/mediateam-backend/pkg/db"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
	"github.com/caioalmeida/mediateam-backend/pkg/redis"
)

// Deps bundles everything the route tree needs. Keeping it a struct saves
// main from a twenty-argument constructor.
type Deps struct {
	Cfg             *config.Config
	Logg            *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionManager  session.AccessSessionChecker
	AuthService     auth.Service
	RegisterService auth.RegisterService
	UserService     users.Service
	RosterService   rosters.Service
	SwapService     swaps.Service
	SongService     songs.Service
	RoleService     roles.Service
	EventService    events.Service
	FeedbackService feedback.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Cfg
	logg := deps.Logg

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Get("/ping", controllers.PublicPing())

	r.Route("/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		// A pending account can see itself and nothing else.
		r.Get("/me", controllers.UsersMe(deps.UserService, logg))
		r.Put("/me", controllers.UsersUpdateMe(deps.UserService, logg))
		r.Get("/me/capabilities", controllers.MeCapabilities())
		r.Get("/private/ping", controllers.PrivatePing())

		// Flat method registrations so the member, approver, and moderator
		// tiers can share path prefixes without conflicting mounts.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireApproved(logg))

			r.Get("/rosters", controllers.RostersList(deps.RosterService, logg))
			r.Get("/rosters/{rosterId}", controllers.RostersGet(deps.RosterService, logg))

			r.Post("/swap-requests", controllers.SwapsRequest(deps.SwapService, logg))
			r.Get("/swap-requests/mine", controllers.SwapsListMine(deps.SwapService, logg))

			r.Get("/songs", controllers.SongsList(deps.SongService, logg))
			r.Get("/songs/{songId}", controllers.SongsGet(deps.SongService, logg))

			r.Get("/duty-roles", controllers.RolesList(deps.RoleService, logg))
			r.Get("/events", controllers.EventsList(deps.EventService, logg))

			r.Post("/feedback", controllers.FeedbackSubmit(deps.FeedbackService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireApproved(logg))
			r.Use(middleware.RequireApprover(logg))

			r.Post("/rosters", controllers.RostersCreate(deps.RosterService, logg))
			r.Put("/rosters/{rosterId}", controllers.RostersUpdate(deps.RosterService, logg))
			r.Delete("/rosters/{rosterId}", controllers.RostersDelete(deps.RosterService, logg))

			r.Get("/swap-requests/pending", controllers.SwapsListPending(deps.SwapService, logg))
			r.Post("/swap-requests/{requestId}/approve", controllers.SwapsApprove(deps.SwapService, logg))
			r.Post("/swap-requests/{requestId}/reject", controllers.SwapsReject(deps.SwapService, logg))

			r.Post("/songs", controllers.SongsCreate(deps.SongService, logg))
			r.Put("/songs/{songId}", controllers.SongsUpdate(deps.SongService, logg))
			r.Delete("/songs/{songId}", controllers.SongsDelete(deps.SongService, logg))

			r.Post("/duty-roles", controllers.RolesCreate(deps.RoleService, logg))
			r.Put("/duty-roles/{roleId}", controllers.RolesUpdate(deps.RoleService, logg))
			r.Delete("/duty-roles/{roleId}", controllers.RolesDelete(deps.RoleService, logg))

			r.Post("/events", controllers.EventsCreate(deps.EventService, logg))
			r.Put("/events/{eventId}", controllers.EventsUpdate(deps.EventService, logg))
			r.Delete("/events/{eventId}", controllers.EventsDelete(deps.EventService, logg))

			r.Get("/feedback", controllers.FeedbackList(deps.FeedbackService, logg))

			r.Get("/users", controllers.UsersList(deps.UserService, logg))
			r.Post("/users/{userId}/approve", controllers.UsersApprove(deps.UserService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireApproved(logg))
			r.Use(middleware.RequireModerator(logg))

			r.Put("/users/{userId}/role", controllers.UsersChangeRole(deps.UserService, logg))
			r.Delete("/users/{userId}", controllers.UsersDelete(deps.UserService, logg))
		})
	})

	return r
}
