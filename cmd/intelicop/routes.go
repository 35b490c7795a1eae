package main

import (
	"github.com/intelicop/console/internal/adapters/handler"
	"github.com/intelicop/console/internal/adapters/middleware"
	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type dependencies struct {
	session     middleware.SessionSource
	auth        ports.AuthService
	navigator   handler.Navigator
	visitors    ports.VisitorService
	users       ports.UserService
	criminals   ports.CriminalService
	health      ports.HealthService
	preferences ports.PreferenceService
	console     *handler.Console
}

func newMux(d dependencies) *handler.Mux {
	authMiddleware := middleware.NewAuthMiddleware(d.session)

	authHandler := handler.NewAuthHandler(d.auth, d.session, d.console)
	dashboardHandler := handler.NewDashboardHandler(d.navigator, d.session, d.console)
	visitorHandler := handler.NewVisitorHandler(d.visitors, d.console)
	userHandler := handler.NewUserHandler(d.users, d.console)
	criminalHandler := handler.NewCriminalHandler(d.criminals, d.console)
	healthHandler := handler.NewHealthHandler(d.health, d.console)
	preferenceHandler := handler.NewPreferenceHandler(d.preferences, d.console)

	mux := handler.NewMux()

	mux.HandleFunc("login", authHandler.Login)
	mux.HandleFunc("logout", authHandler.Logout)
	mux.HandleFunc("whoami", authMiddleware.RequireSession(authHandler.WhoAmI))

	mux.HandleFunc("dashboard", dashboardHandler.Dashboard)
	mux.HandleFunc("open", dashboardHandler.Open)

	visitors := func(h middleware.HandlerFunc) middleware.HandlerFunc {
		return authMiddleware.RequireRoute(domain.RouteVisitors, h)
	}
	mux.HandleFunc("visitors list", visitors(visitorHandler.List))
	mux.HandleFunc("visitors remote", visitors(visitorHandler.Remote))
	mux.HandleFunc("visitors history", visitors(visitorHandler.History))
	mux.HandleFunc("visitors schedule", visitors(visitorHandler.Schedule))
	mux.HandleFunc("visitors complete", visitors(visitorHandler.Complete))
	mux.HandleFunc("visitors cancel", visitors(visitorHandler.Cancel))
	mux.HandleFunc("visitors reschedule", visitors(visitorHandler.Reschedule))
	mux.HandleFunc("visitors delete", visitors(visitorHandler.Delete))

	criminals := func(h middleware.HandlerFunc) middleware.HandlerFunc {
		return authMiddleware.RequireRoute(domain.RouteCriminals, h)
	}
	mux.HandleFunc("criminals list", criminals(criminalHandler.List))
	mux.HandleFunc("criminals show", criminals(criminalHandler.Show))
	mux.HandleFunc("criminals search", criminals(criminalHandler.Search))
	mux.HandleFunc("criminals add", criminals(criminalHandler.Add))
	mux.HandleFunc("criminals update", criminals(criminalHandler.Update))
	mux.HandleFunc("criminals delete", criminals(criminalHandler.Delete))

	mux.HandleFunc("users list", authMiddleware.RequireRoute(domain.RouteUsers, userHandler.List))
	mux.HandleFunc("users counts", authMiddleware.RequireRoute(domain.RouteUsers, userHandler.Counts))
	mux.HandleFunc("users set-role", authMiddleware.RequireRoute(domain.RouteUsers, userHandler.SetRole))
	mux.HandleFunc("users delete", authMiddleware.RequireRoute(domain.RouteUsers, userHandler.Delete))
	mux.HandleFunc("users add", authMiddleware.RequireRoute(domain.RouteAddUser, userHandler.Add))

	mux.HandleFunc("health db", authMiddleware.RequireRoute(domain.RouteHealth, healthHandler.Database))
	mux.HandleFunc("health report", authMiddleware.RequireRoute(domain.RouteHealth, healthHandler.Report))

	mux.HandleFunc("prefs", preferenceHandler.Show)
	mux.HandleFunc("prefs theme", preferenceHandler.Theme)
	mux.HandleFunc("prefs language", preferenceHandler.Language)

	return mux
}
