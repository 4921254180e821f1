package handlers

import (
	"github.com/go-chi/chi/v5"

	"splitledger/internal/auth"
	"splitledger/internal/metrics"
	"splitledger/internal/middleware"
)

// NewRouter wires the HTTP routes. Registration and login are public;
// everything under /groups and /logout requires a valid session.
func NewRouter(authH *AuthHandler, groupH *GroupHandler, expenseH *ExpenseHandler, tokens *auth.JWTManager) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(metrics.Instrument)

	r.Post("/register", authH.Register)
	r.Post("/login", authH.Login)
	r.Method("GET", "/metrics", metrics.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(tokens))

		pr.Post("/logout", authH.Logout)

		pr.Get("/groups", groupH.List)
		pr.Post("/groups", groupH.Create)
		pr.Get("/groups/{groupID}", groupH.Get)
		pr.Post("/groups/{groupID}/participants", groupH.AddParticipant)

		pr.Get("/groups/{groupID}/expenses", expenseH.List)
		pr.Post("/groups/{groupID}/expenses", expenseH.CreateEqualSplit)
		pr.Post("/groups/{groupID}/expenses/custom", expenseH.CreateCustomSplit)
	})

	return r
}
