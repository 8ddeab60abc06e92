package routes

import (
	"net/http"
	"time"

	"creatorfund/controllers/auth"
	"creatorfund/controllers/users"
	"creatorfund/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers auth, profile and investment routes on the subrouter.
func UsersRoutes(api *mux.Router, userLimiter *middleware.UserRateLimiter) {
	// Rate limiter for login/register: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)

	// Register & Login
	api.Handle("/auth/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)

	// Profile & ledger. The user limiter sits inside the auth middleware so it
	// sees the authenticated user id.
	api.Handle("/users/info", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.GetUserInfoHandler)))).Methods(http.MethodGet)
	api.Handle("/users/transactions", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.GetTransactionHistory)))).Methods(http.MethodGet)

	// Investments
	api.Handle("/investments", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.CreateInvestmentHandler)))).Methods(http.MethodPost)
	api.Handle("/investments/my", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.GetMyInvestmentsHandler)))).Methods(http.MethodGet)
}
