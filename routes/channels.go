package routes

import (
	"net/http"

	"creatorfund/controllers/channels"
	"creatorfund/middleware"
	"creatorfund/models"

	"github.com/gorilla/mux"
)

// ChannelsRoutes registers channel, roster and profit routes on the subrouter.
// The user limiter sits inside the auth middleware so it sees the
// authenticated user id.
func ChannelsRoutes(api *mux.Router, userLimiter *middleware.UserRateLimiter) {
	// Channel CRUD. "/channels/my" must be registered before "/channels/{id}"
	// so mux does not swallow it as an id. Creating a channel is creator-only.
	api.Handle("/channels/my", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.GetMyChannelsHandler)))).Methods(http.MethodGet)
	api.Handle("/channels", middleware.AuthMiddleware(userLimiter.Middleware(middleware.RequireRole(models.RoleCreator, http.HandlerFunc(channels.CreateChannelHandler))))).Methods(http.MethodPost)
	api.Handle("/channels", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.ListChannelsHandler)))).Methods(http.MethodGet)
	api.Handle("/channels/{id:[0-9]+}", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.GetChannelHandler)))).Methods(http.MethodGet)
	api.Handle("/channels/{id:[0-9]+}/summary", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.GetChannelSummaryHandler)))).Methods(http.MethodGet)

	// Team roster
	api.Handle("/channels/{id:[0-9]+}/team", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.AddTeamMemberHandler)))).Methods(http.MethodPost)
	api.Handle("/channels/{id:[0-9]+}/team", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.ListTeamMembersHandler)))).Methods(http.MethodGet)

	// Investors
	api.Handle("/channels/{id:[0-9]+}/investors", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.ListInvestorsHandler)))).Methods(http.MethodGet)

	// Profit distribution
	api.Handle("/channels/{id:[0-9]+}/profits", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.DistributeProfitHandler)))).Methods(http.MethodPost)
	api.Handle("/channels/{id:[0-9]+}/profits", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(channels.ListDistributionsHandler)))).Methods(http.MethodGet)
}
