package routes

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"cricket-auction/internal/auction"
	"cricket-auction/internal/logger"
	"cricket-auction/internal/middleware"
	"cricket-auction/internal/models"
	"cricket-auction/internal/service"
	"cricket-auction/internal/store"
	"cricket-auction/internal/summary"
)

// RegisterAllRoutes wires every boundary of the ledger onto one router.
// Summary reads and the live feed are public; settlement and catalog
// management sit behind the admin JWT.
func RegisterAllRoutes(db *sql.DB, hub *models.Hub, log *logger.Logger) *mux.Router {
	st := store.New(db)
	engine := auction.NewEngine(db, st, log)
	agg := summary.NewAggregator(st)

	authService := service.NewAuthService()
	catalogService := service.NewCatalogService(st)
	auctionService := service.NewAuctionService(engine, st, hub)
	summaryService := service.NewSummaryService(agg)
	feedService := service.NewFeedService(hub)

	router := mux.NewRouter()
	router.Use(middleware.CORSMiddleware)

	registerAuthRoutes(router, authService)
	registerSummaryRoutes(router, summaryService)
	registerCatalogRoutes(router, catalogService)
	registerAuctionRoutes(router, auctionService)

	router.HandleFunc("/ws", feedService.Subscribe)

	return router
}

func registerAuthRoutes(router *mux.Router, svc *service.AuthService) {
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.Use(middleware.ResponseWrapperMiddleware)
	authRouter.HandleFunc("/login", svc.Login).Methods(http.MethodPost, http.MethodOptions)
}

func registerSummaryRoutes(router *mux.Router, svc *service.SummaryService) {
	summaryRouter := router.PathPrefix("/api/summary").Subrouter()
	summaryRouter.Use(middleware.ResponseWrapperMiddleware)
	summaryRouter.HandleFunc("/by-set/{setId}", svc.BySet).Methods(http.MethodGet, http.MethodOptions)
	summaryRouter.HandleFunc("/by-team/{teamId}", svc.ByTeam).Methods(http.MethodGet, http.MethodOptions)
	summaryRouter.HandleFunc("/global", svc.Global).Methods(http.MethodGet, http.MethodOptions)
}

func registerCatalogRoutes(router *mux.Router, svc *service.CatalogService) {
	// Reads are public, the display page lists teams and sets without a
	// session. Writes require the admin token.
	readRouter := router.PathPrefix("/api").Subrouter()
	readRouter.Use(middleware.ResponseWrapperMiddleware)
	readRouter.HandleFunc("/teams", svc.ListTeams).Methods(http.MethodGet, http.MethodOptions)
	readRouter.HandleFunc("/teams/{id}", svc.GetTeam).Methods(http.MethodGet, http.MethodOptions)
	readRouter.HandleFunc("/sets", svc.ListSets).Methods(http.MethodGet, http.MethodOptions)
	readRouter.HandleFunc("/sets/{id}", svc.GetSet).Methods(http.MethodGet, http.MethodOptions)
	readRouter.HandleFunc("/players", svc.ListPlayers).Methods(http.MethodGet, http.MethodOptions)
	readRouter.HandleFunc("/players/{id}", svc.GetPlayer).Methods(http.MethodGet, http.MethodOptions)

	writeRouter := router.PathPrefix("/api").Subrouter()
	writeRouter.Use(middleware.AuthMiddleware, middleware.ResponseWrapperMiddleware)
	writeRouter.HandleFunc("/teams", svc.CreateTeam).Methods(http.MethodPost, http.MethodOptions)
	writeRouter.HandleFunc("/sets", svc.CreateSet).Methods(http.MethodPost, http.MethodOptions)
	writeRouter.HandleFunc("/players", svc.CreatePlayer).Methods(http.MethodPost, http.MethodOptions)
	writeRouter.HandleFunc("/players/{id}/set", svc.ReassignPlayerSet).Methods(http.MethodPut, http.MethodOptions)
}

func registerAuctionRoutes(router *mux.Router, svc *service.AuctionService) {
	auctionRouter := router.PathPrefix("/api/auction").Subrouter()
	auctionRouter.Use(middleware.AuthMiddleware, middleware.ResponseWrapperMiddleware)
	auctionRouter.HandleFunc("/sell", svc.Sell).Methods(http.MethodPost, http.MethodOptions)
	auctionRouter.HandleFunc("/unsold", svc.Unsold).Methods(http.MethodPost, http.MethodOptions)
	auctionRouter.HandleFunc("/reverse", svc.Reverse).Methods(http.MethodPost, http.MethodOptions)
	auctionRouter.HandleFunc("/validate", svc.Validate).Methods(http.MethodPost, http.MethodOptions)
}
