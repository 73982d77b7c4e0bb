package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	redemptionrepo "loyalty-exchange/internal/repository/redemption"
	"loyalty-exchange/internal/service/exchange"
)

// Deps carries the collaborators the handlers need.
type Deps struct {
	ExchangeSvc    *exchange.Service
	RedemptionRepo redemptionrepo.Repository
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/redemptions", redeemHandler(deps.ExchangeSvc, logger))
	router.GET("/clients/:clientID/redemptions", listRedemptionsHandler(deps.RedemptionRepo, logger))

	return router
}
