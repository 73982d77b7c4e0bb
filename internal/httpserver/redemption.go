package httpserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loyalty-exchange/internal/domain"
	redemptionrepo "loyalty-exchange/internal/repository/redemption"
	"loyalty-exchange/internal/service/exchange"
)

type redeemRequest struct {
	Client clientPayload `json:"client" binding:"required"`
	Points float64       `json:"points" binding:"required,gt=0"`
}

type clientPayload struct {
	ID        int64           `json:"id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	CPF       string          `json:"cpf"`
	Cellphone string          `json:"cellphone"`
	Points    float64         `json:"points"`
	Address   *addressPayload `json:"address,omitempty"`
}

type addressPayload struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
}

func (p clientPayload) toDomain() domain.Client {
	client := domain.Client{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CPF:       p.CPF,
		Cellphone: p.Cellphone,
		Points:    p.Points,
	}
	if a := p.Address; a != nil {
		client.Address = &domain.Address{
			Street:       a.Street,
			Number:       a.Number,
			Complement:   a.Complement,
			Neighborhood: a.Neighborhood,
			City:         a.City,
			State:        a.State,
			PostalCode:   a.PostalCode,
		}
	}
	return client
}

// redeemHandler runs the exchange synchronously within the request. The
// workflow result is returned as-is, success flag and all; only internal
// faults (failed persistence after full remote success) map to a 500.
func redeemHandler(svc *exchange.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req redeemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := svc.Redeem(c.Request.Context(), req.Client.toDomain(), req.Points, c.ClientIP())
		if err != nil {
			logger.Printf("redeem client_id=%d err=%v", req.Client.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func listRedemptionsHandler(repo redemptionrepo.Repository, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := strconv.ParseInt(c.Param("clientID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
			return
		}

		records, err := repo.ListByClient(c.Request.Context(), clientID)
		if err != nil {
			logger.Printf("list redemptions client_id=%d err=%v", clientID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if records == nil {
			records = []domain.Redemption{}
		}
		c.JSON(http.StatusOK, gin.H{"redemptions": records})
	}
}
