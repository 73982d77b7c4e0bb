package exchange

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"loyalty-exchange/internal/domain"
	redemptionrepo "loyalty-exchange/internal/repository/redemption"
	"loyalty-exchange/internal/vtex"
)

const (
	cardName        = "BRITZ"
	clusterEligible = "M"

	// Fixed 1:1 rate between redeemed points and the persisted value.
	exchangeRate = 1

	domainPhilco   = "https://www.philcoclub.com.br"
	domainBritania = "https://www.britaniaemcasa.com.br"

	salesChannelPhilco   = 13
	salesChannelBritania = 14
)

// StoreAPI is the subset of the platform client the exchange flow needs.
type StoreAPI interface {
	VerifyAccount(ctx context.Context, email string) (string, error)
	Search(ctx context.Context, acronym, fields, where string) ([]map[string]interface{}, error)
	CreateAccount(ctx context.Context, acct vtex.NewAccount) (*vtex.Document, error)
	CreateAddress(ctx context.Context, addr vtex.NewAddress) (*vtex.Document, error)
	SaveAccount(ctx context.Context, upd vtex.AccountUpdate) error
	GiftCardCreate(ctx context.Context, req vtex.GiftCardRequest) (*vtex.GiftCard, error)
	GiftCardAddPoints(ctx context.Context, giftCardID string, credit vtex.GiftCardCredit) (map[string]interface{}, error)
}

// Result is the structured outcome of one redemption attempt. Business
// failures come back with Success false and a human-readable Message;
// callers branch on the boolean, not on errors.
type Result struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message,omitempty"`
	PointsResponse map[string]interface{} `json:"pointsResponse,omitempty"`
	GiftCard       *vtex.GiftCard         `json:"giftCard,omitempty"`
	Links          map[string]string      `json:"links,omitempty"`
}

// Service converts a client's accumulated points into store gift-card
// credit through a fixed sequence of platform calls.
type Service struct {
	api    StoreAPI
	repo   redemptionrepo.Repository
	logger *log.Logger

	now                  func() time.Time
	reportAddressFailure bool
}

// Option tweaks Service construction.
type Option func(*Service)

// WithClock overrides the time source used for gift-card expiration.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithAddressFailureReported makes a failed address registration terminate
// the flow instead of being logged and skipped.
func WithAddressFailureReported() Option {
	return func(s *Service) { s.reportAddressFailure = true }
}

// New creates a Service.
func New(api StoreAPI, repo redemptionrepo.Repository, logger *log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{
		api:    api,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Redeem runs the full exchange for one client and one point amount. The
// sequence is linear: balance check, account resolution (creating the
// account and address when missing), cluster check, gift-card creation and
// credit, then the local redemption record. The first failing step ends the
// flow; only a persistence fault after full remote success returns a
// non-nil error.
func (s *Service) Redeem(ctx context.Context, client domain.Client, points float64, ip string) (*Result, error) {
	available := AvailablePoints(client)
	if points > available {
		return failure(fmt.Sprintf("points balance of %v is lower than the amount requested for exchange", available)), nil
	}

	profileID, err := s.api.VerifyAccount(ctx, client.Email)
	if err != nil || profileID == "" {
		profileID, err = s.createAccount(ctx, client)
		if err != nil {
			return failure(err.Error()), nil
		}
	}

	records, err := s.api.Search(ctx, "CL", "id,bCluster", "email="+client.Email)
	if err != nil || len(records) == 0 {
		return failure("could not locate customer in store [search]"), nil
	}
	record := records[0]
	recordID, _ := record["id"].(string)
	if recordID == "" {
		return failure("could not locate customer in store [search]"), nil
	}

	if cluster, _ := record["bCluster"].(string); cluster != clusterEligible {
		err := s.api.SaveAccount(ctx, vtex.AccountUpdate{
			UserID:   profileID,
			Email:    client.Email,
			BCluster: clusterEligible,
		})
		if err != nil {
			return failure("could not change cluster"), nil
		}
	}

	expiring := expiringDate(s.now())

	card, err := s.api.GiftCardCreate(ctx, vtex.GiftCardRequest{
		CustomerID:          profileID,
		CardName:            cardName,
		MultipleRedemptions: true,
		RestrictedToOwner:   false,
		MultipleCredits:     true,
		Caption:             cardName,
		ExpiringDate:        expiring,
	})
	if err != nil || card == nil || card.ID == "" {
		return failure("could not create gift card"), nil
	}

	creditValue := points * 100
	pointsResponse, err := s.api.GiftCardAddPoints(ctx, card.ID, vtex.GiftCardCredit{
		Description:  fmt.Sprintf("Adiciona %v Britz", creditValue),
		Value:        creditValue,
		ExpiringDate: expiring,
	})
	if err != nil {
		return failure("could not add points to gift card"), nil
	}

	rec := domain.Redemption{
		ClientID:     client.ID,
		Name:         client.Name,
		Type:         domain.RedemptionTypeStore,
		IP:           ip,
		Points:       points,
		Value:        points * exchangeRate,
		ExchangeRate: exchangeRate,
	}
	if addr := client.Address; addr != nil {
		if addr.Street != "" {
			rec.Address = addr.Street + ", " + addr.Number
		}
		rec.Neighborhood = addr.Neighborhood
		rec.City = addr.City
		rec.ZipCode = addr.PostalCode
	}
	if _, err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Printf("exchange: persist redemption for client %d: %v", client.ID, err)
		return nil, fmt.Errorf("persist redemption: %w", err)
	}

	return &Result{
		Success:        true,
		PointsResponse: pointsResponse,
		GiftCard:       card,
		Links: map[string]string{
			"philcoclub":     deepLink(domainPhilco, recordID, salesChannelPhilco),
			"britaniaemcasa": deepLink(domainBritania, recordID, salesChannelBritania),
		},
	}, nil
}

// createAccount registers the client on the platform and re-resolves the
// profile id. The address registration outcome is logged and skipped by
// default; a failure there never blocked the original flow.
func (s *Service) createAccount(ctx context.Context, client domain.Client) (string, error) {
	first, last := splitName(client.Name)

	_, err := s.api.CreateAccount(ctx, vtex.NewAccount{
		FirstName:    first,
		LastName:     last,
		DocumentType: "cpf",
		Document:     client.CPF,
		Email:        client.Email,
		HomePhone:    "+55" + client.Cellphone,
	})
	if err != nil {
		s.logger.Printf("exchange: create account for client %d: %v", client.ID, err)
		return "", fmt.Errorf("could not create account in store")
	}

	profileID, err := s.api.VerifyAccount(ctx, client.Email)
	if err != nil || profileID == "" {
		return "", fmt.Errorf("could not locate customer in store [verifyAccount]")
	}

	if addr := client.Address; addr != nil {
		_, err := s.api.CreateAddress(ctx, vtex.NewAddress{
			UserID:       profileID,
			AddressName:  "Casa",
			AddressType:  "residential",
			Street:       addr.Street,
			Number:       addr.Number,
			Complement:   addr.Complement,
			Neighborhood: addr.Neighborhood,
			City:         addr.City,
			State:        addr.State,
			Country:      "BRA",
			PostalCode:   addr.PostalCode,
		})
		if err != nil {
			if s.reportAddressFailure {
				return "", fmt.Errorf("could not register customer address in store")
			}
			s.logger.Printf("exchange: register address for client %d: %v", client.ID, err)
		}
	}

	return profileID, nil
}

// AvailablePoints is the client's redeemable balance, rounded up to the
// next whole point.
func AvailablePoints(client domain.Client) float64 {
	return math.Ceil(client.Points)
}

// splitName breaks a full name into the platform's first/last pair: first
// whitespace token and final token, last name empty for single-token names.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	first = parts[0]
	if len(parts) > 1 {
		last = parts[len(parts)-1]
	}
	return first, last
}

// expiringDate formats now+30d at midnight the way the gift-card system
// expects: YYYY-MM-DDT00:00:00.00.
func expiringDate(now time.Time) string {
	return now.AddDate(0, 0, 30).Format("2006-01-02") + "T00:00:00.00"
}

func deepLink(storefront, recordID string, salesChannel int) string {
	return fmt.Sprintf("%s/bf-api?loginProfile=CL-%s&BF-VTEXSC=%d&ReturnUrl=%s", storefront, recordID, salesChannel, storefront)
}

func failure(message string) *Result {
	return &Result{Success: false, Message: message}
}
