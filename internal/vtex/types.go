package vtex

// NewAccount is the payload for a CL (client) document. AccountName,
// DataEntityID and BCluster are filled in by the client before posting.
type NewAccount struct {
	AccountName  string `json:"accountName"`
	DataEntityID string `json:"dataEntityId"`
	BCluster     string `json:"bCluster"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	DocumentType string `json:"documentType"`
	Document     string `json:"document"`
	Email        string `json:"email"`
	HomePhone    string `json:"homePhone"`
}

// NewAddress is the payload for an AD (address) document.
type NewAddress struct {
	UserID       string `json:"userId"`
	AddressName  string `json:"addressName"`
	AddressType  string `json:"addressType"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	PostalCode   string `json:"postalCode"`
}

// AccountUpdate patches mutable fields on an existing CL document.
type AccountUpdate struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	BCluster string `json:"bCluster"`
}

// Document is the Master Data response to a document POST.
type Document struct {
	ID         string `json:"Id"`
	Href       string `json:"Href"`
	DocumentID string `json:"DocumentId"`
}

// GiftCardRequest creates a stored-value card on the gift-card system.
type GiftCardRequest struct {
	CustomerID          string `json:"customerId"`
	CardName            string `json:"cardName"`
	MultipleRedemptions bool   `json:"multipleRedemptions"`
	RestrictedToOwner   bool   `json:"restrictedToOwner"`
	MultipleCredits     bool   `json:"multipleCredits"`
	Caption             string `json:"caption"`
	ExpiringDate        string `json:"expiringDate"`
}

// GiftCard is the gift-card system's view of a created card.
type GiftCard struct {
	ID             string  `json:"id"`
	RedemptionCode string  `json:"redemptionCode,omitempty"`
	Balance        float64 `json:"balance,omitempty"`
	EmissionDate   string  `json:"emissionDate,omitempty"`
	ExpiringDate   string  `json:"expiringDate,omitempty"`
}

// GiftCardCredit is a credit transaction against an existing card.
type GiftCardCredit struct {
	Description  string  `json:"description"`
	Value        float64 `json:"value"`
	ExpiringDate string  `json:"expiringDate"`
}
