package domain

// Address is a client's shipping address as held by the calling system.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
}

// Client is a loyalty-program member. The record is owned by the calling
// system and read-only to the redemption flow.
type Client struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	CPF       string   `json:"cpf"`
	Cellphone string   `json:"cellphone"`
	Points    float64  `json:"points"`
	Address   *Address `json:"address,omitempty"`
}
