package request_models

// TripParams are the inputs of an itinerary generation.
type TripParams struct {
	Cities    []string `json:"cities"`
	Interests []string `json:"interests"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Budget    string   `json:"budget,omitempty"`
	Persona   string   `json:"persona,omitempty"`
}

type ContentRequest struct {
	Destination  string   `json:"destination" binding:"required"`
	Nationality  string   `json:"nationality,omitempty"`
	FromCurrency string   `json:"from_currency,omitempty"`
	ToCurrency   string   `json:"to_currency,omitempty"`
	Amount       float64  `json:"amount,omitempty"`
	Interests    []string `json:"interests,omitempty"`
}
