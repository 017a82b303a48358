package request_models

type PersonaRequest struct {
	Seed string `json:"seed"`
}

type QuestionnaireRequest struct {
	Interests     []string `json:"interests"`
	Budget        string   `json:"budget"`
	AnonymityIdea string   `json:"anonymity_idea"`
	TravelPace    string   `json:"travel_pace,omitempty"`
}

type DatesRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}
