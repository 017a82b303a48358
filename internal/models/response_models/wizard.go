package response_models

type WizardStage string

const (
	StagePersona   WizardStage = "persona"
	StageQuestions WizardStage = "questions"
	StageDates     WizardStage = "dates"
	StageImage     WizardStage = "image"
	StageItinerary WizardStage = "itinerary"
)

// WizardStages is the fixed order users walk through.
var WizardStages = []WizardStage{StagePersona, StageQuestions, StageDates, StageImage, StageItinerary}

// Index returns the position of s in WizardStages, or -1.
func (s WizardStage) Index() int {
	for i, st := range WizardStages {
		if st == s {
			return i
		}
	}
	return -1
}

// WizardDocumentVersion is bumped whenever the stored document shape changes.
// Documents with any other version are discarded on load.
const WizardDocumentVersion = 1

type WizardPersona struct {
	Seed string `json:"seed"`
}

type WizardQuestionnaire struct {
	Interests     []string `json:"interests"`
	Budget        string   `json:"budget"`
	AnonymityIdea string   `json:"anonymity_idea"`
	TravelPace    string   `json:"travel_pace,omitempty"`
}

type WizardDates struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type WizardDocument struct {
	Version       int                 `json:"version"`
	Stage         WizardStage         `json:"stage"`
	Persona       WizardPersona       `json:"persona"`
	Questionnaire WizardQuestionnaire `json:"questionnaire"`
	Dates         WizardDates         `json:"dates"`
	ImageURL      string              `json:"image_url,omitempty"`
	Itinerary     *ItineraryResult    `json:"itinerary,omitempty"`
}

func NewWizardDocument() WizardDocument {
	return WizardDocument{
		Version: WizardDocumentVersion,
		Stage:   StagePersona,
		Questionnaire: WizardQuestionnaire{
			Interests: []string{},
		},
	}
}

type QuotaStatus struct {
	Kind      string `json:"kind"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	// unix millis when the window resets, 0 when nothing is used
	ResetsAt int64 `json:"resets_at"`
}

type WizardView struct {
	State          WizardDocument `json:"state"`
	CanProceed     bool           `json:"can_proceed"`
	ImageQuota     QuotaStatus    `json:"image_quota"`
	ItineraryQuota QuotaStatus    `json:"itinerary_quota"`
}
