package schema

// MarketGuideTable represents the 'market.guide' table
type MarketGuideTable struct {
	Table        string
	ID           string
	Name         string
	Location     string
	Experience   string
	Specialties  string
	Languages    string
	PricePerHour string
	Rating       string
	IsVerified   string
	IsAvailable  string
	VerifiedAt   string
	CreatedAt    string
	UpdatedAt    string
}

// MarketGuide is the schema definition for market.guide
var MarketGuide = MarketGuideTable{
	Table:        "market.guide",
	ID:           "id",
	Name:         "name",
	Location:     "location",
	Experience:   "experience",
	Specialties:  "specialties",
	Languages:    "languages",
	PricePerHour: "priceperhour",
	Rating:       "rating",
	IsVerified:   "isverified",
	IsAvailable:  "isavailable",
	VerifiedAt:   "verifiedat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns lists the columns a guide record is read from, in scan order.
func (t MarketGuideTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Location, t.Experience, t.Specialties, t.Languages,
		t.PricePerHour, t.Rating, t.IsVerified, t.IsAvailable, t.VerifiedAt,
	}
}
