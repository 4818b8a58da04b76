package models

// Gender values accepted on a registration.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// TShirtSizes lists the sizes offered for the race kit.
var TShirtSizes = []string{"S", "M", "L", "XL", "XXL"}

var (
	commonRaceCategories = []string{"5km", "10km", "21km", "30km", "42km"}
	ultraRaceCategories  = []string{"50km", "75km", "100km"}
)

// RaceCategoriesFor returns the race distances offered for a gender.
// Both genders may enter every distance up to 100km.
func RaceCategoriesFor(gender string) []string {
	if gender != GenderMale && gender != GenderFemale {
		return nil
	}
	return append(append([]string{}, commonRaceCategories...), ultraRaceCategories...)
}

// Registration is the durable record created on successful submission.
// It is immutable once written: there are no update or delete paths.
type Registration struct {
	BaseModel
	FirstName          string `gorm:"not null" json:"first_name"`
	LastName           string `gorm:"not null" json:"last_name"`
	Email              string `gorm:"uniqueIndex;not null" json:"email"`
	Mobile             string `gorm:"not null" json:"mobile"`
	Gender             string `gorm:"not null" json:"gender"`
	DateOfBirth        string `gorm:"not null" json:"date_of_birth"`
	IdentityCardNumber string `gorm:"uniqueIndex;not null" json:"identity_card_number"`
	Country            string `gorm:"not null" json:"country"`
	State              string `gorm:"not null" json:"state"`
	City               string `gorm:"not null" json:"city"`
	PostalCode         string `json:"postal_code"`
	Occupation         string `gorm:"not null" json:"occupation"`
	RaceCategory       string `gorm:"not null" json:"race_category"`
	TShirtSize         string `gorm:"not null" json:"t_shirt_size"`

	EmergencyContactName   string `json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber string `json:"emergency_contact_number,omitempty"`
	BloodGroup             string `json:"blood_group,omitempty"`
	IsFromBastar           bool   `json:"is_from_bastar"`
	NeedsAccommodation     bool   `json:"needs_accommodation"`
}
