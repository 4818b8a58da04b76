// Package form holds the two-step registration form state machine. The
// form is owned by a single user session; nothing here touches shared
// state.
package form

import (
	"github.com/example/apizrace/internal/models"
	"github.com/example/apizrace/internal/otp"
	"github.com/example/apizrace/internal/validation"
)

// Steps of the registration flow.
const (
	StepRaceDetails     = 1
	StepPersonalDetails = 2
)

// FieldErrors maps a field name to its validation message. It is the
// aggregate "reveal all errors" result consumed by the rendering layer.
type FieldErrors map[string]string

// Form is the mutable per-session registration record plus the current
// step and the OTP session for step 1. Writes perform no validation;
// validation is pulled via ValidateStep.
type Form struct {
	step       int
	otpSession *otp.Session

	firstName              string
	lastName               string
	dateOfBirth            string
	identityCardNumber     string
	gender                 string
	mobile                 string
	email                  string
	country                string
	state                  string
	city                   string
	postalCode             string
	occupation             string
	raceCategory           string
	tShirtSize             string
	emergencyContactName   string
	emergencyContactNumber string
	bloodGroup             string
	isFromBastar           bool
	needsAccommodation     bool
}

// New returns an empty form positioned at step 1.
func New() *Form {
	return &Form{step: StepRaceDetails}
}

// Step returns the current step, clamped to the valid range.
func (f *Form) Step() int {
	return clampStep(f.step)
}

func clampStep(step int) int {
	if step < StepRaceDetails {
		return StepRaceDetails
	}
	if step > StepPersonalDetails {
		return StepPersonalDetails
	}
	return step
}

// SetField writes a string field by name. Values are stored exactly as
// given, except identityCardNumber which is digit-stripped first.
// Unknown names are ignored.
func (f *Form) SetField(name, value string) {
	switch name {
	case "firstName":
		f.firstName = value
	case "lastName":
		f.lastName = value
	case "dateOfBirth":
		f.dateOfBirth = value
	case "identityCardNumber":
		f.identityCardNumber = validation.NormalizeIdentityNumber(value)
	case "gender":
		f.gender = value
	case "mobile":
		f.mobile = value
	case "email":
		f.email = value
	case "country":
		f.country = value
	case "state":
		f.state = value
	case "city":
		f.city = value
	case "postalCode":
		f.postalCode = value
	case "occupation":
		f.occupation = value
	case "raceCategory":
		f.raceCategory = value
	case "tShirtSize":
		f.tShirtSize = value
	case "emergencyContactName":
		f.emergencyContactName = value
	case "emergencyContactNumber":
		f.emergencyContactNumber = value
	case "bloodGroup":
		f.bloodGroup = value
	}
}

// Field reads a string field by name.
func (f *Form) Field(name string) string {
	switch name {
	case "firstName":
		return f.firstName
	case "lastName":
		return f.lastName
	case "dateOfBirth":
		return f.dateOfBirth
	case "identityCardNumber":
		return f.identityCardNumber
	case "gender":
		return f.gender
	case "mobile":
		return f.mobile
	case "email":
		return f.email
	case "country":
		return f.country
	case "state":
		return f.state
	case "city":
		return f.city
	case "postalCode":
		return f.postalCode
	case "occupation":
		return f.occupation
	case "raceCategory":
		return f.raceCategory
	case "tShirtSize":
		return f.tShirtSize
	case "emergencyContactName":
		return f.emergencyContactName
	case "emergencyContactNumber":
		return f.emergencyContactNumber
	case "bloodGroup":
		return f.bloodGroup
	}
	return ""
}

// SetBool writes a boolean field by name.
func (f *Form) SetBool(name string, value bool) {
	switch name {
	case "isFromBastar":
		f.isFromBastar = value
	case "needsAccommodation":
		f.needsAccommodation = value
	}
}

// Bool reads a boolean field by name.
func (f *Form) Bool(name string) bool {
	switch name {
	case "isFromBastar":
		return f.isFromBastar
	case "needsAccommodation":
		return f.needsAccommodation
	}
	return false
}

// ValidateStep checks the fields belonging to one step and returns the
// verdict together with the aggregate field error map. It never mutates
// the form.
func (f *Form) ValidateStep(step int) (bool, FieldErrors) {
	errs := FieldErrors{}

	switch clampStep(step) {
	case StepRaceDetails:
		if f.gender == "" {
			errs["gender"] = "please select a gender"
		}
		if f.mobile == "" {
			errs["mobile"] = "mobile number is required"
		} else if !validation.Mobile(f.mobile) {
			errs["mobile"] = "please enter a valid mobile number (e.g., 0123456789)"
		}
		if f.email == "" {
			errs["email"] = "email is required"
		}

	case StepPersonalDetails:
		required := []struct{ name, value, message string }{
			{"firstName", f.firstName, "first name is required"},
			{"lastName", f.lastName, "last name is required"},
			{"dateOfBirth", f.dateOfBirth, "date of birth is required"},
			{"country", f.country, "country is required"},
			{"state", f.state, "state is required"},
			{"city", f.city, "city is required"},
			{"occupation", f.occupation, "occupation is required"},
			{"raceCategory", f.raceCategory, "race category is required"},
			{"tShirtSize", f.tShirtSize, "t-shirt size is required"},
		}
		for _, field := range required {
			if field.value == "" {
				errs[field.name] = field.message
			}
		}
		if !validation.Email(f.email) {
			errs["email"] = "please enter a valid email address"
		}
	}

	return len(errs) == 0, errs
}

// Advance validates the current step and moves forward on success. From
// step 1 it additionally requires a verified OTP session; that gate sits
// outside ValidateStep so the pure validators stay pure. On failure the
// step is unchanged and the aggregate errors are returned for display.
func (f *Form) Advance() (bool, FieldErrors) {
	ok, errs := f.ValidateStep(f.Step())
	if f.Step() == StepRaceDetails && !f.OTPVerified() {
		errs["otp"] = "verify the code sent to your email to continue"
		ok = false
	}
	if !ok {
		return false, errs
	}
	f.step = clampStep(f.Step() + 1)
	return true, errs
}

// Retreat moves back one step. Going backward is never gated; the step
// is floored at 1.
func (f *Form) Retreat() {
	f.step = clampStep(f.Step() - 1)
}

// OTPSession returns the active OTP session, if any.
func (f *Form) OTPSession() *otp.Session {
	return f.otpSession
}

// SetOTPSession attaches an OTP session to the form.
func (f *Form) SetOTPSession(sess *otp.Session) {
	f.otpSession = sess
}

// OTPVerified reports whether the attached OTP session has been verified.
func (f *Form) OTPVerified() bool {
	return f.otpSession != nil && f.otpSession.Verified
}

// Reset restores the empty defaults and returns to step 1, discarding
// any OTP session.
func (f *Form) Reset() {
	*f = Form{step: StepRaceDetails}
}

// Record builds the durable registration record from the current values.
func (f *Form) Record() *models.Registration {
	return &models.Registration{
		FirstName:              f.firstName,
		LastName:               f.lastName,
		Email:                  f.email,
		Mobile:                 f.mobile,
		Gender:                 f.gender,
		DateOfBirth:            f.dateOfBirth,
		IdentityCardNumber:     f.identityCardNumber,
		Country:                f.country,
		State:                  f.state,
		City:                   f.city,
		PostalCode:             f.postalCode,
		Occupation:             f.occupation,
		RaceCategory:           f.raceCategory,
		TShirtSize:             f.tShirtSize,
		EmergencyContactName:   f.emergencyContactName,
		EmergencyContactNumber: f.emergencyContactNumber,
		BloodGroup:             f.bloodGroup,
		IsFromBastar:           f.isFromBastar,
		NeedsAccommodation:     f.needsAccommodation,
	}
}
