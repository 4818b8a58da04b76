package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/apizrace/internal/form"
	"github.com/example/apizrace/internal/models"
	"github.com/example/apizrace/internal/services"
	"github.com/example/apizrace/internal/validation"
)

// IdentityStore is the store slice the HTTP surface needs directly.
type IdentityStore interface {
	Probe() error
	FindByIdentityNumber(identityNumber string) (*models.Registration, error)
}

// Mailer sends a single HTML email.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Submitter runs the submission controller.
type Submitter interface {
	Submit(f *form.Form) (uuid.UUID, error)
}

// RegistrationHandler bundles dependencies for the registration endpoints.
type RegistrationHandler struct {
	store  IdentityStore
	mailer Mailer
	svc    Submitter
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(store IdentityStore, mailer Mailer, svc Submitter) *RegistrationHandler {
	return &RegistrationHandler{store: store, mailer: mailer, svc: svc}
}

type checkIdentityRequest struct {
	IdentityCardNumber string `json:"identity_card_number"`
}

// CheckIdentity reports whether an identity number is already registered.
// This is the advisory check fired while the user is still typing; the
// insert-time unique index remains the final arbiter.
func (h *RegistrationHandler) CheckIdentity(c *fiber.Ctx) error {
	var req checkIdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	identityNumber := validation.NormalizeIdentityNumber(req.IdentityCardNumber)
	if identityNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "identity card number is required")
	}

	existing, err := h.store.FindByIdentityNumber(identityNumber)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "error checking identity number")
	}

	return c.JSON(fiber.Map{"exists": existing != nil})
}

type personalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
}

type marathonDetails struct {
	OTP          string `json:"otp"`
	RaceCategory string `json:"raceCategory"`
	TShirtSize   string `json:"tShirtSize"`
}

type emailUserData struct {
	PersonalInfo    personalInfo    `json:"personal_info"`
	MarathonDetails marathonDetails `json:"marathon_details"`
}

type sendEmailRequest struct {
	UserData emailUserData `json:"userData"`
}

// SendEmail dispatches one of the two fixed email shapes. The presence
// of an OTP value in the payload selects the verification-code template;
// otherwise the registration-confirmation template is used.
func (h *RegistrationHandler) SendEmail(c *fiber.Ctx) error {
	var req sendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	info := req.UserData.PersonalInfo
	details := req.UserData.MarathonDetails
	if info.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "recipient email is required")
	}

	var subject, body string
	if details.OTP != "" {
		subject = "OTP Verification - ApizRace 2025"
		body = services.OTPEmailBody(info.FirstName, info.Mobile, details.OTP)
	} else {
		subject = "Registration Confirmation - ApizRace 2025"
		body = services.ConfirmationEmailBody(info.FirstName, info.LastName, details.RaceCategory, details.TShirtSize)
	}

	if err := h.mailer.Send(info.Email, subject, body); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to send email")
	}

	return c.JSON(fiber.Map{"message": "Email sent successfully"})
}

type submitRequest struct {
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	Email                  string `json:"email"`
	Mobile                 string `json:"mobile"`
	Gender                 string `json:"gender"`
	DateOfBirth            string `json:"date_of_birth"`
	IdentityCardNumber     string `json:"identity_card_number"`
	Country                string `json:"country"`
	State                  string `json:"state"`
	City                   string `json:"city"`
	PostalCode             string `json:"postal_code"`
	Occupation             string `json:"occupation"`
	RaceCategory           string `json:"race_category"`
	TShirtSize             string `json:"t_shirt_size"`
	EmergencyContactName   string `json:"emergency_contact_name"`
	EmergencyContactNumber string `json:"emergency_contact_number"`
	BloodGroup             string `json:"blood_group"`
	IsFromBastar           bool   `json:"is_from_bastar"`
	NeedsAccommodation     bool   `json:"needs_accommodation"`
}

// Submit runs the full submission sequence for a completed form.
func (h *RegistrationHandler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	f := form.New()
	for name, value := range map[string]string{
		"firstName":              req.FirstName,
		"lastName":               req.LastName,
		"email":                  req.Email,
		"mobile":                 req.Mobile,
		"gender":                 req.Gender,
		"dateOfBirth":            req.DateOfBirth,
		"identityCardNumber":     req.IdentityCardNumber,
		"country":                req.Country,
		"state":                  req.State,
		"city":                   req.City,
		"postalCode":             req.PostalCode,
		"occupation":             req.Occupation,
		"raceCategory":           req.RaceCategory,
		"tShirtSize":             req.TShirtSize,
		"emergencyContactName":   req.EmergencyContactName,
		"emergencyContactNumber": req.EmergencyContactNumber,
		"bloodGroup":             req.BloodGroup,
	} {
		f.SetField(name, value)
	}
	f.SetBool("isFromBastar", req.IsFromBastar)
	f.SetBool("needsAccommodation", req.NeedsAccommodation)

	id, err := h.svc.Submit(f)
	if err != nil {
		return c.Status(submitStatus(err)).JSON(fiber.Map{
			"success": false,
			"error":   services.Message(err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      id,
	})
}

func submitStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrDuplicateIdentity), errors.Is(err, services.ErrDuplicateEmail):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrMissingRequired),
		errors.Is(err, services.ErrInvalidData),
		errors.Is(err, services.ErrConstraintViolation):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusBadRequest
}

// PostalLookup proxies the per-country postal code upstreams for the
// address auto-fill. A lookup failure is never fatal to registration;
// the user falls back to manual entry.
func (h *RegistrationHandler) PostalLookup(c *fiber.Ctx) error {
	code := c.Query("code")
	country := c.Query("country")
	if code == "" || country == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code and country are required")
	}

	addr, err := services.LookupAddress(code, country)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedCountry):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAddressNotFound):
			return fiber.NewError(fiber.StatusNotFound, "invalid postal code or no data found")
		}
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch address details")
	}

	return c.JSON(addr)
}

// Health reports liveness and backing-store reachability.
func (h *RegistrationHandler) Health(c *fiber.Ctx) error {
	if err := h.store.Probe(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"store":  "unreachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
