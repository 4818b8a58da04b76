package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/example/apizrace/internal/config"
	"github.com/example/apizrace/internal/models"
	"github.com/example/apizrace/internal/otp"
)

var _ otp.Notifier = (*EmailService)(nil)

// EmailService delivers transactional mail over SMTP. It carries exactly
// two template shapes: the OTP code email and the registration
// confirmation email.
type EmailService struct {
	dialer *gomail.Dialer
	host   string
	from   string
}

// NewEmailService builds the SMTP dialer from configuration.
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	dialer.SSL = cfg.SMTPSecure

	return &EmailService{
		dialer: dialer,
		host:   cfg.SMTPHost,
		from:   cfg.SMTPFrom,
	}
}

// Send delivers a single HTML email.
func (s *EmailService) Send(to, subject, htmlBody string) error {
	if s.host == "" {
		log.Println("[Mailer] SMTP host not configured, skipping send")
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, "ApizRace")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("[Mailer] send to %s failed: %v", to, err)
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

// SendOTP emails a verification code. It satisfies otp.Notifier.
func (s *EmailService) SendOTP(email, mobile, code string) error {
	return s.Send(email, "OTP Verification - ApizRace 2025", OTPEmailBody("there", mobile, code))
}

// SendConfirmation emails the registration confirmation.
func (s *EmailService) SendConfirmation(reg *models.Registration) error {
	body := ConfirmationEmailBody(reg.FirstName, reg.LastName, reg.RaceCategory, reg.TShirtSize)
	return s.Send(reg.Email, "Registration Confirmation - ApizRace 2025", body)
}

// OTPEmailBody renders the verification-code template.
func OTPEmailBody(firstName, mobile, code string) string {
	if firstName == "" {
		firstName = "there"
	}
	if mobile == "" {
		mobile = "Not provided"
	}
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px; margin: 0 auto;">
      <div style="background-color: #4CAF50; color: white; padding: 20px; text-align: center;">
        <h1>OTP Verification</h1>
      </div>
      <div style="padding: 20px; background-color: #f9f9f9;">
        <p>Hello %s,</p>
        <p>Your OTP for ApizRace registration is:</p>
        <h2 style="color: #4CAF50; text-align: center; font-size: 32px; letter-spacing: 5px; margin: 20px 0;">
          %s
        </h2>
        <p><strong>Mobile Number:</strong> %s</p>
        <p>This OTP will expire in 10 minutes.</p>
        <p>If you didn't request this OTP, please ignore this email or contact our support immediately.</p>
        <p style="margin-top: 30px; font-size: 12px; color: #666;">
          For security reasons, please do not share this OTP with anyone.
        </p>
      </div>
    </div>`, firstName, code, mobile)
}

// ConfirmationEmailBody renders the registration-details template.
func ConfirmationEmailBody(firstName, lastName, raceCategory, tShirtSize string) string {
	return fmt.Sprintf(`
    <body style="margin: 0; padding: 0; font-family: Arial, sans-serif; line-height: 1.6; background-color: #f4f4f4;">
      <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff;">
        <div style="background-color: #4CAF50; color: white; padding: 20px; text-align: center;">
          <h1 style="margin: 0; font-size: 24px;">ApizRace 2025</h1>
          <p style="margin: 10px 0 0 0;">Registration Confirmation</p>
        </div>
        <div style="padding: 20px;">
          <p>Dear %s %s,</p>
          <p>Thank you for registering for ApizRace 2025! Your registration has been successfully completed.</p>
          <p><strong>Registration Details:</strong></p>
          <ul style="list-style-type: none; padding: 0;">
            <li><strong>Race Category:</strong> %s</li>
            <li><strong>T-Shirt Size:</strong> %s</li>
          </ul>
          <p>We will send you further details about the race day schedule and requirements closer to the event date.</p>
          <p>If you have any questions, please don't hesitate to contact us.</p>
        </div>
        <div style="text-align: center; padding: 20px; color: #666;">
          <p>Best regards,<br>Team ApizRace 2025</p>
        </div>
      </div>
    </body>`, firstName, lastName, raceCategory, tShirtSize)
}
