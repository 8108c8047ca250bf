package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "DeshGhuri"
	baseURL       = os.Getenv("BASE_URL")
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #4CAF50; margin: 0;">DeshGhuri</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 DeshGhuri. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "DeshGhuri-Mailer"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	// Authentication
	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	// Send email
	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// SendTourRequestEmail notifies a guide that a tourist has requested a tour.
func SendTourRequestEmail(guideEmail, destination, touristName string) error {
	subject := "New Tour Request - DeshGhuri"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Tour Request</h1>
					<p>Hello,</p>
					<p>You have received a new tour request for <strong>%s</strong> from <strong>%s</strong>.</p>
					<p>Please log in to your DeshGhuri account to accept or reject this request.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/login" style="background-color: #4CAF50; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Login to DeshGhuri</a>
					</div>
					<p>Best regards,<br>The DeshGhuri Team</p>
				</div>`+emailFooter,
		destination, touristName, baseURL)

	return sendEmail([]string{guideEmail}, subject, body)
}

// SendTourRequestAcceptedEmail notifies a tourist that their tour request was accepted.
func SendTourRequestAcceptedEmail(touristEmail, guideName, destination string) error {
	subject := "Tour Request Accepted - DeshGhuri"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Tour Request Accepted</h1>
					<p>Hello,</p>
					<p>Great news! Guide <strong>%s</strong> has accepted your tour request for <strong>%s</strong>.</p>
					<p>You can view the tour details on your dashboard.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/login" style="background-color: #4CAF50; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View Your Tours</a>
					</div>
					<p>Best regards,<br>The DeshGhuri Team</p>
				</div>`+emailFooter,
		guideName, destination, baseURL)

	return sendEmail([]string{touristEmail}, subject, body)
}

// SendHotelBookingStatusEmail notifies a tourist of a hotel booking status change.
func SendHotelBookingStatusEmail(touristEmail, hotelName, status string) error {
	subject := "Hotel Booking Update - DeshGhuri"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Update</h1>
					<p>Hello,</p>
					<p>Your booking at <strong>%s</strong> is now <strong>%s</strong>.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/login" style="background-color: #4CAF50; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View Your Bookings</a>
					</div>
					<p>Best regards,<br>The DeshGhuri Team</p>
				</div>`+emailFooter,
		hotelName, status, baseURL)

	return sendEmail([]string{touristEmail}, subject, body)
}
