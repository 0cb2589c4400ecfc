package utils

import (
	"edadmin/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: EdAdmin <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.result-badge { display: inline-block; padding: 6px 14px; border-radius: 4px; font-size: 14px; font-weight: bold; color: white; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message. Please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendResultEmail notifies a student that their exam has been checked
func SendResultEmail(email, name, examTitle string, obtained, total float64, passed bool) error {
	verdict := `<span class="result-badge" style="background-color:#C0392B;">NOT PASSED</span>`
	if passed {
		verdict = `<span class="result-badge" style="background-color:#27AE60;">PASSED</span>`
	}

	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your exam <strong>%s</strong> has been reviewed.</p>
		<p>Score: <strong>%.2f / %.2f</strong></p>
		<p>%s</p>
		<p>You can view the details at <a href="%s">your results page</a>.</p>`,
		name, examTitle, obtained, total, verdict, config.AppConfig.ResultBaseURL)

	return SendEmail([]string{email}, "Your exam result is ready", getEmailTemplate("Exam Result", body))
}
