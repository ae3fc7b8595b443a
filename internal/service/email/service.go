package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// Sender handles outgoing emails via SMTP.
type Sender struct {
	smtpHost string
	smtpPort string
	username string
	password string
	fromName string
	secure   bool
}

// NewSender creates a new SMTP email sender. secure selects implicit TLS
// (port 465) over STARTTLS (port 587).
func NewSender(host, port, user, pass, fromName string, secure bool) *Sender {
	return &Sender{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
		fromName: fromName,
		secure:   secure,
	}
}

// SendWelcome sends the post-registration welcome email.
func (e *Sender) SendWelcome(to, fullName, accountType string) error {
	role := "customer"
	if accountType == "professional" {
		role = "professional"
	}
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your %s account is ready. Log in to complete your profile and
		start connecting with the other side of the marketplace.</p>
	`, fullName, role)
	return e.Send(to, "Welcome to HandyConnect", body)
}

// Send sends an email with a subject and body (HTML supported).
func (e *Sender) Send(to, subject, bodyHTML string) error {
	from := fmt.Sprintf("%s <%s>", e.fromName, e.username)
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			buildHTMLTemplate(bodyHTML),
	)

	serverAddr := e.smtpHost + ":" + e.smtpPort

	if e.secure {
		tlsConfig := &tls.Config{ServerName: e.smtpHost}
		conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
		if err != nil {
			return fmt.Errorf("tls dial failed: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, e.smtpHost)
		if err != nil {
			return fmt.Errorf("smtp client failed: %w", err)
		}
		defer client.Quit()

		auth := smtp.PlainAuth("", e.username, e.password, e.smtpHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth failed: %w", err)
		}
		return e.sendMail(client, to, msg)
	}

	auth := smtp.PlainAuth("", e.username, e.password, e.smtpHost)
	if err := smtp.SendMail(serverAddr, auth, e.username, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail failed: %w", err)
	}
	return nil
}

func (e *Sender) sendMail(client *smtp.Client, to string, msg []byte) error {
	if err := client.Mail(e.username); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	return nil
}

// buildHTMLTemplate wraps a body into the HandyConnect email layout.
func buildHTMLTemplate(content string) string {
	header := `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8" />
		<title>HandyConnect</title>
		<style>
			body { font-family: Arial, sans-serif; background-color: #f6f8fa; padding: 30px; }
			.container { max-width: 600px; margin: auto; background: #fff; border-radius: 10px; overflow: hidden; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
			.header { background: #0d7a5f; color: white; text-align: center; padding: 20px; font-size: 22px; font-weight: bold; }
			.footer { background: #f1f1f1; color: #555; text-align: center; padding: 15px; font-size: 13px; }
			.body { padding: 25px; color: #333; line-height: 1.6; }
		</style>
	</head>
	<body>
	<div class="container">
		<div class="header">HandyConnect</div>
		<div class="body">
	`

	footer := `
		</div>
		<div class="footer">
			<p>© 2026 HandyConnect. All rights reserved.</p>
		</div>
	</div>
	</body>
	</html>
	`

	return header + strings.TrimSpace(content) + footer
}
