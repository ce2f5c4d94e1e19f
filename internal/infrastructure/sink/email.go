package sink

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strings"

	"AINewsAgent/internal/config"
	"AINewsAgent/internal/ports"
)

// Email sends the digest as an HTML message over SMTP.
type Email struct {
	server    string
	port      string
	user      string
	password  string
	recipient string
}

var _ ports.Sink = (*Email)(nil)

// NewEmail builds the SMTP sink from its config section.
func NewEmail(cfg config.EmailConfig) *Email {
	port := cfg.SMTPPort
	if port == "" {
		port = "587"
	}
	return &Email{
		server:    cfg.SMTPServer,
		port:      port,
		user:      cfg.User,
		password:  cfg.Password,
		recipient: cfg.Recipient,
	}
}

// Name implements ports.Sink.
func (e *Email) Name() string { return "email" }

// Deliver sends the digest to the configured recipient and returns the
// recipient address as the delivery location.
func (e *Email) Deliver(_ context.Context, title, body, _ string) (string, error) {
	if e.server == "" || e.user == "" || e.password == "" || e.recipient == "" {
		return "", fmt.Errorf("email credentials are not configured")
	}

	msg := buildMessage(e.user, e.recipient, title, markdownToHTML(body))
	if err := e.send(msg); err != nil {
		return "", err
	}
	return e.recipient, nil
}

// send speaks SMTP directly: implicit TLS on port 465, STARTTLS otherwise.
func (e *Email) send(msg []byte) error {
	addr := net.JoinHostPort(e.server, e.port)
	auth := smtp.PlainAuth("", e.user, e.password, e.server)

	var client *smtp.Client
	if e.port == "465" {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: e.server})
		if err != nil {
			return fmt.Errorf("dial smtp over tls: %w", err)
		}
		client, err = smtp.NewClient(conn, e.server)
		if err != nil {
			conn.Close()
			return fmt.Errorf("smtp handshake: %w", err)
		}
	} else {
		var err error
		client, err = smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("dial smtp: %w", err)
		}
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: e.server}); err != nil {
				client.Close()
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(e.user); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(e.recipient); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	return client.Quit()
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; }
h3 { color: #7f8c8d; }
a { color: #3498db; text-decoration: none; }
.source { color: #7f8c8d; font-size: 0.9em; }
.summary { margin: 10px 0; }
</style>
</head>
<body>
`

// markdownToHTML renders the digest markdown as a styled HTML document.
func markdownToHTML(markdown string) string {
	var b strings.Builder
	b.WriteString(htmlHeader)

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(strings.TrimPrefix(line, "# ")))
		case strings.HasPrefix(line, "## "):
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "### "):
			fmt.Fprintf(&b, "<h3>%s</h3>\n", html.EscapeString(strings.TrimPrefix(line, "### ")))
		case strings.HasPrefix(line, "**Source:**"):
			source := strings.TrimSpace(strings.TrimPrefix(line, "**Source:**"))
			fmt.Fprintf(&b, "<div class=\"source\"><strong>Source:</strong> %s</div>\n", html.EscapeString(source))
		case strings.HasPrefix(line, "**Summary:**"):
			summary := strings.TrimSpace(strings.TrimPrefix(line, "**Summary:**"))
			fmt.Fprintf(&b, "<div class=\"summary\"><strong>Summary:</strong> %s</div>\n", html.EscapeString(summary))
		case strings.HasPrefix(line, "**Link:**"):
			link := strings.TrimSpace(strings.TrimPrefix(line, "**Link:**"))
			escaped := html.EscapeString(link)
			fmt.Fprintf(&b, "<div><strong>Link:</strong> <a href=\"%s\">%s</a></div>\n", escaped, escaped)
		case line == "---":
			b.WriteString("<hr>\n")
		default:
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(line))
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}
