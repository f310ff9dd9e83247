package mail

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

// ErrNotConfigured signals missing SMTP settings; the notification is
// reported as skipped.
var ErrNotConfigured = errors.New("smtp not configured")

type Sender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func NewSender(host string, port int, user, password, from, to string) *Sender {
	return &Sender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

var noticeTmpl = template.Must(template.New("application_notice").Parse(
	`A new application just came in.

Applicant: {{.FullName}}
Email:     {{.Email}}
Role:      {{.RoleName}}

Full details are in the events log and HubSpot.
`))

type noticeData struct {
	FullName string
	Email    string
	RoleName string
}

// SendApplicationNotice emails the hiring inbox about a new careers
// application. Best-effort: the caller logs and moves on if it fails.
func (s *Sender) SendApplicationNotice(fullName, email, roleName string) error {
	if s.Host == "" || s.To == "" || s.From == "" {
		return ErrNotConfigured
	}

	if roleName == "" {
		roleName = "Referral Partner"
	}

	var body bytes.Buffer
	if err := noticeTmpl.Execute(&body, noticeData{
		FullName: fullName,
		Email:    email,
		RoleName: roleName,
	}); err != nil {
		return fmt.Errorf("rendering notice: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New application: %s (%s)", fullName, roleName))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending notice: %w", err)
	}
	return nil
}
