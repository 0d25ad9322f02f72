// Package notify sends account lifecycle emails.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/ongood/metabase-sub001/internal/db/models"
)

// Notifier delivers account lifecycle notifications.
type Notifier interface {
	// SendWelcomeEmail greets a new user. invitor is nil for self sign-up;
	// fromSetup is true for the installer created by the setup flow.
	SendWelcomeEmail(ctx context.Context, user, invitor *models.User, fromSetup bool) error
	// SendAdminJoinedNotification tells administrators a user joined through SSO.
	SendAdminJoinedNotification(ctx context.Context, user *models.User, viaGoogleAuth bool) error
}

// SendFunc delivers one message to the given recipients.
type SendFunc func(ctx context.Context, to []string, subject, body string) error

// AdminLister returns the administrators to notify.
type AdminLister interface {
	ListActiveSuperusers(ctx context.Context) ([]models.User, error)
}

// Mailer renders notification templates and hands them to a SendFunc.
type Mailer struct {
	siteName string
	siteURL  string
	send     SendFunc
	admins   AdminLister
}

// NewMailer builds a Mailer. send and admins must not be nil.
func NewMailer(siteName, siteURL string, send SendFunc, admins AdminLister) *Mailer {
	if send == nil {
		panic("notify: send must be provided")
	}
	if admins == nil {
		panic("notify: admins must be provided")
	}
	return &Mailer{siteName: siteName, siteURL: siteURL, send: send, admins: admins}
}

var _ Notifier = (*Mailer)(nil)

// templateData is passed to every template.
type templateData struct {
	SiteName    string
	SiteURL     string
	User        *models.User
	Invitor     *models.User
	FromSetup   bool
	ViaGoogle   bool
	JoinedUsing string
}

var (
	welcomeTemplate = template.Must(template.New("welcome").Parse(`Hi {{.User.CommonName}},

{{if .FromSetup}}Your {{.SiteName}} instance is ready. You are its first administrator.
{{else if .Invitor}}{{.Invitor.CommonName}} invited you to join {{.SiteName}}.
{{else}}Welcome to {{.SiteName}}.
{{end}}
Sign in at {{.SiteURL}} with {{.User.Email}}.
`))

	adminJoinedTemplate = template.Must(template.New("admin-joined").Parse(`Hi,

{{.User.CommonName}} ({{.User.Email}}) joined {{.SiteName}} using {{.JoinedUsing}}.

Review their groups at {{.SiteURL}}/admin/people.
`))
)

// SendWelcomeEmail implements Notifier.
func (m *Mailer) SendWelcomeEmail(ctx context.Context, user, invitor *models.User, fromSetup bool) error {
	if user == nil {
		return errors.New("welcome email: user is nil")
	}
	data := m.data(user)
	data.Invitor = invitor
	data.FromSetup = fromSetup

	body, err := render(welcomeTemplate, data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("You're invited to join %s", m.siteName)
	if fromSetup {
		subject = fmt.Sprintf("Welcome to %s", m.siteName)
	}
	if err := m.send(ctx, []string{user.Email}, subject, body); err != nil {
		return fmt.Errorf("send welcome email to %s: %w", user.Email, err)
	}
	return nil
}

// SendAdminJoinedNotification implements Notifier.
func (m *Mailer) SendAdminJoinedNotification(ctx context.Context, user *models.User, viaGoogleAuth bool) error {
	if user == nil {
		return errors.New("admin notification: user is nil")
	}

	admins, err := m.admins.ListActiveSuperusers(ctx)
	if err != nil {
		return fmt.Errorf("list administrators: %w", err)
	}
	to := make([]string, 0, len(admins))
	for _, admin := range admins {
		if admin.ID != user.ID {
			to = append(to, admin.Email)
		}
	}
	if len(to) == 0 {
		return nil
	}

	data := m.data(user)
	data.ViaGoogle = viaGoogleAuth
	data.JoinedUsing = "single sign-on"
	if viaGoogleAuth {
		data.JoinedUsing = "Google Sign-In"
	}

	body, err := render(adminJoinedTemplate, data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s created a %s account", user.CommonName, m.siteName)
	if err := m.send(ctx, to, subject, body); err != nil {
		return fmt.Errorf("send admin notification: %w", err)
	}
	return nil
}

func (m *Mailer) data(user *models.User) *templateData {
	return &templateData{SiteName: m.siteName, SiteURL: m.siteURL, User: user}
}

func render(tmpl *template.Template, data *templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
