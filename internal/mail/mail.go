// Package mail sends the welcome and weekly digest e-mails over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"net/textproto"
	"strconv"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"

	"finvault/internal/insights"
)

// Mailer is the outbound mail port used by services and the worker.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendDigest(ctx context.Context, to string, d Digest) error
}

// Digest is the weekly summary rendered into the digest e-mail.
type Digest struct {
	Name            string
	WeekSpend       decimal.Decimal // expenses over the last seven days
	Patterns        []insights.Pattern
	Recommendations []insights.Recommendation
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers mail through a single SMTP relay.
type SMTPMailer struct {
	cfg  Config
	send func(addr string, a smtp.Auth, e *email.Email) error
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg: cfg,
		send: func(addr string, a smtp.Auth, e *email.Email) error {
			return e.Send(addr, a)
		},
	}
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name string) error {
	msg, err := m.welcomeMessage(to, name)
	if err != nil {
		return err
	}
	return m.deliver(ctx, msg)
}

func (m *SMTPMailer) SendDigest(ctx context.Context, to string, d Digest) error {
	msg, err := m.digestMessage(to, d)
	if err != nil {
		return err
	}
	return m.deliver(ctx, msg)
}

func (m *SMTPMailer) welcomeMessage(to, name string) (*email.Email, error) {
	body, err := render(welcomeTmpl, struct{ Name string }{name})
	if err != nil {
		return nil, err
	}
	e := m.newEmail(to, "Welcome to FinVault")
	e.Text = []byte(fmt.Sprintf("Hi %s,\n\nYour FinVault account is ready. Start by recording your income and expenses.\n", name))
	e.HTML = body
	return e, nil
}

func (m *SMTPMailer) digestMessage(to string, d Digest) (*email.Email, error) {
	body, err := render(digestTmpl, digestView(d))
	if err != nil {
		return nil, err
	}
	e := m.newEmail(to, "Your weekly FinVault digest")
	e.HTML = body
	return e, nil
}

func (m *SMTPMailer) newEmail(to, subject string) *email.Email {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.Headers = textproto.MIMEHeader{}
	e.Headers.Set("X-Mailer", "finvault")
	return e
}

func (m *SMTPMailer) deliver(ctx context.Context, e *email.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := m.send(addr, auth, e); err != nil {
		return fmt.Errorf("send mail to %s: %w", e.To[0], err)
	}
	return nil
}

// Noop discards every message. Used when SMTP is not configured.
type Noop struct{}

func (Noop) SendWelcome(context.Context, string, string) error { return nil }
func (Noop) SendDigest(context.Context, string, Digest) error  { return nil }

type digestRow struct {
	Label string
	Value string
	Extra string
}

type digestData struct {
	Name            string
	WeekSpend       string
	Patterns        []digestRow
	Recommendations []insights.Recommendation
}

func digestView(d Digest) digestData {
	out := digestData{Name: d.Name, WeekSpend: "₹" + d.WeekSpend.StringFixed(0), Recommendations: d.Recommendations}
	for _, p := range d.Patterns {
		row := digestRow{Label: p.Label, Value: p.Amount.StringFixed(0)}
		switch p.Kind {
		case insights.PatternTopCategory:
			row.Value = p.Name
			row.Extra = "₹" + p.Amount.StringFixed(0)
		case insights.PatternPeakDay:
			row.Value = p.Name
			row.Extra = strconv.Itoa(p.Count) + " transactions"
		case insights.PatternAverageMonthly:
			row.Value = "₹" + p.Amount.StringFixed(0)
			row.Extra = "0% vs last month"
			if p.HasTrend {
				row.Extra = p.TrendPercent.StringFixed(1) + "% vs last month"
			}
		case insights.PatternTotalExpenses:
			row.Value = "₹" + p.Amount.StringFixed(0)
			row.Extra = "last " + strconv.Itoa(p.Months) + " months"
		}
		out.Patterns = append(out.Patterns, row)
	}
	return out
}

func render(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.Bytes(), nil
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<h2>Welcome, {{.Name}}!</h2>
<p>Your FinVault account is ready. Start by recording your income and expenses to unlock insights and tax planning.</p>
</body></html>`))

var digestTmpl = template.Must(template.New("digest").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<h2>Hi {{.Name}}, here is your week</h2>
<p>Spent in the last 7 days: <b>{{.WeekSpend}}</b></p>
{{if .Patterns}}<table cellpadding="6">
{{range .Patterns}}<tr><td><b>{{.Label}}</b></td><td>{{.Value}}</td><td>{{.Extra}}</td></tr>
{{end}}</table>{{else}}<p>No spending recorded in the last six months.</p>{{end}}
{{if .Recommendations}}<h3>Recommendations</h3><ul>
{{range .Recommendations}}<li><b>{{.Title}}</b>: {{.Description}}</li>
{{end}}</ul>{{end}}
</body></html>`))
