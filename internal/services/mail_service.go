package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"
	"voyago/internal/models/db_models"
	"voyago/internal/repositories"
)

// BookingNotifier is told about every booking that was stored. Delivery is
// best effort; callers never see its failures.
type BookingNotifier interface {
	FlightBooked(ctx context.Context, booking db_models.FlightBooking)
	HotelBooked(ctx context.Context, booking db_models.HotelBooking)
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // implicit TLS, usually 465
	RequireTLS bool

	AppName    string
	AppBaseURL string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type noopNotifier struct{}

func (noopNotifier) FlightBooked(context.Context, db_models.FlightBooking) {}
func (noopNotifier) HotelBooked(context.Context, db_models.HotelBooking)   {}

type smtpNotifier struct {
	cfg      SMTPConfig
	accounts repositories.AccountRepository
	logger   *zap.Logger
	htmlTpl  *template.Template
	textTpl  *texttemplate.Template
	// send is swapped in tests
	send func(to, subject, htmlBody, textBody string) error
}

// NewBookingNotifier returns a notifier that does nothing when SMTP is not configured.
func NewBookingNotifier(cfg SMTPConfig, accounts repositories.AccountRepository, logger *zap.Logger) BookingNotifier {
	if !cfg.Enabled() {
		return noopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &smtpNotifier{
		cfg:      cfg,
		accounts: accounts,
		logger:   logger,
		htmlTpl:  template.Must(template.New("bookingHTML").Parse(bookingHTMLTemplate)),
		textTpl:  texttemplate.Must(texttemplate.New("bookingText").Parse(bookingTextTemplate)),
	}
	n.send = n.sendSMTP
	return n
}

type confirmationData struct {
	AppName   string
	Title     string
	Lines     []string
	ButtonURL string
	Year      int
}

func (n *smtpNotifier) FlightBooked(ctx context.Context, b db_models.FlightBooking) {
	n.notify(ctx, b.UserID.String(), confirmationData{
		Title: fmt.Sprintf("Flight %s confirmed", b.FlightNumber),
		Lines: []string{
			fmt.Sprintf("%s, %s to %s", b.Airline, b.DepartureCity, b.ArrivalCity),
			fmt.Sprintf("Departs %s at %s, arrives %s", b.DepartureDate, b.DepartureTime, b.ArrivalTime),
			fmt.Sprintf("%d passenger(s), total %.2f", b.Passengers, b.Price),
		},
	})
}

func (n *smtpNotifier) HotelBooked(ctx context.Context, b db_models.HotelBooking) {
	n.notify(ctx, b.UserID.String(), confirmationData{
		Title: fmt.Sprintf("%s confirmed", b.HotelName),
		Lines: []string{
			fmt.Sprintf("%s, %s", b.Address, b.City),
			fmt.Sprintf("Check-in %s, check-out %s", b.CheckIn, b.CheckOut),
			fmt.Sprintf("%d room(s), %s, total %.2f", b.Rooms, b.RoomType, b.TotalPrice),
		},
	})
}

func (n *smtpNotifier) notify(ctx context.Context, userID string, data confirmationData) {
	id, err := parseUserID(userID)
	if err != nil {
		return
	}
	account, err := n.accounts.FindById(ctx, id)
	if err != nil || account == nil || account.Email == "" {
		n.logger.Warn("booking confirmation skipped: no recipient", zap.String("user_id", userID), zap.Error(err))
		return
	}

	data.AppName = n.cfg.AppName
	data.Year = time.Now().Year()
	if n.cfg.AppBaseURL != "" {
		data.ButtonURL = strings.TrimRight(n.cfg.AppBaseURL, "/") + "/bookings"
	}

	html, text, err := n.render(data)
	if err != nil {
		n.logger.Error("booking confirmation render failed", zap.Error(err))
		return
	}
	if err := n.send(account.Email, data.Title, html, text); err != nil {
		n.logger.Warn("booking confirmation not delivered", zap.String("user_id", userID), zap.Error(err))
	}
}

const bookingHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f8fafc; color: #0f172a; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { padding: 24px 32px; border-bottom: 1px solid #e2e8f0; font-weight: 700; color: #2563eb; text-transform: uppercase; }
    .hero { padding: 32px; }
    h1 { margin: 0 0 16px; font-size: 24px; }
    p { margin: 0 0 12px; line-height: 1.6; color: #475569; }
    .btn { display: inline-block; margin-top: 16px; padding: 12px 24px; background: #2563eb; color: #ffffff !important; text-decoration: none; border-radius: 8px; }
    .footer { padding: 16px 32px; color: #64748b; font-size: 13px; text-align: center; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <h1>{{.Title}}</h1>
      {{range .Lines}}<p>{{.}}</p>{{end}}
      {{if .ButtonURL}}<a class="btn" href="{{.ButtonURL}}">View my bookings</a>{{end}}
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const bookingTextTemplate = `{{.Title}}

{{range .Lines}}{{.}}
{{end}}
{{if .ButtonURL}}Your bookings: {{.ButtonURL}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

func (n *smtpNotifier) render(data confirmationData) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := n.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := n.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (n *smtpNotifier) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", n.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (n *smtpNotifier) fromHeader() string {
	name := strings.TrimSpace(n.cfg.FromName)
	if name == "" {
		return n.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.BEncoding.Encode("utf-8", name), n.cfg.From)
}

func (n *smtpNotifier) sendSMTP(to, subject, htmlBody, textBody string) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	tlsCfg := &tls.Config{ServerName: n.cfg.Host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	if n.cfg.UseSSL {
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr, tlsCfg)
	} else {
		conn, err = (&net.Dialer{Timeout: 10 * time.Second}).Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !n.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if n.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if n.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(n.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(n.buildMessage(to, subject, htmlBody, textBody)); err != nil {
		return err
	}
	return w.Close()
}
