package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/money"
)

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Port != "" && c.User != "" && c.Pass != ""
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email avisa por correo de cada orden nueva.
type Email struct {
	cfg    SMTPConfig
	dialer sender
}

func NewEmail(cfg SMTPConfig) (*Email, error) {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT inválido %q: %w", cfg.Port, err)
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &Email{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Pass)}, nil
}

func (e *Email) message(o *domain.Order) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.User)
	m.SetHeader("To", e.cfg.To)
	m.SetHeader("Subject", fmt.Sprintf("Nueva orden #%s - %s", o.ID, money.Format(o.Total)))
	m.SetBody("text/plain", orderText(o))
	return m
}

func (e *Email) OrderCreated(ctx context.Context, o *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.dialer.DialAndSend(e.message(o)); err != nil {
		log.Error().Err(err).Str("order", o.ID).Msg("email send")
		return err
	}
	return nil
}

func orderText(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Orden: %s\n", o.ID)
	fmt.Fprintf(&b, "Estado: %s\n", o.Status.Label())
	fmt.Fprintf(&b, "Nombre: %s\nEmail: %s\nTel: %s\n", o.UserName, o.UserEmail, o.Phone)
	fmt.Fprintf(&b, "Envío a: %s\n", o.ShippingAddress)
	if o.Notes != "" {
		fmt.Fprintf(&b, "Notas: %s\n", o.Notes)
	}
	b.WriteString("Items:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s (%s) x%d %s\n", it.ProductName, it.VariantLabel, it.Quantity, money.Format(it.LineTotal()))
	}
	fmt.Fprintf(&b, "Subtotal: %s\nEnvío: %s\nTotal: %s\n", money.Format(o.Subtotal), money.FormatShipping(o.Shipping), money.Format(o.Total))
	return b.String()
}
