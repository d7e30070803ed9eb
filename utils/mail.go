package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/tastybites/tastybites-api/config"
	"github.com/tastybites/tastybites-api/models"
)

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`
<html>
<body>
  <h2>Thanks for your order, {{.Name}}!</h2>
  <p>Your order <strong>{{.OrderNumber}}</strong> has been received and is being prepared.</p>
  <table>
    {{range .Items}}<tr><td>{{.Quantity}} x {{.FoodName}}</td><td>${{printf "%.2f" .Price}}</td></tr>
    {{end}}
  </table>
  <p>Subtotal: ${{printf "%.2f" .Subtotal}}<br>
  Delivery: ${{printf "%.2f" .DeliveryFee}}<br>
  Tax: ${{printf "%.2f" .Tax}}<br>
  <strong>Total: ${{printf "%.2f" .Total}}</strong></p>
</body>
</html>`))

type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	if !cfg.Enabled() {
		return nil
	}
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Enabled() bool {
	return m != nil
}

type orderConfirmationData struct {
	Name        string
	OrderNumber string
	Items       []models.OrderItem
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64
}

// SendOrderConfirmation emails the buyer after a successful checkout. Errors
// are returned for logging; a failed email never fails the order.
func (m *Mailer) SendOrderConfirmation(toEmail, name string, order models.Order) error {
	var body bytes.Buffer
	err := orderConfirmationTemplate.Execute(&body, orderConfirmationData{
		Name:        name,
		OrderNumber: order.OrderNumber,
		Items:       order.OrderItems,
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Tax:         order.Tax,
		Total:       order.Total,
	})
	if err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: Order %s confirmed\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		order.OrderNumber,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(m.cfg.Addr, auth, m.cfg.From, []string{toEmail}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
