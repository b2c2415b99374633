package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/money"
)

const DefaultWhatsAppNumber = "521234567890"

// OrderMessage es el resumen de la orden en el formato de WhatsApp (negritas con *).
func OrderMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("🛒 *Nuevo pedido - MUÑEK SUPLEMENTOS*\n\n")
	fmt.Fprintf(&b, "🧾 *Orden:* %s\n", o.ID)
	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", o.UserName)
	fmt.Fprintf(&b, "📱 *Teléfono:* %s\n", o.Phone)
	fmt.Fprintf(&b, "📧 *Email:* %s\n", o.UserEmail)
	fmt.Fprintf(&b, "📍 *Dirección:* %s\n", o.ShippingAddress)
	if o.Notes != "" {
		fmt.Fprintf(&b, "📝 *Notas:* %s\n", o.Notes)
	}
	b.WriteString("\n📦 *Productos:*\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "• %s (%s) x%d - %s\n", it.ProductName, it.VariantLabel, it.Quantity, money.Format(it.LineTotal()))
	}
	fmt.Fprintf(&b, "\n💰 *Subtotal:* %s", money.Format(o.Subtotal))
	fmt.Fprintf(&b, "\n🚚 *Envío:* %s", money.FormatShipping(o.Shipping))
	fmt.Fprintf(&b, "\n\n💵 *TOTAL:* %s", money.Format(o.Total))
	return b.String()
}

// WhatsAppURL arma el link wa.me con el mensaje ya codificado. Del número sólo
// quedan los dígitos.
func WhatsAppURL(number string, o *domain.Order) string {
	number = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if number == "" {
		number = DefaultWhatsAppNumber
	}
	text := strings.ReplaceAll(url.QueryEscape(OrderMessage(o)), "+", "%20")
	return "https://wa.me/" + number + "?text=" + text
}
