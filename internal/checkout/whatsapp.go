package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// BuildWhatsAppURL renders the order summary into a wa.me deep link addressed
// to the store's number. The message travels as a query parameter, so the
// whole text is percent-encoded in one pass: newlines become %0A, spaces %20,
// and reserved characters in customer or product names are escaped too.
func BuildWhatsAppURL(orderNumber, customerName string, lines []string, total decimal.Decimal, storeNumber string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá! Gostaria de finalizar o *Pedido #%s* de %s.\n\n*Itens:*\n", orderNumber, customerName)
	for _, line := range lines {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n*Total Estimado:* R$ %s", total.StringFixed(2))

	return "https://wa.me/" + storeNumber + "?text=" + encodeMessage(b.String())
}

// encodeMessage percent-encodes the message body. QueryEscape emits '+' for
// spaces, which WhatsApp renders literally, so those are rewritten to %20.
func encodeMessage(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
