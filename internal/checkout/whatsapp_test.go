package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildWhatsAppURLTemplate(t *testing.T) {
	total := decimal.RequireFromString("39.80")
	link := BuildWhatsAppURL("1234", "Ana", []string{"2x Widget"}, total, "5511999999999")

	if !strings.HasPrefix(link, "https://wa.me/5511999999999?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	encoded := strings.TrimPrefix(link, "https://wa.me/5511999999999?text=")
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}

	want := "Olá! Gostaria de finalizar o *Pedido #1234* de Ana.\n\n*Itens:*\n- 2x Widget\n\n*Total Estimado:* R$ 39.80"
	if decoded != want {
		t.Fatalf("message mismatch:\n got: %q\nwant: %q", decoded, want)
	}
}

func TestBuildWhatsAppURLEncoding(t *testing.T) {
	total := decimal.RequireFromString("12.50")
	link := BuildWhatsAppURL("4321", "Ana & João", []string{"1x Café 100% Arábica"}, total, "5511999999999")

	if strings.ContainsRune(link, '\n') {
		t.Fatalf("link contains a literal newline: %q", link)
	}
	if strings.ContainsRune(link, ' ') {
		t.Fatalf("link contains an unescaped space: %q", link)
	}
	if !strings.Contains(link, "%0A") {
		t.Fatalf("newlines must be encoded as %%0A: %q", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("spaces must be %%20, not '+': %q", link)
	}
	if !strings.Contains(link, "%26") {
		t.Fatalf("'&' in customer name must be encoded: %q", link)
	}
	if !strings.HasSuffix(link, "12.50") {
		t.Fatalf("link must end with the formatted total: %q", link)
	}
}

func TestBuildWhatsAppURLTotalAlwaysTwoDecimals(t *testing.T) {
	total := decimal.RequireFromString("40")
	link := BuildWhatsAppURL("1000", "Ana", []string{"1x Widget"}, total, "5511999999999")
	if !strings.HasSuffix(link, "40.00") {
		t.Fatalf("total must carry two decimals: %q", link)
	}
}
