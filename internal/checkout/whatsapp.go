package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"rodrigues-modas/internal/domain"
)

// buildWhatsAppMessage renders the order summary the store receives on
// WhatsApp, one numbered block per line with variant, quantity and price.
func buildWhatsAppMessage(lines []domain.CartLine, subtotal float64, baseURL string) string {
	var b strings.Builder
	b.WriteString("Oi, Fiquei Interessado(a) Nesse(s) Produto(s) e Queria Saber Mais:\n\n")

	for i, line := range lines {
		name := ""
		price := ""
		image := ""
		if line.Product != nil {
			name = line.Product.Name
			price = formatBRL(line.Product.Price)
			if len(line.Product.Images) > 0 {
				image = absoluteImageURL(line.Product.Images[0], baseURL)
			}
		}
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, name)
		fmt.Fprintf(&b, "   • Cor: %s\n", line.SelectedColor)
		fmt.Fprintf(&b, "   • Tamanho: %s\n", line.SelectedSize)
		fmt.Fprintf(&b, "   • Quantidade: %d\n", line.Quantity)
		fmt.Fprintf(&b, "   • Preço: %s\n", price)
		if image != "" {
			fmt.Fprintf(&b, "   📷 Foto: %s\n", image)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "💰 *Total: %s*\n\n", formatBRL(fmt.Sprintf("%.2f", subtotal)))
	b.WriteString("Aguardo seu contato para finalizar a compra! 😊")
	return b.String()
}

// whatsAppURL builds the wa.me deep link carrying the prepared message.
func whatsAppURL(number, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}

func absoluteImageURL(image, baseURL string) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(image, "/")
}

// formatBRL renders a decimal price string the Brazilian way ("R$ 89,90").
func formatBRL(price string) string {
	return "R$ " + strings.Replace(strings.TrimSpace(price), ".", ",", 1)
}
