package cart

import (
	"fmt"
	"net/url"
	"strings"

	"incho/internal/catalog"
)

const orderGreeting = "Hi! I'd like to order:"

// FormatPrice renders a two-decimal dollar amount with thousands
// grouping: 1234.5 -> "$1,234.50".
func FormatPrice(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	return sign + "$" + b.String() + "." + frac
}

// CheckoutMessage formats the cart as a numbered order list followed
// by a total line. This exact shape is what the messaging channel
// receives, so it is part of the store's observable contract.
func (s *Store) CheckoutMessage() string {
	var lines []string
	i := 0
	for e := range s.Snapshot() {
		i++
		lines = append(lines, fmt.Sprintf("%d. %s - %dx %s", i, e.Name, e.Quantity, FormatPrice(e.Price)))
	}

	return strings.Join(lines, "\n") + "\n\nTotal: " + FormatPrice(s.Totals().Price)
}

// CheckoutURL builds the WhatsApp deeplink carrying the order message.
func (s *Store) CheckoutURL(phone string) string {
	return deeplink(phone, orderGreeting+"\n\n"+s.CheckoutMessage())
}

// OrderProductMessage is the single-product order shortcut offered
// from the storefront, independent of the cart.
func OrderProductMessage(p catalog.Product) string {
	return fmt.Sprintf("Hi! I'm interested in ordering: %s - %s", p.Name, FormatPrice(p.Price))
}

func OrderProductURL(p catalog.Product, phone string) string {
	return deeplink(phone, OrderProductMessage(p))
}

func deeplink(phone, message string) string {
	// QueryEscape encodes spaces as "+", which WhatsApp renders
	// literally; use %20 instead.
	escaped := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + escaped
}
