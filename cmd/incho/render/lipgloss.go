package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"incho/internal/cart"
	"incho/internal/catalog"
)

type LipglossRenderer struct {
	width int
	now   func() time.Time
	r     *lipgloss.Renderer

	nameStyle     lipgloss.Style
	categoryStyle lipgloss.Style
	descStyle     lipgloss.Style
	priceStyle    lipgloss.Style
	timeStyle     lipgloss.Style
	lowStyle      lipgloss.Style
	outStyle      lipgloss.Style
	totalStyle    lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:         width,
		now:           time.Now,
		r:             r,
		nameStyle:     r.NewStyle().Bold(true),
		categoryStyle: r.NewStyle().Faint(true),
		descStyle:     r.NewStyle(),
		priceStyle:    r.NewStyle().Foreground(lipgloss.Color("10")),
		timeStyle:     r.NewStyle().Faint(true),
		lowStyle:      r.NewStyle().Foreground(lipgloss.Color("3")),
		outStyle:      r.NewStyle().Foreground(lipgloss.Color("1")),
		totalStyle:    r.NewStyle().Bold(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) WithClock(now func() time.Time) *LipglossRenderer {
	r.now = now
	return r
}

func (r *LipglossRenderer) RenderProductList(view ProductListView) string {
	if view.IsEmpty() {
		return "No products found.\n"
	}

	now := r.now()
	var sb strings.Builder
	for i, item := range view.Items {
		last := i == len(view.Items)-1
		sb.WriteString(r.renderProduct(item, now, last))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (r *LipglossRenderer) renderProduct(item ProductItem, now time.Time, last bool) string {
	name := r.nameStyle.Render(item.Name)
	if badge := r.stockBadge(item.Stock); badge != "" {
		name += "  " + badge
	}
	price := r.priceStyle.Render(cart.FormatPrice(item.Price))

	padding := max(1, r.width-lipgloss.Width(name)-lipgloss.Width(price))
	headerLine := name + strings.Repeat(" ", padding) + price

	meta := item.Category
	if ts := r.formatTime(item.CreatedAt, now); ts != "" {
		meta += "  " + ts
	}

	var lines []string
	lines = append(lines, headerLine)
	lines = append(lines, r.categoryStyle.Render("  "+meta))
	if item.Description != "" {
		lines = append(lines, r.descStyle.Render("  "+item.Description))
	}
	if !last {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (r *LipglossRenderer) stockBadge(stock int) string {
	switch catalog.StockStatusOf(stock) {
	case catalog.StockOut:
		return r.outStyle.Render("Out of Stock")
	case catalog.StockLow:
		return r.lowStyle.Render("Low Stock")
	default:
		return ""
	}
}

func (r *LipglossRenderer) RenderCart(view CartView) string {
	if view.IsEmpty() {
		return "Your cart is empty.\n"
	}

	var sb strings.Builder
	for _, item := range view.Items {
		name := r.nameStyle.Render(item.Name)
		qty := r.categoryStyle.Render(fmt.Sprintf("%dx %s", item.Quantity, cart.FormatPrice(item.Price)))
		line := r.priceStyle.Render(cart.FormatPrice(item.LineTotal))

		left := name + "  " + qty
		padding := max(1, r.width-lipgloss.Width(left)-lipgloss.Width(line))
		sb.WriteString(left + strings.Repeat(" ", padding) + line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	label := r.totalStyle.Render(fmt.Sprintf("Total (%d items)", view.TotalItems))
	total := r.totalStyle.Render(cart.FormatPrice(view.TotalPrice))
	padding := max(1, r.width-lipgloss.Width(label)-lipgloss.Width(total))
	sb.WriteString(label + strings.Repeat(" ", padding) + total)
	sb.WriteString("\n")
	return sb.String()
}

func (r *LipglossRenderer) formatTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	target := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	days := int(today.Sub(target).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return t.Format("Mon")
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2 '06")
	}
}
