package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"incho/internal/cart"
	"incho/internal/catalog"
	"incho/internal/query"
)

// Notices collects cart notifications so an interactive surface can
// show them in its own status line instead of on stdout.
type Notices struct {
	mu   sync.Mutex
	last string
}

func (n *Notices) Successf(format string, args ...any) {
	n.mu.Lock()
	n.last = fmt.Sprintf(format, args...)
	n.mu.Unlock()
}

func (n *Notices) Warnf(format string, args ...any) {
	n.mu.Lock()
	n.last = "Warning: " + fmt.Sprintf(format, args...)
	n.mu.Unlock()
}

func (n *Notices) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

type refreshMsg struct{}

var stockCycle = []catalog.StockStatus{
	catalog.StockAny, catalog.StockIn, catalog.StockLow, catalog.StockOut,
}

var sortCycle = []catalog.SortKey{
	catalog.SortNewest, catalog.SortPriceAsc, catalog.SortPriceDesc,
}

// ShopModel is the interactive storefront: a search box over the
// debounced query controller, with cart actions on the result list.
type ShopModel struct {
	ctrl    *query.Controller
	cart    *cart.Store
	notices *Notices
	phone   string

	search textinput.Model
	spin   spinner.Model
	cursor int
	width  int
	link   string

	titleStyle  lipgloss.Style
	cursorStyle lipgloss.Style
	priceStyle  lipgloss.Style
	faintStyle  lipgloss.Style
	lowStyle    lipgloss.Style
	outStyle    lipgloss.Style
}

func NewShop(ctrl *query.Controller, store *cart.Store, notices *Notices, phone string) ShopModel {
	search := textinput.New()
	search.Placeholder = "Search tools..."
	search.Prompt = "/ "
	search.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	return ShopModel{
		ctrl:    ctrl,
		cart:    store,
		notices: notices,
		phone:   phone,
		search:  search,
		spin:    spin,
		width:   80,

		titleStyle:  lipgloss.NewStyle().Bold(true),
		cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		priceStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		faintStyle:  lipgloss.NewStyle().Faint(true),
		lowStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		outStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (m ShopModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ShopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.ctrl.Close()
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.ctrl.Results())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if p, ok := m.selected(); ok {
			m.cart.Add(p, 1)
			m.link = ""
		}
		return m, nil

	case "ctrl+x":
		if p, ok := m.selected(); ok {
			m.cart.Remove(p.ID)
			m.link = ""
		}
		return m, nil

	case "ctrl+f":
		next := nextIn(stockCycle, m.ctrl.Criteria().StockStatus)
		m.ctrl.SetCriteria(query.Patch{StockStatus: &next})
		return m, nil

	case "ctrl+s":
		next := nextIn(sortCycle, m.ctrl.Criteria().SortBy)
		m.ctrl.SetCriteria(query.Patch{SortBy: &next})
		return m, nil

	case "ctrl+r":
		m.search.SetValue("")
		m.cursor = 0
		m.link = ""
		m.ctrl.Reset()
		return m, nil

	case "ctrl+k":
		if m.cart.Len() > 0 {
			m.link = m.cart.CheckoutURL(m.phone)
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.cursor = 0
		m.ctrl.SetCriteria(query.Patch{Search: &after})
	}
	return m, cmd
}

func (m *ShopModel) clampCursor() {
	if n := len(m.ctrl.Results()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m ShopModel) selected() (catalog.Product, bool) {
	results := m.ctrl.Results()
	if m.cursor < 0 || m.cursor >= len(results) {
		return catalog.Product{}, false
	}
	return results[m.cursor], true
}

func nextIn[T comparable](cycle []T, current T) T {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (m ShopModel) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("incho"))
	b.WriteString("  ")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.faintStyle.Render(m.filterLine()))
	b.WriteString("\n")
	if m.ctrl.Err() != nil {
		b.WriteString(m.outStyle.Render("Failed to load products"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	results := m.ctrl.Results()
	switch {
	case m.ctrl.Loading() && len(results) == 0:
		b.WriteString(m.spin.View())
		b.WriteString(" Loading products...\n")
	case len(results) > 0:
		for i, p := range results {
			b.WriteString(m.renderRow(p, i == m.cursor))
			b.WriteString("\n")
		}
	case m.ctrl.Err() == nil:
		b.WriteString("No products found.\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m ShopModel) renderRow(p catalog.Product, active bool) string {
	prefix := "  "
	name := p.Name
	if active {
		prefix = m.cursorStyle.Render("> ")
		name = m.titleStyle.Render(name)
	}
	row := prefix + name

	switch catalog.StockStatusOf(p.Stock) {
	case catalog.StockOut:
		row += "  " + m.outStyle.Render("Out of Stock")
	case catalog.StockLow:
		row += "  " + m.lowStyle.Render("Low Stock")
	}

	price := m.priceStyle.Render(cart.FormatPrice(p.Price))
	padding := max(1, m.width-lipgloss.Width(row)-lipgloss.Width(price))
	return row + strings.Repeat(" ", padding) + price
}

func (m ShopModel) filterLine() string {
	crit := m.ctrl.Criteria()

	stock := "all stock"
	if crit.StockStatus != catalog.StockAny {
		stock = string(crit.StockStatus)
	}
	line := fmt.Sprintf("stock: %s  sort: %s", stock, crit.SortBy)
	if crit.Category != "" {
		line += "  category: " + crit.Category
	}
	if m.ctrl.Loading() {
		line += "  " + m.spin.View()
	}
	return line
}

func (m ShopModel) footer() string {
	totals := m.cart.Totals()
	var b strings.Builder

	b.WriteString(m.titleStyle.Render(
		fmt.Sprintf("Cart: %d items, %s", totals.Items, cart.FormatPrice(totals.Price))))
	b.WriteString("\n")

	if notice := m.notices.Last(); notice != "" {
		b.WriteString(notice)
		b.WriteString("\n")
	}
	if m.link != "" {
		b.WriteString(m.link)
		b.WriteString("\n")
	}

	b.WriteString(m.faintStyle.Render(
		"enter add  ctrl+x remove  ctrl+f stock  ctrl+s sort  ctrl+r reset  ctrl+k checkout  esc quit"))
	return b.String()
}

// RunShop wires the controller's update callback into the program's
// message loop and blocks until the user quits.
func RunShop(ctrl *query.Controller, store *cart.Store, phone string) error {
	notices := &Notices{}
	store.SetNotifier(notices)

	p := tea.NewProgram(NewShop(ctrl, store, notices, phone), tea.WithAltScreen())
	ctrl.OnUpdate(func() { p.Send(refreshMsg{}) })
	ctrl.QueryNow()

	_, err := p.Run()
	return err
}
