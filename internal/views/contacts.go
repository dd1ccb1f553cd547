package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/abook/internal/models"
)

type ListActionKind int

const (
	ListNone ListActionKind = iota
	ListSearch
	ListToggleCollection
	ListNew
	ListEdit
	ListToggleFavorite
	ListDelete
	ListExport
	ListImport
	ListQuit
)

// ListAction is what a key press on the list asks the app to do. ID is the
// selected contact, Query the current search text.
type ListAction struct {
	Kind  ListActionKind
	ID    models.ContactID
	Query string
}

type ContactsModel struct {
	searchInput textinput.Model
	cursor      int
	width       int
	height      int
}

func NewContactsModel() *ContactsModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search contacts..."
	searchInput.CharLimit = 50
	searchInput.Prompt = "/ "
	searchInput.PromptStyle = lipgloss.NewStyle().Foreground(Colours.Blue)
	searchInput.TextStyle = lipgloss.NewStyle().Foreground(Colours.Text)

	return &ContactsModel{searchInput: searchInput}
}

func (m *ContactsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = min(40, max(10, width-20))
}

func (m *ContactsModel) Searching() bool {
	return m.searchInput.Focused()
}

func (m *ContactsModel) Update(msg tea.KeyMsg, displayed []models.Contact) (ListAction, tea.Cmd) {
	m.clamp(len(displayed))

	switch msg.String() {
	case "up":
		m.moveUp()
		return ListAction{}, nil
	case "down":
		m.moveDown(len(displayed))
		return ListAction{}, nil
	}

	if m.searchInput.Focused() {
		return m.updateSearch(msg)
	}

	selected := func(kind ListActionKind) ListAction {
		if len(displayed) == 0 {
			return ListAction{}
		}
		return ListAction{Kind: kind, ID: displayed[m.cursor].ID}
	}

	switch msg.String() {
	case "k":
		m.moveUp()
	case "j":
		m.moveDown(len(displayed))
	case "/":
		return ListAction{}, m.searchInput.Focus()
	case "esc":
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			return ListAction{Kind: ListSearch}, nil
		}
	case "c":
		m.cursor = 0
		return ListAction{Kind: ListToggleCollection}, nil
	case "n":
		return ListAction{Kind: ListNew}, nil
	case "enter", "e":
		return selected(ListEdit), nil
	case "f":
		return selected(ListToggleFavorite), nil
	case "d", "delete":
		return selected(ListDelete), nil
	case "x":
		return ListAction{Kind: ListExport}, nil
	case "i":
		return ListAction{Kind: ListImport}, nil
	case "q":
		return ListAction{Kind: ListQuit}, nil
	}

	return ListAction{}, nil
}

func (m *ContactsModel) updateSearch(msg tea.KeyMsg) (ListAction, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.cursor = 0
		return ListAction{Kind: ListSearch}, nil
	case "enter":
		m.searchInput.Blur()
		return ListAction{}, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if query := m.searchInput.Value(); query != before {
		m.cursor = 0
		return ListAction{Kind: ListSearch, Query: query}, cmd
	}
	return ListAction{}, cmd
}

func (m *ContactsModel) moveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *ContactsModel) moveDown(n int) {
	if m.cursor < n-1 {
		m.cursor++
	}
}

func (m *ContactsModel) clamp(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ListStatus is the header information the list does not own.
type ListStatus struct {
	Total          int
	CollectionMode bool
	Offline        bool
	Activity       string
}

func (m *ContactsModel) View(displayed []models.Contact, status ListStatus) string {
	m.clamp(len(displayed))

	var content strings.Builder

	content.WriteString(m.renderHeader(status))
	content.WriteString("\n")
	content.WriteString(m.renderSearchBar(status))
	content.WriteString("\n\n")

	if len(displayed) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(Colours.Overlay1).
			Padding(1, 2)
		switch {
		case m.searchInput.Value() != "":
			content.WriteString(emptyStyle.Render("No contacts match your search."))
		case status.CollectionMode:
			content.WriteString(emptyStyle.Render("No favorites yet. Press f on a contact to add it to your collection."))
		default:
			content.WriteString(emptyStyle.Render("No contacts yet. Press n to create your first contact."))
		}
	} else {
		content.WriteString(m.renderContactList(displayed))
	}

	content.WriteString("\n\n")
	content.WriteString(m.renderFooter(len(displayed), status))

	return content.String()
}

func (m *ContactsModel) renderHeader(status ListStatus) string {
	title := fmt.Sprintf("Address Book (%d contacts)", status.Total)
	if status.CollectionMode {
		title = fmt.Sprintf("My Collection (%d contacts)", status.Total)
	}

	header := headerStyle.Render(title)
	if status.Offline {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", offlineStyle.Render("offline"))
	}
	if status.Activity != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", mutedStyle.Render(status.Activity))
	}
	return header
}

func (m *ContactsModel) renderSearchBar(status ListStatus) string {
	border := Colours.Surface1
	if m.searchInput.Focused() {
		border = Colours.Blue
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	filterInfo := "All contacts"
	if status.CollectionMode {
		filterInfo = favoriteStyle.Render("★ Collection")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		searchStyle.Render(m.searchInput.View()),
		"  ",
		mutedStyle.Render(filterInfo),
	)
}

func (m *ContactsModel) renderContactList(displayed []models.Contact) string {
	// header, search bar and footer take roughly ten lines
	visible := len(displayed)
	if m.height > 0 {
		visible = max(1, m.height-10)
	}

	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(len(displayed), start+visible)

	items := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, m.renderContactItem(displayed[i], i == m.cursor))
	}

	return strings.Join(items, "\n")
}

func (m *ContactsModel) renderContactItem(contact models.Contact, isSelected bool) string {
	width := max(40, m.width-2)

	style := lipgloss.NewStyle().
		Foreground(Colours.Text).
		Padding(0, 1).
		Width(width)
	if isSelected {
		style = style.
			Background(Colours.Surface1).
			Bold(true)
	}

	favoriteIcon := "  "
	if contact.IsFav {
		favoriteIcon = favoriteStyle.Render("★ ")
	}

	name := contact.Name
	if name == "" {
		name = "(no name)"
	}
	nameStyle := lipgloss.NewStyle().Width(24)

	methods := make([]string, 0, len(contact.Methods))
	for _, method := range contact.Methods {
		if method.Val == "" {
			continue
		}
		methods = append(methods, fmt.Sprintf("%s: %s", method.Type, method.Val))
	}
	summary := truncate(strings.Join(methods, " · "), max(10, width-30))

	line := favoriteIcon + nameStyle.Render(truncate(name, 22)) + mutedStyle.Render(summary)
	return style.Render(line)
}

func (m *ContactsModel) renderFooter(shown int, status ListStatus) string {
	controls := "[↑/↓]Move [/]Search [c]Collection [n]New [e]Edit [f]Favorite [d]Delete [x]Export [i]Import [q]Quit"
	if m.searchInput.Focused() {
		controls = "[Enter]Done [Esc]Clear search [↑/↓]Move"
	}

	stats := fmt.Sprintf("Showing %d of %d", shown, status.Total)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		helpStyle.Render(controls),
		helpStyle.Render(stats),
	)
}
