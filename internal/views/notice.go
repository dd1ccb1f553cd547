package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/abook/internal/models"
)

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// Notice is a blocking message dismissed by any key.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

func (n Notice) View() string {
	border := Colours.Green
	icon := "✓"
	if n.Kind == NoticeError {
		border = Colours.Red
		icon = "✗"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(border)

	var content strings.Builder
	content.WriteString(titleStyle.Render(icon + " " + n.Title))
	content.WriteString("\n\n")
	content.WriteString(lipgloss.NewStyle().Foreground(Colours.Text).Render(n.Message))
	content.WriteString("\n\n")
	content.WriteString(mutedStyle.Render("Press any key to continue"))

	return modalStyle(border).Render(content.String())
}

func renderDeleteConfirm(contact models.Contact) string {
	warningStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(Colours.Red)

	name := contact.Name
	if name == "" {
		name = "this contact"
	}

	var content strings.Builder
	content.WriteString(warningStyle.Render("Delete Contact"))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("Are you sure you want to delete '%s'?", truncate(name, 30)))
	content.WriteString("\n\n")
	content.WriteString(mutedStyle.Render("[Y] Yes, delete  [any other key] Cancel"))

	return modalStyle(Colours.Red).Render(content.String())
}

type ImportPrompt struct {
	input textinput.Model
}

func NewImportPrompt() ImportPrompt {
	input := textinput.New()
	input.Placeholder = "~/Downloads/contacts.xlsx"
	input.CharLimit = 512
	input.Width = 48
	input.Prompt = "› "
	input.PromptStyle = lipgloss.NewStyle().Foreground(Colours.Blue)

	return ImportPrompt{input: input}
}

func (p *ImportPrompt) Focus() tea.Cmd {
	p.input.SetValue("")
	return p.input.Focus()
}

// Update returns submitted true with the typed path on enter, and cancelled
// true on esc.
func (p *ImportPrompt) Update(msg tea.KeyMsg) (path string, submitted, cancelled bool, cmd tea.Cmd) {
	switch msg.String() {
	case "enter":
		p.input.Blur()
		return p.input.Value(), true, false, nil
	case "esc":
		p.input.Blur()
		return "", false, true, nil
	}

	p.input, cmd = p.input.Update(msg)
	return "", false, false, cmd
}

func (p ImportPrompt) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(Colours.Blue)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Import Contacts"))
	content.WriteString("\n\n")
	content.WriteString("Spreadsheet to import (.xlsx or .xls):")
	content.WriteString("\n")
	content.WriteString(p.input.View())
	content.WriteString("\n\n")
	content.WriteString(mutedStyle.Render("[Enter] Import  [Esc] Cancel"))

	return modalStyle(Colours.Blue).Render(content.String())
}
