package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/abook/internal/models"
	"rhystmorgan/abook/internal/state"
)

type FormActionKind int

const (
	FormNone FormActionKind = iota
	FormEdit
	FormSave
	FormCancel
)

type FormAction struct {
	Kind FormActionKind
	Edit func(*state.Draft)
}

func edit(fn func(*state.Draft)) FormAction {
	return FormAction{Kind: FormEdit, Edit: fn}
}

const (
	focusName = iota
	focusFavorite
	focusMethods
)

// ContactFormModel renders a draft and turns key presses into draft edits.
// Focus stops are name, favorite, then a type and a value stop per method.
type ContactFormModel struct {
	nameInput   textinput.Model
	valueInputs []textinput.Model
	focus       int
	width       int
}

func NewContactFormModel(draft state.Draft) (*ContactFormModel, tea.Cmd) {
	m := &ContactFormModel{nameInput: newFormInput("Full name")}
	m.nameInput.SetValue(draft.Name)
	return m, m.Sync(draft)
}

func newFormInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.Width = 36
	input.TextStyle = lipgloss.NewStyle().Foreground(Colours.Text)
	return input
}

func (m *ContactFormModel) SetWidth(width int) {
	m.width = width
}

// Sync reconciles the inputs with the draft after an edit.
func (m *ContactFormModel) Sync(draft state.Draft) tea.Cmd {
	if len(m.valueInputs) > len(draft.Methods) {
		m.valueInputs = m.valueInputs[:len(draft.Methods)]
	}
	for len(m.valueInputs) < len(draft.Methods) {
		m.valueInputs = append(m.valueInputs, newFormInput("Value"))
	}

	for i, method := range draft.Methods {
		if m.valueInputs[i].Value() != method.Val {
			m.valueInputs[i].SetValue(method.Val)
		}
	}
	if m.nameInput.Value() != draft.Name {
		m.nameInput.SetValue(draft.Name)
	}

	if last := m.stops(len(draft.Methods)) - 1; m.focus > last {
		m.focus = last
	}
	return m.applyFocus()
}

func (m *ContactFormModel) stops(methods int) int {
	return focusMethods + 2*methods
}

// method returns the method index under focus and whether the focus is on
// its value stop.
func (m *ContactFormModel) method() (index int, onValue bool, ok bool) {
	if m.focus < focusMethods {
		return 0, false, false
	}
	offset := m.focus - focusMethods
	return offset / 2, offset%2 == 1, true
}

func (m *ContactFormModel) applyFocus() tea.Cmd {
	m.nameInput.Blur()
	for i := range m.valueInputs {
		m.valueInputs[i].Blur()
	}

	if m.focus == focusName {
		return m.nameInput.Focus()
	}
	if i, onValue, ok := m.method(); ok && onValue && i < len(m.valueInputs) {
		return m.valueInputs[i].Focus()
	}
	return nil
}

func (m *ContactFormModel) Update(msg tea.KeyMsg, draft state.Draft) (FormAction, tea.Cmd) {
	stops := m.stops(len(draft.Methods))

	switch msg.String() {
	case "esc":
		return FormAction{Kind: FormCancel}, nil
	case "ctrl+s":
		return FormAction{Kind: FormSave}, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % stops
		return FormAction{}, m.applyFocus()
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + stops) % stops
		return FormAction{}, m.applyFocus()
	case "ctrl+n":
		m.focus = focusMethods + 2*len(draft.Methods)
		return edit(func(d *state.Draft) { d.AddMethod() }), nil
	case "ctrl+d":
		if i, _, ok := m.method(); ok {
			m.focus = max(focusFavorite, m.focus-2)
			return edit(func(d *state.Draft) { d.RemoveMethod(i) }), nil
		}
		return FormAction{}, nil
	}

	if m.focus == focusFavorite {
		switch msg.String() {
		case " ", "space", "enter":
			return edit(func(d *state.Draft) { d.ToggleFav() }), nil
		}
		return FormAction{}, nil
	}

	if msg.String() == "enter" {
		m.focus = (m.focus + 1) % stops
		return FormAction{}, m.applyFocus()
	}

	if m.focus == focusName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		if name := m.nameInput.Value(); name != draft.Name {
			return edit(func(d *state.Draft) { d.SetName(name) }), cmd
		}
		return FormAction{}, cmd
	}

	i, onValue, ok := m.method()
	if !ok || i >= len(draft.Methods) {
		return FormAction{}, nil
	}

	if !onValue {
		current := draft.Methods[i].Type
		switch msg.String() {
		case "right", "l", " ":
			return edit(func(d *state.Draft) { d.SetMethodType(i, current.Next()) }), nil
		case "left", "h":
			return edit(func(d *state.Draft) { d.SetMethodType(i, current.Prev()) }), nil
		}
		return FormAction{}, nil
	}

	var cmd tea.Cmd
	m.valueInputs[i], cmd = m.valueInputs[i].Update(msg)
	if val := m.valueInputs[i].Value(); val != draft.Methods[i].Val {
		return edit(func(d *state.Draft) { d.SetMethodVal(i, val) }), cmd
	}
	return FormAction{}, cmd
}

func (m *ContactFormModel) View(draft state.Draft) string {
	var content strings.Builder

	title := "New Contact"
	if !draft.IsNew() {
		title = "Edit Contact"
	}
	content.WriteString(headerStyle.Render(title))
	content.WriteString("\n\n")

	content.WriteString(m.renderRow(focusName, "Name", m.nameInput.View()))
	content.WriteString("\n")

	favorite := "[ ] Add to my collection"
	if draft.IsFav {
		favorite = favoriteStyle.Render("[★] In my collection")
	}
	content.WriteString(m.renderRow(focusFavorite, "Favorite", favorite))
	content.WriteString("\n\n")

	content.WriteString(labelStyle.Render("Methods"))
	content.WriteString("\n")
	if len(draft.Methods) == 0 {
		content.WriteString(mutedStyle.Render("  No contact methods. Press Ctrl+N to add one."))
		content.WriteString("\n")
	}
	for i, method := range draft.Methods {
		content.WriteString(m.renderMethod(i, method))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(helpStyle.Render("[Tab]Next [←/→]Type [Space]Favorite [Ctrl+N]Add method [Ctrl+D]Remove method [Ctrl+S]Save [Esc]Cancel"))

	return content.String()
}

func (m *ContactFormModel) renderRow(stop int, label, value string) string {
	marker := "  "
	style := labelStyle
	if m.focus == stop {
		marker = focusedStyle.Render("▸ ")
		style = style.Foreground(Colours.Blue)
	}
	return marker + style.Render(label) + value
}

func (m *ContactFormModel) renderMethod(i int, method models.ContactMethod) string {
	typeStop := focusMethods + 2*i

	typeLabel := string(method.Type)
	if !method.Type.Known() {
		typeLabel += "?"
	}
	typeView := methodTypeStyle.Width(10).Render(typeLabel)
	if m.focus == typeStop {
		typeView = focusedStyle.Width(10).Render("‹" + typeLabel + "›")
	}

	marker := "  "
	if m.focus == typeStop || m.focus == typeStop+1 {
		marker = focusedStyle.Render("▸ ")
	}

	value := ""
	if i < len(m.valueInputs) {
		value = m.valueInputs[i].View()
	}

	return fmt.Sprintf("%s%-3s %s %s", marker, fmt.Sprintf("%d.", i+1), typeView, value)
}
