package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/abook/internal/models"
	"rhystmorgan/abook/internal/spreadsheet"
	"rhystmorgan/abook/internal/state"
	"rhystmorgan/abook/internal/storage"
	"rhystmorgan/abook/internal/syncer"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayDeleteConfirm
	overlayImportPrompt
	overlayNotice
)

type ExportFinishedMsg struct {
	Path  string
	Count int
	Err   error
}

type ImportReadMsg struct {
	Path     string
	Contacts []models.Contact
	Err      error
}

type Options struct {
	Syncer    *syncer.Syncer
	Storage   *storage.Storage
	ExportDir string
	NewID     models.IDFunc
	Logger    *zap.Logger
}

type AppModel struct {
	state     state.State
	syncer    *syncer.Syncer
	storage   *storage.Storage
	exportDir string
	newID     models.IDFunc
	log       *zap.Logger

	contactsView *ContactsModel
	formView     *ContactFormModel
	importPrompt ImportPrompt

	overlay       overlay
	notice        Notice
	pendingDelete models.ContactID

	spinner   spinner.Model
	loading   bool
	importing bool

	width  int
	height int
}

func NewAppModel(opts Options) (*AppModel, error) {
	if opts.Syncer == nil {
		return nil, fmt.Errorf("syncer is required")
	}
	if opts.Storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if opts.NewID == nil {
		opts.NewID = models.ClockIDs
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &AppModel{
		state:        state.New(),
		syncer:       opts.Syncer,
		storage:      opts.Storage,
		exportDir:    opts.ExportDir,
		newID:        opts.NewID,
		log:          opts.Logger,
		contactsView: NewContactsModel(),
		importPrompt: NewImportPrompt(),
		spinner:      newSpinner(),
		loading:      true,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.syncer.Load(), m.spinner.Tick)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.contactsView.SetSize(msg.Width, msg.Height)
		if m.formView != nil {
			m.formView.SetWidth(msg.Width)
		}
		return m, nil

	case syncer.ContactsLoadedMsg:
		m.state = m.state.Loaded(msg.Contacts)
		m.loading = false
		return m, nil

	case syncer.LoadFailedMsg:
		m.state = m.state.LoadFailed()
		m.loading = false
		return m, nil

	case syncer.ImportFinishedMsg:
		m.importing = false
		body := fmt.Sprintf("Imported %d contacts", msg.Processed)
		if msg.Failed > 0 {
			body += fmt.Sprintf("\n%d failed to sync with the server", msg.Failed)
		}
		m.showNotice(NoticeInfo, "Import complete", body)
		return m, nil

	case ExportFinishedMsg:
		if msg.Err != nil {
			m.log.Warn("export failed", zap.String("path", msg.Path), zap.Error(msg.Err))
			m.showNotice(NoticeError, "Export failed", msg.Err.Error())
			return m, nil
		}
		m.log.Info("contacts exported", zap.String("path", msg.Path), zap.Int("count", msg.Count))
		m.showNotice(NoticeInfo, "Export complete", fmt.Sprintf("Exported %d contacts to %s", msg.Count, msg.Path))
		return m, nil

	case ImportReadMsg:
		if msg.Err != nil {
			m.log.Warn("import failed", zap.String("path", msg.Path), zap.Error(msg.Err))
			m.showNotice(NoticeError, "Import failed", msg.Err.Error())
			return m, nil
		}
		var effects []state.Effect
		m.state, effects = m.state.Import(msg.Contacts, m.newID)
		m.importing = true
		m.log.Info("importing contacts", zap.String("path", msg.Path), zap.Int("rows", len(effects)))
		return m, tea.Batch(m.syncer.Import(effects), m.spinner.Tick)

	case spinner.TickMsg:
		if !m.loading && !m.importing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	cmd := m.updateCursor(msg)
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayNotice:
		m.overlay = overlayNone
		return m, nil

	case overlayDeleteConfirm:
		confirmed := msg.String() == "y" || msg.String() == "Y"
		var effects []state.Effect
		m.state, effects = m.state.Delete(m.pendingDelete, confirmed)
		m.pendingDelete = ""
		m.overlay = overlayNone
		return m, m.syncer.Dispatch(effects...)

	case overlayImportPrompt:
		path, submitted, cancelled, cmd := m.importPrompt.Update(msg)
		switch {
		case cancelled:
			m.overlay = overlayNone
			return m, nil
		case submitted:
			m.overlay = overlayNone
			return m, m.readImport(path)
		}
		return m, cmd
	}

	if m.state.View == state.ViewForm {
		return m.updateForm(msg)
	}
	return m.updateList(msg)
}

func (m AppModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.contactsView.Update(msg, m.state.Displayed())

	switch action.Kind {
	case ListSearch:
		m.state = m.state.SetSearch(action.Query)

	case ListToggleCollection:
		m.state = m.state.ToggleCollection()

	case ListNew:
		m.state = m.state.OpenNew()
		return m.openForm()

	case ListEdit:
		next, ok := m.state.OpenEdit(action.ID)
		if !ok {
			return m, nil
		}
		m.state = next
		return m.openForm()

	case ListToggleFavorite:
		var effects []state.Effect
		m.state, effects = m.state.ToggleFavorite(action.ID)
		return m, m.syncer.Dispatch(effects...)

	case ListDelete:
		m.pendingDelete = action.ID
		m.overlay = overlayDeleteConfirm

	case ListExport:
		return m, m.exportContacts()

	case ListImport:
		m.overlay = overlayImportPrompt
		return m, m.importPrompt.Focus()

	case ListQuit:
		return m, tea.Quit
	}

	return m, cmd
}

func (m AppModel) openForm() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.formView, cmd = NewContactFormModel(*m.state.Draft)
	m.formView.SetWidth(m.width)
	return m, cmd
}

func (m AppModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Draft == nil || m.formView == nil {
		m.state = m.state.Cancel()
		m.formView = nil
		return m, nil
	}

	action, cmd := m.formView.Update(msg, *m.state.Draft)

	switch action.Kind {
	case FormEdit:
		m.state = m.state.EditDraft(action.Edit)
		return m, tea.Batch(cmd, m.formView.Sync(*m.state.Draft))

	case FormCancel:
		m.state = m.state.Cancel()
		m.formView = nil
		return m, nil

	case FormSave:
		next, effects, err := m.state.Save(m.newID)
		if err != nil {
			if errors.Is(err, state.ErrNameRequired) {
				m.showNotice(NoticeError, "Cannot save contact", "Name is required.")
			} else {
				m.showNotice(NoticeError, "Cannot save contact", err.Error())
			}
			return m, nil
		}
		m.state = next
		m.formView = nil
		return m, m.syncer.Dispatch(effects...)
	}

	return m, cmd
}

// updateCursor routes non-key messages, such as cursor blinks, to whichever
// input has focus.
func (m *AppModel) updateCursor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.overlay == overlayImportPrompt:
		m.importPrompt.input, cmd = m.importPrompt.input.Update(msg)
	case m.state.View == state.ViewForm && m.formView != nil:
		if m.formView.focus == focusName {
			m.formView.nameInput, cmd = m.formView.nameInput.Update(msg)
		} else if i, onValue, ok := m.formView.method(); ok && onValue && i < len(m.formView.valueInputs) {
			m.formView.valueInputs[i], cmd = m.formView.valueInputs[i].Update(msg)
		}
	case m.contactsView.Searching():
		m.contactsView.searchInput, cmd = m.contactsView.searchInput.Update(msg)
	}
	return cmd
}

func (m *AppModel) showNotice(kind NoticeKind, title, message string) {
	m.notice = Notice{Kind: kind, Title: title, Message: message}
	m.overlay = overlayNotice
}

// exportContacts writes the whole collection, not just the filtered view.
func (m AppModel) exportContacts() tea.Cmd {
	contacts := m.state.Contacts.Clone()
	store := m.storage
	dir := m.exportDir

	return func() tea.Msg {
		path, err := store.ExportPath(dir, spreadsheet.ExportFileName)
		if err != nil {
			return ExportFinishedMsg{Err: err}
		}
		if err := spreadsheet.WriteFile(path, contacts); err != nil {
			return ExportFinishedMsg{Path: path, Err: fmt.Errorf("failed to export contacts: %w", err)}
		}
		return ExportFinishedMsg{Path: path, Count: len(contacts)}
	}
}

func (m AppModel) readImport(path string) tea.Cmd {
	store := m.storage
	path = strings.TrimSpace(path)

	return func() tea.Msg {
		if err := spreadsheet.CheckExtension(path); err != nil {
			return ImportReadMsg{Path: path, Err: err}
		}
		resolved, err := store.ResolveImportPath(path)
		if err != nil {
			return ImportReadMsg{Path: path, Err: err}
		}
		contacts, err := spreadsheet.ReadFile(resolved)
		if err != nil {
			return ImportReadMsg{Path: resolved, Err: fmt.Errorf("failed to read spreadsheet: %w", err)}
		}
		return ImportReadMsg{Path: resolved, Contacts: contacts}
	}
}

func (m AppModel) listStatus() ListStatus {
	status := ListStatus{
		Total:          len(m.state.Contacts),
		CollectionMode: m.state.CollectionMode,
		Offline:        m.state.Offline,
	}
	switch {
	case m.loading:
		status.Activity = m.spinner.View() + " Loading contacts..."
	case m.importing:
		status.Activity = m.spinner.View() + " Importing..."
	}
	return status
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string

	switch m.overlay {
	case overlayNotice:
		content = m.center(m.notice.View())
	case overlayDeleteConfirm:
		contact, _ := m.state.Contacts.FindByID(m.pendingDelete)
		content = m.center(renderDeleteConfirm(contact))
	case overlayImportPrompt:
		content = m.center(m.importPrompt.View())
	default:
		if m.state.View == state.ViewForm && m.formView != nil && m.state.Draft != nil {
			content = m.formView.View(*m.state.Draft)
		} else {
			content = m.contactsView.View(m.state.Displayed(), m.listStatus())
		}
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m AppModel) center(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// State exposes the current state for callers outside the update loop.
func (m AppModel) State() state.State {
	return m.state
}
