// Package syncer issues the remote writes that state transitions describe.
// Writes are fire-and-forget: a failure is logged as a warning and never
// reported back, so local state is left as the user made it.
package syncer

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rhystmorgan/abook/internal/models"
	"rhystmorgan/abook/internal/state"
)

type Store interface {
	FetchAll(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, contact models.Contact) (*models.Contact, error)
	Update(ctx context.Context, id models.ContactID, contact models.Contact) (*models.Contact, error)
	Delete(ctx context.Context, id models.ContactID) error
}

// ContactsLoadedMsg carries a full collection fetched from the server.
type ContactsLoadedMsg struct {
	Contacts []models.Contact
}

// LoadFailedMsg is only produced by the initial load.
type LoadFailedMsg struct {
	Err error
}

type ImportFinishedMsg struct {
	Processed int
	Failed    int
}

type Syncer struct {
	store Store
	log   *zap.Logger
	ctx   context.Context
}

func New(store Store, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{
		store: store,
		log:   log,
		ctx:   context.Background(),
	}
}

// Load fetches the collection for startup.
func (s *Syncer) Load() tea.Cmd {
	return func() tea.Msg {
		contacts, err := s.store.FetchAll(s.ctx)
		if err != nil {
			s.log.Warn("initial load failed, using placeholder contacts", zap.Error(err))
			return LoadFailedMsg{Err: err}
		}
		s.log.Info("contacts loaded", zap.Int("count", len(contacts)))
		return ContactsLoadedMsg{Contacts: contacts}
	}
}

// Dispatch runs each effect as an independent command.
func (s *Syncer) Dispatch(effects ...state.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, effect := range effects {
		cmds = append(cmds, s.Apply(effect))
	}
	return tea.Batch(cmds...)
}

// Apply performs one effect. It yields ContactsLoadedMsg when the write
// succeeded and asked for a refresh, and no message otherwise.
func (s *Syncer) Apply(effect state.Effect) tea.Cmd {
	return func() tea.Msg {
		if err := s.write(effect); err != nil {
			return nil
		}
		if !effect.Refresh {
			return nil
		}

		contacts, err := s.store.FetchAll(s.ctx)
		if err != nil {
			s.log.Warn("refresh after write failed",
				zap.Stringer("op", effect.Op),
				zap.Stringer("contact_id", effect.Contact.ID),
				zap.Error(err),
			)
			return nil
		}
		return ContactsLoadedMsg{Contacts: contacts}
	}
}

// Import submits the creates one after another, waiting for each before
// starting the next. A failed row is logged and skipped.
func (s *Syncer) Import(effects []state.Effect) tea.Cmd {
	return func() tea.Msg {
		failed := 0
		for _, effect := range effects {
			if err := s.write(effect); err != nil {
				failed++
			}
		}
		s.log.Info("import finished",
			zap.Int("processed", len(effects)),
			zap.Int("failed", failed),
		)
		return ImportFinishedMsg{Processed: len(effects), Failed: failed}
	}
}

func (s *Syncer) write(effect state.Effect) error {
	var err error
	contact := effect.Contact

	switch effect.Op {
	case state.OpCreate:
		_, err = s.store.Create(s.ctx, contact)
	case state.OpUpdate:
		_, err = s.store.Update(s.ctx, contact.ID, contact)
	case state.OpDelete:
		err = s.store.Delete(s.ctx, contact.ID)
	default:
		err = fmt.Errorf("unknown op %d", effect.Op)
	}

	if err != nil {
		s.log.Warn("remote write failed",
			zap.Stringer("op", effect.Op),
			zap.Stringer("contact_id", contact.ID),
			zap.String("name", contact.Name),
			zap.Error(err),
		)
		return err
	}

	s.log.Debug("remote write succeeded",
		zap.Stringer("op", effect.Op),
		zap.Stringer("contact_id", contact.ID),
	)
	return nil
}
