// Package state holds the application state and the pure transitions the
// views apply to it. Transitions update the local collection immediately and
// describe the matching remote writes as Effects; nothing here waits on, or
// reconciles with, the server.
package state

import (
	"rhystmorgan/abook/internal/models"
)

type View int

const (
	ViewList View = iota
	ViewForm
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewForm:
		return "form"
	default:
		return "unknown"
	}
}

type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Effect is a remote write implied by a transition. Refresh asks for the
// whole collection to be refetched once the write succeeds.
type Effect struct {
	Op      Op
	Contact models.Contact
	Refresh bool
}

type State struct {
	Contacts       models.ContactList
	View           View
	Draft          *Draft
	Search         string
	CollectionMode bool
	// Offline is set when the collection is the placeholder dataset.
	Offline bool
}

func New() State {
	return State{View: ViewList}
}

// Displayed is the filtered, favorites-first list the list view renders.
func (s State) Displayed() []models.Contact {
	return models.Display(s.Contacts, s.Search, s.CollectionMode)
}

// Loaded replaces the collection wholesale with a server result.
func (s State) Loaded(contacts []models.Contact) State {
	s.Contacts = models.ContactList(contacts).Clone()
	s.Offline = false
	return s
}

// LoadFailed substitutes the placeholder dataset.
func (s State) LoadFailed() State {
	s.Contacts = models.ContactList(models.PlaceholderContacts())
	s.Offline = true
	return s
}

func (s State) SetSearch(search string) State {
	s.Search = search
	return s
}

func (s State) ToggleCollection() State {
	s.CollectionMode = !s.CollectionMode
	return s
}

func (s State) OpenNew() State {
	draft := NewDraft(s.CollectionMode)
	s.Draft = &draft
	s.View = ViewForm
	return s
}

// OpenEdit seeds the form from the contact with id. It reports false, and
// leaves the state alone, when no such contact exists.
func (s State) OpenEdit(id models.ContactID) (State, bool) {
	contact, ok := s.Contacts.FindByID(id)
	if !ok {
		return s, false
	}
	draft := DraftFrom(contact)
	s.Draft = &draft
	s.View = ViewForm
	return s, true
}

// EditDraft applies fn to a private copy of the draft.
func (s State) EditDraft(fn func(*Draft)) State {
	if s.Draft == nil {
		return s
	}
	draft := DraftFrom(s.Draft.Contact())
	fn(&draft)
	s.Draft = &draft
	return s
}

func (s State) Cancel() State {
	s.Draft = nil
	s.View = ViewList
	return s
}

// Save commits the draft locally and returns the remote write for it. A
// draft without an id is created under an id from newID; otherwise the
// matching record is replaced. On validation failure the state is returned
// unchanged, still on the form.
func (s State) Save(newID models.IDFunc) (State, []Effect, error) {
	if s.Draft == nil {
		return s, nil, nil
	}
	if err := s.Draft.Validate(); err != nil {
		return s, nil, err
	}

	contact := s.Draft.Contact()
	var effect Effect

	if s.Draft.IsNew() {
		contact.ID = newID()
		s.Contacts = s.Contacts.Add(contact)
		effect = Effect{Op: OpCreate, Contact: contact, Refresh: true}
	} else {
		s.Contacts, _ = s.Contacts.Replace(contact)
		effect = Effect{Op: OpUpdate, Contact: contact, Refresh: true}
	}

	s.Draft = nil
	s.View = ViewList
	return s, []Effect{effect}, nil
}

// Delete removes the contact locally once confirmed. The removal stands
// even if the remote delete later fails.
func (s State) Delete(id models.ContactID, confirmed bool) (State, []Effect) {
	if !confirmed {
		return s, nil
	}
	contacts, ok := s.Contacts.Remove(id)
	if !ok {
		return s, nil
	}
	s.Contacts = contacts
	return s, []Effect{{Op: OpDelete, Contact: models.Contact{ID: id}}}
}

func (s State) ToggleFavorite(id models.ContactID) (State, []Effect) {
	contact, ok := s.Contacts.FindByID(id)
	if !ok {
		return s, nil
	}
	contact = contact.Clone()
	contact.IsFav = !contact.IsFav
	s.Contacts, _ = s.Contacts.Replace(contact)
	return s, []Effect{{Op: OpUpdate, Contact: contact}}
}

// Import appends every record under a fresh id and returns one create per
// record, in order.
func (s State) Import(contacts []models.Contact, newID models.IDFunc) (State, []Effect) {
	effects := make([]Effect, 0, len(contacts))
	added := make([]models.Contact, 0, len(contacts))

	for _, contact := range contacts {
		contact = contact.Clone()
		contact.ID = newID()
		added = append(added, contact)
		effects = append(effects, Effect{Op: OpCreate, Contact: contact})
	}

	s.Contacts = s.Contacts.Add(added...)
	return s, effects
}
