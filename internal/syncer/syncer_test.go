package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rhystmorgan/abook/internal/models"
	"rhystmorgan/abook/internal/state"
)

type call struct {
	op   string
	id   models.ContactID
	name string
}

type fakeStore struct {
	mu        sync.Mutex
	calls     []call
	contacts  []models.Contact
	fetchErr  error
	failNames map[string]bool
	failAll   error
}

func (f *fakeStore) record(c call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if f.failAll != nil {
		return f.failAll
	}
	if f.failNames[c.name] {
		return errors.New("server rejected " + c.name)
	}
	return nil
}

func (f *fakeStore) FetchAll(ctx context.Context) ([]models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "fetch"})
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.contacts, nil
}

func (f *fakeStore) Create(ctx context.Context, contact models.Contact) (*models.Contact, error) {
	if err := f.record(call{op: "create", id: contact.ID, name: contact.Name}); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (f *fakeStore) Update(ctx context.Context, id models.ContactID, contact models.Contact) (*models.Contact, error) {
	if err := f.record(call{op: "update", id: id, name: contact.Name}); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (f *fakeStore) Delete(ctx context.Context, id models.ContactID) error {
	return f.record(call{op: "delete", id: id})
}

func (f *fakeStore) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.op)
	}
	return out
}

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestLoad(t *testing.T) {
	store := &fakeStore{contacts: []models.Contact{{ID: "1", Name: "Alice"}}}

	msg := New(store, nil).Load()()

	loaded, ok := msg.(ContactsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, store.contacts, loaded.Contacts)
}

func TestLoad_Failure(t *testing.T) {
	log, logs := newObserved()
	store := &fakeStore{fetchErr: errors.New("connection refused")}

	msg := New(store, log).Load()()

	failed, ok := msg.(LoadFailedMsg)
	require.True(t, ok)
	assert.EqualError(t, failed.Err, "connection refused")
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestApply_CreateRefreshes(t *testing.T) {
	store := &fakeStore{contacts: []models.Contact{{ID: "srv-1", Name: "Carl"}}}
	s := New(store, nil)

	msg := s.Apply(state.Effect{Op: state.OpCreate, Contact: models.Contact{ID: "171", Name: "Carl"}, Refresh: true})()

	loaded, ok := msg.(ContactsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, models.ContactID("srv-1"), loaded.Contacts[0].ID)
	assert.Equal(t, []string{"create", "fetch"}, store.ops())
}

func TestApply_FailureIsLoggedOnly(t *testing.T) {
	tests := []struct {
		name   string
		effect state.Effect
	}{
		{name: "create", effect: state.Effect{Op: state.OpCreate, Contact: models.Contact{ID: "1", Name: "A"}, Refresh: true}},
		{name: "update", effect: state.Effect{Op: state.OpUpdate, Contact: models.Contact{ID: "1", Name: "A"}, Refresh: true}},
		{name: "toggle", effect: state.Effect{Op: state.OpUpdate, Contact: models.Contact{ID: "1", Name: "A", IsFav: true}}},
		{name: "delete", effect: state.Effect{Op: state.OpDelete, Contact: models.Contact{ID: "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := newObserved()
			store := &fakeStore{failAll: errors.New("503")}

			msg := New(store, log).Apply(tt.effect)()

			assert.Nil(t, msg)
			assert.NotContains(t, store.ops(), "fetch")
			warnings := logs.FilterMessage("remote write failed").All()
			require.Len(t, warnings, 1)
			assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
			assert.Equal(t, tt.effect.Op.String(), warnings[0].ContextMap()["op"])
		})
	}
}

func TestApply_NoRefreshForToggle(t *testing.T) {
	store := &fakeStore{}

	msg := New(store, nil).Apply(state.Effect{Op: state.OpUpdate, Contact: models.Contact{ID: "1", Name: "A"}})()

	assert.Nil(t, msg)
	assert.Equal(t, []string{"update"}, store.ops())
}

func TestApply_RefreshFailureIsLoggedOnly(t *testing.T) {
	log, logs := newObserved()
	store := &fakeStore{fetchErr: errors.New("gone")}

	msg := New(store, log).Apply(state.Effect{Op: state.OpUpdate, Contact: models.Contact{ID: "1"}, Refresh: true})()

	assert.Nil(t, msg)
	assert.Equal(t, 1, logs.FilterMessage("refresh after write failed").Len())
}

func TestToggleTwice_IssuesTwoUpdates(t *testing.T) {
	store := &fakeStore{}
	s := New(store, nil)
	st := state.New().Loaded([]models.Contact{{ID: "1", Name: "Alice"}})

	st, effects := st.ToggleFavorite("1")
	for _, effect := range effects {
		s.Apply(effect)()
	}
	st, effects = st.ToggleFavorite("1")
	for _, effect := range effects {
		s.Apply(effect)()
	}

	alice, _ := st.Contacts.FindByID("1")
	assert.False(t, alice.IsFav)
	assert.Equal(t, []string{"update", "update"}, store.ops())
}

func TestImport_ContinuesPastFailures(t *testing.T) {
	log, logs := newObserved()
	store := &fakeStore{failNames: map[string]bool{"Bad": true}}

	effects := []state.Effect{
		{Op: state.OpCreate, Contact: models.Contact{ID: "1", Name: "Good"}},
		{Op: state.OpCreate, Contact: models.Contact{ID: "2", Name: "Bad"}},
		{Op: state.OpCreate, Contact: models.Contact{ID: "3", Name: "Also Good"}},
	}

	msg := New(store, log).Import(effects)()

	finished, ok := msg.(ImportFinishedMsg)
	require.True(t, ok)
	assert.Equal(t, 3, finished.Processed)
	assert.Equal(t, 1, finished.Failed)

	require.Len(t, store.calls, 3)
	for i, c := range store.calls {
		assert.Equal(t, "create", c.op)
		assert.Equal(t, effects[i].Contact.Name, c.name)
	}
	assert.Equal(t, 1, logs.FilterMessage("remote write failed").Len())
}

func TestDispatch_Empty(t *testing.T) {
	assert.Nil(t, New(&fakeStore{}, nil).Dispatch())
}
