package state

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/abook/internal/models"
)

func sequentialIDs(start int) models.IDFunc {
	next := start
	return func() models.ContactID {
		id := models.ContactID(strconv.Itoa(next))
		next++
		return id
	}
}

func seeded() State {
	return New().Loaded([]models.Contact{
		{ID: "1", Name: "Alice", IsFav: true, Methods: []models.ContactMethod{{Type: models.MethodPhone, Val: "1"}}},
		{ID: "2", Name: "Bob", Methods: []models.ContactMethod{{Type: models.MethodEmail, Val: "b@x.com"}}},
	})
}

func TestToggleFavorite_Twice(t *testing.T) {
	s := seeded()

	s, first := s.ToggleFavorite("2")
	require.Len(t, first, 1)
	assert.Equal(t, OpUpdate, first[0].Op)
	assert.True(t, first[0].Contact.IsFav)
	assert.False(t, first[0].Refresh)
	assert.Equal(t, []models.ContactMethod{{Type: models.MethodEmail, Val: "b@x.com"}}, first[0].Contact.Methods)

	s, second := s.ToggleFavorite("2")
	require.Len(t, second, 1)
	assert.False(t, second[0].Contact.IsFav)

	bob, ok := s.Contacts.FindByID("2")
	require.True(t, ok)
	assert.False(t, bob.IsFav)
}

func TestToggleFavorite_UnknownID(t *testing.T) {
	s := seeded()
	next, effects := s.ToggleFavorite("nope")
	assert.Empty(t, effects)
	assert.Equal(t, s.Contacts, next.Contacts)
}

func TestSave_EmptyName(t *testing.T) {
	s := seeded().OpenNew()

	next, effects, err := s.Save(sequentialIDs(100))

	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Empty(t, effects)
	assert.Equal(t, ViewForm, next.View)
	assert.Len(t, next.Contacts, 2)
	assert.NotNil(t, next.Draft)
}

func TestSave_WhitespaceNameAccepted(t *testing.T) {
	s := seeded().OpenNew().EditDraft(func(d *Draft) { d.SetName(" ") })

	_, effects, err := s.Save(sequentialIDs(100))

	require.NoError(t, err)
	assert.Len(t, effects, 1)
}

func TestSave_Create(t *testing.T) {
	s := seeded().OpenNew().EditDraft(func(d *Draft) {
		d.SetName("Carl")
		d.SetMethodVal(0, "555")
	})

	next, effects, err := s.Save(sequentialIDs(100))
	require.NoError(t, err)

	assert.Equal(t, ViewList, next.View)
	assert.Nil(t, next.Draft)
	require.Len(t, next.Contacts, 3)
	assert.Equal(t, models.Contact{
		ID:      "100",
		Name:    "Carl",
		Methods: []models.ContactMethod{{Type: models.MethodPhone, Val: "555"}},
	}, next.Contacts[2])

	require.Len(t, effects, 1)
	assert.Equal(t, OpCreate, effects[0].Op)
	assert.True(t, effects[0].Refresh)
	assert.Equal(t, models.ContactID("100"), effects[0].Contact.ID)

	// the previous state is untouched
	assert.Len(t, s.Contacts, 2)
	assert.Equal(t, ViewForm, s.View)
}

func TestSave_Update(t *testing.T) {
	s, ok := seeded().OpenEdit("1")
	require.True(t, ok)
	s = s.EditDraft(func(d *Draft) {
		d.SetName("Alicia")
		d.AddMethod()
		d.SetMethodType(1, models.MethodWeChat)
		d.SetMethodVal(1, "alicia_w")
	})

	next, effects, err := s.Save(sequentialIDs(100))
	require.NoError(t, err)

	require.Len(t, next.Contacts, 2)
	assert.Equal(t, "Alicia", next.Contacts[0].Name)
	assert.Len(t, next.Contacts[0].Methods, 2)

	require.Len(t, effects, 1)
	assert.Equal(t, OpUpdate, effects[0].Op)
	assert.True(t, effects[0].Refresh)
	assert.Equal(t, models.ContactID("1"), effects[0].Contact.ID)
}

func TestOpenEdit_DraftDoesNotAliasCollection(t *testing.T) {
	s, ok := seeded().OpenEdit("1")
	require.True(t, ok)

	s = s.EditDraft(func(d *Draft) { d.SetMethodVal(0, "changed") })

	alice, _ := s.Contacts.FindByID("1")
	assert.Equal(t, "1", alice.Methods[0].Val)
}

func TestOpenEdit_Unknown(t *testing.T) {
	s, ok := seeded().OpenEdit("missing")
	assert.False(t, ok)
	assert.Equal(t, ViewList, s.View)
	assert.Nil(t, s.Draft)
}

func TestOpenNew_InheritsCollectionMode(t *testing.T) {
	s := seeded().OpenNew()
	require.NotNil(t, s.Draft)
	assert.False(t, s.Draft.IsFav)
	assert.Equal(t, []models.ContactMethod{{Type: models.MethodPhone}}, s.Draft.Methods)
	assert.Equal(t, "", s.Draft.Name)

	s = seeded().ToggleCollection().OpenNew()
	assert.True(t, s.Draft.IsFav)
}

func TestCancel(t *testing.T) {
	before := seeded()
	s := before.OpenNew().EditDraft(func(d *Draft) { d.SetName("Nobody") }).Cancel()

	assert.Equal(t, ViewList, s.View)
	assert.Nil(t, s.Draft)
	assert.Equal(t, before.Contacts, s.Contacts)
}

func TestDelete(t *testing.T) {
	s := seeded()

	unchanged, effects := s.Delete("1", false)
	assert.Empty(t, effects)
	assert.Equal(t, s.Contacts, unchanged.Contacts)

	next, effects := s.Delete("1", true)
	require.Len(t, effects, 1)
	assert.Equal(t, OpDelete, effects[0].Op)
	assert.Equal(t, models.ContactID("1"), effects[0].Contact.ID)
	assert.Len(t, next.Contacts, 1)

	_, effects = next.Delete("1", true)
	assert.Empty(t, effects)
}

func TestImport(t *testing.T) {
	s := seeded()
	rows := []models.Contact{
		{Name: "Carl", IsFav: true, Methods: []models.ContactMethod{{Type: models.MethodPhone, Val: "555"}}},
		{Name: "Dana"},
	}

	next, effects := s.Import(rows, sequentialIDs(500))

	require.Len(t, next.Contacts, 4)
	assert.Equal(t, models.ContactID("500"), next.Contacts[2].ID)
	assert.Equal(t, models.ContactID("501"), next.Contacts[3].ID)

	require.Len(t, effects, 2)
	for i, effect := range effects {
		assert.Equal(t, OpCreate, effect.Op)
		assert.False(t, effect.Refresh)
		assert.Equal(t, rows[i].Name, effect.Contact.Name)
	}
}

func TestImport_ClockIDsTargetTheRightRow(t *testing.T) {
	rows := []models.Contact{{Name: "Carl"}, {Name: "Dana"}, {Name: "Erin"}}

	s, _ := New().Loaded(nil).Import(rows, models.ClockIDs)
	require.Len(t, s.Contacts, 3)

	ids := map[models.ContactID]bool{}
	for _, contact := range s.Contacts {
		ids[contact.ID] = true
	}
	require.Len(t, ids, 3, "imported ids must be distinct")

	erin := s.Contacts[2].ID
	s, effects := s.ToggleFavorite(erin)
	require.Len(t, effects, 1)
	assert.Equal(t, "Erin", effects[0].Contact.Name)
	assert.False(t, s.Contacts[0].IsFav)
	assert.False(t, s.Contacts[1].IsFav)
	assert.True(t, s.Contacts[2].IsFav)

	s, effects = s.Delete(erin, true)
	require.Len(t, effects, 1)
	require.Len(t, s.Contacts, 2)
	assert.Equal(t, "Carl", s.Contacts[0].Name)
	assert.Equal(t, "Dana", s.Contacts[1].Name)
}

func TestLoadFailed(t *testing.T) {
	s := New().LoadFailed()
	assert.True(t, s.Offline)
	assert.Equal(t, models.ContactList(models.PlaceholderContacts()), s.Contacts)

	s = s.Loaded(nil)
	assert.False(t, s.Offline)
	assert.Empty(t, s.Contacts)
}

func TestDisplayed(t *testing.T) {
	s := seeded()
	assert.Len(t, s.Displayed(), 2)

	s = s.ToggleCollection()
	displayed := s.Displayed()
	require.Len(t, displayed, 1)
	assert.Equal(t, "Alice", displayed[0].Name)

	s = s.ToggleCollection().SetSearch("bo")
	displayed = s.Displayed()
	require.Len(t, displayed, 1)
	assert.Equal(t, "Bob", displayed[0].Name)
}
