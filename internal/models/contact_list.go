package models

// ContactList is the in-memory collection. Its methods never modify the
// receiver's backing array; they return a new list.
type ContactList []Contact

func (cl ContactList) Clone() ContactList {
	if cl == nil {
		return nil
	}
	out := make(ContactList, len(cl))
	for i, contact := range cl {
		out[i] = contact.Clone()
	}
	return out
}

func (cl ContactList) Add(contacts ...Contact) ContactList {
	out := make(ContactList, 0, len(cl)+len(contacts))
	out = append(out, cl...)
	for _, contact := range contacts {
		out = append(out, contact.Clone())
	}
	return out
}

// Replace swaps the first record with contact.ID for contact. The boolean is
// false when no record matched, in which case the list is returned as-is.
func (cl ContactList) Replace(contact Contact) (ContactList, bool) {
	for i, existing := range cl {
		if existing.ID == contact.ID {
			out := make(ContactList, len(cl))
			copy(out, cl)
			out[i] = contact.Clone()
			return out, true
		}
	}
	return cl, false
}

func (cl ContactList) Remove(id ContactID) (ContactList, bool) {
	for i, contact := range cl {
		if contact.ID == id {
			out := make(ContactList, 0, len(cl)-1)
			out = append(out, cl[:i]...)
			out = append(out, cl[i+1:]...)
			return out, true
		}
	}
	return cl, false
}

func (cl ContactList) FindByID(id ContactID) (Contact, bool) {
	for _, contact := range cl {
		if contact.ID == id {
			return contact, true
		}
	}
	return Contact{}, false
}

func (cl ContactList) Favorites() []Contact {
	var favorites []Contact
	for _, contact := range cl {
		if contact.IsFav {
			favorites = append(favorites, contact)
		}
	}
	return favorites
}
