package models

import "strings"

// Display derives what the list view shows: contacts whose name contains
// search (case-insensitive), restricted to favorites when collectionOnly is
// set, with favorites moved ahead of the rest. Relative order inside each
// group is preserved and the input is left untouched.
func Display(contacts []Contact, search string, collectionOnly bool) []Contact {
	query := strings.ToLower(search)

	favorites := make([]Contact, 0, len(contacts))
	others := make([]Contact, 0, len(contacts))

	for _, contact := range contacts {
		if collectionOnly && !contact.IsFav {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(contact.Name), query) {
			continue
		}

		if contact.IsFav {
			favorites = append(favorites, contact)
		} else {
			others = append(others, contact)
		}
	}

	return append(favorites, others...)
}
