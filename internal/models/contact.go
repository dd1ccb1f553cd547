package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type MethodType string

const (
	MethodPhone   MethodType = "Phone"
	MethodEmail   MethodType = "Email"
	MethodAddress MethodType = "Address"
	MethodWeChat  MethodType = "WeChat"
)

// MethodTypes lists the known method types in the order the form cycles them.
var MethodTypes = []MethodType{MethodPhone, MethodEmail, MethodAddress, MethodWeChat}

func (t MethodType) Known() bool {
	for _, known := range MethodTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Next returns the type after t in MethodTypes. Unknown types restart at Phone.
func (t MethodType) Next() MethodType {
	for i, known := range MethodTypes {
		if t == known {
			return MethodTypes[(i+1)%len(MethodTypes)]
		}
	}
	return MethodPhone
}

// Prev is the inverse of Next.
func (t MethodType) Prev() MethodType {
	for i, known := range MethodTypes {
		if t == known {
			return MethodTypes[(i-1+len(MethodTypes))%len(MethodTypes)]
		}
	}
	return MethodPhone
}

type ContactMethod struct {
	Type MethodType `json:"type"`
	Val  string     `json:"val"`
}

// ContactID is either assigned by the server or synthesized locally from
// the wall clock. Servers may send it as a JSON number or string.
type ContactID string

func (id *ContactID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid contact id: %w", err)
		}
		*id = ContactID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid contact id: %w", err)
	}
	*id = ContactID(n.String())
	return nil
}

func (id ContactID) String() string {
	return string(id)
}

type Contact struct {
	ID      ContactID       `json:"id,omitempty"`
	Name    string          `json:"name"`
	IsFav   bool            `json:"isFav"`
	Methods []ContactMethod `json:"methods"`
}

// Clone copies the contact including its methods, so edits to the copy
// never reach the original.
func (c Contact) Clone() Contact {
	clone := c
	if c.Methods != nil {
		clone.Methods = make([]ContactMethod, len(c.Methods))
		copy(clone.Methods, c.Methods)
	}
	return clone
}

// WithoutID returns a copy suitable for a create request body.
func (c Contact) WithoutID() Contact {
	clone := c.Clone()
	clone.ID = ""
	return clone
}

// IDFunc produces identifiers for records created locally.
type IDFunc func() ContactID

// NewContactID derives an id from the clock in milliseconds.
func NewContactID(now time.Time) ContactID {
	return ContactID(strconv.FormatInt(now.UnixMilli(), 10))
}

// NewClockIDs returns an IDFunc reading now in milliseconds. Ids never
// repeat: a reading at or before the last id issued becomes last+1.
func NewClockIDs(now func() time.Time) IDFunc {
	var (
		mu   sync.Mutex
		last int64
	)
	return func() ContactID {
		mu.Lock()
		defer mu.Unlock()

		ms := now().UnixMilli()
		if ms <= last {
			ms = last + 1
		}
		last = ms
		return ContactID(strconv.FormatInt(ms, 10))
	}
}

var clockIDs = NewClockIDs(time.Now)

// ClockIDs is the IDFunc used outside tests.
func ClockIDs() ContactID {
	return clockIDs()
}

// PlaceholderContacts is shown when the server cannot be reached on startup.
func PlaceholderContacts() []Contact {
	return []Contact{
		{
			ID:    "1",
			Name:  "Alice Zhang",
			IsFav: true,
			Methods: []ContactMethod{
				{Type: MethodPhone, Val: "+1 555 0100"},
				{Type: MethodEmail, Val: "alice@example.com"},
			},
		},
		{
			ID:    "2",
			Name:  "Bob Li",
			IsFav: false,
			Methods: []ContactMethod{
				{Type: MethodWeChat, Val: "bob_li"},
			},
		},
	}
}
