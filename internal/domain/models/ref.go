package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a reference to another entity. The API sends references either as a
// bare identifier string or as a populated object; both decode into Ref.
type Ref struct {
	ID    string
	Name  string
	Email string
	Phone string

	populated bool
}

// NewRef builds an unpopulated reference to id.
func NewRef(id string) *Ref {
	return &Ref{ID: id}
}

// Populated reports whether the reference arrived as an embedded object.
func (r *Ref) Populated() bool {
	return r != nil && r.populated
}

// Label returns the human name of a populated reference, or the raw value otherwise.
func (r *Ref) Label() string {
	if r == nil {
		return ""
	}
	if r.populated {
		return r.Name
	}
	return r.ID
}

// Key returns the identifier, whichever form the reference arrived in.
func (r *Ref) Key() string {
	if r == nil {
		return ""
	}
	return r.ID
}

type refObject struct {
	ID       string `json:"_id,omitempty"`
	AltID    string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// UnmarshalJSON accepts a string identifier, a populated object, or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}

	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	case '{':
		var obj refObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		id := obj.ID
		if id == "" {
			id = obj.AltID
		}
		name := obj.Name
		if name == "" {
			name = obj.Username
		}
		*r = Ref{ID: id, Name: name, Email: obj.Email, Phone: obj.Phone, populated: true}
		return nil
	default:
		return fmt.Errorf("reference must be a string or object, got %s", string(data))
	}
}

// Bare returns an unpopulated copy of r, or nil.
func (r *Ref) Bare() *Ref {
	if r == nil {
		return nil
	}
	return NewRef(r.ID)
}

// MarshalJSON writes a populated reference back as an object so names survive
// a round trip, and an unpopulated one as its identifier. Request bodies are
// built from ForWrite copies, which only hold bare references.
func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.populated {
		return json.Marshal(r.ID)
	}
	return json.Marshal(refObject{ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone})
}
