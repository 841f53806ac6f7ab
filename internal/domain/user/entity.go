package user

import (
	"strconv"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
)

// Identity is how a caller names the user a reservation is made for. At least
// one of the two keys is present.
type Identity struct {
	email      *Email
	externalID *int64
}

func NewIdentity(email *string, externalID *int64) (Identity, error) {
	var id Identity

	if email != nil && *email != "" {
		e, err := NewEmail(*email)
		if err != nil {
			return Identity{}, errs.Newf(errs.KindInvalidIdentity, "%s: %q", err, *email).
				With("email", *email)
		}
		id.email = &e
	}

	if externalID != nil {
		if *externalID <= 0 {
			return Identity{}, errs.Newf(errs.KindInvalidIdentity, "%s: %d", ErrInvalidExternalID, *externalID).
				With("external_id", *externalID)
		}
		v := *externalID
		id.externalID = &v
	}

	if id.email == nil && id.externalID == nil {
		return Identity{}, errs.Newf(errs.KindInvalidIdentity, "Either email or external id is required")
	}
	return id, nil
}

func (i Identity) Email() *string {
	if i.email == nil {
		return nil
	}
	v := i.email.Value()
	return &v
}

func (i Identity) ExternalID() *int64 {
	return i.externalID
}

// LockKey identifies the user for serialization before the row id is known.
func (i Identity) LockKey() string {
	if i.email != nil {
		return "user:email:" + i.email.Value()
	}
	return "user:external:" + strconv.FormatInt(*i.externalID, 10)
}

// MatchStored rejects an identity whose external id disagrees with the one
// already stored for the same email. A missing side never conflicts.
func (i Identity) MatchStored(storedExternalID *int64) error {
	if i.email == nil || i.externalID == nil || storedExternalID == nil || *i.externalID == *storedExternalID {
		return nil
	}
	return errs.Newf(errs.KindInvalidIdentity,
		"Email %s belongs to external id %d, not %d", i.email.Value(), *storedExternalID, *i.externalID).
		With("email", i.email.Value()).
		With("external_id", *i.externalID)
}

type User struct {
	id         int64
	email      *string
	externalID *int64
}

func ReconstructUser(id int64, email *string, externalID *int64) *User {
	return &User{id: id, email: email, externalID: externalID}
}

func (u *User) ID() int64          { return u.id }
func (u *User) Email() *string     { return u.email }
func (u *User) ExternalID() *int64 { return u.externalID }
