package forum

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Credential is a directory record. Hash never leaves the directory.
type Credential struct {
	Identity
	Hash []byte `json:"-"`
}

func (c *Credential) SetPassword(password string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	c.Hash = hash
	return nil
}

func (c *Credential) PasswordMatches(input string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(c.Hash, []byte(input))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// Directory is the process-lifetime credential list. Registered accounts are
// not persisted and vanish on restart.
type Directory struct {
	mu          sync.RWMutex
	credentials []*Credential
	cost        int
}

// NewDirectory hashes the seed accounts with the given bcrypt cost
// (bcrypt.DefaultCost when cost is 0).
func NewDirectory(cost int) (*Directory, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	d := &Directory{cost: cost}
	for _, a := range SeedAccounts {
		c := &Credential{Identity: a.Identity}
		if err := c.SetPassword(a.Password, cost); err != nil {
			return nil, err
		}
		d.credentials = append(d.credentials, c)
	}
	return d, nil
}

func (d *Directory) findByEmail(email string) *Credential {
	for _, c := range d.credentials {
		if c.Email == email {
			return c
		}
	}
	return nil
}

// Authenticate matches email exactly, then the password. Unknown email and
// wrong password are indistinguishable to the caller.
func (d *Directory) Authenticate(email, password string) (Identity, bool, error) {
	d.mu.RLock()
	c := d.findByEmail(email)
	d.mu.RUnlock()
	if c == nil {
		return Identity{}, false, nil
	}
	ok, err := c.PasswordMatches(password)
	if err != nil || !ok {
		return Identity{}, false, err
	}
	return c.Identity, true, nil
}

// Register adds an account with id max+1. It reports false when the email is taken.
func (d *Directory) Register(name, email, password string, role Role) (Identity, bool, error) {
	// hash outside the lock, bcrypt is slow on purpose
	c := &Credential{Identity: Identity{Name: name, Email: email, Role: role}}
	if err := c.SetPassword(password, d.cost); err != nil {
		return Identity{}, false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.findByEmail(email) != nil {
		return Identity{}, false, nil
	}
	var maxID int64
	for _, existing := range d.credentials {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	c.ID = maxID + 1
	d.credentials = append(d.credentials, c)
	return c.Identity, true, nil
}

// Known reports whether id still names an account with the same email.
func (d *Directory) Known(id Identity) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c := d.findByEmail(id.Email)
	return c != nil && c.ID == id.ID
}
