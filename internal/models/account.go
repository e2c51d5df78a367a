package models

import "time"

// Role is the only authorization axis of an Account.
type Role string

const (
	RoleWarga   Role = "warga"
	RoleAdmin   Role = "admin"
	RoleKetuaRT Role = "ketua_rt"
)

// Roles lists every assignable role.
var Roles = []Role{RoleWarga, RoleAdmin, RoleKetuaRT}

func (r Role) Valid() bool {
	switch r {
	case RoleWarga, RoleAdmin, RoleKetuaRT:
		return true
	}
	return false
}

// Account is a resident or administrator of the RT.
// Password holds a bcrypt hash or the plain credential, depending on the
// configured hashing mode, and is never returned outside the auth layer.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns a copy of the account without its credential.
func (a Account) Public() Account {
	a.Password = ""
	return a
}
