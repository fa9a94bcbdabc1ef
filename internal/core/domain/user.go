package domain

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

type SessionState int

const (
	SessionAnonymous SessionState = iota
	SessionStandard
	SessionAdmin
)

func (s SessionState) String() string {
	switch s {
	case SessionStandard:
		return "authenticated-standard"
	case SessionAdmin:
		return "authenticated-admin"
	default:
		return "anonymous"
	}
}

type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Avatar  string `json:"avatar"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate carries the fields to merge into a session; nil means keep.
type ProfileUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	City    *string
	State   *string
	ZipCode *string
	Country *string
}

func (u User) Merge(p ProfileUpdate) User {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Name, p.Name)
	set(&u.Email, p.Email)
	set(&u.Phone, p.Phone)
	set(&u.Address, p.Address)
	set(&u.City, p.City)
	set(&u.State, p.State)
	set(&u.ZipCode, p.ZipCode)
	set(&u.Country, p.Country)
	return u
}
