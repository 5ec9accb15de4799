// Package session models the record a browser keeps after login. There is no
// server-side session state: the value travels as {tipo, dados} JSON.
package session

import (
	"encoding/json"
	"net/url"

	"fornex/internal/domain"
)

type Kind string

const (
	KindAnonymous Kind = ""
	KindClient    Kind = "cliente"
	KindCompany   Kind = "empresa"
)

// DefaultAvatar is shown when the signed-in record has no image.
const DefaultAvatar = "/img/IconeConta.png"

// Header carries the cached session on requests without a body. Browsers
// send it URL-encoded (encodeURIComponent) since header values are Latin-1.
const Header = "X-Fornex-Sessao"

// Session is either anonymous, a client (User set) or a company (Company set).
type Session struct {
	Kind    Kind
	Company *domain.Company
	User    *domain.User
}

func Anonymous() Session { return Session{} }

func ForClient(u domain.User) Session {
	pub := u.Public()
	return Session{Kind: KindClient, User: &pub}
}

func ForCompany(c domain.Company) Session {
	pub := c.Public()
	return Session{Kind: KindCompany, Company: &pub}
}

func (s Session) IsAnonymous() bool {
	switch s.Kind {
	case KindClient:
		return s.User == nil
	case KindCompany:
		return s.Company == nil
	default:
		return true
	}
}

// CanEditCompany reports whether s is the company session owning id.
func (s Session) CanEditCompany(id string) bool {
	return s.Kind == KindCompany && s.Company != nil && id != "" && s.Company.ID == id
}

func (s Session) CanRequestQuote() bool {
	return s.Kind == KindClient && s.User != nil
}

func (s Session) AvatarPath() string {
	switch {
	case s.Kind == KindCompany && s.Company != nil && s.Company.ImagePath != nil && *s.Company.ImagePath != "":
		return *s.Company.ImagePath
	case s.Kind == KindClient && s.User != nil && s.User.ProfileImagePath != nil && *s.User.ProfileImagePath != "":
		return *s.User.ProfileImagePath
	default:
		return DefaultAvatar
	}
}

type wire struct {
	Kind Kind            `json:"tipo"`
	Data json.RawMessage `json:"dados"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	var data any
	switch {
	case s.Kind == KindClient && s.User != nil:
		data = s.User.Public()
	case s.Kind == KindCompany && s.Company != nil:
		data = s.Company.Public()
	default:
		return []byte("null"), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire{Kind: s.Kind, Data: raw})
}

// UnmarshalJSON never fails: malformed or unknown payloads decode to an
// anonymous session, the same way a browser discards a bad cached value.
func (s *Session) UnmarshalJSON(b []byte) error {
	*s = Parse(b)
	return nil
}

// FromHeader decodes the Header value, URL-encoded or raw JSON. A missing
// or malformed value is an anonymous session.
func FromHeader(v string) Session {
	if decoded, err := url.PathUnescape(v); err == nil {
		v = decoded
	}
	if v == "" {
		return Anonymous()
	}
	return Parse([]byte(v))
}

func Parse(b []byte) Session {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil || len(w.Data) == 0 {
		return Anonymous()
	}

	switch w.Kind {
	case KindClient:
		var u domain.User
		if err := json.Unmarshal(w.Data, &u); err != nil || u.Email == "" {
			return Anonymous()
		}
		return ForClient(u)
	case KindCompany:
		var c domain.Company
		if err := json.Unmarshal(w.Data, &c); err != nil || c.ID == "" {
			return Anonymous()
		}
		return ForCompany(c)
	default:
		return Anonymous()
	}
}
