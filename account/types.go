package account

import (
	"fmt"
	"slices"
)

// UserIDType identifies the kind of user id an account is keyed by.
type UserIDType string

const (
	UserIDTypeCPR      UserIDType = "CPR"
	UserIDTypeLocal    UserIDType = "LOCAL"
	UserIDTypeUniqueID UserIDType = "UNIQUE_ID"
)

// Valid reports whether t is a known user id type.
func (t UserIDType) Valid() bool {
	switch t {
	case UserIDTypeCPR, UserIDTypeLocal, UserIDTypeUniqueID:
		return true
	default:
		return false
	}
}

// GlobalUIDType identifies the kind of a global user id.
type GlobalUIDType string

const (
	GlobalUIDTypeCPR      GlobalUIDType = "CPR"
	GlobalUIDTypeUniqueID GlobalUIDType = "UNIQUE_ID"
)

// Credentials identifies the account being looked up or created.
type Credentials struct {
	UserIDType  UserIDType `json:"userIdType"`
	UserIDValue string     `json:"userIdValue"`
}

// AuthCredentials is the caller's own authentication.
// The password is never rendered by String or GoString.
type AuthCredentials struct {
	UserIDAut   string `json:"userIdAut"`
	GroupIDAut  string `json:"groupIdAut"`
	PasswordAut string `json:"passwordAut"`
}

func (a AuthCredentials) String() string {
	return fmt.Sprintf("{UserIDAut:%s GroupIDAut:%s PasswordAut:[REDACTED]}", a.UserIDAut, a.GroupIDAut)
}

func (a AuthCredentials) GoString() string {
	return fmt.Sprintf("account.AuthCredentials{UserIDAut:%q, GroupIDAut:%q, PasswordAut:\"[REDACTED]\"}", a.UserIDAut, a.GroupIDAut)
}

// GlobalUID optionally links a new account to a global identity.
type GlobalUID struct {
	Type  GlobalUIDType `json:"uidType"`
	Value string        `json:"uidValue"`
}

// Account is a single provider account in a lookup result.
type Account struct {
	ProviderID     string     `json:"provider"`
	UserIDType     UserIDType `json:"userIdType"`
	UserIDValue    string     `json:"userIdValue"`
	MunicipalityNo string     `json:"municipalityNo,omitempty"`
}

// LookupResponse is the result of fetching an account.
type LookupResponse struct {
	Status         ResponseStatus `json:"responseStatus"`
	GUID           string         `json:"guid,omitempty"`
	MunicipalityNo string         `json:"municipalityNo,omitempty"`
	Accounts       []Account      `json:"accounts,omitempty"`
}

// Clone returns a copy of r that shares no memory with it.
func (r *LookupResponse) Clone() *LookupResponse {
	if r == nil {
		return nil
	}
	out := *r
	out.Accounts = slices.Clone(r.Accounts)
	return &out
}

// CreateResponse is the result of creating an account.
type CreateResponse struct {
	Status ResponseStatus `json:"responseStatus"`
}
