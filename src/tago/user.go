package tago

import "time"

// User is a run user as the platform's account API owns it.
type User struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name" validate:"required"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password,omitempty" validate:"required"`
	Timezone  string     `json:"timezone,omitempty"`
	Active    bool       `json:"active"`
	Company   string     `json:"company,omitempty"`
	Language  string     `json:"language,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Tags      []Tag      `json:"tags,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Tag is a key/value label attached to platform resources.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UserUpdate is a partial edit. Nil fields are left untouched remotely.
// Name and Email carry the widget value as it was sent.
type UserUpdate struct {
	Name     interface{} `json:"name,omitempty"`
	Email    interface{} `json:"email,omitempty"`
	Password *string     `json:"password,omitempty"`
}

// UserQuery narrows a user listing.
type UserQuery struct {
	Filter map[string]string
	Fields []string
	Page   int
	Amount int
}

// UserQueryByField is a query for users whose field equals value.
func UserQueryByField(field, value string) UserQuery {
	return UserQuery{
		Filter: map[string]string{field: value},
		Fields: []string{"id", "name", "email", "timezone", "active", "created_at"},
		Page:   1,
		Amount: 20,
	}
}

// AccountInfo is the subset of the account profile the handlers use.
type AccountInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Timezone string `json:"timezone"`
	Language string `json:"language"`
}

// DeviceToken is an access token issued for a device.
type DeviceToken struct {
	Name       string     `json:"name"`
	Token      string     `json:"token"`
	Permission string     `json:"permission"`
	ExpireTime *time.Time `json:"expire_time,omitempty"`
}
