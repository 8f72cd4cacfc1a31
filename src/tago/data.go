package tago

import (
	"fmt"
	"strconv"
	"time"
)

const metadataUserIDKey = "user_id"

// Data is a single value record as the platform stores and sends it.
type Data struct {
	ID       string                 `json:"id,omitempty"`
	Variable string                 `json:"variable"`
	Value    interface{}            `json:"value"`
	Unit     string                 `json:"unit,omitempty"`
	Origin   string                 `json:"origin,omitempty"`
	Serie    string                 `json:"serie,omitempty"`
	Time     *time.Time             `json:"time,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// StringValue returns the value the way the platform renders it.
func (d *Data) StringValue() string {
	switch v := d.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Scope is the list of records a widget sends when it triggers an analysis.
type Scope []*Data

// Index returns the scope keyed by variable. The first record for a variable wins.
func (s Scope) Index() map[string]*Data {
	index := make(map[string]*Data, len(s))
	for _, d := range s {
		if d == nil {
			continue
		}
		if _, ok := index[d.Variable]; !ok {
			index[d.Variable] = d
		}
	}
	return index
}

// Lookup finds the record for variable.
func (s Scope) Lookup(variable string) (*Data, bool) {
	d, ok := s.Index()[variable]
	return d, ok
}

// Origin is the device that raised the event.
func (s Scope) Origin() string {
	if len(s) == 0 || s[0] == nil {
		return ""
	}
	return s[0].Origin
}

// UserID reads the user id stamped on the first record.
func (s Scope) UserID() (string, error) {
	if len(s) == 0 || s[0] == nil {
		return "", &WidgetFailure{Reason: "The event has no records", Code: "EMPTY_SCOPE"}
	}
	raw, ok := s[0].Metadata[metadataUserIDKey]
	if !ok || raw == nil {
		return "", &WidgetFailure{Reason: "The event is missing metadata.user_id", Code: "MISSING_USER_ID"}
	}
	id := fmt.Sprint(raw)
	if id == "" {
		return "", &WidgetFailure{Reason: "The event is missing metadata.user_id", Code: "MISSING_USER_ID"}
	}
	return id, nil
}

// StampUserID returns copies of every record with metadata replaced by the user id.
func (s Scope) StampUserID(userID string) Scope {
	stamped := make(Scope, 0, len(s))
	for _, d := range s {
		if d == nil {
			continue
		}
		c := *d
		c.Metadata = map[string]interface{}{metadataUserIDKey: userID}
		stamped = append(stamped, &c)
	}
	return stamped
}
