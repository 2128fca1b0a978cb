package api

import (
	"encoding/json"
	"time"
)

// reservedFieldKeys are record attributes owned by the store. Caller-supplied
// fields may not shadow them.
var reservedFieldKeys = []string{"id", "created_at", "modified_at"}

// User is a stored user record. Id and the timestamps are assigned by the
// store; Fields is an open mapping of caller-supplied attributes with no
// server-enforced schema beyond what validation checks before a write.
type User struct {
	Id         uint64
	Fields     map[string]interface{}
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// MarshalJSON flattens Fields beside the store-owned attributes, so a record
// created from {"name":"a","email":"x"} serializes as a single object.
// Store-owned keys always win over same-named fields.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(u.Fields)+3)
	for k, v := range u.Fields {
		out[k] = v
	}
	out["id"] = u.Id
	out["created_at"] = u.CreatedAt.UTC().Format(time.RFC3339Nano)
	out["modified_at"] = u.ModifiedAt.UTC().Format(time.RFC3339Nano)
	return json.Marshal(out)
}

// StripReservedFields removes store-owned keys from a caller-supplied field
// map before it reaches the store.
func StripReservedFields(fields map[string]interface{}) {
	for _, k := range reservedFieldKeys {
		delete(fields, k)
	}
}
