package models

import (
	"strconv"
	"strings"
)

// UserRef is the caller id carried in request bodies. Browser clients send it
// as a string read from local storage, so both `1` and `"1"` decode. Anything
// that is not a positive integer decodes to zero, which means no identity.
type UserRef uint

func (r *UserRef) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		*r = 0
		return nil
	}
	*r = UserRef(id)
	return nil
}

func (r UserRef) Uint() uint {
	return uint(r)
}
