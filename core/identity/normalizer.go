// Package identity turns the heterogeneous identifiers sent by the origin
// into one canonical string form.
package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	coreerrors "newsdesk-api/core/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ephemeralPrefix marks positional ids given to non-navigable display rows
const ephemeralPrefix = "preview-"

// Candidates holds every identifier a record arrived with
type Candidates struct {
	// DatabaseID is the durable object id, preferred when present
	DatabaseID string

	// FallbackID is any other identifier, typically numeric
	FallbackID string
}

// Normalize picks the canonical identifier. The database id wins over any
// fallback; a record with neither yields ErrMissingIdentifier.
func Normalize(c Candidates) (string, error) {
	if id := canonical(c.DatabaseID); id != "" {
		return id, nil
	}
	if id := canonical(c.FallbackID); id != "" {
		return id, nil
	}
	return "", coreerrors.ErrMissingIdentifier
}

// canonical trims the id and lowercases valid object ids so the same
// record always maps to the same string
func canonical(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if oid, err := primitive.ObjectIDFromHex(strings.ToLower(id)); err == nil {
		return oid.Hex()
	}
	return id
}

// IsDetailFetchable reports whether id has the 24-hex object id shape
// required for detail lookups. Other ids are fine for lists only.
func IsDetailFetchable(id string) bool {
	if IsEphemeral(id) {
		return false
	}
	return primitive.IsValidObjectID(id)
}

// Ephemeral builds a positional id for a display-only row. It is never
// purely numeric and never detail fetchable.
func Ephemeral(scope string, index int) string {
	return fmt.Sprintf("%s%s-%d", ephemeralPrefix, scope, index)
}

// IsEphemeral reports whether id was produced by Ephemeral
func IsEphemeral(id string) bool {
	return strings.HasPrefix(id, ephemeralPrefix)
}

// FromJSON stringifies a raw JSON identifier. Strings, numbers and
// extended-JSON object ids ({"$oid": "..."}) are accepted; anything else
// yields an empty string.
func FromJSON(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '{':
		var oid primitive.ObjectID
		if err := oid.UnmarshalJSON(raw); err != nil {
			return ""
		}
		if oid.IsZero() {
			return ""
		}
		return oid.Hex()
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return ""
		}
		return n.String()
	}
}
