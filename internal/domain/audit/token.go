package audit

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a pagination token cannot be decoded.
var ErrInvalidToken = errors.New("invalid audit pagination token")

type tokenPayload struct {
	ID  uuid.UUID `json:"id"`
	Rev int64     `json:"rev"`
}

// EncodeToken renders a cursor as an opaque URL-safe token.
func EncodeToken(c Cursor) string {
	raw, _ := json.Marshal(tokenPayload{ID: c.LastAssignmentID, Rev: c.LastRevisionNumber})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeToken parses an opaque token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidToken
	}
	var p tokenPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Cursor{}, ErrInvalidToken
	}
	if p.ID == uuid.Nil {
		return Cursor{}, ErrInvalidToken
	}
	return Cursor{LastAssignmentID: p.ID, LastRevisionNumber: p.Rev}, nil
}
