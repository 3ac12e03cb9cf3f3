package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/google/uuid"
)

// Assignment is one member's duty entry embedded in a roster document.
// Member and role names are snapshots taken at assignment time; renames do not
// retroactively update rosters.
type Assignment struct {
	UserID   uuid.UUID              `json:"userId"`
	UserName string                 `json:"userName"`
	RoleID   uuid.UUID              `json:"roleId"`
	RoleName string                 `json:"roleName"`
	Status   enums.AssignmentStatus `json:"status"`
}

// AssignmentList is the jsonb-backed assignments column of a roster. Writes
// always replace the whole list; mutation helpers return modified copies so
// callers can run read-modify-write cycles inside a transaction.
type AssignmentList []Assignment

func (l *AssignmentList) Scan(src any) error {
	if src == nil {
		*l = AssignmentList{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return l.parseJSON(v)
	case string:
		return l.parseJSON([]byte(v))
	default:
		return fmt.Errorf("AssignmentList: unsupported Scan type %T", src)
	}
}

func (l AssignmentList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	payload, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("AssignmentList: marshal: %w", err)
	}
	return string(payload), nil
}

// Find returns the assignment for the given member, if present.
func (l AssignmentList) Find(userID uuid.UUID) (Assignment, bool) {
	for _, a := range l {
		if a.UserID == userID {
			return a, true
		}
	}
	return Assignment{}, false
}

// HasUser reports whether the member already holds an assignment in the list.
func (l AssignmentList) HasUser(userID uuid.UUID) bool {
	_, ok := l.Find(userID)
	return ok
}

// WithStatus returns a copy with the member's status replaced. The copy equals
// the receiver when the member is absent.
func (l AssignmentList) WithStatus(userID uuid.UUID, status enums.AssignmentStatus) AssignmentList {
	out := make(AssignmentList, len(l))
	copy(out, l)
	for i := range out {
		if out[i].UserID == userID {
			out[i].Status = status
		}
	}
	return out
}

// Without returns a copy with the member's assignment removed.
func (l AssignmentList) Without(userID uuid.UUID) AssignmentList {
	out := make(AssignmentList, 0, len(l))
	for _, a := range l {
		if a.UserID == userID {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Append returns a copy with the assignment added at the end, preserving
// insertion order as display order.
func (l AssignmentList) Append(a Assignment) AssignmentList {
	out := make(AssignmentList, 0, len(l)+1)
	out = append(out, l...)
	out = append(out, a)
	return out
}

func (l *AssignmentList) parseJSON(data []byte) error {
	if len(data) == 0 {
		*l = AssignmentList{}
		return nil
	}
	var out []Assignment
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("AssignmentList: unmarshal: %w", err)
	}
	*l = AssignmentList(out)
	return nil
}
