package entities

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/pkg/types"
)

type Employee struct {
	ID        uint64      `json:"id" db:"id"`
	Code      string      `json:"code" db:"code"`
	FirstName string      `json:"first_name" db:"first_name"`
	LastName  string      `json:"last_name" db:"last_name"`
	Position  null.String `json:"position" db:"position"`
	Phone     null.String `json:"phone" db:"phone"`
	TeamID    null.Uint64 `json:"team_id" db:"team_id"`

	types.BaseEntity
}
