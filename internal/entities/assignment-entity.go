package entities

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/pkg/types"
)

type MachineryAssignment struct {
	ID           uint64      `json:"id" db:"id"`
	MachineryID  uint64      `json:"machinery_id" db:"machinery_id"`
	ProjectID    uint64      `json:"project_id" db:"project_id"`
	AssignedDate string      `json:"assigned_date" db:"assigned_date"`
	ReturnDate   null.String `json:"return_date" db:"return_date"`
	Status       string      `json:"status" db:"status"`
	Notes        null.String `json:"notes" db:"notes"`

	types.BaseEntity

	// joined, not columns
	MachineryCode null.String `json:"machinery_code,omitempty" db:"-"`
	MachineryName null.String `json:"machinery_name,omitempty" db:"-"`
	ProjectName   null.String `json:"project_name,omitempty" db:"-"`
}
