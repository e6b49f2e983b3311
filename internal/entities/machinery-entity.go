package entities

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/pkg/types"
)

type Machinery struct {
	ID     uint64      `json:"id" db:"id"`
	Code   string      `json:"code" db:"code"`
	Name   string      `json:"name" db:"name"`
	Type   string      `json:"type" db:"type"`
	Brand  null.String `json:"brand" db:"brand"`
	Model  null.String `json:"model" db:"model"`
	Year   null.Int    `json:"year" db:"year"`
	Status string      `json:"status" db:"status"`
	Notes  null.String `json:"notes" db:"notes"`

	types.BaseEntity
}
