package entities

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/pkg/types"
)

type Project struct {
	ID          uint64       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description null.String  `json:"description" db:"description"`
	Location    null.String  `json:"location" db:"location"`
	Latitude    null.Float64 `json:"latitude" db:"latitude"`
	Longitude   null.Float64 `json:"longitude" db:"longitude"`
	StartDate   null.String  `json:"start_date" db:"start_date"`
	EndDate     null.String  `json:"end_date" db:"end_date"`
	Status      string       `json:"status" db:"status"`

	types.BaseEntity
}

// ProjectLocation is one marker of the project map.
type ProjectLocation struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Location  null.String `json:"location"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Status    string      `json:"status"`
}
