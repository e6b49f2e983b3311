package dto

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/internal/entities"
	"machinery-registry/pkg/constants"
)

type CreateMachineryDTO struct {
	Code   string  `json:"code" validate:"required"`
	Name   string  `json:"name" validate:"required"`
	Type   string  `json:"type" validate:"required"`
	Brand  *string `json:"brand"`
	Model  *string `json:"model"`
	Year   *int    `json:"year" validate:"omitempty,gte=1900,lte=2200"`
	Status string  `json:"status" validate:"omitempty,machinery_status"`
	Notes  *string `json:"notes"`
}

func (d CreateMachineryDTO) ToEntity() entities.Machinery {
	status := d.Status
	if status == "" {
		status = constants.MachineryStatusAvailable
	}
	return entities.Machinery{
		Code:   d.Code,
		Name:   d.Name,
		Type:   d.Type,
		Brand:  null.StringFromPtr(optional(d.Brand)),
		Model:  null.StringFromPtr(optional(d.Model)),
		Year:   null.IntFromPtr(d.Year),
		Status: status,
		Notes:  null.StringFromPtr(optional(d.Notes)),
	}
}

type UpdateMachineryDTO struct {
	Code   *string `json:"code" validate:"omitempty,min=1"`
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Type   *string `json:"type" validate:"omitempty,min=1"`
	Brand  *string `json:"brand"`
	Model  *string `json:"model"`
	Year   *int    `json:"year" validate:"omitempty,gte=1900,lte=2200"`
	Status *string `json:"status" validate:"omitempty,machinery_status"`
	Notes  *string `json:"notes"`
}

func (d UpdateMachineryDTO) Changes() Changes {
	c := Changes{}
	c.setString("code", d.Code)
	c.setString("name", d.Name)
	c.setString("type", d.Type)
	c.setOptional("brand", d.Brand)
	c.setOptional("model", d.Model)
	setValue(c, "year", d.Year)
	c.setString("status", d.Status)
	c.setOptional("notes", d.Notes)
	return c
}

// MachineryDetailDTO is a machine with its assignment history.
type MachineryDetailDTO struct {
	entities.Machinery
	Assignments []entities.MachineryAssignment `json:"assignments"`
}

type MachineryFilter struct {
	Status string
}
