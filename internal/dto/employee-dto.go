package dto

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/internal/entities"
)

type CreateEmployeeDTO struct {
	Code      string  `json:"code" validate:"required"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Position  *string `json:"position"`
	Phone     *string `json:"phone"`
	TeamID    *uint64 `json:"team_id" validate:"omitempty,gt=0"`
}

func (d CreateEmployeeDTO) ToEntity() entities.Employee {
	return entities.Employee{
		Code:      d.Code,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Position:  null.StringFromPtr(optional(d.Position)),
		Phone:     null.StringFromPtr(optional(d.Phone)),
		TeamID:    null.Uint64FromPtr(d.TeamID),
	}
}

type UpdateEmployeeDTO struct {
	Code      *string `json:"code" validate:"omitempty,min=1"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Position  *string `json:"position"`
	Phone     *string `json:"phone"`
	// 0 detaches the employee from its team.
	TeamID *uint64 `json:"team_id"`
}

func (d UpdateEmployeeDTO) Changes() Changes {
	c := Changes{}
	c.setString("code", d.Code)
	c.setString("first_name", d.FirstName)
	c.setString("last_name", d.LastName)
	c.setOptional("position", d.Position)
	c.setOptional("phone", d.Phone)
	if d.TeamID != nil {
		if *d.TeamID == 0 {
			c["team_id"] = nil
		} else {
			c["team_id"] = *d.TeamID
		}
	}
	return c
}

type EmployeeFilter struct {
	TeamID *uint64
}
