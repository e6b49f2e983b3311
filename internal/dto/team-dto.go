package dto

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/internal/entities"
)

type CreateTeamDTO struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (d CreateTeamDTO) ToEntity() entities.Team {
	return entities.Team{
		Name:        d.Name,
		Description: null.StringFromPtr(optional(d.Description)),
	}
}

type UpdateTeamDTO struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

func (d UpdateTeamDTO) Changes() Changes {
	c := Changes{}
	c.setString("name", d.Name)
	c.setOptional("description", d.Description)
	return c
}

// TeamDetailDTO is a team with its members.
type TeamDetailDTO struct {
	entities.Team
	Employees []entities.Employee `json:"employees"`
}
