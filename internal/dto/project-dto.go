package dto

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/internal/entities"
	"machinery-registry/pkg/constants"
)

type CreateProjectDTO struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	StartDate   *string  `json:"start_date" validate:"omitempty,date_ymd"`
	EndDate     *string  `json:"end_date" validate:"omitempty,date_ymd"`
	Status      string   `json:"status" validate:"omitempty,project_status"`
}

func (d CreateProjectDTO) ToEntity() entities.Project {
	status := d.Status
	if status == "" {
		status = constants.ProjectStatusPlanning
	}
	return entities.Project{
		Name:        d.Name,
		Description: null.StringFromPtr(optional(d.Description)),
		Location:    null.StringFromPtr(optional(d.Location)),
		Latitude:    null.Float64FromPtr(d.Latitude),
		Longitude:   null.Float64FromPtr(d.Longitude),
		StartDate:   null.StringFromPtr(optional(d.StartDate)),
		EndDate:     null.StringFromPtr(optional(d.EndDate)),
		Status:      status,
	}
}

type UpdateProjectDTO struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	StartDate   *string  `json:"start_date" validate:"omitempty,date_ymd"`
	EndDate     *string  `json:"end_date" validate:"omitempty,date_ymd"`
	Status      *string  `json:"status" validate:"omitempty,project_status"`
}

func (d UpdateProjectDTO) Changes() Changes {
	c := Changes{}
	c.setString("name", d.Name)
	c.setOptional("description", d.Description)
	c.setOptional("location", d.Location)
	setValue(c, "latitude", d.Latitude)
	setValue(c, "longitude", d.Longitude)
	c.setOptional("start_date", d.StartDate)
	c.setOptional("end_date", d.EndDate)
	c.setString("status", d.Status)
	return c
}

// ProjectDetailDTO is a project with the machinery assigned to it.
type ProjectDetailDTO struct {
	entities.Project
	Assignments []entities.MachineryAssignment `json:"assignments"`
}
