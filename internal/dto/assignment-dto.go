package dto

import (
	"github.com/aarondl/null/v8"

	"machinery-registry/internal/entities"
	"machinery-registry/pkg/constants"
)

type CreateAssignmentDTO struct {
	ProjectID    uint64  `json:"project_id" validate:"required"`
	AssignedDate string  `json:"assigned_date" validate:"required,date_ymd"`
	ReturnDate   *string `json:"return_date" validate:"omitempty,date_ymd"`
	Notes        *string `json:"notes"`
}

// ToEntity builds the new row. A created assignment is always ASSIGNED.
func (d CreateAssignmentDTO) ToEntity(machineryID uint64) entities.MachineryAssignment {
	return entities.MachineryAssignment{
		MachineryID:  machineryID,
		ProjectID:    d.ProjectID,
		AssignedDate: d.AssignedDate,
		ReturnDate:   null.StringFromPtr(optional(d.ReturnDate)),
		Status:       constants.AssignmentStatusAssigned,
		Notes:        null.StringFromPtr(optional(d.Notes)),
	}
}

// UpdateAssignmentDTO is the body of PUT /machinery/:id/assign.
// machinery_id is deliberately absent: an assignment never moves between machines.
type UpdateAssignmentDTO struct {
	AssignmentID uint64  `json:"assignment_id" validate:"required"`
	ProjectID    *uint64 `json:"project_id" validate:"omitempty,gt=0"`
	AssignedDate *string `json:"assigned_date" validate:"omitempty,date_ymd"`
	ReturnDate   *string `json:"return_date" validate:"omitempty,date_ymd"`
	Status       *string `json:"status" validate:"omitempty,assignment_status"`
	Notes        *string `json:"notes"`
}

func (d UpdateAssignmentDTO) Changes() Changes {
	c := Changes{}
	setValue(c, "project_id", d.ProjectID)
	c.setString("assigned_date", d.AssignedDate)
	c.setOptional("return_date", d.ReturnDate)
	c.setString("status", d.Status)
	c.setOptional("notes", d.Notes)
	return c
}

// ReleasesMachine reports whether the update ends the assignment.
func (d UpdateAssignmentDTO) ReleasesMachine() bool {
	if d.Status == nil {
		return false
	}
	return *d.Status == constants.AssignmentStatusReturned || *d.Status == constants.AssignmentStatusCancelled
}

// AssignmentCreatedDTO is the body answered to POST /machinery/:id/assign.
type AssignmentCreatedDTO struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AssignmentID uint64 `json:"assignmentId"`
}
