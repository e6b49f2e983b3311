package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"machinery-registry/internal/entities"
	"machinery-registry/internal/repositories"
	"machinery-registry/pkg/constants"
)

const (
	SheetMachinery   = "Machinery"
	SheetAssignments = "Assignments"
)

type ReportServiceInterface interface {
	MachineryWorkbook(ctx context.Context) (*excelize.File, error)
}

type reportService struct {
	machineryRepo  repositories.MachineryRepositoryInterface
	assignmentRepo repositories.AssignmentRepositoryInterface
	logger         *zap.Logger
}

func NewReportService(
	machineryRepo repositories.MachineryRepositoryInterface,
	assignmentRepo repositories.AssignmentRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		machineryRepo:  machineryRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

var machineryHeaders = []interface{}{
	"ID", "Code", "Name", "Type", "Brand", "Model", "Year", "Status", "Current project", "Notes",
}

var assignmentHeaders = []interface{}{
	"ID", "Machinery code", "Machinery name", "Project", "Assigned date", "Return date", "Status", "Notes",
}

// MachineryWorkbook builds the export with one sheet of machines and one of
// assignments. The caller closes the file.
func (s *reportService) MachineryWorkbook(ctx context.Context) (*excelize.File, error) {
	machines, err := s.machineryRepo.GetAll(ctx, "")
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// assignments come newest first, so the first ASSIGNED row per machine wins
	currentProject := make(map[uint64]string, len(machines))
	for _, a := range assignments {
		if a.Status != constants.AssignmentStatusAssigned {
			continue
		}
		if _, seen := currentProject[a.MachineryID]; !seen {
			currentProject[a.MachineryID] = a.ProjectName.String
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetMachinery); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SheetAssignments); err != nil {
		f.Close()
		return nil, err
	}

	header, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	if err := writeRows(f, SheetMachinery, machineryHeaders, len(machines), func(i int) []interface{} {
		return machineryRow(machines[i], currentProject[machines[i].ID])
	}); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRows(f, SheetAssignments, assignmentHeaders, len(assignments), func(i int) []interface{} {
		return assignmentRow(assignments[i])
	}); err != nil {
		f.Close()
		return nil, err
	}

	_ = f.SetCellStyle(SheetMachinery, "A1", "J1", header)
	_ = f.SetCellStyle(SheetAssignments, "A1", "H1", header)
	_ = f.SetColWidth(SheetMachinery, "B", "D", 20)
	_ = f.SetColWidth(SheetMachinery, "I", "J", 30)
	_ = f.SetColWidth(SheetAssignments, "B", "D", 25)
	_ = f.SetColWidth(SheetAssignments, "H", "H", 40)

	s.logger.Debug("machinery workbook built",
		zap.Int("machinery", len(machines)),
		zap.Int("assignments", len(assignments)),
	)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, headers []interface{}, n int, row func(int) []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func machineryRow(m entities.Machinery, project string) []interface{} {
	var year interface{}
	if m.Year.Valid {
		year = m.Year.Int
	}
	return []interface{}{
		m.ID, m.Code, m.Name, m.Type, m.Brand.String, m.Model.String, year, m.Status, project, m.Notes.String,
	}
}

func assignmentRow(a entities.MachineryAssignment) []interface{} {
	return []interface{}{
		a.ID, a.MachineryCode.String, a.MachineryName.String, a.ProjectName.String,
		a.AssignedDate, a.ReturnDate.String, a.Status, a.Notes.String,
	}
}
