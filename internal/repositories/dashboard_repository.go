package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"machinery-registry/pkg/constants"
	"machinery-registry/pkg/database"
	"machinery-registry/pkg/types"
)

type DashboardRepositoryInterface interface {
	GetStats(ctx context.Context) (*types.DashboardStats, error)
}

type dashboardRepository struct {
	base
	logger *zap.Logger
}

func NewDashboardRepository(db *database.DB, logger *zap.Logger) DashboardRepositoryInterface {
	return &dashboardRepository{base: base{db: db}, logger: logger}
}

func (r *dashboardRepository) GetStats(ctx context.Context) (*types.DashboardStats, error) {
	stats := &types.DashboardStats{
		Projects:  zeroCounts(constants.ProjectStatuses),
		Machinery: zeroCounts(constants.MachineryStatuses),
	}

	var err error
	if stats.TotalProjects, err = r.countByStatus(ctx, projectTable, stats.Projects); err != nil {
		return nil, err
	}
	if stats.TotalMachinery, err = r.countByStatus(ctx, machineryTable, stats.Machinery); err != nil {
		return nil, err
	}
	if stats.TotalTeams, err = r.count(ctx, teamTable, nil); err != nil {
		return nil, err
	}
	if stats.TotalEmployees, err = r.count(ctx, employeeTable, nil); err != nil {
		return nil, err
	}
	if stats.ActiveAssignments, err = r.count(ctx, assignmentTable, sq.Eq{"status": constants.AssignmentStatusAssigned}); err != nil {
		return nil, err
	}
	return stats, nil
}

func zeroCounts(statuses []string) map[string]int64 {
	m := make(map[string]int64, len(statuses))
	for _, s := range statuses {
		m[s] = 0
	}
	return m
}

// countByStatus fills into per status and returns the table total.
func (r *dashboardRepository) countByStatus(ctx context.Context, table string, into map[string]int64) (int64, error) {
	query, args, err := r.builder().Select("status", "COUNT(*)").From(table).GroupBy("status").ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build %s stats query: %w", table, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("could not count %s: %w", table, err)
	}
	defer rows.Close()

	var total int64
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return 0, fmt.Errorf("could not scan %s stats: %w", table, err)
		}
		into[status] = n
		total += n
	}
	return total, rows.Err()
}

func (r *dashboardRepository) count(ctx context.Context, table string, where sq.Sqlizer) (int64, error) {
	builder := r.builder().Select("COUNT(*)").From(table)
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build %s count query: %w", table, err)
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("could not count %s: %w", table, err)
	}
	return n, nil
}
