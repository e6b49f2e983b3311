package types

// DashboardStats is the payload of GET /api/dashboard.
type DashboardStats struct {
	Projects          map[string]int64 `json:"projects"`
	Machinery         map[string]int64 `json:"machinery"`
	TotalProjects     int64            `json:"total_projects"`
	TotalMachinery    int64            `json:"total_machinery"`
	TotalTeams        int64            `json:"total_teams"`
	TotalEmployees    int64            `json:"total_employees"`
	ActiveAssignments int64            `json:"active_assignments"`
}
