package monitoring

import (
	"fmt"

	"github.com/bayneri/budgetlab/internal/planner"
)

const (
	UptimeMetric       = "monitoring.googleapis.com/uptime_check/check_passed"
	UptimeResourceType = "uptime_url"
)

type ServiceRequest struct {
	Project     string
	ServiceID   string
	DisplayName string
	Labels      map[string]string
}

type SLORequest struct {
	Project    string
	ServiceID  string
	WindowDays int
	Objective  planner.ObjectivePlan
	Labels     map[string]string
}

type AlertRequest struct {
	Project string
	SLOName string
	SLORef  string
	Alert   planner.AlertPlan
	Labels  map[string]string
}

type DashboardRequest struct {
	Project    string
	ServiceID  string
	Name       string
	Objectives []planner.ObjectivePlan
	Composite  planner.CompositePlan
	Labels     map[string]string
}

// SLORef is the full resource name Cloud Monitoring assigns to an SLO.
func SLORef(project, serviceID, resourceID string) string {
	return fmt.Sprintf("projects/%s/services/%s/serviceLevelObjectives/%s", project, serviceID, resourceID)
}
