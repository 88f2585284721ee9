package monitoringjson

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bayneri/budgetlab/internal/monitoring"
	"github.com/bayneri/budgetlab/internal/planner"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

const outputFile = "monitoring.json"

func Write(plan planner.Plan, outDir string) (string, error) {
	if outDir == "" {
		outDir = filepath.Join("out", "monitoring-json")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	service := monitoring.BuildService(monitoring.ServiceRequest{
		Project:     plan.Project,
		ServiceID:   plan.ServiceID,
		DisplayName: plan.Name,
		Labels:      plan.Labels,
	})
	serviceJSON, err := protoToInterface(service)
	if err != nil {
		return "", err
	}

	sloRefs := map[string]string{}
	var slos []interface{}
	for _, obj := range plan.Objectives {
		msg, err := monitoring.BuildSLO(monitoring.SLORequest{
			Project:    plan.Project,
			ServiceID:  plan.ServiceID,
			WindowDays: plan.WindowDays,
			Objective:  obj,
			Labels:     obj.Labels,
		})
		if err != nil {
			return "", err
		}
		sloRefs[obj.Name] = msg.Name
		item, err := protoToInterface(msg)
		if err != nil {
			return "", err
		}
		slos = append(slos, item)
	}

	var alerts []interface{}
	for _, alert := range plan.Alerts {
		msg, err := monitoring.BuildAlertPolicy(monitoring.AlertRequest{
			Project: plan.Project,
			SLOName: alert.ObjectiveName,
			SLORef:  sloRefs[alert.ObjectiveName],
			Alert:   alert,
			Labels:  alert.Labels,
		})
		if err != nil {
			return "", err
		}
		item, err := protoToInterface(msg)
		if err != nil {
			return "", err
		}
		alerts = append(alerts, item)
	}

	dashboard := monitoring.BuildDashboard(monitoring.DashboardRequest{
		Project:    plan.Project,
		ServiceID:  plan.ServiceID,
		Name:       plan.Name,
		Objectives: plan.Objectives,
		Composite:  plan.Composite,
		Labels:     plan.Labels,
	})
	dashboardJSON, err := protoToInterface(dashboard)
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"service":       serviceJSON,
		"slos":          slos,
		"alertPolicies": alerts,
		"dashboard":     dashboardJSON,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')
	path := filepath.Join(outDir, outputFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func protoToInterface(msg proto.Message) (interface{}, error) {
	data, err := protojson.Marshal(msg)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
