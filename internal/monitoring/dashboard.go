package monitoring

import (
	"fmt"
	"time"

	"cloud.google.com/go/monitoring/dashboard/apiv1/dashboardpb"
	"github.com/bayneri/budgetlab/internal/planner"
	monitoredres "google.golang.org/genproto/googleapis/api/monitoredres"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/durationpb"
)

const maxStatusCards = 9

func BuildDashboard(req DashboardRequest) *dashboardpb.Dashboard {
	tiles := []*dashboardpb.MosaicLayout_Tile{}
	columns := int32(12)
	y := int32(0)

	tiles = append(tiles, tile(0, y, columns, 2, dashboardIntro(req.Name, req.Composite)))
	y += 2

	cards := limitObjectives(req.Objectives, maxStatusCards)
	if len(cards) > 0 {
		tiles = append(tiles, tile(0, y, columns, 1, sectionHeader("Objectives")))
		y++
		colsPerRow := 3
		if len(cards) < colsPerRow {
			colsPerRow = len(cards)
		}
		width := columns / int32(colsPerRow)
		for i, obj := range cards {
			x := int32(i%colsPerRow) * width
			row := int32(i / colsPerRow)
			tiles = append(tiles, tile(x, y+row*3, width, 3, objectiveStatusCard(req.Project, req.ServiceID, obj)))
		}
		y += int32((len(cards)+colsPerRow-1)/colsPerRow) * 3

		tiles = append(tiles, tile(0, y, columns, 4, budgetTable(req.Project, req.ServiceID, req.Objectives)))
		y += 4
	}

	tiles = append(tiles, tile(0, y, columns, 3, incidentList(UptimeResourceType)))

	return &dashboardpb.Dashboard{
		DisplayName: fmt.Sprintf("%s error budgets", req.Name),
		Labels:      req.Labels,
		Layout: &dashboardpb.Dashboard_MosaicLayout{
			MosaicLayout: &dashboardpb.MosaicLayout{
				Columns: columns,
				Tiles:   tiles,
			},
		},
	}
}

// BuildDashboardJSON renders the dashboard the way the Terraform provider
// expects dashboard_json.
func BuildDashboardJSON(req DashboardRequest) (string, error) {
	data, err := protojson.Marshal(BuildDashboard(req))
	if err != nil {
		return "", fmt.Errorf("marshal dashboard: %w", err)
	}
	return string(data), nil
}

func tile(x, y, width, height int32, widget *dashboardpb.Widget) *dashboardpb.MosaicLayout_Tile {
	return &dashboardpb.MosaicLayout_Tile{
		XPos:   x,
		YPos:   y,
		Width:  width,
		Height: height,
		Widget: widget,
	}
}

func dashboardIntro(name string, composite planner.CompositePlan) *dashboardpb.Widget {
	content := fmt.Sprintf("# %s error budgets\nComposite availability if every dependency is required: %.4f%%, about %.1f minutes of downtime per window.",
		name, composite.Fraction*100, composite.AllowedMinutes)
	return textWidget(content)
}

func sectionHeader(title string) *dashboardpb.Widget {
	return textWidget(fmt.Sprintf("## %s", title))
}

func textWidget(content string) *dashboardpb.Widget {
	return &dashboardpb.Widget{
		Content: &dashboardpb.Widget_Text{
			Text: &dashboardpb.Text{
				Content: content,
				Format:  dashboardpb.Text_MARKDOWN,
			},
		},
	}
}

func objectiveStatusCard(project, serviceID string, obj planner.ObjectivePlan) *dashboardpb.Widget {
	threshold := &dashboardpb.Threshold{
		Label:     "below objective",
		Value:     obj.Objective.Fraction,
		Color:     dashboardpb.Threshold_RED,
		Direction: dashboardpb.Threshold_BELOW,
	}
	return &dashboardpb.Widget{
		Title: fmt.Sprintf("%s (%s)", obj.Name, obj.Objective),
		Content: &dashboardpb.Widget_Scorecard{
			Scorecard: &dashboardpb.Scorecard{
				TimeSeriesQuery: sloQuery("select_slo_compliance", SLORef(project, serviceID, obj.ResourceID), 300*time.Second),
				Thresholds:      []*dashboardpb.Threshold{threshold},
			},
		},
	}
}

func budgetTable(project, serviceID string, objectives []planner.ObjectivePlan) *dashboardpb.Widget {
	var dataSets []*dashboardpb.TimeSeriesTable_TableDataSet
	for _, obj := range objectives {
		dataSets = append(dataSets, &dashboardpb.TimeSeriesTable_TableDataSet{
			TimeSeriesQuery: sloQuery("select_slo_budget_fraction", SLORef(project, serviceID, obj.ResourceID), time.Hour),
			TableTemplate:   obj.Name,
		})
	}
	return &dashboardpb.Widget{
		Title: "Remaining error budget",
		Content: &dashboardpb.Widget_TimeSeriesTable{
			TimeSeriesTable: &dashboardpb.TimeSeriesTable{
				DataSets: dataSets,
			},
		},
	}
}

func sloQuery(selector, sloRef string, alignment time.Duration) *dashboardpb.TimeSeriesQuery {
	return &dashboardpb.TimeSeriesQuery{
		Source: &dashboardpb.TimeSeriesQuery_TimeSeriesFilter{
			TimeSeriesFilter: &dashboardpb.TimeSeriesFilter{
				Filter: fmt.Sprintf("%s(%q)", selector, sloRef),
				Aggregation: &dashboardpb.Aggregation{
					AlignmentPeriod:  durationpb.New(alignment),
					PerSeriesAligner: dashboardpb.Aggregation_ALIGN_MEAN,
				},
			},
		},
		OutputFullDuration: true,
	}
}

func incidentList(resourceType string) *dashboardpb.Widget {
	resource := &monitoredres.MonitoredResource{Type: resourceType}
	return &dashboardpb.Widget{
		Title: "Recent incidents",
		Content: &dashboardpb.Widget_IncidentList{
			IncidentList: &dashboardpb.IncidentList{
				MonitoredResources: []*monitoredres.MonitoredResource{resource},
			},
		},
	}
}

func limitObjectives(objectives []planner.ObjectivePlan, max int) []planner.ObjectivePlan {
	if max <= 0 || len(objectives) <= max {
		return objectives
	}
	return objectives[:max]
}
