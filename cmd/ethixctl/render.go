package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/report"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")).Width(22)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	laneColors = map[routing.Lane]lipgloss.Color{
		routing.LaneEthicalExpress: lipgloss.Color("#ef4444"),
		routing.LaneFastBusiness:   lipgloss.Color("#f59e0b"),
		routing.LaneStandard:       lipgloss.Color("#10b981"),
	}
)

func laneBadge(l routing.Lane) string {
	return lipgloss.NewStyle().Bold(true).Foreground(laneColors[l]).Render(string(l))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func renderDecision(hub catalog.Hub, d routing.Decision) string {
	lines := []string{
		titleStyle.Render("Shipment decision"),
		row("Origin", hub.Name),
		row("Distance", fmt.Sprintf("%.1f km", d.DistanceKm)),
		row("Delay risk", fmt.Sprintf("%.3f", d.DelayRisk)),
		row("Branch", string(d.Branch)),
		row("Priority score", fmt.Sprintf("%.3f", d.PriorityScore)),
		row("Lane", laneBadge(d.Lane)),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderDashboard(d report.Dashboard, cf report.Counterfactual) string {
	lines := []string{titleStyle.Render("Control center")}
	for _, lc := range d.Lanes {
		lines = append(lines, row(string(lc.Lane), laneBadge(lc.Lane)+fmt.Sprintf(" %d", lc.Count)))
	}
	lines = append(lines,
		row("Global priority", fmt.Sprintf("%.1f%%", d.AveragePriority*100)),
		row("Slack utilised", fmt.Sprintf("%d shipments", d.SlackUsed)),
		row("Profit impact", fmt.Sprintf("%.0f", d.TotalProfitImpact)),
		row("AI fallback rate", fmt.Sprintf("%.1f%%", d.FallbackRate)),
		row("Total shipments", fmt.Sprintf("%d", d.TotalShipments)),
		"",
		titleStyle.Render("Counterfactual"),
		row("Critical delay", cf.WithEthics.AvgCriticalDelay+" vs "+cf.PureProfit.AvgCriticalDelay),
		row("Harm exposure", cf.WithEthics.HarmExposure+" vs "+cf.PureProfit.HarmExposure),
		row("SLA breach risk", cf.WithEthics.SLABreachRisk+" vs "+cf.PureProfit.SLABreachRisk),
	)
	return boxStyle.Render(strings.Join(lines, "\n"))
}
