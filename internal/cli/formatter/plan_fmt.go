package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/planvox/planvox/internal/domain"
)

// FormatPlan renders the current plan honoring its grouping mode, followed
// by the metrics rollup. The table never mutates the plan; it is a view of
// the same line-item collection at either aggregation level.
func FormatPlan(m *domain.MediaPlan) string {
	if m == nil {
		return Dim("No plan yet.")
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s — %s", m.Campaign.Client, domain.FormatMoney(m.Campaign.Budget))))
	b.WriteString("\n")

	if m.GroupingMode == domain.GroupingChannelSummary {
		b.WriteString(channelSummaryTable(m))
	} else {
		b.WriteString(detailedTable(m))
	}

	b.WriteString("\n")
	b.WriteString(metricsLine(m))
	return b.String()
}

func detailedTable(m *domain.MediaPlan) string {
	headers := []string{"#", "Channel", "Placement", "Method", "Rate", "Qty", "Cost", "Status"}
	rows := make([][]string, 0, len(m.Campaign.Placements))
	for i := range m.Campaign.Placements {
		p := &m.Campaign.Placements[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			string(p.Channel),
			p.Label(),
			string(p.CostMethod),
			domain.FormatMoney(p.Rate),
			formatQty(p.Quantity),
			domain.FormatMoney(p.TotalCost),
			StatusIndicator(p.Status),
		})
	}
	return RenderTable(headers, rows)
}

func channelSummaryTable(m *domain.MediaPlan) string {
	type agg struct {
		count int
		spend float64
	}
	byChannel := make(map[domain.Channel]*agg)
	var order []domain.Channel
	for i := range m.Campaign.Placements {
		p := &m.Campaign.Placements[i]
		a, ok := byChannel[p.Channel]
		if !ok {
			a = &agg{}
			byChannel[p.Channel] = a
			order = append(order, p.Channel)
		}
		a.count++
		a.spend += p.TotalCost
	}
	sort.Slice(order, func(i, j int) bool {
		return byChannel[order[i]].spend > byChannel[order[j]].spend
	})

	headers := []string{"Channel", "Placements", "Spend", "Share"}
	rows := make([][]string, 0, len(order))
	for _, ch := range order {
		a := byChannel[ch]
		share := 0.0
		if m.TotalSpend > 0 {
			share = a.spend / m.TotalSpend * 100
		}
		rows = append(rows, []string{
			string(ch),
			fmt.Sprintf("%d", a.count),
			domain.FormatMoney(a.spend),
			fmt.Sprintf("%.0f%%", share),
		})
	}
	return RenderTable(headers, rows)
}

func metricsLine(m *domain.MediaPlan) string {
	return Dim(fmt.Sprintf("Spend %s of %s (%s remaining)  ·  %s impressions  ·  reach %s  ·  freq %.1f  ·  CPM %s",
		domain.FormatMoney(m.TotalSpend),
		domain.FormatMoney(m.Campaign.Budget),
		domain.FormatMoney(m.RemainingBudget),
		formatQty(m.Metrics.Impressions),
		formatQty(m.Metrics.Reach),
		m.Metrics.Frequency,
		domain.FormatMoney(m.Metrics.CPM)))
}

// formatQty renders large counts compactly ("1.2M", "850K", "42").
func formatQty(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 10_000:
		return fmt.Sprintf("%.0fK", v/1_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
