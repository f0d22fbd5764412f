// Package dashboard derives the chart series rendered by the dashboard
// view from lead snapshots. Everything here is a pure function over store
// snapshots; nothing mutates state.
package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/unionmaster/crm-console/internal/domain"
)

// Summary is the KPI card row.
type Summary struct {
	TotalLeads     int
	Converted      int
	Pending        int
	Lost           int
	WinRatePercent int
}

// Summarize computes the KPI cards. The win rate is converted over total,
// rounded to whole percent; an empty pipeline has a zero win rate.
func Summarize(leads []domain.Lead) Summary {
	summary := Summary{TotalLeads: len(leads)}
	for _, lead := range leads {
		switch lead.Status {
		case domain.LeadStatusConverted:
			summary.Converted++
		case domain.LeadStatusPending:
			summary.Pending++
		case domain.LeadStatusLost:
			summary.Lost++
		}
	}
	if summary.TotalLeads > 0 {
		summary.WinRatePercent = int(math.Round(float64(summary.Converted) / float64(summary.TotalLeads) * 100))
	}
	return summary
}

// MonthCount is one point of the monthly inflow series.
type MonthCount struct {
	Month time.Time // first day of the bucket month, UTC
	Label string    // short month name
	Count int
}

// MonthlyNew buckets leads by calendar month of creation, oldest first.
func MonthlyNew(leads []domain.Lead) []MonthCount {
	buckets := map[time.Time]int{}
	for _, lead := range leads {
		buckets[monthOf(lead.CreatedAt)]++
	}
	return sortedMonths(buckets, func(month time.Time, count int) MonthCount {
		return MonthCount{Month: month, Label: month.Format("Jan"), Count: count}
	})
}

// StatusBreakdown counts leads per pipeline stage, including stages with
// no leads.
func StatusBreakdown(leads []domain.Lead) map[domain.LeadStatus]int {
	breakdown := make(map[domain.LeadStatus]int, len(domain.PipelineOrder))
	for _, status := range domain.PipelineOrder {
		breakdown[status] = 0
	}
	for _, lead := range leads {
		breakdown[lead.Status]++
	}
	return breakdown
}

// StageCount is one bar of the pipeline chart.
type StageCount struct {
	Status domain.LeadStatus
	Count  int
}

// Pipeline returns the stage counts in canonical pipeline order.
func Pipeline(leads []domain.Lead) []StageCount {
	breakdown := StatusBreakdown(leads)
	stages := make([]StageCount, 0, len(domain.PipelineOrder))
	for _, status := range domain.PipelineOrder {
		stages = append(stages, StageCount{Status: status, Count: breakdown[status]})
	}
	return stages
}

// TrendPoint is one point of the conversion velocity series.
type TrendPoint struct {
	Month     time.Time
	Label     string
	Total     int
	Converted int
}

// ConversionTrend buckets total and converted leads per calendar month,
// oldest first.
func ConversionTrend(leads []domain.Lead) []TrendPoint {
	type bucket struct{ total, converted int }
	buckets := map[time.Time]*bucket{}
	for _, lead := range leads {
		month := monthOf(lead.CreatedAt)
		b := buckets[month]
		if b == nil {
			b = &bucket{}
			buckets[month] = b
		}
		b.total++
		if lead.Status == domain.LeadStatusConverted {
			b.converted++
		}
	}

	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	points := make([]TrendPoint, 0, len(months))
	for _, month := range months {
		points = append(points, TrendPoint{
			Month:     month,
			Label:     month.Format("Jan"),
			Total:     buckets[month].total,
			Converted: buckets[month].converted,
		})
	}
	return points
}

func monthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sortedMonths(buckets map[time.Time]int, build func(time.Time, int) MonthCount) []MonthCount {
	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make([]MonthCount, 0, len(months))
	for _, month := range months {
		series = append(series, build(month, buckets[month]))
	}
	return series
}
