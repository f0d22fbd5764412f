package dashboard

import (
	"testing"
	"time"

	"github.com/unionmaster/crm-console/internal/domain"
)

func leadAt(status domain.LeadStatus, createdAt time.Time) domain.Lead {
	return domain.Lead{Status: status, CreatedAt: createdAt}
}

func TestSummarizeCountsAndWinRate(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		leadAt(domain.LeadStatusConverted, now),
		leadAt(domain.LeadStatusConverted, now),
		leadAt(domain.LeadStatusPending, now),
		leadAt(domain.LeadStatusLost, now),
		leadAt(domain.LeadStatusVerified, now),
		leadAt(domain.LeadStatusFollowUp, now),
	}

	summary := Summarize(leads)
	if summary.TotalLeads != 6 {
		t.Fatalf("expected 6 total, got %d", summary.TotalLeads)
	}
	if summary.Converted != 2 || summary.Pending != 1 || summary.Lost != 1 {
		t.Fatalf("unexpected stage counts: %+v", summary)
	}
	// 2/6 rounds to 33.
	if summary.WinRatePercent != 33 {
		t.Fatalf("expected win rate 33, got %d", summary.WinRatePercent)
	}
}

func TestSummarizeEmptyPipeline(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalLeads != 0 || summary.WinRatePercent != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestSummarizeRoundsHalfUp(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		leadAt(domain.LeadStatusConverted, now),
		leadAt(domain.LeadStatusPending, now),
		leadAt(domain.LeadStatusPending, now),
		leadAt(domain.LeadStatusPending, now),
		leadAt(domain.LeadStatusPending, now),
		leadAt(domain.LeadStatusPending, now),
		leadAt(domain.LeadStatusPending, now),
		leadAt(domain.LeadStatusPending, now),
	}

	// 1/8 = 12.5, rounds to 13.
	if got := Summarize(leads).WinRatePercent; got != 13 {
		t.Fatalf("expected win rate 13, got %d", got)
	}
}

func TestMonthlyNewBucketsChronologically(t *testing.T) {
	leads := []domain.Lead{
		leadAt(domain.LeadStatusPending, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)),
		leadAt(domain.LeadStatusPending, time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)),
		leadAt(domain.LeadStatusPending, time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)),
		leadAt(domain.LeadStatusPending, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)),
	}

	series := MonthlyNew(leads)
	if len(series) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(series))
	}
	wantLabels := []string{"Jan", "Feb", "Mar"}
	wantCounts := []int{1, 1, 2}
	for i := range series {
		if series[i].Label != wantLabels[i] || series[i].Count != wantCounts[i] {
			t.Fatalf("unexpected bucket %d: %+v", i, series[i])
		}
	}
}

func TestStatusBreakdownIncludesEmptyStages(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	breakdown := StatusBreakdown([]domain.Lead{
		leadAt(domain.LeadStatusPending, now),
		leadAt(domain.LeadStatusPending, now),
	})

	if len(breakdown) != len(domain.PipelineOrder) {
		t.Fatalf("expected every stage present, got %d entries", len(breakdown))
	}
	if breakdown[domain.LeadStatusPending] != 2 {
		t.Fatalf("expected 2 pending, got %d", breakdown[domain.LeadStatusPending])
	}
	if breakdown[domain.LeadStatusRejected] != 0 {
		t.Fatalf("expected rejected stage present with zero count")
	}
}

func TestPipelineFollowsCanonicalOrder(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	stages := Pipeline([]domain.Lead{
		leadAt(domain.LeadStatusLost, now),
		leadAt(domain.LeadStatusPending, now),
	})

	if len(stages) != len(domain.PipelineOrder) {
		t.Fatalf("expected %d stages, got %d", len(domain.PipelineOrder), len(stages))
	}
	for i, stage := range stages {
		if stage.Status != domain.PipelineOrder[i] {
			t.Fatalf("expected stage %s at position %d, got %s", domain.PipelineOrder[i], i, stage.Status)
		}
	}
}

func TestConversionTrendTracksTotalsAndConversions(t *testing.T) {
	points := ConversionTrend([]domain.Lead{
		leadAt(domain.LeadStatusConverted, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)),
		leadAt(domain.LeadStatusPending, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)),
		leadAt(domain.LeadStatusConverted, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
	})

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Total != 2 || points[0].Converted != 1 {
		t.Fatalf("unexpected january point: %+v", points[0])
	}
	if points[1].Total != 1 || points[1].Converted != 1 {
		t.Fatalf("unexpected february point: %+v", points[1])
	}
}
