package reporting

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	repo "github.com/mamadbah2/commodity-costing/internal/repository/sheets"
)

const (
	dateLayout   = "2006-01-02"
	summaryRange = "Summary!A:E"
)

// CommoditySummary aggregates the wastage of one commodity over a period.
type CommoditySummary struct {
	Commodity       models.Commodity
	Entries         int
	ReferenceWeight float64
	WastageWeight   float64
}

// WastagePercent is the weight-weighted wastage percentage of the period.
func (c CommoditySummary) WastagePercent() float64 {
	if c.ReferenceWeight == 0 {
		return 0
	}
	return c.WastageWeight / c.ReferenceWeight * 100
}

// Service exposes lightweight wastage analytics over the mirrored history.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// CalculateWastageSummary aggregates mirrored mix and souff calculations
// between start and end, grouped by commodity.
func (s *Service) CalculateWastageSummary(ctx context.Context, start, end time.Time) ([]CommoditySummary, error) {
	rows, err := s.repo.ReadRange(ctx, repo.HistoryRange)
	if err != nil {
		return nil, fmt.Errorf("load history range: %w", err)
	}

	byCommodity := map[models.Commodity]*CommoditySummary{}

	for _, row := range rows {
		if len(row) < 7 {
			continue
		}

		dateValue, err := parseDate(row[0])
		if err != nil {
			s.logger.Debug("skip history row with invalid date", zap.Any("value", row[0]), zap.Error(err))
			continue
		}
		if dateValue.Before(start) || dateValue.After(end) {
			continue
		}

		commodity := models.Commodity(strings.TrimSpace(fmt.Sprint(row[3])))
		if !commodity.Valid() {
			continue
		}

		weight, err := parseFloat(row[5])
		if err != nil || weight <= 0 {
			s.logger.Debug("skip history row with invalid weight", zap.Any("value", row[5]))
			continue
		}

		pct, err := parseFloat(row[6])
		if err != nil {
			s.logger.Debug("skip history row with invalid wastage", zap.Any("value", row[6]), zap.Error(err))
			continue
		}

		summary, ok := byCommodity[commodity]
		if !ok {
			summary = &CommoditySummary{Commodity: commodity}
			byCommodity[commodity] = summary
		}
		summary.Entries++
		summary.ReferenceWeight += weight
		summary.WastageWeight += weight * pct / 100
	}

	out := make([]CommoditySummary, 0, len(byCommodity))
	for _, summary := range byCommodity {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Commodity < out[j].Commodity })
	return out, nil
}

// GenerateWeeklyReport summarises the seven days ending at now and returns
// a human readable report.
func (s *Service) GenerateWeeklyReport(ctx context.Context, now time.Time) (string, []CommoditySummary, error) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -6)

	summaries, err := s.CalculateWastageSummary(ctx, start, end)
	if err != nil {
		return "", nil, err
	}

	header := fmt.Sprintf("Wastage report (%s-%s)", start.Format(dateLayout), end.Format(dateLayout))
	if len(summaries) == 0 {
		return header + ": no calculations saved.", nil, nil
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(":")
	for _, summary := range summaries {
		fmt.Fprintf(&b, "\n%s: %d calculations, %.2f kg purchased, %.2f%% wastage.",
			summary.Commodity.DisplayName(), summary.Entries, summary.ReferenceWeight, summary.WastagePercent())
	}
	return b.String(), summaries, nil
}

// SaveSummaries appends one Summary row per commodity for the report date.
func (s *Service) SaveSummaries(ctx context.Context, reportDate time.Time, summaries []CommoditySummary) error {
	for _, summary := range summaries {
		values := []interface{}{
			reportDate.Format(dateLayout),
			string(summary.Commodity),
			summary.Entries,
			strconv.FormatFloat(summary.ReferenceWeight, 'f', 2, 64),
			strconv.FormatFloat(summary.WastagePercent(), 'f', 2, 64),
		}
		if err := s.repo.WriteRow(ctx, summaryRange, values); err != nil {
			return fmt.Errorf("write %s summary: %w", summary.Commodity, err)
		}
	}
	return nil
}

func parseDate(value interface{}) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseFloat(value interface{}) (float64, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
