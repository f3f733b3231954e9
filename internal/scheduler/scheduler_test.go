package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/commodity-costing/internal/config"
	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/service/reporting"
)

type fakeReporter struct {
	generatedAt time.Time
	saved       []reporting.CommoditySummary
	genErr      error
}

func (f *fakeReporter) GenerateWeeklyReport(_ context.Context, now time.Time) (string, []reporting.CommoditySummary, error) {
	f.generatedAt = now
	if f.genErr != nil {
		return "", nil, f.genErr
	}
	return "report", []reporting.CommoditySummary{{Commodity: models.CommodityJeera, Entries: 1}}, nil
}

func (f *fakeReporter) SaveSummaries(_ context.Context, _ time.Time, summaries []reporting.CommoditySummary) error {
	f.saved = summaries
	return nil
}

func TestRunWeeklyReportUsesConfiguredTimezone(t *testing.T) {
	reporter := &fakeReporter{}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "Asia/Kolkata"}, reporter, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 5, 8, 14, 30, 0, 0, time.UTC) }

	s.runWeeklyReport()

	require.Equal(t, "Asia/Kolkata", reporter.generatedAt.Location().String())
	require.Equal(t, 20, reporter.generatedAt.Hour())
	require.Len(t, reporter.saved, 1)
}

func TestRunWeeklyReportSkipsSaveOnError(t *testing.T) {
	reporter := &fakeReporter{genErr: errors.New("sheets down")}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "UTC"}, reporter, nil)
	require.NoError(t, err)

	s.runWeeklyReport()
	require.Nil(t, reporter.saved)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "every friday", Timezone: "UTC"}, &fakeReporter{}, nil)
	require.NoError(t, err)
	require.Error(t, s.Start())
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "Mars/Olympus"}, &fakeReporter{}, nil)
	require.Error(t, err)
}
