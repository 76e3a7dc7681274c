package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// FiscalMetrics records counters and latencies for the fiscal engine.
type FiscalMetrics struct {
	recordsCreated     *Counter
	duplicatesRejected *Counter
	statusChanges      *Counter
	reportDuration     *Histogram
	ledgerCacheLookups *Counter
}

// NewFiscalMetrics registers the fiscal instruments on meter.
func NewFiscalMetrics(meter metric.Meter) (*FiscalMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	fm := &FiscalMetrics{}
	var err error

	fm.recordsCreated, err = NewCounter(meter,
		"propdesk_fiscal_records_created_total",
		"Fiscal records persisted, including credit notes",
		"{records}",
	)
	if err != nil {
		return nil, err
	}

	fm.duplicatesRejected, err = NewCounter(meter,
		"propdesk_fiscal_duplicates_rejected_total",
		"Records rejected because the period already has one",
		"{records}",
	)
	if err != nil {
		return nil, err
	}

	fm.statusChanges, err = NewCounter(meter,
		"propdesk_fiscal_status_changes_total",
		"Record status transitions",
		"{transitions}",
	)
	if err != nil {
		return nil, err
	}

	fm.reportDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "propdesk_fiscal_report_duration_seconds",
		Description: "Time spent generating fiscal reports",
		Unit:        "s",
		Boundaries:  ReportDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	fm.ledgerCacheLookups, err = NewCounter(meter,
		"propdesk_fiscal_ledger_cache_lookups_total",
		"Ledger cache lookups by outcome",
		"{lookups}",
	)
	if err != nil {
		return nil, err
	}

	return fm, nil
}

// RecordCreated counts a persisted record.
func (fm *FiscalMetrics) RecordCreated(ctx context.Context, kind string, creditNote bool) {
	if fm == nil {
		return
	}
	fm.recordsCreated.Inc(ctx, AttrRecordKind.String(kind), AttrCreditNote.Bool(creditNote))
}

// DuplicateRejected counts a create rejected by the one-per-period rule.
func (fm *FiscalMetrics) DuplicateRejected(ctx context.Context, kind string) {
	if fm == nil {
		return
	}
	fm.duplicatesRejected.Inc(ctx, AttrRecordKind.String(kind))
}

// StatusChanged counts a status transition.
func (fm *FiscalMetrics) StatusChanged(ctx context.Context, kind, outcome string) {
	if fm == nil {
		return
	}
	fm.statusChanges.Inc(ctx, AttrRecordKind.String(kind), AttrOutcome.String(outcome))
}

// ReportGenerated records how long a report took.
func (fm *FiscalMetrics) ReportGenerated(ctx context.Context, report string, d time.Duration) {
	if fm == nil {
		return
	}
	fm.reportDuration.RecordDuration(ctx, d, AttrBook.String(report))
}

// LedgerCacheLookup counts a ledger cache hit or miss.
func (fm *FiscalMetrics) LedgerCacheLookup(ctx context.Context, book string, hit bool) {
	if fm == nil {
		return
	}
	fm.ledgerCacheLookups.Inc(ctx, AttrBook.String(book), AttrCacheHit.Bool(hit))
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewFiscalMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
