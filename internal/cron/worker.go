package cron

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aifuge/freightquote/internal/alerting"
	"github.com/aifuge/freightquote/internal/metrics"
	"github.com/aifuge/freightquote/internal/refdata"
	"github.com/aifuge/freightquote/internal/storage"
)

const jobName = "reload_refdata"

// advisoryLockKey is shared by all worker instances; only the holder reloads.
const advisoryLockKey int64 = 7341

// Run starts a worker that periodically reloads reference data into the
// store. The interval setting is either integer seconds or a cron
// expression. With a pgx-pool source a PostgreSQL advisory lock ensures only
// one instance of a multi-instance deployment performs the reload.
func Run(ctx context.Context, store *refdata.Store, src refdata.Source, interval string) error {
	if interval == "" {
		interval = "300"
	}

	alerter := alerting.NewAlerter(alerting.DefaultAlertConfig())

	// Control loop ticker (checks whether the next run is due).
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	getNextRun := func(setting string, lastRun time.Time) time.Time {
		if v, err := strconv.Atoi(setting); err == nil && v > 0 {
			return lastRun.Add(time.Duration(v) * time.Second)
		}
		if sched, err := cron.ParseStandard(setting); err == nil {
			return sched.Next(lastRun)
		}
		return lastRun.Add(5 * time.Minute)
	}

	pg, hasLock := src.(*storage.PgxPoolSource)

	// Run immediately on startup, then on schedule.
	nextRun := time.Now()

	log.Printf("cron worker starting, interval=%q advisory_lock=%t", interval, hasLock)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if time.Now().Before(nextRun) {
				continue
			}

			started := time.Now()

			if hasLock {
				ok, err := pg.AcquireAdvisoryLock(ctx, advisoryLockKey)
				if err != nil {
					log.Printf("cron: acquire advisory lock failed: %v", err)
					metrics.UpdateJobMetrics(jobName, started, err)
					nextRun = getNextRun(interval, time.Now())
					continue
				}
				if !ok {
					log.Printf("cron: advisory lock held by another worker, skipping run")
					nextRun = getNextRun(interval, time.Now())
					continue
				}
			}

			runErr := func() error {
				if hasLock {
					defer func() {
						if _, err := pg.ReleaseAdvisoryLock(ctx, advisoryLockKey); err != nil {
							log.Printf("cron: release advisory lock failed: %v", err)
						}
					}()
				}
				return reload(ctx, store)
			}()

			metrics.UpdateJobMetrics(jobName, started, runErr)
			dur := time.Since(started)

			if runErr != nil {
				log.Printf("cron: job %s completed with error: %v (duration=%s)", jobName, runErr, dur)
				if err := alerter.SendReloadFailure(ctx, alerting.ReloadAlert{
					JobName: jobName,
					Source:  "refdata",
					Error:   runErr.Error(),
				}); err != nil {
					log.Printf("cron: send alert failed: %v", err)
				}
			} else {
				log.Printf("cron: job %s completed successfully (duration=%s)", jobName, dur)
			}

			nextRun = getNextRun(interval, time.Now())
		}
	}
}

// reload refreshes the store and records reload metrics, including per-table
// row counts of the freshly installed snapshot.
func reload(ctx context.Context, store *refdata.Store) error {
	metrics.ReloadTotal.Inc()
	if err := store.Reload(ctx); err != nil {
		metrics.ReloadFailuresTotal.Inc()
		return err
	}
	metrics.ReloadLastSuccess.Set(float64(time.Now().Unix()))
	RecordTableSizes(store.Snapshot())
	return nil
}

// RecordTableSizes publishes row-count gauges for a snapshot.
func RecordTableSizes(t *refdata.Tables) {
	if t == nil {
		return
	}
	metrics.ReferenceRows.WithLabelValues("parcel_domestic_zones").Set(float64(len(t.ParcelDomesticZones)))
	metrics.ReferenceRows.WithLabelValues("parcel_domestic_rates").Set(float64(len(t.ParcelDomesticRates)))
	metrics.ReferenceRows.WithLabelValues("parcel_cross_zones").Set(float64(len(t.ParcelCrossZones)))
	metrics.ReferenceRows.WithLabelValues("parcel_cross_rates").Set(float64(len(t.ParcelCrossRates)))
	metrics.ReferenceRows.WithLabelValues("ltl_zones").Set(float64(len(t.LTLZones)))
	metrics.ReferenceRows.WithLabelValues("ltl_rates").Set(float64(len(t.LTLRates)))
	metrics.ReferenceRows.WithLabelValues("diesel_floater").Set(float64(len(t.DieselFloater)))
}
