/*
 * Copyright 2026 yeonilabs.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
)

// DBStatsCollector exposes connection pool statistics for the primary pool
// and, when configured, the read replica pool. Stats are read at scrape time,
// so registering the collector adds no overhead to queries.
type DBStatsCollector struct {
	manager AbstractDatabaseManager

	openConnections   *prometheus.Desc
	inUse             *prometheus.Desc
	idle              *prometheus.Desc
	waitCount         *prometheus.Desc
	waitDuration      *prometheus.Desc
	maxIdleClosed     *prometheus.Desc
	maxLifetimeClosed *prometheus.Desc
	maxOpen           *prometheus.Desc
}

var _ prometheus.Collector = (*DBStatsCollector)(nil)

// NewDBStatsCollector builds a collector over the manager's pools. The role
// label is "primary" or "replica".
func NewDBStatsCollector(manager AbstractDatabaseManager) *DBStatsCollector {
	labels := []string{"role"}
	return &DBStatsCollector{
		manager: manager,
		openConnections: prometheus.NewDesc(
			"yeoni_db_open_connections",
			"Established connections, both in use and idle.",
			labels, nil),
		inUse: prometheus.NewDesc(
			"yeoni_db_in_use_connections",
			"Connections currently executing a statement.",
			labels, nil),
		idle: prometheus.NewDesc(
			"yeoni_db_idle_connections",
			"Idle connections in the pool.",
			labels, nil),
		waitCount: prometheus.NewDesc(
			"yeoni_db_wait_count_total",
			"Total number of times a connection had to be waited for.",
			labels, nil),
		waitDuration: prometheus.NewDesc(
			"yeoni_db_wait_duration_seconds_total",
			"Total time spent waiting for a connection.",
			labels, nil),
		maxIdleClosed: prometheus.NewDesc(
			"yeoni_db_max_idle_closed_total",
			"Connections closed because of SetMaxIdleConns.",
			labels, nil),
		maxLifetimeClosed: prometheus.NewDesc(
			"yeoni_db_max_lifetime_closed_total",
			"Connections closed because of SetConnMaxLifetime.",
			labels, nil),
		maxOpen: prometheus.NewDesc(
			"yeoni_db_max_open_connections",
			"Configured connection pool ceiling.",
			labels, nil),
	}
}

func (c *DBStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.openConnections
	ch <- c.inUse
	ch <- c.idle
	ch <- c.waitCount
	ch <- c.waitDuration
	ch <- c.maxIdleClosed
	ch <- c.maxLifetimeClosed
	ch <- c.maxOpen
}

func (c *DBStatsCollector) Collect(ch chan<- prometheus.Metric) {
	if c.manager == nil {
		return
	}
	primary := c.manager.GetDB()
	c.collectPool(ch, "primary", primary)
	if replica := c.manager.GetReadDB(); replica != nil && replica != primary {
		c.collectPool(ch, "replica", replica)
	}
}

func (c *DBStatsCollector) collectPool(ch chan<- prometheus.Metric, role string, db *bun.DB) {
	if db == nil {
		return
	}
	stats := db.Stats()
	ch <- prometheus.MustNewConstMetric(c.openConnections, prometheus.GaugeValue, float64(stats.OpenConnections), role)
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(stats.InUse), role)
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stats.Idle), role)
	ch <- prometheus.MustNewConstMetric(c.waitCount, prometheus.CounterValue, float64(stats.WaitCount), role)
	ch <- prometheus.MustNewConstMetric(c.waitDuration, prometheus.CounterValue, stats.WaitDuration.Seconds(), role)
	ch <- prometheus.MustNewConstMetric(c.maxIdleClosed, prometheus.CounterValue, float64(stats.MaxIdleClosed), role)
	ch <- prometheus.MustNewConstMetric(c.maxLifetimeClosed, prometheus.CounterValue, float64(stats.MaxLifetimeClosed), role)
	ch <- prometheus.MustNewConstMetric(c.maxOpen, prometheus.GaugeValue, float64(stats.MaxOpenConnections), role)
}

// RegisterDBMetrics registers the pool collector on the default registry.
// Calling it twice is harmless.
func RegisterDBMetrics(manager AbstractDatabaseManager) error {
	if manager == nil {
		return errors.New("database manager is nil")
	}
	err := prometheus.Register(NewDBStatsCollector(manager))
	if err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}
