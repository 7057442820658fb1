// Package repository provides a generic repository abstraction built on Bun
// for CRUD operations, filtered querying, pagination, bulk writes,
// transactions, and upsert support, plus the query builders shared by the
// domain services: locale-aware field selection, name search patterns, and
// reusable row filters.
package repository
