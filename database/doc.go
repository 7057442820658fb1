// Package database provides connection management with an optional read
// replica, migrations, foreign key handling, SQL initialization, schema drift
// checks, trigram search verification, pool metrics, configuration types,
// logging, health checks, and related utilities built on top of Bun.
package database
