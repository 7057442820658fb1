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

// Package config maps environment variables into typed runtime settings.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"

	"github.com/yeonilabs/yeoni/database"
	"github.com/yeonilabs/yeoni/utils"
)

// Config holds all runtime settings. Write and read database connections are
// configured separately so reads can go to a replica.
type Config struct {
	// Deployment environment: development, staging, production.
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"   envDefault:"info"`

	// Primary (write) database.
	DBType          string `env:"DB_TYPE"           envDefault:"postgres"`
	WriteDBHost     string `env:"WRITE_DB_HOST"     envDefault:"localhost"`
	WriteDBPort     int    `env:"WRITE_DB_PORT"     envDefault:"5432"`
	WriteDBUser     string `env:"WRITE_DB_USER"     envDefault:"postgres"`
	WriteDBPassword string `env:"WRITE_DB_PASSWORD"`
	WriteDBName     string `env:"WRITE_DB_NAME"     envDefault:"yeoni"`

	// Read replica. Falls back to the write connection when no host is set.
	ReadDBHost     string `env:"READ_DB_HOST"`
	ReadDBPort     int    `env:"READ_DB_PORT"`
	ReadDBUser     string `env:"READ_DB_USER"`
	ReadDBPassword string `env:"READ_DB_PASSWORD"`
	ReadDBName     string `env:"READ_DB_NAME"`

	// Explicit SSL override. When unset, SSL is required outside development.
	DBSSLRequired *bool `env:"DB_SSL_REQUIRED"`
	DBLogQueries  bool  `env:"DB_LOG_QUERIES"  envDefault:"false"`
	DBMetrics     bool  `env:"DB_METRICS"      envDefault:"false"`

	// Token signing.
	JWTSecretKey             string `env:"JWT_SECRET_KEY,required"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"720"`
	RefreshTokenExpireDays   int    `env:"REFRESH_TOKEN_EXPIRE_DAYS"   envDefault:"30"`

	// Refresh token store.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"   envDefault:"0"`
}

// Load parses environment variables into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// ConfigureLogging applies the configured log level to the shared logger
// registry. Call it once after Load, before request handling starts.
func (c *Config) ConfigureLogging() {
	utils.ConfigureLogLevel(c.LogLevel)
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool { return c.Environment == "production" }

// DebugEnabled reports whether debug output should be on. Debug is enabled
// everywhere except production.
func (c *Config) DebugEnabled() bool { return c.Environment != "production" }

// UseDBSSL resolves the SSL requirement. An explicit DB_SSL_REQUIRED wins,
// otherwise SSL is required outside development.
func (c *Config) UseDBSSL() bool {
	if c.DBSSLRequired != nil {
		return *c.DBSSLRequired
	}
	return !c.IsDevelopment()
}

func (c *Config) sslMode() string {
	if c.UseDBSSL() {
		return "require"
	}
	return "disable"
}

// AccessTokenTTL returns the access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireDays) * 24 * time.Hour
}

// RedisOptions builds client options for the refresh token store.
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// WriteConnectionConfig builds the connection config for the primary database.
func (c *Config) WriteConnectionConfig() *database.ConnectionConfig {
	conn := database.DefaultConnectionConfig()
	conn.Type = c.DBType
	conn.Host = c.WriteDBHost
	conn.Port = c.WriteDBPort
	conn.Username = c.WriteDBUser
	conn.Password = c.WriteDBPassword
	conn.DBName = c.WriteDBName
	conn.SSLMode = c.sslMode()
	conn.EnableQueryLog = c.DBLogQueries
	return conn
}

// ReadConnectionConfig builds the connection config for the read replica, or
// nil when no replica host is configured.
func (c *Config) ReadConnectionConfig() *database.ConnectionConfig {
	if c.ReadDBHost == "" {
		return nil
	}
	conn := c.WriteConnectionConfig()
	conn.Host = c.ReadDBHost
	if c.ReadDBPort != 0 {
		conn.Port = c.ReadDBPort
	}
	if c.ReadDBUser != "" {
		conn.Username = c.ReadDBUser
	}
	if c.ReadDBPassword != "" {
		conn.Password = c.ReadDBPassword
	}
	if c.ReadDBName != "" {
		conn.DBName = c.ReadDBName
	}
	return conn
}

// DatabaseConfig assembles the full database configuration, including the
// optional read replica and startup migration settings.
func (c *Config) DatabaseConfig() *database.Config {
	return &database.Config{
		ConnectionConfig:  *c.WriteConnectionConfig(),
		ReadReplicaConfig: c.ReadConnectionConfig(),
		DataMigrateConfig: database.DataMigrateConfig{
			EnableMigrateOnStartup: true,
			EnableForeignKey:       c.DBType != database.TypeSQLite,
		},
		DataInitConfig: database.DataInitConfig{
			Environment: c.Environment,
		},
		EnableMetrics: c.DBMetrics,
	}
}
