package config

import (
	"bookstore-api/internal/infrastructure/database"
)

// PostgresConfig chuyển DatabaseConfig sang DBConfig mà PostgresDB cần
func (d DatabaseConfig) PostgresConfig() *database.DBConfig {
	return &database.DBConfig{
		Host:              d.Host,
		Port:              d.Port,
		Username:          d.User,
		Password:          d.Password,
		DBName:            d.Name,
		SSLMode:           d.SSLMode,
		MaxConns:          int32(d.MaxConns),
		MinConns:          int32(d.MinConns),
		MaxConnLifetime:   d.MaxConnLifetime,
		MaxConnIdleTime:   d.MaxConnIdleTime,
		HealthCheckPeriod: d.HealthCheckPeriod,
		MaxRetries:        d.MaxRetries,
		RetryDelay:        d.RetryDelay,
		ConnectTimeout:    d.ConnectTimeout,
	}
}
