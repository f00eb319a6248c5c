// internal/config/database.go
package config

import "time"

type DatabaseConfig struct {
	URI            string `env:"MONGODB_URI"`
	Name           string `env:"MONGODB_DATABASE" envDefault:"kalakriti"`
	ConnectTimeout int    `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10"`
	MaxPoolSize    uint64 `env:"MONGODB_MAX_POOL_SIZE" envDefault:"50"`
}

func (d DatabaseConfig) Timeout() time.Duration {
	return time.Duration(d.ConnectTimeout) * time.Second
}
