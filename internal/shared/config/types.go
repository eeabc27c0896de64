// Package config defines the typed configuration blocks shared across the
// application. Loading and defaulting live in internal/infrastructure/config.
package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BillingConfig carries the business policy knobs of the subscription engine.
// The subscriber role allow-list is deliberately configuration, not a
// hard-coded constant, so deployments can adjust eligibility without a build.
type BillingConfig struct {
	Timezone                string   `mapstructure:"timezone"`
	Currency                string   `mapstructure:"currency"`
	ReferralDiscountPercent float64  `mapstructure:"referral_discount_percent"`
	AllowedSubscriberRoles  []string `mapstructure:"allowed_subscriber_roles"`
	ViewOnlyRole            string   `mapstructure:"view_only_role"`
	AdminRole               string   `mapstructure:"admin_role"`
}
