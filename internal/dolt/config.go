package dolt

import "fmt"

// Config describes how to reach a dolt sql-server over the MySQL protocol.
type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	TLS          bool
	MaxOpenConns int
}

// applyDefaults fills unset fields with the conventional local-server values.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 3306
	}
	if c.User == "" {
		c.User = "root"
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}
}

// DSN renders the go-sql-driver connection string. parseTime makes the
// driver return time.Time for the engine's timestamp columns; the I/O
// timeouts keep a hung server from blocking callers indefinitely.
func (c Config) DSN() string {
	userPart := c.User
	if c.Password != "" {
		userPart += ":" + c.Password
	}
	params := "parseTime=true&timeout=5s&readTimeout=10s&writeTimeout=10s"
	if c.TLS {
		params += "&tls=true"
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?%s", userPart, c.Host, c.Port, c.Database, params)
}
