// Package integration holds end-to-end tests that need Redis and MySQL.
// They skip when REDIS_ADDR / MYSQL_DSN targets are unreachable.
package integration
