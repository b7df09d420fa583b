// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server's command-line flags from args (normally
// os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-env deployment environment (development, production, test)
//	-log-level log level (debug, info, warn, error)
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-idle-timeout session idle timeout (e.g., "30m")
//	-lockout-threshold failed logins before lockout
//	-lockout-duration lockout duration (e.g., "15m")
//	-cleanup-grace grace period before stale sessions are deleted
//	-cleanup-schedule cron schedule of the session cleanup worker
//	-cookie-name session cookie name
//	-cookie-domain session cookie domain
//	-cookie-secure mark the session cookie Secure
func ParseFlags(args []string) (*StructuredConfig, error) {
	var cfg StructuredConfig
	var serverAddress NetAddress

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.Environment, "env", "", "Deployment environment")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Auth.IdleTimeout, "idle-timeout", 0, "Session idle timeout (e.g., 30m)")
	fs.IntVar(&cfg.Auth.LockoutThreshold, "lockout-threshold", 0, "Failed logins before lockout")
	fs.DurationVar(&cfg.Auth.LockoutDuration, "lockout-duration", 0, "Lockout duration (e.g., 15m)")
	fs.DurationVar(&cfg.Auth.SessionCleanupGrace, "cleanup-grace", 0, "Grace period before stale sessions are deleted")
	fs.StringVar(&cfg.Workers.SessionCleanupSchedule, "cleanup-schedule", "", "Session cleanup cron schedule")
	fs.StringVar(&cfg.Cookie.Name, "cookie-name", "", "Session cookie name")
	fs.StringVar(&cfg.Cookie.Domain, "cookie-domain", "", "Session cookie domain")
	fs.BoolVar(&cfg.Cookie.Secure, "cookie-secure", false, "Mark the session cookie Secure")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
