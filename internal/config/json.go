// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file format.
// Durations are written as strings ("30m") or as nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		Environment   string   `json:"environment"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		IdleTimeout         Duration `json:"idle_timeout"`
		LockoutThreshold    int      `json:"lockout_threshold"`
		LockoutDuration     Duration `json:"lockout_duration"`
		SessionCleanupGrace Duration `json:"session_cleanup_grace"`
	} `json:"auth,omitempty"`

	Cookie struct {
		Name   string `json:"name"`
		Secure bool   `json:"secure"`
		Domain string `json:"domain"`
	} `json:"cookie,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SessionCleanupSchedule string `json:"session_cleanup_schedule"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
			Environment:   jsonCfg.App.Environment,
			LogLevel:      jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			IdleTimeout:         time.Duration(jsonCfg.Auth.IdleTimeout),
			LockoutThreshold:    jsonCfg.Auth.LockoutThreshold,
			LockoutDuration:     time.Duration(jsonCfg.Auth.LockoutDuration),
			SessionCleanupGrace: time.Duration(jsonCfg.Auth.SessionCleanupGrace),
		},
		Cookie: Cookie{
			Name:   jsonCfg.Cookie.Name,
			Secure: jsonCfg.Cookie.Secure,
			Domain: jsonCfg.Cookie.Domain,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			SessionCleanupSchedule: jsonCfg.Workers.SessionCleanupSchedule,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
