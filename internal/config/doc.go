// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package config loads Hudson's configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml, /etc/hudson/config.yaml
//  3. A .env file ($DOTENV_PATH or ./.env) merged into the process environment;
//     variables already set in the environment are never overwritten
//  4. Environment variables, mapped explicitly by envTransformFunc
//
// Unknown environment variables are ignored. Comma-separated values are
// accepted for list settings such as CORS_ORIGINS.
//
// Example config.yaml:
//
//	server:
//	  port: 4000
//	database:
//	  driver: postgres
//	  dsn: postgres://hudson:hudson@db:5432/hudson?sslmode=disable
//	broadcast:
//	  transport: nats
//	nats:
//	  url: nats://nats:4222
//	  embedded_server: false
package config
