// Copyright (c) 2026 ServiceTools
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gsxws is a client for Apple's GSX (Global Service Exchange)
SOAP web services, used by authorized service providers for repair,
parts, order and warranty workflows.

# Overview

GSX speaks a legacy SOAP/XML dialect with loosely typed payloads and a
number of wire-format quirks: Y/N booleans, locale-formatted dates,
currency-prefixed prices and base64 file attachments. This module
handles the marshaling in both directions, wraps payloads in
authenticated envelopes, and caches the session token on disk so
repeated invocations (including separate processes) skip
re-authentication.

# Package Structure

	github.com/servicetools/go-gsxws               - connection handle and top-level API
	github.com/servicetools/go-gsxws/pkg/field     - field bags and native/wire coercion
	github.com/servicetools/go-gsxws/pkg/client    - SOAP envelope building and HTTPS transport
	github.com/servicetools/go-gsxws/pkg/session   - authentication and token reuse
	github.com/servicetools/go-gsxws/pkg/cache     - durable TTL store for session tokens
	github.com/servicetools/go-gsxws/pkg/objectify - typed response object graphs
	github.com/servicetools/go-gsxws/pkg/fault     - application fault payloads
	github.com/servicetools/go-gsxws/pkg/locale    - wire formats and static service tables

Per-operation packages (lookup, repair, product, part, order, returns,
escalation, diag, comptia) are declarative wrappers over the core.

# Quick Start

	conn, err := gsxws.Connect(ctx, &gsxws.Config{
	    UserID:      "someuser@example.com",
	    Password:    os.Getenv("GSX_PASSWORD"),
	    SoldTo:      "677592",
	    Environment: locale.Testing,
	})
	if err != nil {
	    log.Fatal(err)
	}
	defer conn.Close()

	l := lookup.New(conn)
	l.Set("serialNumber", "DGKFL06JDHJP")
	repairs, err := l.Repairs(ctx)

# Errors

Errors returned by operations are either a *fault.Fault (the service
rejected the request; inspect Code and Errors), a
*client.TransportError (network failure, safe to retry) or a
*field.DecodeError (a response attachment was malformed). Faults are
never retried automatically.
*/
package gsxws
