// Copyright (c) 2026 ServiceTools
// SPDX-License-Identifier: BSD-2-Clause

// Package client builds GSX SOAP envelopes and submits them over
// HTTPS.
//
// Every operation follows the same wire shape: an envelope whose
// header is empty and whose body holds one operation-named element,
// wrapping an <OperationName>Request element that carries the session
// token and the serialized payload. The one exception is
// authentication itself, which sends its payload bare since no token
// exists yet.
//
// Faults and transport failures surface as distinct error types so
// callers can retry transport errors safely while treating
// application faults as final.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/servicetools/go-gsxws/pkg/fault"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/locale"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// userAgent identifies this client on the wire.
const userAgent = "go-gsxws/1.0"

// AuthenticateOperation is the one operation submitted without a
// session wrapper.
const AuthenticateOperation = "Authenticate"

// DefaultTimeout bounds the connect/read cycle of one submission.
const DefaultTimeout = 30 * time.Second

// GSX namespace URIs declared on every envelope.
const (
	nsSOAPEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	nsCore    = "http://gsxws.apple.com/elements/core"
	nsGlobal  = "http://gsxws.apple.com/elements/global"
	nsASP     = "http://gsxws.apple.com/elements/core/asp"
	nsAM      = "http://gsxws.apple.com/elements/core/asp/am"
)

// hosts maps environments to their service host name component.
var hosts = map[locale.Environment]string{
	locale.Production:  "ws2",
	locale.Testing:     "wsit",
	locale.Development: "wsut",
}

// Config configures a Client.
type Config struct {
	// Environment selects the service deployment. Required unless
	// Endpoint is set.
	Environment locale.Environment

	// Region is the service region path component (one of
	// locale.RegionCodes). Required unless Endpoint is set.
	Region string

	// Endpoint overrides the derived service URL. Used by tests and
	// proxied deployments.
	Endpoint string

	// Timeout bounds each submission. Defaults to DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client

	// Logger receives debug-level request/response traces. Business
	// data is never logged above debug.
	Logger *slog.Logger
}

// Client submits operations to one GSX endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// New creates a Client from cfg.
func New(cfg *Config) (*Client, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		if !cfg.Environment.Valid() {
			return nil, fmt.Errorf("client: unknown environment %q", cfg.Environment)
		}
		region := cfg.Region
		if region == "" {
			return nil, fmt.Errorf("client: region is required")
		}
		endpoint = fmt.Sprintf("https://gsx%s.apple.com/gsx-ws/services/%s/asp",
			hosts[cfg.Environment], region)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
	}
	if httpClient.Timeout == 0 {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient.Timeout = timeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{endpoint: endpoint, http: httpClient, logger: logger}, nil
}

// Endpoint returns the resolved service URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Request describes one operation submission.
type Request struct {
	// Operation is the operation element name, e.g. "RepairLookup".
	Operation string

	// PayloadName is the tag the payload serializes under, e.g.
	// "lookupRequestData". When it equals Operation + "Request" the
	// payload's children are spliced directly into the request
	// element: some GSX schemas omit the inner container, and the
	// only reliable signal is this name equality.
	PayloadName string

	// Payload is the field bag to submit. Its namespace prefix
	// qualifies the operation element.
	Payload *field.Bag

	// ResponseTag names the response element(s) to extract. Defaults
	// to PayloadName with "Request" replaced by "Response".
	ResponseTag string

	// SessionHeader is the <userSession> element injected into the
	// request. Required for every operation except authentication.
	SessionHeader *etree.Element
}

// Submitter submits operations: either a bare *Client or a handle
// that injects the active session header first.
type Submitter interface {
	Submit(ctx context.Context, req Request) ([]*objectify.Node, error)
}

// TransportError reports a connection, DNS or timeout failure. It is
// the only error kind safe to retry.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("submitting %s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Submit sends the operation and returns the parsed response
// object(s). HTTP statuses above 200 are treated as faults; the
// service routinely signals application errors with 2xx-adjacent
// codes.
func (c *Client) Submit(ctx context.Context, req Request) ([]*objectify.Node, error) {
	if req.Operation != AuthenticateOperation && req.SessionHeader == nil {
		return nil, fmt.Errorf("client: %s requires an authenticated session", req.Operation)
	}

	body, err := c.envelope(req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("submitting request", "operation", req.Operation, "bytes", len(body))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("client: building request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Content-Type", `text/xml; charset="UTF-8"`)
	httpReq.Header.Set("SOAPAction", fmt.Sprintf("%q", req.Operation))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Operation: req.Operation, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Operation: req.Operation, Err: err}
	}
	c.logger.Debug("received response",
		"operation", req.Operation, "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode > http.StatusOK {
		f, perr := fault.Parse(respBody)
		if perr != nil {
			return nil, fmt.Errorf("client: %s failed with status %d: %w",
				req.Operation, resp.StatusCode, perr)
		}
		return nil, f
	}

	tag := req.ResponseTag
	if tag == "" {
		tag = strings.Replace(req.PayloadName, "Request", "Response", 1)
	}
	return objectify.Parse(respBody, tag)
}

// envelope assembles the SOAP document for req.
func (c *Client) envelope(req Request) ([]byte, error) {
	if req.Payload == nil {
		return nil, fmt.Errorf("client: %s has no payload", req.Operation)
	}

	env := etree.NewElement("soapenv:Envelope")
	env.CreateAttr("xmlns:core", nsCore)
	env.CreateAttr("xmlns:glob", nsGlobal)
	env.CreateAttr("xmlns:asp", nsASP)
	env.CreateAttr("xmlns:am", nsAM)
	env.CreateAttr("xmlns:soapenv", nsSOAPEnv)

	env.CreateElement("soapenv:Header")
	body := env.CreateElement("soapenv:Body")

	prefix := req.Payload.Prefix()
	if prefix == "" {
		prefix = "asp"
	}
	root := body.CreateElement(prefix + ":" + req.Operation)

	payload := req.Payload.ToXML(req.PayloadName)

	if req.Operation == AuthenticateOperation {
		root.AddChild(payload)
	} else {
		wrapper := root.CreateElement(req.Operation + "Request")
		wrapper.AddChild(req.SessionHeader.Copy())

		if req.PayloadName == req.Operation+"Request" {
			// Schema has no inner container: splice the payload's
			// children in directly.
			for _, child := range payload.ChildElements() {
				wrapper.AddChild(child.Copy())
			}
		} else {
			wrapper.AddChild(payload)
		}
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(env)
	return doc.WriteToBytes()
}
