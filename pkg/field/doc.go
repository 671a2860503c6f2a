// Copyright (c) 2026 ServiceTools
// SPDX-License-Identifier: BSD-2-Clause

// Package field implements the typed field collections submitted to
// and returned by the GSX web service, together with the bidirectional
// coercion between native Go values and the service's wire
// conventions.
//
// The wire format is stringly typed with several quirks:
//
//   - booleans travel as "Y" / "N"
//   - dates travel in the active locale's short format (e.g. 01/02/06)
//   - prices carry a currency prefix ("EUR 14,40")
//   - timestamps use the fixed layout "18-Jan-13 14:38:04"
//   - file attachments travel as base64 inside designated elements
//
// [Encode] converts a native value into its wire string when a request
// is assembled; [Decode] reverses the conversion when a response is
// read, keyed by the element's tag name. Round-tripping a coercible
// value through Encode and Decode yields an equal value.
//
// [Bag] is the unit of request payload: an ordered, named collection
// of encoded fields, serializable to an XML subtree. Order is
// preserved because several GSX schemas are positional. Bags nest, and
// a field may hold a list of bags, which serializes as repeated
// sibling elements of the same name (how the protocol encodes order
// lines and similar groups).
package field
