// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and cookie configuration.
  - Messages: user-facing texts for template/document operations.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "doctemplate-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Renders and PDF conversions are the slowest responses served.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "doctemplate.app"

	// AccessTokenTTL is the lifetime of a short-lived access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the lifetime of a refresh session.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "refresh_token"

	// RefreshTokenCookiePath is the scoped path for the refresh token cookie.
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldCode  = "code"
	FieldError = "error"
)

// # Upload Limits

const (
	// MaxTemplateFileSize is the maximum accepted .docx upload (bytes).
	MaxTemplateFileSize = 10 << 20

	// MaxPreviewImageSize is the maximum accepted preview image (bytes).
	MaxPreviewImageSize = 2 << 20
)

// # Content Types

const (
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePDF  = "application/pdf"
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
)

// # User-Facing Messages
//
// Texts returned by the template/document operations. Kept in one place so
// the consistency checker, validators, and handlers never drift apart.

const (
	// MsgTemplateExcessTags reports tags embedded in the binary template that
	// have no matching field record.
	MsgTemplateExcessTags = "Template file contains tags with no matching field records"

	// MsgTemplateExcessFields reports declared fields whose tags do not occur
	// in the binary template.
	MsgTemplateExcessFields = "Template file is missing tags for declared fields"

	// MsgTemplateConsistent is returned when the tag sets fully agree.
	MsgTemplateConsistent = "Template file and fields are consistent"

	// MsgTemplateAlreadyDeleted is returned when soft-deleting twice.
	MsgTemplateAlreadyDeleted = "Template has already been deleted"

	// MsgFieldTagsNotUnique names every duplicated field tag in a write payload.
	MsgFieldTagsNotUnique = "Template fields contain non-unique tags: %s"

	// MsgGroupIDsNotUnique names every duplicated group identifier in a write payload.
	MsgGroupIDsNotUnique = "Field groups contain non-unique identifiers: %s"

	// MsgUnknownGroupID names every field group reference that does not resolve
	// within the submitted group list.
	MsgUnknownGroupID = "Unknown field group identifiers: %s"

	// MsgUnknownFieldType names a field type that is not registered in the vocabulary.
	MsgUnknownFieldType = "Unknown field type: %s"

	// MsgUnknownCategory names a category that is not registered in the vocabulary.
	MsgUnknownCategory = "Unknown category: %s"

	// MsgWrongTemplateField names a document field that references a template
	// field belonging to a different template.
	MsgWrongTemplateField = "Field %s does not belong to the document's template"
)
