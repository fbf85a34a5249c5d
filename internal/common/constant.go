// Package common contains shared constants and sentinel errors used across
// daylog components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DateLayout is the wire and storage layout of a calendar day.
const DateLayout = "2006-01-02"

// Record field bounds shared by client-side validation and the server.
const (
	MinScaleValue = 0
	MaxScaleValue = 7
	MinCount      = 1
)
