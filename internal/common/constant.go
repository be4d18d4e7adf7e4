// Package common contains shared constants and sentinel errors used across
// Memory Lane components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MinPasswordLength is the shortest password the gateway accepts on sign-up.
const MinPasswordLength = 6
