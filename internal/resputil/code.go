package resputil

type ErrorCode int

const (
	OK ErrorCode = 0

	// General
	InvalidRequest ErrorCode = 40001

	// Token
	TokenExpired ErrorCode = 40101
	TokenInvalid ErrorCode = 40102

	// Login
	InvalidCredentials ErrorCode = 40106

	// User is not allowed to access the resource
	UserNotAllowed ErrorCode = 40301

	// Lookup yielded no (or ambiguous) rows
	ObjectNotFound ErrorCode = 40401

	// Another action already runs on the entity
	ActionInProgress ErrorCode = 40901

	// Deployment defect, e.g. a source type without a provider
	ConfigurationDefect ErrorCode = 50001

	// Indicates laziness of the developer
	// Frontend will directly print the message without any translation
	NotSpecified ErrorCode = 99999
)
