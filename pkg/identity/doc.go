// Package identity carries the authenticated editor through the request
// context. Session state stays ambient in the cookie layer; the identity
// extracted from it is explicit and request-scoped.
package identity
