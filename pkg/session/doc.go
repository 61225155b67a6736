// Package session configures the cookie session layer.
//
// The contract used by handlers is small: login renews the token and puts
// the editor name under IdentityKey; the session middleware re-puts it on
// every authenticated request (sliding expiry) or destroys the session and
// rejects the request when it is missing.
package session
