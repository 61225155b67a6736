// Package creds wraps password hashing and verification.
//
// Editoria never stores or compares plaintext passwords; handlers hash on
// registration and password change, and verify on login.
package creds
