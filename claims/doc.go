// Package claims decodes access-token claims on the client side.
//
// Decoding is deliberately unverified: the client holds no signature key and
// the decoded role only gates dashboard access in the UI sense. The backend
// validates the signature and re-authorizes every request; nothing in this
// package is a security control.
package claims
