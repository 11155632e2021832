// Package account defines the value types exchanged with the account
// registry and the narrow Client boundary the connector calls through.
//
// Application-level negatives such as "account does not exist" are
// ordinary responses carrying a ResponseCode. Only communication and
// protocol problems are errors, and every error a Client returns is
// tagged as either transient (worth retrying) or permanent.
package account
