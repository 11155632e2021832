// Package httpclient is a JSON over HTTP implementation of account.Client.
//
// Requests are POSTed to <endpoint>/getAccountFromProvider and
// <endpoint>/createAccount. The transport is a pooled
// hashicorp/go-cleanhttp transport instrumented with otelhttp. Each call
// makes exactly one attempt; retrying belongs to the connector.
package httpclient
