// Package tlsroots builds the trust store used to reach a catalog served
// over https with a private or self-signed certificate.
package tlsroots
