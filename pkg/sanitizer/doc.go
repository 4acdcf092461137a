// Package sanitizer cleans untrusted strings before they reach email content:
// HTML through bluemonday policies, short text fields through control-character
// removal, NFC normalization and rune-length caps.
package sanitizer
