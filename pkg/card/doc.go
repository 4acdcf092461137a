// Package card relays a client-generated greeting card image by email.
//
// A request passes three stages in order. The Validator checks the recipient,
// media type and base64 attachment. The Composer builds the email from trusted
// settings and the embedded copy. The Dispatcher performs exactly one provider
// call. Every failure is an *Error whose Kind maps to an HTTP status.
package card
