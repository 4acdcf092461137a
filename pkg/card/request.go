package card

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RawRequest is the JSON body accepted by the send-card endpoint.
type RawRequest struct {
	To         string `json:"to"`
	Base64     string `json:"base64"`
	Mime       string `json:"mime"`
	Filename   string `json:"filename"`
	SenderName string `json:"senderName"`

	// Copy overrides, used only when Settings.AllowCopyOverrides is set.
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// Request is a validated RawRequest.
type Request struct {
	To         string
	Base64     string // normalized attachment, base64 alphabet only
	Content    []byte // decoded attachment
	MediaType  string // allow-listed, lower-case, no parameters
	Filename   string
	SenderName string

	Subject string
	HTML    string
	Text    string
}

// ParseRequest decodes a request body. An empty body is treated as "{}".
func ParseRequest(body []byte) (RawRequest, error) {
	var raw RawRequest

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return raw, nil
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return RawRequest{}, NewError(KindInvalidRequestBody, ErrInvalidRequestBody.Message,
			WithError(err), WithDetails(err.Error()))
	}
	return raw, nil
}

const dataURLMarker = "base64,"

// NormalizeAttachment trims s and drops everything up to and including the
// first "base64," marker, so data URLs and raw base64 both yield raw base64.
func NormalizeAttachment(s string) string {
	s = strings.TrimSpace(s)
	if _, after, found := strings.Cut(s, dataURLMarker); found {
		s = strings.TrimSpace(after)
	}
	return s
}
