// Package mailer defines the outbound email model and renders email copy.
//
// A Sender delivers a prepared Email and reports the provider message ID.
// The Renderer turns markdown copy with YAML frontmatter into an HTML part,
// wrapped in an html/template layout, and a plain-text part.
//
// # Templates
//
// Copy files are markdown with optional frontmatter:
//
//	---
//	Subject: Kartka od {{.SenderName}}
//	---
//
//	# Wesołych Świąt
//
//	[!button|Wejdź na POL3D.com](https://pol3d.com)
//
// The Subject field is executed with the same data as the body. Button syntax
// renders as a styled link in HTML and as "Label: URL" in plain text.
//
// # Layouts
//
// A layout receives LayoutData. Caller data is available as .Data and is
// escaped by html/template, so untrusted values belong in the layout rather
// than in markdown. A layout "base.html" may have a "base.txt" sibling that
// wraps the plain-text part.
//
// # Providers
//
// See the resend subpackage for the Resend implementation of Sender.
package mailer
