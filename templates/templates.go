// Package templates embeds the default card email copy.
package templates

import (
	"embed"

	"github.com/pol3d/cardmail/pkg/mailer"
)

// FS holds card.md and its layouts under layouts/.
//
//go:embed card.md layouts
var FS embed.FS

const (
	// Card is the default card copy.
	Card = "card.md"
	// Layout wraps the card copy; it has a plain-text sibling.
	Layout = "base.html"
)

const buttonStyle = "display:inline-block; text-decoration:none; padding:10px 12px; " +
	"border-radius:10px; background:#0f766e; color:#fff; font-weight:700;"

// NewRenderer returns a renderer over the embedded copy.
func NewRenderer() *mailer.Renderer {
	return mailer.NewRendererWithConfig(FS, mailer.RendererConfig{ButtonStyle: buttonStyle})
}
