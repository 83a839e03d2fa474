// Package render turns loaded posts into output artifacts: HTML pages
// and Atom feeds. It is a pure collaborator of the publication driver —
// bytes in, bytes out, no filesystem access.
package render

import (
	"fmt"
	"time"

	"github.com/stillpress/stillpress/internal/config"
)

// Renderer renders all page and feed artifacts for one site.
type Renderer struct {
	cfg *config.Config

	// now is a hook for tests; content-age notes depend on the clock.
	now func() time.Time
}

// New creates a Renderer for the given site configuration.
func New(cfg *config.Config) *Renderer {
	return &Renderer{cfg: cfg, now: time.Now}
}

// ReadableDate formats a timestamp for display in the site's timezone,
// e.g. "Tuesday, August 18th, 2020 at 09:48 (EDT)".
func (r *Renderer) ReadableDate(t time.Time) string {
	local := t.In(r.cfg.Location())
	return fmt.Sprintf("%s, %s %d%s, %d at %s",
		local.Format("Monday"),
		local.Format("January"),
		local.Day(),
		ordinalSuffix(local.Day()),
		local.Year(),
		local.Format("15:04 (MST)"),
	)
}

func ordinalSuffix(i int) string {
	if i < 0 {
		i = -i
	}
	if i%100/10 == 1 { // 11th, 12th, 13th
		return "th"
	}
	switch i % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// YearsOld returns the age of a timestamp in years.
func (r *Renderer) YearsOld(t time.Time) float64 {
	return r.now().Sub(t).Hours() / 24 / 365.25
}
