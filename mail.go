package goAccount

import (
	"context"
	"fmt"
	"time"
)

const registerCodeMailSubject = "Your verification code"

// registerCodeMailBody renders the HTML body delivered with a registration
// code. The validity window is spelled out so the recipient knows how long
// the code stays usable.
func registerCodeMailBody(code string, ttl time.Duration) string {
	minutes := int(ttl / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf(
		`<div>Your verification code is: <em style="color:red;">%s</em> valid for %d minutes</div>`,
		code, minutes,
	)
}

// noopMailer stands in when no delivery channel is configured; sends succeed
// silently, matching an unconfigured SMTP transport.
type noopMailer struct{}

func (noopMailer) Send(context.Context, string, string, string) error {
	return nil
}
