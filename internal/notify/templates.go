package notify

import (
	"fmt"
	"time"
)

func reminderEmailTemplate(name, documentName string, expiry time.Time, daysRemaining int, appName string) (string, string) {
	expiryStr := expiry.Format("January 2, 2006")

	var subject string
	switch {
	case daysRemaining <= 0:
		subject = fmt.Sprintf("Your warranty for %s expires today", documentName)
	case daysRemaining == 1:
		subject = fmt.Sprintf("Last day tomorrow: warranty for %s", documentName)
	case daysRemaining <= 3:
		subject = fmt.Sprintf("Only %d days left on your warranty for %s", daysRemaining, documentName)
	default:
		subject = fmt.Sprintf("Your warranty for %s expires in %d days", documentName, daysRemaining)
	}

	greeting := "Hi,"
	if name != "" {
		greeting = fmt.Sprintf("Hi %s,", name)
	}

	body := fmt.Sprintf(`%s

The warranty on your document "%s" expires on %s.

If you need to make a claim, now is the time to check the terms and contact the seller or manufacturer.

— %s`, greeting, documentName, expiryStr, appName)

	return subject, body
}
