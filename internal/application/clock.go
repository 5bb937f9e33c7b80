package application

import "time"

// nowFunc supplies the current time; services hold one so tests can pin it.
type nowFunc = func() time.Time

func defaultNow() time.Time { return time.Now().UTC() }
