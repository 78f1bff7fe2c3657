// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Current time in the app timezone:
//     now := timezone.Now()
//     today := timezone.Today()                // "2024-01-01"
//
//  2. Formatting and parsing in the app timezone:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//     t, err := timezone.Parse("2006-01-02 15:04", "2024-01-01 09:00")
//
//  3. Calendar dates and wall-clock times used by bookings:
//     day, err := timezone.ParseDate("2024-01-01")
//     minutes, err := timezone.ParseClock("09:30") // 570
//     nights := timezone.DaysBetween(checkIn, checkOut)
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
// Use standard IANA timezone database names like "UTC" or "Europe/London".
package timezone
