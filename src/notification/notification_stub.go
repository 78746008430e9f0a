//go:build !windows

package notification

// showPlatformError has no dialog outside Windows; stderr carries the message.
func showPlatformError(title, message string) {}
