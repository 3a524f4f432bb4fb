package utils

import "strings"

// DeviceTypeFromUserAgent classifies a User-Agent into ANDROID, IOS, WEB or
// UNKNOWN for push notification targeting.
func DeviceTypeFromUserAgent(userAgent string) string {
	if userAgent == "" {
		return "UNKNOWN"
	}
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "android"):
		return "ANDROID"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return "IOS"
	case strings.Contains(ua, "windows"), strings.Contains(ua, "mac"):
		return "WEB"
	}
	return "UNKNOWN"
}
