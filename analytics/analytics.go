// Package analytics classifies visitors from their User-Agent. The failure
// log stores the coarse client label instead of the raw header.
package analytics

import (
	"strings"
)

// Client is the coarse description of a browser.
type Client struct {
	Browser string
	OS      string
	Device  string
	Bot     bool
}

// String formats the client as "Browser/OS/Device", or the bot name.
func (c Client) String() string {
	if c.Bot {
		return "bot"
	}
	return c.Browser + "/" + c.OS + "/" + c.Device
}

// Classify parses a User-Agent header.
func Classify(ua string) Client {
	if IsBot(ua) {
		return Client{Bot: true}
	}
	browser, os, device := ParseUserAgent(ua)
	return Client{Browser: browser, OS: os, Device: device}
}

// ParseUserAgent extracts browser, OS, and device from User-Agent string.
func ParseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// Detect browser (order matters: more specific patterns before generic ones)
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr/"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome") || strings.Contains(ua, "crios"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	// Detect OS (order matters: Android before Linux since Android UA contains "linux")
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	// Detect device type (iPad UAs contain "mobile", so tablets go first)
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}

	return
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"yandex", "baidu", "facebookexternalhit", "headlesschrome", "lighthouse",
}

// IsBot checks if the User-Agent is likely a bot, crawler or headless
// browser. An empty User-Agent counts as a bot.
func IsBot(ua string) bool {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return true
	}
	for _, bot := range botMarkers {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}
