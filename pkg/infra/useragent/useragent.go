package useragent

import (
	"fmt"
	"strings"

	"github.com/avct/uasurfer"
)

type Info struct {
	Device  string
	OS      string
	Browser string
	Locale  string
}

// Parse returns nil when the agent does not describe a known device class,
// which is the case for scripts and most HTTP libraries.
func Parse(raw string, acceptLanguage string) *Info {
	ua := uasurfer.Parse(raw)

	var device string
	switch ua.DeviceType {
	case uasurfer.DeviceComputer:
		device = "Computer"
	case uasurfer.DeviceTablet:
		device = "Tablet"
	case uasurfer.DevicePhone:
		device = "Phone"
	case uasurfer.DeviceConsole:
		device = "Console"
	case uasurfer.DeviceWearable:
		device = "Wearable"
	case uasurfer.DeviceTV:
		device = "TV"
	default:
		return nil
	}

	locale, _, _ := strings.Cut(acceptLanguage, ",")

	return &Info{
		Device:  device,
		OS:      fmt.Sprintf("%s %d.%d", ua.OS.Name.String(), ua.OS.Version.Major, ua.OS.Version.Minor),
		Browser: fmt.Sprintf("%s %d.%d", ua.Browser.Name.String(), ua.Browser.Version.Major, ua.Browser.Version.Minor),
		Locale:  strings.TrimSpace(locale),
	}
}

// Family reduces an agent string to device, OS and browser names without
// versions, so routine browser upgrades keep matching. Agents uasurfer
// cannot classify fall back to the trimmed, lowercased raw string.
func Family(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ua := uasurfer.Parse(raw)
	if ua.DeviceType == uasurfer.DeviceUnknown || ua.Browser.Name == uasurfer.BrowserUnknown {
		return strings.ToLower(raw)
	}
	return strings.ToLower(fmt.Sprintf("%s/%s/%s",
		ua.DeviceType.StringTrimPrefix(),
		ua.OS.Name.StringTrimPrefix(),
		ua.Browser.Name.StringTrimPrefix(),
	))
}
