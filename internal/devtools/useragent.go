// Package devtools implements the developer utilities served under /dev.
package devtools

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknown = "Other"

type UserAgent struct {
	UserAgentString string `json:"user_agent_string"`
	BrowserFamily   string `json:"browser_family"`
	BrowserVersion  string `json:"browser_version"`
	OSFamily        string `json:"os_family"`
	OSVersion       string `json:"os_version"`
	DeviceFamily    string `json:"device_family"`
	DeviceBrand     string `json:"device_brand"`
	DeviceModel     string `json:"device_model"`
	IsMobile        bool   `json:"is_mobile"`
	IsTablet        bool   `json:"is_tablet"`
	IsPC            bool   `json:"is_pc"`
	IsBot           bool   `json:"is_bot"`
}

var pcSystems = []string{"windows", "mac os", "linux", "cros", "freebsd", "openbsd"}

// ParseUserAgent describes a User-Agent header. An empty header is reported
// as "Unknown".
func ParseUserAgent(header string) UserAgent {
	if strings.TrimSpace(header) == "" {
		header = "Unknown"
	}
	ua := useragent.New(header)
	browser, version := ua.Browser()
	osInfo := ua.OSInfo()

	out := UserAgent{
		UserAgentString: header,
		BrowserFamily:   orUnknown(browser),
		BrowserVersion:  version,
		OSFamily:        orUnknown(osInfo.Name),
		OSVersion:       osInfo.Version,
		DeviceModel:     ua.Model(),
		IsBot:           ua.Bot(),
	}

	lower := strings.ToLower(header)
	out.IsTablet = strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet") ||
		(strings.Contains(lower, "android") && !strings.Contains(lower, "mobile"))
	out.IsMobile = ua.Mobile() && !out.IsTablet
	if !out.IsMobile && !out.IsTablet && !out.IsBot {
		osLower := strings.ToLower(osInfo.FullName)
		for _, system := range pcSystems {
			if strings.Contains(osLower, system) {
				out.IsPC = true
				break
			}
		}
	}

	out.DeviceFamily, out.DeviceBrand = device(ua.Platform(), out)
	if out.DeviceModel == "" && out.DeviceBrand == "Apple" {
		out.DeviceModel = out.DeviceFamily
	}
	return out
}

func device(platform string, ua UserAgent) (family, brand string) {
	switch {
	case ua.IsBot:
		return "Spider", ""
	case platform == "iPhone" || platform == "iPad" || platform == "iPod" || platform == "iPod touch":
		return platform, "Apple"
	case platform == "Macintosh":
		return "Mac", "Apple"
	case ua.DeviceModel != "":
		return ua.DeviceModel, ""
	default:
		return unknown, ""
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
