package analyzer

import (
	"fmt"
	"strings"

	"github.com/sperciky/variable-monitoring/internal/models"
)

// typeTable maps GTM type codes to display labels. Codes implemented by a
// custom template resolve to customLabel; codes missing from labels resolve to
// unknownFormat applied to the raw code.
type typeTable struct {
	labels        map[string]string
	customLabel   string
	unknownFormat string
}

func (t typeTable) label(code string) string {
	if t.customLabel != "" && strings.HasPrefix(code, models.CustomTemplatePrefix) {
		return t.customLabel
	}
	if label, ok := t.labels[code]; ok {
		return label
	}
	return fmt.Sprintf(t.unknownFormat, code)
}

// known reports whether code has a label. Empty codes count as known so that
// they never show up as translation candidates.
func (t typeTable) known(code string) bool {
	if code == "" {
		return true
	}
	if t.customLabel != "" && strings.HasPrefix(code, models.CustomTemplatePrefix) {
		return true
	}
	_, ok := t.labels[code]
	return ok
}

var variableTypes = typeTable{
	labels: map[string]string{
		"v":     "Data Layer Variable",
		"k":     "Cookie",
		"u":     "URL",
		"f":     "Referrer",
		"e":     "Event",
		"j":     "JavaScript Variable",
		"jsm":   "Custom JavaScript",
		"d":     "DOM Element",
		"c":     "Constant",
		"gas":   "Google Analytics Settings",
		"r":     "Random Number",
		"aev":   "Auto-Event Variable",
		"vis":   "Element Visibility",
		"ctv":   "Container Version",
		"dbg":   "Debug Mode",
		"cid":   "Container ID",
		"hid":   "HTML ID",
		"smm":   "Lookup Table",
		"remm":  "Regex Table",
		"ed":    "Event Data",
		"t":     "Environment Name",
		"awec":  "User Provided Data",
		"uv":    "Undefined Value",
		"fs":    "Firestore Lookup",
		"rh":    "Request Header",
		"sgtmk": "Request - Cookie Value",
	},
	customLabel:   "Custom Template Variable",
	unknownFormat: "Unknown (%s)",
}

var tagTypes = typeTable{
	labels: map[string]string{
		"html":                "Custom HTML",
		"img":                 "Custom Image",
		"ua":                  "Universal Analytics",
		"ga":                  "Google Analytics",
		"gaawe":               "GA4 Event",
		"googtag":             "Google Tag",
		"gaawc":               "GA4 Configuration",
		"flc":                 "Floodlight Counter",
		"fls":                 "Floodlight Sales",
		"awct":                "Google Ads Conversion",
		"sp":                  "Google Ads Remarketing",
		"gclidw":              "Conversion Linker",
		"opt":                 "Optimize",
		"cegg":                "Criteo",
		"crto":                "Criteo OneTag",
		"pntr":                "Pinterest",
		"twitter_website_tag": "Twitter",
		"baut":                "Bing Ads",
		"mpm":                 "Mouseflow",
		"hjtc":                "Hotjar",
		"zone":                "Zone",
		"veip":                "Ve Interactive",
		"awj":                 "ActiveCampaign Site Tracking",
		"lcl":                 "Leadfeeder",
		"sdl":                 "Data Layer Declaration",
		"awud":                "Adwords User Data",
		"ll":                  "LinkedIN Insight",
		"ta":                  "TikTok Analytics",
		"sgtmadsct":           "Google Ads Conversion Tracking",
		"sgtmgaaw":            "Google Analytics: GA4",
	},
	customLabel:   "Custom Template Tag",
	unknownFormat: "Unknown Tag (%s)",
}

var triggerTypes = typeTable{
	labels: map[string]string{
		"pageview":             "Page View",
		"domReady":             "DOM Ready",
		"windowLoaded":         "Window Loaded",
		"customEvent":          "Custom Event",
		"trigger":              "Always Fire",
		"historyChange":        "History Change",
		"js":                   "JavaScript Error",
		"linkClick":            "Click - Just Links",
		"click":                "Click - All Elements",
		"formSubmit":           "Form Submission",
		"elementVisibility":    "Element Visibility",
		"scrollDepth":          "Scroll Depth",
		"timer":                "Timer",
		"youTubeVideo":         "YouTube Video",
		"file":                 "File Download",
		"amp":                  "AMP",
		"consent":              "Consent",
		"adConversion":         "Ad Conversion",
		"floodlight":           "Floodlight",
		"googleAds":            "Google Ads",
		"googleAdsRemarketing": "Google Ads Remarketing",
		"http":                 "HTTP Request",
		"sdl":                  "Server Data Layer",
		"pageError":            "Page Error",
	},
	unknownFormat: "Unknown Trigger (%s)",
}

var clientTypes = typeTable{
	labels: map[string]string{
		"gtm":                  "Google Tag Manager",
		"ga4":                  "Google Analytics 4",
		"http":                 "HTTP Client",
		"universal_analytics":  "Universal Analytics",
		"measurement_protocol": "Measurement Protocol",
		"firebase":             "Firebase",
		"bigquery":             "BigQuery",
		"firestore":            "Firestore",
	},
	customLabel:   "Custom Client Template",
	unknownFormat: "Unknown Client (%s)",
}

// builtInTypes covers web and server container built-in variables.
var builtInTypes = typeTable{
	labels: map[string]string{
		"PAGE_URL":                 "Page URL",
		"PAGE_HOSTNAME":            "Page Hostname",
		"PAGE_PATH":                "Page Path",
		"REFERRER":                 "Referrer",
		"EVENT":                    "Event",
		"CLICK_ELEMENT":            "Click Element",
		"CLICK_CLASSES":            "Click Classes",
		"CLICK_ID":                 "Click ID",
		"CLICK_TARGET":             "Click Target",
		"CLICK_URL":                "Click URL",
		"CLICK_TEXT":               "Click Text",
		"FORM_ELEMENT":             "Form Element",
		"FORM_CLASSES":             "Form Classes",
		"FORM_ID":                  "Form ID",
		"FORM_TARGET":              "Form Target",
		"FORM_URL":                 "Form URL",
		"FORM_TEXT":                "Form Text",
		"ERROR_MESSAGE":            "Error Message",
		"ERROR_URL":                "Error URL",
		"ERROR_LINE":               "Error Line",
		"NEW_HISTORY_URL":          "New History URL",
		"OLD_HISTORY_URL":          "Old History URL",
		"NEW_HISTORY_FRAGMENT":     "New History Fragment",
		"OLD_HISTORY_FRAGMENT":     "Old History Fragment",
		"NEW_HISTORY_STATE":        "New History State",
		"OLD_HISTORY_STATE":        "Old History State",
		"HISTORY_SOURCE":           "History Source",
		"CONTAINER_ID":             "Container ID",
		"CONTAINER_VERSION":        "Container Version",
		"DEBUG_MODE":               "Debug Mode",
		"RANDOM_NUMBER":            "Random Number",
		"HTML_ID":                  "HTML ID",
		"ENVIRONMENT_NAME":         "Environment Name",
		"APP_ID":                   "App ID",
		"APP_NAME":                 "App Name",
		"APP_VERSION_CODE":         "App Version Code",
		"APP_VERSION_NAME":         "App Version Name",
		"CAMPAIGN_CONTENT":         "Campaign Content",
		"CAMPAIGN_MEDIUM":          "Campaign Medium",
		"CAMPAIGN_NAME":            "Campaign Name",
		"CAMPAIGN_SOURCE":          "Campaign Source",
		"CAMPAIGN_TERM":            "Campaign Term",
		"CAMPAIGN_ID":              "Campaign ID",
		"DEVICE_NAME":              "Device Name",
		"EVENT_NAME":               "Event Name",
		"LANGUAGE":                 "Language",
		"OS_VERSION":               "OS Version",
		"PLATFORM":                 "Platform",
		"SDK_VERSION":              "SDK Version",
		"DEVICE_MARKETING_NAME":    "Device Marketing Name",
		"DEVICE_MODEL":             "Device Model",
		"RESOLUTION":               "Resolution",
		"ADVERTISER_ID":            "Advertiser ID",
		"SCREEN_NAME":              "Screen Name",
		"SCREEN_RESOLUTION":        "Screen Resolution",
		"CLIENT_VIEWPORT_HEIGHT":   "Client Viewport Height",
		"CLIENT_VIEWPORT_WIDTH":    "Client Viewport Width",
		"CLIENT_NAME":              "Client Name",
		"CLIENT_ID":                "Client ID",
		"CLIENT_VERSION":           "Client Version",
		"VIDEO_PROVIDER":           "Video Provider",
		"VIDEO_URL":                "Video URL",
		"VIDEO_TITLE":              "Video Title",
		"VIDEO_DURATION":           "Video Duration",
		"VIDEO_PERCENT":            "Video Percent",
		"VIDEO_VISIBLE":            "Video Visible",
		"VIDEO_STATUS":             "Video Status",
		"VIDEO_CURRENT_TIME":       "Video Current Time",
		"PERCENT_VISIBLE":          "Percent Visible",
		"ON_SCREEN_DURATION":       "On Screen Duration",
		"ELEMENT_VISIBILITY_RATIO": "Element Visibility Ratio",
		"ELEMENT_VISIBILITY_TIME":  "Element Visibility Time",
		"REQUEST_PATH":             "Request Path",
		"REQUEST_METHOD":           "Request Method",
		"REQUEST_QUERY":            "Request Query",
		"IP_ADDRESS":               "IP Address",
		"PAGE_ENCODING":            "Page Encoding",
		"PAGE_LOCATION":            "Page Location",
		"PAGE_REFERRER":            "Page Referrer",
		"PAGE_TITLE":               "Page Title",
		"PROTOCOL_VERSION":         "Protocol Version",
		"SERVER_NAME":              "Server Name",
		"TIME":                     "Timestamp",
		"USER_AGENT":               "User Agent",
		"USER_IP":                  "User IP",
		"VIEWPORT_SIZE":            "Viewport Size",
		"VISITOR_REGION":           "Visitor Region",
	},
	unknownFormat: "Unknown Built-in (%s)",
}

func VariableTypeName(code string) string { return variableTypes.label(code) }

func TagTypeName(code string) string { return tagTypes.label(code) }

func TriggerTypeName(code string) string { return triggerTypes.label(code) }

func ClientTypeName(code string) string { return clientTypes.label(code) }

func BuiltInTypeName(code string) string { return builtInTypes.label(code) }
