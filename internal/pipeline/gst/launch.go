package gst

import "strings"

const (
	appSinkName = "app_sink"
	rgbaCaps    = "video/x-raw,format=RGBA,pixel-aspect-ratio=1/1"
	videoSink   = "videoconvert ! videoscale ! appsink name=" + appSinkName + " caps=" + rgbaCaps
)

// urlLaunchLine returns the gst-launch description of a playbin reading uri
// whose video sink ends in the RGBA appsink.
func urlLaunchLine(uri string) string {
	return "playbin uri=" + quote(uri) + " video-sink=" + quote(videoSink)
}

// quote wraps s in double quotes for the launch parser.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
