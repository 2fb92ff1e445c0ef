package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line keyed by the originating request so every entry of
// a call can be grepped together. Keep message a short summary; payloads and
// credentials stay out of the log.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
