package logging

import (
	"log/slog"
	"regexp"
)

var (
	// apiKey=... in request URLs echoed by net/http errors
	apiKeyParamPattern = regexp.MustCompile(`(?i)(apikey=)[^&\s"]+`)

	// X-Api-Key style headers in upstream error bodies
	apiKeyHeaderPattern = regexp.MustCompile(`(?i)(x-api-key:\s*)\S+`)

	// DSN 内のパスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = apiKeyHeaderPattern.ReplaceAllString(msg, "${1}****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}

// ErrorAttr is the "error" log attribute with secrets masked.
//
//	logger.Error("fetch failed", logging.ErrorAttr(err))
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", SanitizeError(err))
}
