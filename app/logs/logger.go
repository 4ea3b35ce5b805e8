package logs

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

var logger = log.New(os.Stdout, "", 0)

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// LogJSON writes one JSON object per line. level is one of "DEBUG", "INFO",
// "WARN", "ERROR" or "FATAL".
func LogJSON(level, message string, fields map[string]interface{}) {
	logEntry := map[string]interface{}{
		"severity": level,
		"message":  message,
		"time":     time.Now().Format(time.RFC3339),
	}
	for k, v := range fields {
		logEntry[k] = v
	}
	jsonLog, _ := json.Marshal(logEntry)
	logger.Println(string(jsonLog))
}

func Info(message string, fields map[string]interface{}) {
	LogJSON("INFO", message, fields)
}

func Warn(message string, fields map[string]interface{}) {
	LogJSON("WARN", message, fields)
}

func Error(message string, err error, fields map[string]interface{}) {
	entry := map[string]interface{}{}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	LogJSON("ERROR", message, entry)
}
