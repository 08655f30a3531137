package helper

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// NormalizeTopic turns a user-chosen topic into a storage-safe
// folder/collection name: lower-cased, spaces and hyphens replaced with
// underscores.
func NormalizeTopic(topic string) string {
	s := strings.ToLower(strings.TrimSpace(topic))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// CreateFolder makes the directory and any missing parents
func CreateFolder(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Truncate cuts s to at most n runes, appending an ellipsis when cut
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// pretty print
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Msg("Error pretty printing")
	}
	fmt.Println(string(b))
}
