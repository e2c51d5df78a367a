package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID builds a record identifier from the current time in base36
// followed by five random base36 characters, e.g. "RPT-MB3K2A1BX9Q4Z".
// The result is upper-cased; an empty prefix yields the bare identifier.
func GenerateID(prefix string) string {
	return generateID(prefix, time.Now())
}

func generateID(prefix string, now time.Time) string {
	random := uuid.New()
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	for _, b := range random[:5] {
		sb.WriteByte(base36[int(b)%len(base36)])
	}
	id := strings.ToUpper(sb.String())
	if prefix == "" {
		return id
	}
	return strings.ToUpper(prefix) + "-" + id
}
