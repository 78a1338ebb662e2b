package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateParticipantCode returns a stable pseudonym for a patient,
// e.g. "P-3f2a9c1b". Assigned once; exports reuse it for every row of the
// same participant.
func GenerateParticipantCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "P-" + id[:8]
}
