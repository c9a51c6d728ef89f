package hermes

import (
	"fmt"
	"strings"
)

const (
	StreamName   = "MACMATCH_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

// StreamSubjects are captured by the JetStream stream.
var StreamSubjects = []string{"macmatch.profile.>", "macmatch.recommendation.>"}

// Profile lifecycle subjects. User ids are opaque, so they pass through
// subjectToken to stay a single subject token.
func SubjectProfileImported(userID string) string {
	return "macmatch.profile." + subjectToken(userID) + ".imported"
}
func SubjectProfileDeleted(userID string) string {
	return "macmatch.profile." + subjectToken(userID) + ".deleted"
}

// Recommendation subjects
func SubjectRecommendationComputed(id string) string {
	return "macmatch.recommendation." + id + ".computed"
}
func SubjectRecommendationUnmatched(id string) string {
	return "macmatch.recommendation." + id + ".unmatched"
}

// subjectToken percent-encodes the bytes NATS treats as token separators or
// wildcards, plus '%' itself, so distinct ids stay distinct.
func subjectToken(id string) string {
	if id == "" {
		return "_"
	}
	var b strings.Builder
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c == '.', c == '*', c == '>', c == '%', c <= ' ', c == 0x7f:
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
