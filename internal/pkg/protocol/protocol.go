// Package protocol implements the inline control protocol embedded in model
// output: a [[QID:<id>]] tag marking the active question and an
// [[END_OF_SURVEY]] sentinel marking completion. Both ride inside otherwise
// natural-language text, so extraction is substring-based and tolerant.
package protocol

import (
	"regexp"
	"strings"
)

// EndSentinel signals interview completion. Its presence anywhere in a
// reply matters, not its position.
const EndSentinel = "[[END_OF_SURVEY]]"

var qidPattern = regexp.MustCompile(`\[\[QID:(.+?)\]\]`)

// ExtractQuestionTag finds the first [[QID:...]] tag in text, strips it and
// returns the cleaned text plus the captured question id. When no tag is
// present the text is returned unchanged with an empty id.
func ExtractQuestionTag(text string) (clean string, questionID string) {
	match := qidPattern.FindStringSubmatch(text)
	if match == nil {
		return text, ""
	}
	return strings.TrimSpace(strings.Replace(text, match[0], "", 1)), match[1]
}

// HasEndSentinel reports whether the reply carries the completion sentinel.
func HasEndSentinel(text string) bool {
	return strings.Contains(text, EndSentinel)
}

// StripEndSentinel removes the sentinel and trims the remainder. The result
// may be empty; callers decide whether to show it.
func StripEndSentinel(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, EndSentinel, ""))
}

// QuestionTag renders the tag for a question id, used when building the
// interviewer system instruction.
func QuestionTag(questionID string) string {
	return "[[QID:" + questionID + "]]"
}
