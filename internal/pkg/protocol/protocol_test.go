package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractQuestionTag(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		wantClean string
		wantQID   string
	}{
		{
			name:      "tag at end",
			in:        "How often do you drink coffee? [[QID:xyz]]",
			wantClean: "How often do you drink coffee?",
			wantQID:   "xyz",
		},
		{
			name:      "tag in the middle",
			in:        "Thanks! [[QID:q-2]] Next one.",
			wantClean: "Thanks!  Next one.",
			wantQID:   "q-2",
		},
		{
			name:      "no tag",
			in:        "Just a friendly remark.",
			wantClean: "Just a friendly remark.",
			wantQID:   "",
		},
		{
			name:      "uuid id",
			in:        "Rate it. [[QID:6f1c9a2e-8d1b-4f7a-9c3e-111122223333]]",
			wantClean: "Rate it.",
			wantQID:   "6f1c9a2e-8d1b-4f7a-9c3e-111122223333",
		},
		{
			name:      "only the first tag is stripped",
			in:        "A [[QID:first]] B [[QID:second]]",
			wantClean: "A  B [[QID:second]]",
			wantQID:   "first",
		},
		{
			name:      "unterminated tag ignored",
			in:        "Broken [[QID:oops",
			wantClean: "Broken [[QID:oops",
			wantQID:   "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clean, qid := ExtractQuestionTag(tc.in)
			assert.Equal(t, tc.wantClean, clean)
			assert.Equal(t, tc.wantQID, qid)
		})
	}
}

func TestEndSentinel(t *testing.T) {
	assert.True(t, HasEndSentinel("Thank you for your time! [[END_OF_SURVEY]]"))
	assert.True(t, HasEndSentinel("[[END_OF_SURVEY]] trailing"))
	assert.False(t, HasEndSentinel("Not done yet [[QID:abc]]"))

	assert.Equal(t, "Thank you for your time!",
		StripEndSentinel("Thank you for your time! [[END_OF_SURVEY]]"))
	assert.Equal(t, "", StripEndSentinel("[[END_OF_SURVEY]]"))
}

func TestQuestionTag(t *testing.T) {
	tag := QuestionTag("abc")
	assert.Equal(t, "[[QID:abc]]", tag)

	clean, qid := ExtractQuestionTag("text " + tag)
	assert.Equal(t, "text", clean)
	assert.Equal(t, "abc", qid)
}
