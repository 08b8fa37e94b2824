package interview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/prompt"
)

// chatTurns projects the transcript onto the model turn list. The synthetic
// opening turn always leads, system notices never travel to the model.
func chatTurns(interview *entity.Interview) []entity.ChatTurn {
	turns := make([]entity.ChatTurn, 0, len(interview.Messages)+1)
	turns = append(turns, entity.ChatTurn{Role: entity.ChatRoleUser, Content: prompt.OpeningTurn})

	for _, msg := range interview.Messages {
		switch msg.Role {
		case entity.MessageRoleUser:
			turns = append(turns, entity.ChatTurn{Role: entity.ChatRoleUser, Content: msg.Content})
		case entity.MessageRoleModel:
			turns = append(turns, entity.ChatTurn{Role: entity.ChatRoleModel, Content: msg.Content})
		}
	}

	return turns
}

// serializeAnswer flattens a structured answer into the plain text the model
// sees. Scale values travel as the bare number, choices verbatim, matrix
// selections as "Row: Option" pairs joined by "; ".
func serializeAnswer(req *entity.SubmitAnswerRequest) string {
	switch req.Kind {
	case entity.AnswerKindScale:
		return strconv.Itoa(req.Scale)
	case entity.AnswerKindChoice:
		return req.Choice
	case entity.AnswerKindMatrix:
		pairs := make([]string, 0, len(req.Matrix))
		for _, sel := range req.Matrix {
			pairs = append(pairs, fmt.Sprintf("%s: %s", sel.Row, sel.Option))
		}
		return strings.Join(pairs, "; ")
	default:
		return req.Text
	}
}
