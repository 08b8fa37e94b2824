package interview

import (
	"github.com/delphi-research/survey-backend/internal/entity"
)

// ToInterviewDTO converts an interview session to its API representation
func ToInterviewDTO(interview *entity.Interview) *entity.InterviewDTO {
	messages := make([]entity.MessageDTO, 0, len(interview.Messages))
	for _, msg := range interview.Messages {
		messages = append(messages, entity.MessageDTO{
			ID:         msg.ID,
			Role:       msg.Role,
			Content:    msg.Content,
			QuestionID: msg.QuestionID,
			CreatedAt:  msg.CreatedAt,
		})
	}

	return &entity.InterviewDTO{
		ID:        interview.ID,
		SurveyID:  interview.SurveyID,
		Title:     interview.Survey.Title,
		Status:    interview.Status,
		Messages:  messages,
		Widget:    BuildWidget(interview),
		CreatedAt: interview.CreatedAt,
	}
}
