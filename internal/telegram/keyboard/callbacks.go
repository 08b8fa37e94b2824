package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions. Values are kept short: Telegram caps callback data at
// 64 bytes and survey ids alone take 36.
const (
	ActionTemplate   = "tpl" // value: template index
	ActionSurvey     = "svy" // value: survey id
	ActionScale      = "sc"  // value: scale value 1-5
	ActionChoice     = "ch"  // value: option index
	ActionMatrix     = "mx"  // value: option index for the current row
	ActionDownload   = "dl"  // value: survey export format
	ActionTranscript = "tr"  // value: transcript export format
	ActionGeneric    = "act" // value: start_interview, list_surveys, new, finish
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}
