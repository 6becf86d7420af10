package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/planner"
	"github.com/kilianp07/studyplan/core/timeofday"
)

type responsesRequest struct {
	Model           string `json:"model"`
	Input           string `json:"input"`
	MaxOutputTokens int    `json:"max_output_tokens,omitempty"`
}

type responsesResponse struct {
	Output *[]struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// ParseEnvelope extracts the text of the first output_text content entry,
// scanning output items in order.
func ParseEnvelope(raw []byte) (string, error) {
	var resp responsesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", planner.MalformedEnvelope(fmt.Errorf("decode response: %w", err))
	}
	if resp.Output == nil {
		return "", planner.MalformedEnvelope(errors.New(`response has no "output" list`))
	}
	for _, item := range *resp.Output {
		for _, c := range item.Content {
			if c.Type == "output_text" {
				return c.Text, nil
			}
		}
	}
	return "", planner.MalformedEnvelope(errors.New("response has no output_text content"))
}

type planBlock struct {
	Start   *string `json:"start"`
	End     *string `json:"end"`
	Subject *string `json:"subject"`
}

type planPayload struct {
	Blocks *[]planBlock `json:"blocks"`
}

// ParseBlocks decodes the model's block JSON. Durations are always derived
// from the parsed times: an unparsable start becomes fallbackStart, an
// unparsable end becomes the block's start, and minutes is never negative.
// Any extra field the model adds is ignored.
func ParseBlocks(text string, fallbackStart timeofday.Time) ([]model.ScheduleBlock, error) {
	var p planPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, planner.UnparsableContent(text, err)
	}
	if p.Blocks == nil {
		return nil, planner.UnparsableContent(text, errors.New(`missing field "blocks"`))
	}
	out := make([]model.ScheduleBlock, 0, len(*p.Blocks))
	for i, b := range *p.Blocks {
		if err := b.check(); err != nil {
			return nil, planner.UnparsableContent(text, fmt.Errorf("blocks[%d]: %w", i, err))
		}
		start := timeofday.ParseOr(*b.Start, fallbackStart)
		end := timeofday.ParseOr(*b.End, start)
		out = append(out, model.ScheduleBlock{
			Start:   start,
			End:     end,
			Subject: *b.Subject,
			Minutes: max(0, end.Sub(start)),
		})
	}
	return out, nil
}

func (b planBlock) check() error {
	switch {
	case b.Start == nil:
		return errors.New(`missing field "start"`)
	case b.End == nil:
		return errors.New(`missing field "end"`)
	case b.Subject == nil:
		return errors.New(`missing field "subject"`)
	}
	return nil
}
