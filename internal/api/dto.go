package api

import (
	"encoding/json"

	"github.com/starford/jotter/internal/noteservice"
)

// looseString accepts a JSON string; anything else decodes to "".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		v = ""
	}
	*s = looseString(v)
	return nil
}

// looseBool accepts a JSON boolean; anything else decodes to false.
type looseBool bool

func (f *looseBool) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		v = false
	}
	*f = looseBool(v)
	return nil
}

// tagList accepts a JSON array and keeps its string elements; a non-array
// decodes to an empty list.
type tagList []string

func (t *tagList) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		*t = tagList{}
		return nil
	}
	out := make(tagList, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	*t = out
	return nil
}

// noteRequest is the body of POST /notes and PUT /notes/{id}.
type noteRequest struct {
	Title      looseString `json:"title"`
	Content    looseString `json:"content"`
	Category   looseString `json:"category"`
	Tags       tagList     `json:"tags"`
	IsFavorite looseBool   `json:"isFavorite"`
}

func (r noteRequest) input() noteservice.NoteInput {
	return noteservice.NoteInput{
		Title:      string(r.Title),
		Content:    string(r.Content),
		Category:   string(r.Category),
		Tags:       []string(r.Tags),
		IsFavorite: bool(r.IsFavorite),
	}
}

type credentialsRequest struct {
	Username looseString `json:"username"`
	Password looseString `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	Username string `json:"username"`
}

type contentRequest struct {
	Content looseString `json:"content"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type actionItemsResponse struct {
	ActionItems string `json:"actionItems"`
}
