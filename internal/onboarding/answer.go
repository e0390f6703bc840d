package onboarding

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// AnswerKind is inferred from the JSON shape of an answer, not from the
// question type.
type AnswerKind string

const (
	KindString     AnswerKind = "string"
	KindStringList AnswerKind = "string_list"
	KindNumber     AnswerKind = "number"
	KindOther      AnswerKind = "other"
)

// AnswerValue keeps the raw JSON of an answer so it is stored and returned
// exactly as submitted.
type AnswerValue struct {
	kind AnswerKind
	raw  json.RawMessage
}

func StringAnswer(s string) AnswerValue {
	raw, _ := json.Marshal(s)
	return AnswerValue{kind: KindString, raw: raw}
}

func StringListAnswer(items ...string) AnswerValue {
	if items == nil {
		items = []string{}
	}
	raw, _ := json.Marshal(items)
	return AnswerValue{kind: KindStringList, raw: raw}
}

func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{kind: KindNumber, raw: json.RawMessage(strconv.FormatFloat(n, 'f', -1, 64))}
}

// ParseAnswer classifies raw, which must be a single valid JSON value.
func ParseAnswer(raw []byte) (AnswerValue, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return AnswerValue{}, errors.New("answer is not valid JSON")
	}
	cp := append(json.RawMessage(nil), trimmed...)
	return AnswerValue{kind: classify(cp), raw: cp}, nil
}

func classify(raw json.RawMessage) AnswerKind {
	switch raw[0] {
	case '"':
		return KindString
	case '[':
		var items []string
		if err := json.Unmarshal(raw, &items); err == nil {
			return KindStringList
		}
		return KindOther
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return KindNumber
	default:
		return KindOther
	}
}

func (a AnswerValue) Kind() AnswerKind {
	if a.raw == nil {
		return KindOther
	}
	return a.kind
}

func (a AnswerValue) Raw() json.RawMessage {
	if a.raw == nil {
		return json.RawMessage("null")
	}
	return a.raw
}

func (a AnswerValue) IsZero() bool {
	return a.raw == nil
}

func (a AnswerValue) AsString() (string, bool) {
	if a.Kind() != KindString {
		return "", false
	}
	var s string
	if err := json.Unmarshal(a.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (a AnswerValue) AsStrings() ([]string, bool) {
	if a.Kind() != KindStringList {
		return nil, false
	}
	var items []string
	if err := json.Unmarshal(a.raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (a AnswerValue) AsNumber() (float64, bool) {
	if a.Kind() != KindNumber {
		return 0, false
	}
	n, err := strconv.ParseFloat(string(a.raw), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	return a.Raw(), nil
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	v, err := ParseAnswer(data)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
