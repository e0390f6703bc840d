package onboarding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallCatalog() *Catalog {
	return NewCatalog([]Question{
		{ID: "b", Title: "B?", Type: TextInput, Required: false, Order: 2},
		{ID: "a", Title: "A?", Type: SingleChoice, Required: true, Order: 1,
			Options: []Option{{ID: "x", Label: "Ex", Value: "x"}}},
	})
}

func TestValidate(t *testing.T) {
	c := smallCatalog()

	tests := []struct {
		name    string
		answers []Answer
		want    Result
	}{
		{
			name:    "required answered",
			answers: []Answer{{QuestionID: "a", Answer: StringAnswer("x")}},
			want:    Result{Outcome: OutcomeOK},
		},
		{
			name:    "only optional answered",
			answers: []Answer{{QuestionID: "b", Answer: StringAnswer("y")}},
			want:    Result{Outcome: OutcomeMissingRequired, IDs: []string{"a"}},
		},
		{
			name: "unknown id",
			answers: []Answer{
				{QuestionID: "a", Answer: StringAnswer("x")},
				{QuestionID: "c", Answer: StringAnswer("z")},
			},
			want: Result{Outcome: OutcomeUnknownQuestion, IDs: []string{"c"}},
		},
		{
			name:    "missing wins over unknown",
			answers: []Answer{{QuestionID: "c", Answer: StringAnswer("z")}},
			want:    Result{Outcome: OutcomeMissingRequired, IDs: []string{"a"}},
		},
		{
			name:    "empty submission",
			answers: nil,
			want:    Result{Outcome: OutcomeMissingRequired, IDs: []string{"a"}},
		},
		{
			name: "unknown ids deduplicated in submission order",
			answers: []Answer{
				{QuestionID: "z", Answer: StringAnswer("1")},
				{QuestionID: "a", Answer: StringAnswer("x")},
				{QuestionID: "c", Answer: StringAnswer("2")},
				{QuestionID: "z", Answer: StringAnswer("3")},
			},
			want: Result{Outcome: OutcomeUnknownQuestion, IDs: []string{"z", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(c, tt.answers))
		})
	}
}

func TestValidate_DefaultCatalogReportsAllMissingInOrder(t *testing.T) {
	c := DefaultCatalog()
	res := Validate(c, []Answer{{QuestionID: "allergies", Answer: StringListAnswer("eggs")}})

	require.Equal(t, OutcomeMissingRequired, res.Outcome)
	assert.Equal(t, []string{
		"cooking_skill", "cooking_time", "health_conditions", "diet_type",
		"food_restrictions", "health_goal", "meals_per_day", "exercise_level",
		"food_principles", "preferred_dishes", "cooking_habit",
	}, res.IDs)
}

func TestDefaultCatalog(t *testing.T) {
	qs := DefaultCatalog().Questions()
	require.Len(t, qs, 15)

	required := 0
	for i, q := range qs {
		assert.Equal(t, i+1, q.Order)
		if q.Required {
			required++
		} else {
			assert.Equal(t, TextInput, q.Type)
		}
	}
	assert.Equal(t, 12, required)
}

func TestCatalog_QuestionsIsACopy(t *testing.T) {
	c := DefaultCatalog()
	qs := c.Questions()
	qs[0].Title = "changed"
	qs[0].Options[0].Label = "changed"

	q, ok := c.Lookup(qs[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "changed", q.Title)
	assert.NotEqual(t, "changed", q.Options[0].Label)
}

func TestAnswerValue_JSON(t *testing.T) {
	tests := []struct {
		raw  string
		kind AnswerKind
	}{
		{`"beginner"`, KindString},
		{`["eggs","soy"]`, KindStringList},
		{`[]`, KindStringList},
		{`42.5`, KindNumber},
		{`-3`, KindNumber},
		{`true`, KindOther},
		{`{"x":1}`, KindOther},
		{`[1,"a"]`, KindOther},
		{`null`, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var a AnswerValue
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &a))
			assert.Equal(t, tt.kind, a.Kind())

			out, err := json.Marshal(a)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(out))
		})
	}
}

func TestAnswerValue_Accessors(t *testing.T) {
	s, ok := StringAnswer("pho").AsString()
	assert.True(t, ok)
	assert.Equal(t, "pho", s)

	_, ok = StringAnswer("pho").AsStrings()
	assert.False(t, ok)

	items, ok := StringListAnswer("a", "b").AsStrings()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, items)

	n, ok := NumberAnswer(7).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)

	var zero AnswerValue
	assert.Equal(t, KindOther, zero.Kind())
	assert.Equal(t, "null", string(zero.Raw()))
}

func TestAnswerMap_LastWins(t *testing.T) {
	m := AnswerMap([]Answer{
		{QuestionID: "a", Answer: StringAnswer("first")},
		{QuestionID: "a", Answer: StringAnswer("second")},
	})
	s, _ := m["a"].AsString()
	assert.Equal(t, "second", s)
}

func TestCatalog_Describe(t *testing.T) {
	c := DefaultCatalog()
	out := c.Describe(map[string]AnswerValue{
		"allergies":      StringListAnswer("seafood", "peanuts"),
		"cooking_skill":  StringAnswer("beginner"),
		"ghost":          StringAnswer("boo"),
		"favorite_foods": StringAnswer("bun cha"),
	})

	assert.Equal(t,
		"- How would you rate your cooking skills? Beginner\n"+
			"- Are you allergic to any ingredients? Seafood (shrimp, crab, squid...), peanuts\n"+
			"- What are your FAVORITE dishes? (up to 3) bun cha",
		out)
}
