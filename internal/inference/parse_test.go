package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"fenced json block", "```json\n[{\"title\":\"a\"}]\n```", `[{"title":"a"}]`},
		{"fenced block without language tag", "```\n[{\"title\":\"a\"}]\n```", `[{"title":"a"}]`},
		{"fence surrounded by prose", "以下が抽出結果です。\n```json\n[]\n```\nご確認ください。", "[]"},
		{"bare payload trimmed", "  [{\"title\":\"a\"}]\n", `[{"title":"a"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.content))
		})
	}
}

func TestParseEvents(t *testing.T) {
	t.Run("array of events", func(t *testing.T) {
		events, err := parseEvents(`[
			{"title":"運動会","start_date":"2024-10-05","all_day":true,"confidence":0.9},
			{"title":"保護者会","start_date":"2024-10-12","start_time":"14:00","all_day":false}
		]`)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "運動会", events[0].Title)
		assert.True(t, events[0].AllDay.Value)
		assert.Equal(t, 0.9, events[0].Confidence)
		assert.Equal(t, "14:00", events[1].StartTime)
		assert.False(t, events[1].AllDay.Value)
	})

	t.Run("single object is wrapped into a list", func(t *testing.T) {
		events, err := parseEvents(`{"title":"遠足","start_date":"2024-05-10"}`)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "遠足", events[0].Title)
	})

	t.Run("string-typed booleans and numbers are coerced", func(t *testing.T) {
		events, err := parseEvents(`[{"title":"a","start_date":"2024-05-10","all_day":"True","confidence":"0.75"}]`)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.True(t, events[0].AllDay.Set)
		assert.True(t, events[0].AllDay.Value)
		assert.Equal(t, 0.75, events[0].Confidence)
	})

	t.Run("missing all_day stays unset", func(t *testing.T) {
		events, err := parseEvents(`[{"title":"a","start_date":"2024-05-10"}]`)
		require.NoError(t, err)
		assert.False(t, events[0].AllDay.Set)
	})

	t.Run("non-string fields degrade to zero values, not errors", func(t *testing.T) {
		events, err := parseEvents(`[{"title":123,"start_date":null,"confidence":{"x":1}}]`)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Empty(t, events[0].Title)
		assert.Zero(t, events[0].Confidence)
	})

	t.Run("garbage output is an error", func(t *testing.T) {
		_, err := parseEvents("申し訳ありませんが、予定は見つかりませんでした。")
		assert.Error(t, err)
	})

	t.Run("empty array is fine", func(t *testing.T) {
		events, err := parseEvents("```json\n[]\n```")
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
