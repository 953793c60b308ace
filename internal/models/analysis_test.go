package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestValidate(t *testing.T) {
	t.Run("short body is invalid regardless of subject", func(t *testing.T) {
		for _, subject := range []string{"", "Hello", strings.Repeat("s", 101)} {
			v := Validate(subject, "too short")
			assert.False(t, v.InputValid)
			assert.ErrorIs(t, v.Err(), ErrBodyTooShort)
		}
	})

	t.Run("word count above limit is invalid", func(t *testing.T) {
		v := Validate("", words(2001))
		assert.Equal(t, 2001, v.WordCount)
		assert.True(t, v.TooManyWords())
		assert.False(t, v.InputValid)
		assert.ErrorIs(t, v.Err(), ErrTooManyWords)
	})

	t.Run("word count at limit is valid", func(t *testing.T) {
		v := Validate("", words(2000))
		assert.True(t, v.InputValid)
		assert.NoError(t, v.Err())
	})

	t.Run("long subject is invalid even with a valid body", func(t *testing.T) {
		v := Validate(strings.Repeat("s", 101), "Please verify your account now")
		assert.False(t, v.SubjectValid)
		assert.False(t, v.InputValid)
		assert.ErrorIs(t, v.Err(), ErrSubjectTooLong)
	})

	t.Run("subject at limit is valid", func(t *testing.T) {
		v := Validate(strings.Repeat("s", 100), "Please verify your account now")
		assert.True(t, v.SubjectValid)
		assert.True(t, v.InputValid)
	})

	t.Run("lengths count runes", func(t *testing.T) {
		v := Validate(strings.Repeat("é", 100), "ééééééééé")
		assert.True(t, v.SubjectValid)
		assert.Equal(t, 9, v.BodyLength)
		assert.ErrorIs(t, v.Err(), ErrBodyTooShort)
	})

	t.Run("words reported before subject", func(t *testing.T) {
		v := Validate(strings.Repeat("s", 101), words(2001))
		assert.ErrorIs(t, v.Err(), ErrTooManyWords)
	})
}

func TestValidate_CountsRunes(t *testing.T) {
	const emoji = "\U0001F3A3" // outside the BMP: one rune, four UTF-8 bytes

	t.Run("five emoji body is too short", func(t *testing.T) {
		v := Validate("", strings.Repeat(emoji, 5))
		assert.Equal(t, 5, v.BodyLength)
		assert.ErrorIs(t, v.Err(), ErrBodyTooShort)
	})

	t.Run("ten emoji body is long enough", func(t *testing.T) {
		v := Validate("", strings.Repeat(emoji, 10))
		assert.Equal(t, 10, v.BodyLength)
		assert.True(t, v.InputValid)
	})

	t.Run("subject limit counts emoji once each", func(t *testing.T) {
		body := "Please verify your account now"
		assert.True(t, Validate(strings.Repeat(emoji, MaxSubjectLength), body).SubjectValid)

		v := Validate(strings.Repeat(emoji, MaxSubjectLength+1), body)
		assert.False(t, v.SubjectValid)
		assert.ErrorIs(t, v.Err(), ErrSubjectTooLong)
	})
}

func TestNewAnalysisRequest(t *testing.T) {
	req := NewAnalysisRequest("", "Please verify your account now")
	assert.Nil(t, req.Subject)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Please verify your account now","subject":null}`, string(b))

	req = NewAnalysisRequest("<Urgent>", `Click "here" & win`)
	require.NotNil(t, req.Subject)
	assert.Equal(t, "&lt;Urgent&gt;", *req.Subject)
	assert.Equal(t, "Click &quot;here&quot; &amp; win", req.Text)
}

func TestProxyPayload_TextValue(t *testing.T) {
	tests := []struct {
		body string
		ok   bool
	}{
		{`{}`, false},
		{`{"text":""}`, false},
		{`{"text":null}`, false},
		{`{"text":42}`, false},
		{`{"text":["a"]}`, false},
		{`{"text":"hello there"}`, true},
	}

	for _, tt := range tests {
		var p ProxyPayload
		require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
		_, ok := p.TextValue()
		assert.Equal(t, tt.ok, ok, tt.body)
	}
}

func TestProxyPayload_SubjectPassthrough(t *testing.T) {
	var p ProxyPayload
	require.NoError(t, json.Unmarshal([]byte(`{"text":"hello there","subject":null}`), &p))
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hello there","subject":null}`, string(b))

	p = ProxyPayload{}
	require.NoError(t, json.Unmarshal([]byte(`{"text":"hello there"}`), &p))
	b, err = json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hello there"}`, string(b))
}
