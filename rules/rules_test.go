package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func replyFor(keyword string) string {
	for _, r := range DefaultRules {
		if r.Keyword == keyword {
			return r.Reply
		}
	}
	return ""
}

func TestMatcherMatch(t *testing.T) {
	m := NewDefaultMatcher()

	testCases := []struct {
		name      string
		input     string
		wantReply string
		wantOK    bool
	}{
		{name: "upper case keyword", input: "I am so ANXIOUS today", wantReply: replyFor("anxious"), wantOK: true},
		{name: "keyword inside word", input: "so much stressful work", wantReply: replyFor("stress"), wantOK: true},
		{name: "keyword at start", input: "tired of everything", wantReply: replyFor("tired"), wantOK: true},
		{name: "first rule in order wins", input: "I'm sad and stressed", wantReply: replyFor("stress"), wantOK: true},
		{name: "breathing before anxious", input: "anxious, help with breathing", wantReply: replyFor("breathing"), wantOK: true},
		{name: "no keyword", input: "How can I feel better?", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			reply, ok := m.Match(testCase.input)
			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.wantReply, reply)
		})
	}
}

func TestMatcherRespondFallsBackToCheckIn(t *testing.T) {
	m := NewDefaultMatcher()

	assert.Equal(t, DefaultReply, m.Respond("I'm having a bad day"))
	assert.Equal(t, replyFor("happy"), m.Respond("HAPPY news"))
}

func TestNewMatcherSkipsBlankRules(t *testing.T) {
	m := NewMatcher([]Rule{
		{Keyword: "  ", Reply: "never"},
		{Keyword: "Calm", Reply: "calm reply"},
		{Keyword: "empty", Reply: ""},
	}, "")

	reply, ok := m.Match("feeling CALM")
	assert.True(t, ok)
	assert.Equal(t, "calm reply", reply)

	_, ok = m.Match("empty")
	assert.False(t, ok)
	assert.Equal(t, DefaultReply, m.DefaultReply())
}

func TestMatcherIsCanned(t *testing.T) {
	m := NewDefaultMatcher()

	for _, r := range DefaultRules {
		assert.True(t, m.IsCanned(r.Reply), r.Keyword)
	}
	assert.True(t, m.IsCanned(DefaultReply))
	assert.False(t, m.IsCanned("a generated answer"))
}
