// Package rules maps emotionally loaded keywords to vetted, pre-authored replies.
package rules

import "strings"

// DefaultReply 는 어떤 키워드에도 걸리지 않았을 때의 안부 답변이다.
// 생성 백엔드가 실패했을 때의 마지막 단계 답변으로도 쓰인다.
const DefaultReply = "Thank you for sharing. How are you feeling right now? 🌟"

// Rule is one trigger keyword and its canned reply.
type Rule struct {
	Keyword string
	Reply   string
}

// DefaultRules 의 순서가 곧 우선순위다. 여러 키워드가 함께 들어 있으면 앞선 규칙이 이긴다.
var DefaultRules = []Rule{
	{Keyword: "stress", Reply: "I understand that stress can be overwhelming. Let's try a short breathing exercise together. 🌬️"},
	{Keyword: "breathing", Reply: "Sure! Inhale slowly for 4 seconds, hold for 4, exhale for 6. Repeat a few times and feel calmer. 🌿"},
	{Keyword: "sad", Reply: "I'm here for you. Talking about your feelings can help. Would you like a mindfulness tip?"},
	{Keyword: "happy", Reply: "That's wonderful! Keep enjoying the positive moments! 🌞"},
	{Keyword: "anxious", Reply: "Feeling anxious is normal. Let's try grounding exercises to calm down. 🌱"},
	{Keyword: "tired", Reply: "Rest is important. Take a short break or do a relaxation exercise. 🛌"},
}

// Matcher is safe for concurrent use; it never changes after construction.
type Matcher struct {
	rules        []Rule
	defaultReply string
}

// NewMatcher copies rules and lower-cases keywords once. Rules with an empty
// keyword or reply are skipped.
func NewMatcher(rules []Rule, defaultReply string) *Matcher {
	compiled := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" || r.Reply == "" {
			continue
		}
		compiled = append(compiled, Rule{Keyword: kw, Reply: r.Reply})
	}
	if defaultReply == "" {
		defaultReply = DefaultReply
	}
	return &Matcher{rules: compiled, defaultReply: defaultReply}
}

// NewDefaultMatcher returns a Matcher over DefaultRules.
func NewDefaultMatcher() *Matcher {
	return NewMatcher(DefaultRules, DefaultReply)
}

// Match returns the reply of the first rule whose keyword appears anywhere in
// text, ignoring case.
func (m *Matcher) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range m.rules {
		if strings.Contains(lower, r.Keyword) {
			return r.Reply, true
		}
	}
	return "", false
}

// Respond is Match with the check-in reply substituted on a miss.
func (m *Matcher) Respond(text string) string {
	if reply, ok := m.Match(text); ok {
		return reply
	}
	return m.defaultReply
}

func (m *Matcher) DefaultReply() string {
	return m.defaultReply
}

// IsCanned reports whether reply is one of the matcher's pre-authored texts.
func (m *Matcher) IsCanned(reply string) bool {
	if reply == m.defaultReply {
		return true
	}
	for _, r := range m.rules {
		if r.Reply == reply {
			return true
		}
	}
	return false
}
