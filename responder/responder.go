// Package responder picks the reply for a user message by walking three tiers in
// order: keyword rules, the generation backend, then a fixed check-in reply.
package responder

import (
	"context"
	"errors"
	"strings"
	"time"

	"mindful-chat/config"
	"mindful-chat/generator"
	"mindful-chat/metrics"
	"mindful-chat/models"
	"mindful-chat/rules"
)

// Tier 는 답변을 만든 단계다.
type Tier string

const (
	TierMatched   Tier = "matched"
	TierGenerated Tier = "generated"
	TierDefault   Tier = "default"
)

type Reply struct {
	Text string
	Tier Tier
}

type Responder struct {
	matcher   *rules.Matcher
	generator generator.Generator
	timeout   time.Duration
}

// New 는 gen 이 nil 이면 생성 단계를 건너뛰고 곧바로 기본 답변을 쓴다.
func New(matcher *rules.Matcher, gen generator.Generator, timeout time.Duration) *Responder {
	if matcher == nil {
		matcher = rules.NewDefaultMatcher()
	}
	if timeout <= 0 {
		timeout = config.DefaultGenerationTimeout
	}
	return &Responder{matcher: matcher, generator: gen, timeout: timeout}
}

// Generate 는 항상 답변을 돌려준다. 오류는 ErrConfiguration 뿐이며 이때 Reply 는 비어 있다.
func (r *Responder) Generate(ctx context.Context, sessionID, text string, history []models.Message) (Reply, error) {
	if reply, ok := r.matcher.Match(text); ok {
		return r.done(Reply{Text: reply, Tier: TierMatched}), nil
	}

	if r.generator != nil {
		genCtx, cancel := context.WithTimeout(ctx, r.timeout)
		res, err := r.generator.Generate(genCtx, generator.Request{SessionID: sessionID, Text: text, History: history})
		cancel()

		switch {
		case errors.Is(err, generator.ErrConfiguration):
			return Reply{}, err
		case err != nil:
			config.WarnWithFields("generation failed, using default reply", config.Fields{
				"session_id": sessionID,
				"provider":   r.generator.Provider(),
				"error":      err.Error(),
			})
		case res == nil || strings.TrimSpace(res.Text) == "":
			// 빈 답변은 기본 답변으로 넘긴다.
		case r.matcher.IsCanned(strings.TrimSpace(res.Text)):
			// 키워드가 없었는데 미리 준비된 문구를 그대로 돌려준 경우는 생성 답변으로 치지 않는다.
			config.WarnWithFields("generated reply repeats a canned text, using default reply", config.Fields{
				"session_id": sessionID,
				"provider":   r.generator.Provider(),
			})
		default:
			return r.done(Reply{Text: strings.TrimSpace(res.Text), Tier: TierGenerated}), nil
		}
	}

	return r.done(Reply{Text: r.matcher.DefaultReply(), Tier: TierDefault}), nil
}

func (r *Responder) done(reply Reply) Reply {
	metrics.RepliesTotal.WithLabelValues(string(reply.Tier)).Inc()
	return reply
}
