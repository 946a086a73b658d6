package generator

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"mindful-chat/config"
)

// QuotaLimiter 는 생성 백엔드 호출에 대한 분당/일일 한도를 관리한다.
// 프로세스 단위 인메모리 카운터라 재시작하면 초기화된다.
type QuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	// pacer 가 nil 이면 분당 제한이 없다.
	pacer *rate.Limiter
}

// NewQuotaLimiter 는 설정 값이 0 이하인 방향으로는 제한을 두지 않는다.
func NewQuotaLimiter(q config.QuotaConfig) *QuotaLimiter {
	requestsPerDay := q.RequestsPerDay
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	var pacer *rate.Limiter
	if q.RequestsPerMinute > 0 {
		pacer = rate.NewLimiter(rate.Every(time.Minute/time.Duration(q.RequestsPerMinute)), 1)
	}

	return &QuotaLimiter{
		dailyLimit: requestsPerDay,
		pacer:      pacer,
	}
}

// WaitAndReserve 는 호출 전에 분당/일일 한도를 적용한다.
//   - 일일 한도를 초과한 경우: (false, nil). 호출자는 백엔드 호출을 건너뛴다.
//   - 분당 한도를 기다리다 컨텍스트가 끝나는 경우: (false, err). 예약한 일일 사용량은 되돌린다.
func (l *QuotaLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	l.mu.Lock()
	todayKey := time.Now().UTC().Format("2006-01-02")
	if l.dayKey != todayKey {
		l.dayKey = todayKey
		l.usedToday = 0
	}
	if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
		l.mu.Unlock()
		return false, nil
	}
	l.usedToday++
	l.mu.Unlock()

	if l.pacer == nil {
		return true, nil
	}
	if err := l.pacer.Wait(ctx); err != nil {
		l.mu.Lock()
		if l.usedToday > 0 {
			l.usedToday--
		}
		l.mu.Unlock()
		return false, err
	}
	return true, nil
}

// QuotaGenerator 는 한도를 통과한 요청만 내부 백엔드로 넘긴다.
type QuotaGenerator struct {
	next    Generator
	limiter *QuotaLimiter
}

func WithQuota(next Generator, limiter *QuotaLimiter) *QuotaGenerator {
	return &QuotaGenerator{next: next, limiter: limiter}
}

func (g *QuotaGenerator) Provider() string { return g.next.Provider() }

func (g *QuotaGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	ok, err := g.limiter.WaitAndReserve(ctx)
	if err != nil {
		return nil, unavailable("waiting for generation quota: %v", err)
	}
	if !ok {
		return nil, unavailable("daily generation quota exhausted")
	}
	return g.next.Generate(ctx, req)
}
