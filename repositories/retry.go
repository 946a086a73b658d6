package repositories

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"mindful-chat/config"
)

// retryBaseDelay 는 첫 재시도 전 대기 시간이다.
var retryBaseDelay = 100 * time.Millisecond

// isTransient 는 같은 요청을 다시 보내 볼 가치가 있는 스토어 오류인지 판단한다.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

func newRetryPolicy(ctx context.Context, maxRetries int) backoff.BackOff {
	if maxRetries < 0 {
		maxRetries = 0
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryBaseDelay
	b.Multiplier = 2
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx)
}

// withRetry 는 일시적인 오류에 한해 op 를 최대 maxRetries 번까지 재시도한다.
// 컨텍스트가 끝나면 더 기다리지 않고 컨텍스트 오류를 돌려준다.
func withRetry(ctx context.Context, maxRetries int, name string, op func(ctx context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx)
		if err != nil && !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		config.Logger.Warnf("mongo %s failed (attempt %d/%d), retrying in %s: %v", name, attempt, maxRetries+1, wait, err)
	}
	return backoff.RetryNotify(operation, newRetryPolicy(ctx, maxRetries), notify)
}

// insertWithRetry 는 클라이언트가 _id 를 정하는 문서 삽입용이다.
// 이전 시도가 실제로는 반영된 뒤 네트워크 오류가 난 경우 재시도는 중복 키로 실패하므로
// 첫 시도 이후의 중복 키 오류는 성공으로 간주한다.
func insertWithRetry(ctx context.Context, col *mongo.Collection, maxRetries int, doc any) error {
	attempt := 0
	return withRetry(ctx, maxRetries, "insert "+col.Name(), func(ctx context.Context) error {
		attempt++
		_, err := col.InsertOne(ctx, doc)
		if err != nil && attempt > 1 && mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	})
}
