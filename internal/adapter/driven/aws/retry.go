package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

type retryPolicy struct {
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxAttempts: 3,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 8 * time.Second
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

// withRetry executa call e repete apenas erros de throttling, com backoff exponencial.
// Toda falha volta como *types.RemoteServiceError.
func (r *AWSRepositoryImpl) withRetry(ctx context.Context, op string, call func() error) error {
	operation := func() error {
		err := call()
		if err == nil {
			return nil
		}
		if !isThrottleError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	retries := 0
	if r.retry.maxAttempts > 1 {
		retries = r.retry.maxAttempts - 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(r.retry.newBackOff(), uint64(retries)), ctx)

	notify := func(err error, wait time.Duration) {
		if r.console != nil {
			r.console.LogWarning("%s throttled, retrying in %s: %v", op, wait.Round(time.Millisecond), err)
		}
	}

	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return wrapRemoteError(op, err)
	}
	return nil
}

func isThrottleError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	if _, ok := retry.DefaultThrottleErrorCodes[code]; ok {
		return true
	}
	// Cost Explorer sinaliza o limite de requisições assim.
	return code == "LimitExceededException"
}

func wrapRemoteError(op string, err error) error {
	var existing *types.RemoteServiceError
	if errors.As(err, &existing) {
		return err
	}
	rse := &types.RemoteServiceError{Op: op, Err: err, Throttled: isThrottleError(err)}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		rse.Code = apiErr.ErrorCode()
	}
	return rse
}

func pageLimitError(op string, maxPages int) error {
	return &types.RemoteServiceError{Op: op, Err: fmt.Errorf("result still truncated after %d pages", maxPages)}
}
