package fetcher

import (
	"context"
	"net/http"

	"github.com/dociq/ragforge/pkg/failure"
	"github.com/dociq/ragforge/pkg/retry"
)

type Fetcher interface {
	Init(httpClient *http.Client)
	Fetch(
		ctx context.Context,
		crawlDepth int,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
