package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/strandplatform/strand-go/pkg/log"
	"github.com/strandplatform/strand-go/pkg/metric"
	"github.com/strandplatform/strand-go/pkg/observability"
)

const DefaultRequestIDHeader = "X-Request-ID"

type (
	Destination string

	ClientOption func(*ClientImpl)

	Client interface {
		NewRequest(ctx context.Context) *resty.Request
		With(opts ...ClientOption) Client
	}
)

type ClientImpl struct {
	DestinationName string
	RESTClient      *resty.Client
	opts            []ClientOption
}

func NewClient(opts ...ClientOption) Client {
	client := ClientImpl{
		DestinationName: "",
		RESTClient:      resty.New(),
		opts:            opts,
	}

	for _, opt := range opts {
		opt(&client)
	}

	return client
}

func (c ClientImpl) NewRequest(ctx context.Context) *resty.Request {
	return c.RESTClient.NewRequest().SetContext(ctx)
}

func (c ClientImpl) With(opts ...ClientOption) Client {
	mergedOpts := make([]ClientOption, 0, len(c.opts)+len(opts))
	mergedOpts = append(mergedOpts, c.opts...)
	mergedOpts = append(mergedOpts, opts...)
	return NewClient(mergedOpts...)
}

func WithClientDestination(name, url string) ClientOption {
	return func(c *ClientImpl) {
		c.DestinationName = name
		c.RESTClient.SetBaseURL(url)
	}
}

func WithClientBaseURL(url string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetBaseURL(url)
	}
}

func WithRequestHeader(name, value string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetHeader(name, value)
	}
}

// WithRequestID stamps each outgoing request with the request ID from the
// context, or a fresh one when the context carries none.
func WithRequestID(observer observability.Observer, requestIDHeaderName string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			id, ok := observer.RequestID(req.Context())
			if !ok {
				id = uuid.New().String()
			}

			req.SetHeader(requestIDHeaderName, id)
			return nil
		})
	}
}

func WithRequestLogging(logger log.Logger, infoLevel, errorLevel log.Level) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			requestLogger := logger.With(responseLogFields(c, resp))

			if resp.StatusCode() >= http.StatusInternalServerError {
				requestLogger.Log(resp.Request.Context(), errorLevel, "http call completed with internal error")
			} else {
				requestLogger.Log(resp.Request.Context(), infoLevel, "http call completed")
			}

			return nil
		})

		c.RESTClient.OnError(func(req *resty.Request, err error) {
			logger.
				With(requestLogFields(c, req)).
				WithError(err).
				Log(req.Context(), errorLevel, "http call completed with error")
		})
	}
}

func WithRequestMetrics(metrics metric.Metrics) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			metrics.With(metric.Labels{
				"destination": destinationNameForLogging(c),
				"method":      resp.Request.Method,
				"code":        fmt.Sprintf("%d", resp.StatusCode()),
			}).Duration("http_client_request_duration_seconds", resp.Time())
			return nil
		})
	}
}

func requestLogFields(c *ClientImpl, req *resty.Request) log.Fields {
	fields := log.Fields{
		"destinationName": destinationNameForLogging(c),
		"method":          req.Method,
		"url":             req.URL,
	}
	return log.Fields{"httpRequest": fields}
}

func responseLogFields(c *ClientImpl, resp *resty.Response) log.Fields {
	fields := log.Fields{
		"destinationName": destinationNameForLogging(c),
		"method":          resp.Request.Method,
		"url":             resp.Request.URL,
		"responseCode":    resp.StatusCode(),
	}
	return log.Fields{"httpRequest": fields}
}

func destinationNameForLogging(c *ClientImpl) string {
	if c.DestinationName != "" {
		return c.DestinationName
	}
	return "-"
}
