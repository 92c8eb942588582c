package http

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/strandplatform/strand-go/pkg/env"
)

type ClientFactory struct {
	baseOpts []ClientOption
}

func NewClientFactory(opts ...ClientOption) ClientFactory {
	return ClientFactory{
		baseOpts: opts,
	}
}

func (f ClientFactory) InitClient(dest Destination, baseURL string, extraOpts ...ClientOption) Client {
	opts := make([]ClientOption, 0, len(extraOpts)+1)
	opts = append(opts, WithClientDestination(string(dest), baseURL))
	opts = append(opts, extraOpts...)

	return f.httpClient(opts...)
}

func (f ClientFactory) InitRawClient(extraOpts ...ClientOption) Client {
	return f.httpClient(extraOpts...)
}

// MustInitClient resolves the destination base URL from the
// <DESTINATION>_SERVICE_URL environment variable and panics when it is unset.
func (f ClientFactory) MustInitClient(dest Destination, extraOpts ...ClientOption) Client {
	hostEnv := fmt.Sprintf("%s_SERVICE_URL", strcase.ToScreamingSnake(string(dest)))
	host := env.Must(env.Parse[string](hostEnv))

	return f.InitClient(dest, host, extraOpts...)
}

func (f ClientFactory) httpClient(extraOpts ...ClientOption) Client {
	opts := make([]ClientOption, 0, len(f.baseOpts)+len(extraOpts))
	opts = append(opts, f.baseOpts...)
	opts = append(opts, extraOpts...)

	return NewClient(opts...)
}
