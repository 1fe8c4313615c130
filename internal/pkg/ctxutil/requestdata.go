package ctxutil

import (
	"context"

	"github.com/fitbridge/fitbridge-backend/internal/auth"
	types "github.com/fitbridge/fitbridge-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData carries the verified caller through the request context:
// the token identity and the resolved application user.
type RequestData struct {
	Identity *auth.Identity
	User     *types.User
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	rd, ok := val.(*RequestData)
	if !ok {
		return nil
	}
	return rd
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
