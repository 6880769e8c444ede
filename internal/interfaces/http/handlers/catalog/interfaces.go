package catalog

import (
	"context"

	"gately/internal/application/catalog/usecases"
)

type ListEventsExecutor interface {
	Execute(ctx context.Context) (*usecases.ListEventsResult, error)
}

type GetEventExecutor interface {
	Execute(ctx context.Context, query usecases.GetEventQuery) (*usecases.EventDetail, error)
}
