package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrQueryFailed         = errs.New("reservation query failed")
)

type ReservationReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListRecent(ctx context.Context, limit int32) ([]*ReservationListItem, error)
}

type RuleReadStore interface {
	ListAll(ctx context.Context) ([]*RuleView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListRecent(ctx context.Context, limit int) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListRecent(ctx context.Context, limit int) ([]*ReservationListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.store.ListRecent(ctx, int32(limit))
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rows, nil
}

type RuleQueries interface {
	List(ctx context.Context) ([]*RuleView, error)
}

type ruleQueriesImpl struct {
	store RuleReadStore
}

func NewRuleQueries(store RuleReadStore) RuleQueries {
	return &ruleQueriesImpl{store: store}
}

func (q *ruleQueriesImpl) List(ctx context.Context) ([]*RuleView, error) {
	rows, err := q.store.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rows, nil
}
