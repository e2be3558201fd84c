package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/canonical"
)

// errIdempotencyRace signals that a concurrent request committed the same key first.
var errIdempotencyRace = errors.New("idempotency key inserted concurrently")

// IdempotencyLedger runs units of work at most once per idempotency key and
// caches their JSON result in the same transaction as the work itself.
type IdempotencyLedger struct {
	BaseService
	txManager portsrepo.TransactionManager
	now       Clock
}

// NewIdempotencyLedger creates an IdempotencyLedger.
func NewIdempotencyLedger(txManager portsrepo.TransactionManager, now Clock) *IdempotencyLedger {
	return &IdempotencyLedger{txManager: txManager, now: now}
}

// replayInfo describes where a result came from and its stored JSON form.
type replayInfo struct {
	Replayed   bool
	Body       []byte
	StatusCode int
}

// runIdempotent executes run inside one transaction. With an empty token the
// work always runs. Otherwise a stored record with the same request hash is
// replayed without running anything, and one with a different hash fails with
// ErrIdempotencyConflict.
func runIdempotent[T any](
	ctx context.Context,
	l *IdempotencyLedger,
	key domain.IdempotencyKey,
	payload any,
	run func(ctx context.Context, tx portsrepo.TxStore) (T, error),
) (T, replayInfo, error) {
	var zero T

	if key.Token == "" {
		var out T
		err := l.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
			v, err := run(ctx, tx)
			if err != nil {
				return err
			}
			out = v
			return nil
		})
		if err != nil {
			return zero, replayInfo{}, err
		}
		body, err := json.Marshal(out)
		if err != nil {
			return zero, replayInfo{}, fmt.Errorf("encode result: %w", err)
		}
		return out, replayInfo{Body: body, StatusCode: http.StatusOK}, nil
	}

	requestHash, err := canonical.Hash(payload)
	if err != nil {
		return zero, replayInfo{}, fmt.Errorf("hash idempotent request: %w", err)
	}

	var (
		out  T
		info replayInfo
	)
	err = l.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		rec, err := tx.FindIdempotencyRecord(ctx, key)
		if err != nil {
			return fmt.Errorf("find idempotency record: %w", err)
		}
		if rec != nil {
			out, info, err = replayRecord[T](rec, requestHash)
			return err
		}

		v, err := run(ctx, tx)
		if err != nil {
			return err
		}
		body, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		record := domain.IdempotencyRecord{
			IdempotencyKey: key,
			RequestHash:    requestHash,
			Response:       body,
			StatusCode:     http.StatusOK,
			CreatedAt:      l.now(),
		}
		if err := tx.InsertIdempotencyRecord(ctx, record); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return errIdempotencyRace
			}
			return fmt.Errorf("insert idempotency record: %w", err)
		}
		out, info = v, replayInfo{Body: body, StatusCode: http.StatusOK}
		return nil
	})

	if errors.Is(err, errIdempotencyRace) {
		l.LogInfo(ctx, "Concurrent duplicate request detected, replaying committed result",
			slog.String("scope", key.Scope), slog.String("org_id", key.OrgID))
		err = l.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
			rec, err := tx.FindIdempotencyRecord(ctx, key)
			if err != nil {
				return fmt.Errorf("find idempotency record: %w", err)
			}
			if rec == nil {
				return fmt.Errorf("%w: idempotency record missing after duplicate insert", apperrors.ErrInternal)
			}
			out, info, err = replayRecord[T](rec, requestHash)
			return err
		})
	}
	if err != nil {
		return zero, replayInfo{}, err
	}
	return out, info, nil
}

func replayRecord[T any](rec *domain.IdempotencyRecord, requestHash string) (T, replayInfo, error) {
	var out T
	if rec.RequestHash != requestHash {
		return out, replayInfo{}, apperrors.ErrIdempotencyConflict
	}
	if err := json.Unmarshal(rec.Response, &out); err != nil {
		return out, replayInfo{}, fmt.Errorf("%w: decode stored response: %v", apperrors.ErrInternal, err)
	}
	return out, replayInfo{Replayed: true, Body: rec.Response, StatusCode: rec.StatusCode}, nil
}
