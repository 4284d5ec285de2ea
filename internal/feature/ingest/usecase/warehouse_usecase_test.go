package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twse_ingest/internal/feature/ingest/domain/entity"
)

func TestDeduplicationFilter_FilterNew(t *testing.T) {
	t.Parallel()

	existing := map[string]int64{"2025-01-02/2317": 1, "2025-01-02/0050": 3}
	wh := &mockWarehouse{CountExistingFunc: func(ctx context.Context, date, code string) (int64, error) {
		return existing[date+"/"+code], nil
	}}

	batch := []entity.StockRecord{
		record("2025-01-02", "2330"),
		record("2025-01-02", "2317"),
		record("2025-01-02", "2454"),
		record("2025-01-02", "0050"),
	}
	got, err := NewDeduplicationFilter(wh, nil).FilterNew(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, []entity.StockRecord{batch[0], batch[2]}, got)
	assert.Equal(t, []string{"2025-01-02/2330", "2025-01-02/2317", "2025-01-02/2454", "2025-01-02/0050"}, wh.countCalls)
}

func TestDeduplicationFilter_FilterNew_AllExisting(t *testing.T) {
	t.Parallel()

	wh := &mockWarehouse{CountExistingFunc: func(ctx context.Context, date, code string) (int64, error) {
		return 1, nil
	}}
	got, err := NewDeduplicationFilter(wh, nil).FilterNew(context.Background(),
		[]entity.StockRecord{record("2025-01-02", "2330")})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeduplicationFilter_FilterNew_QueryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bigquery: 403 forbidden")
	wh := &mockWarehouse{CountExistingFunc: func(ctx context.Context, date, code string) (int64, error) {
		if code == "2317" {
			return 0, boom
		}
		return 0, nil
	}}
	got, err := NewDeduplicationFilter(wh, nil).FilterNew(context.Background(), []entity.StockRecord{
		record("2025-01-02", "2330"),
		record("2025-01-02", "2317"),
		record("2025-01-02", "2454"),
	})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.Len(t, wh.countCalls, 2)
}

func TestPersister_Persist(t *testing.T) {
	t.Parallel()

	batch := []entity.StockRecord{record("2025-01-02", "2330"), record("2025-01-02", "2317")}

	tests := []struct {
		name          string
		insert        func(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error)
		wantSucceeded bool
		wantRowErrs   int
		wantErr       bool
	}{
		{
			name:          "no row errors",
			insert:        func(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error) { return nil, nil },
			wantSucceeded: true,
		},
		{
			name: "one row error fails the whole batch",
			insert: func(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error) {
				return []entity.RowError{{Index: 1, StockCode: "2317", Message: "invalid"}}, nil
			},
			wantSucceeded: false,
			wantRowErrs:   1,
		},
		{
			name: "call error is propagated",
			insert: func(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error) {
				return nil, errors.New("connection reset")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wh := &mockWarehouse{InsertRowsFunc: tt.insert}
			res, err := NewPersister(wh, nil).Persist(context.Background(), batch)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSucceeded, res.Succeeded)
			assert.Len(t, res.RowErrors, tt.wantRowErrs)
			require.Len(t, wh.inserted, 1, "a single bulk insert per batch")
			assert.Equal(t, batch, wh.inserted[0])
		})
	}
}

func TestDeduplicationFilter_FilterNew_ExistingKeyRemoved(t *testing.T) {
	t.Parallel()

	wh := &mockWarehouse{CountExistingFunc: func(ctx context.Context, date, code string) (int64, error) {
		if date == "2025-01-01" && code == "2330" {
			return 1, nil
		}
		return 0, nil
	}}
	batch := []entity.StockRecord{
		record("2025-01-01", "2317"),
		record("2025-01-01", "2330"),
		record("2025-01-01", "2454"),
	}
	got, err := NewDeduplicationFilter(wh, nil).FilterNew(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, []entity.StockRecord{batch[0], batch[2]}, got)
}
