package service

import (
	"context"
	"testing"
	"time"

	mock_repository "etfoptimizer/internal/repository/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_ingestServiceHandler_IngestMany(t *testing.T) {
	t.Run("returns once the context is cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// no EXPECTs: cancelled jobs must never reach the repository
		handler := NewIngestService(mock_repository.NewMockEtfHistoryRepository(ctrl))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan error, 1)
		go func() {
			done <- handler.IngestMany(ctx, nil, map[string]string{
				"IE0001": "VWCE.DE",
				"IE0002": "IWDA.AS",
				"IE0003": "VUSA.AS",
			}, time.Now().AddDate(-1, 0, 0))
		}()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("IngestMany did not return after cancellation")
		}
	})

	t.Run("empty symbol map is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewIngestService(mock_repository.NewMockEtfHistoryRepository(ctrl))
		require.NoError(t, handler.IngestMany(context.Background(), nil, nil, time.Now()))
	})
}
