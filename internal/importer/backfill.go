package importer

import (
	"context"
	"runtime"
	"sync"

	"agencycore/bankimport/internal/models"
)

// BackfillAliases writes a batch of confirmed aliases with bounded
// parallelism, protecting the persistence layer from write storms after a
// large review session. Store writes are idempotent, so retrying a partially
// failed batch is safe. The first write error is returned after the batch
// drains; ctx cancellation stops dispatching further work.
func (s *Service) BackfillAliases(ctx context.Context, confirmations []models.Alias, workers int) error {
	if s.aliases == nil || len(confirmations) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(confirmations) {
		workers = len(confirmations)
	}

	work := make(chan models.Alias)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for alias := range work {
				if err := s.aliases.Put(alias.BankName, alias.BankBIN, alias.ClientID); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

	for _, alias := range confirmations {
		select {
		case work <- alias:
		case <-ctx.Done():
			close(work)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(work)
	wg.Wait()

	if firstErr != nil {
		log.WithError(firstErr).Warn("Alias backfill completed with errors")
	}
	return firstErr
}
