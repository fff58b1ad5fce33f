package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Trigger requests a recommendation refresh. uuid.Nil means every student.
type Trigger interface {
	RequestRefresh(ctx context.Context, userID uuid.UUID, reason string) error
}

// InProcessTrigger runs refreshes on a background goroutine of the current
// process. It is used when no message queue is configured.
type InProcessTrigger struct {
	service *Service
	timeout time.Duration
	log     logrus.FieldLogger
	wg      sync.WaitGroup
}

// NewInProcessTrigger creates a trigger bound to service. Each refresh runs
// with its own timeout, detached from the request that caused it.
func NewInProcessTrigger(service *Service, timeout time.Duration, log logrus.FieldLogger) *InProcessTrigger {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &InProcessTrigger{service: service, timeout: timeout, log: log}
}

// RequestRefresh schedules the refresh and returns immediately
func (t *InProcessTrigger) RequestRefresh(_ context.Context, userID uuid.UUID, reason string) error {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		entry := t.log.WithFields(logrus.Fields{"user_id": userID, "reason": reason})
		if err := t.service.Handle(ctx, userID); err != nil {
			entry.WithError(err).Error("background refresh failed")
			return
		}
		entry.Debug("background refresh done")
	}()
	return nil
}

// Wait blocks until every scheduled refresh has finished.
func (t *InProcessTrigger) Wait() {
	t.wg.Wait()
}

// Handle refreshes one student, or all of them when userID is uuid.Nil.
// It is the handler the queue worker runs for each refresh event.
func (s *Service) Handle(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		_, err := s.RefreshAll(ctx)
		return err
	}
	_, err := s.Refresh(ctx, userID)
	return err
}
