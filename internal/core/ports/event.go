package ports

import (
	"context"

	"github.com/intelicop/console/internal/core/domain"
)

type MeetingEventPublisher interface {
	PublishMeetingEvent(ctx context.Context, evt domain.MeetingEvent) error
}
