package members

import (
	"time"

	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
)

// NotifierGW dispatches member notifications. All methods enqueue delivery on
// a background task and return immediately; delivery failures stay inside the
// gateway and are only logged.
type NotifierGW interface {
	NotifyTransferOTP(sender *models.Member, recipient *models.Member, otp *models.TransferOTP, ttl time.Duration)
	NotifyTransferCompleted(result *models.TransferResult)
}
