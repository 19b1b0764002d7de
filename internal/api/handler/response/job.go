package response

import "studio/internal/api/models"

// TransitionResult reports an applied transition plus how many notifications
// it fanned out, for the UI confirmation toast.
type TransitionResult struct {
	Job           models.Job `json:"job"`
	Notifications int        `json:"notifications"`
}
