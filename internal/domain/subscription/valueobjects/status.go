package valueobjects

type SubscriptionStatus string

const (
	StatusPending   SubscriptionStatus = "pending"
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusSuspended SubscriptionStatus = "suspended"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:   true,
	StatusTrial:     true,
	StatusActive:    true,
	StatusSuspended: true,
	StatusCancelled: true,
	StatusExpired:   true,
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

func (s SubscriptionStatus) CanUseService() bool {
	return s == StatusActive || s == StatusTrial
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusPending:   {StatusActive, StatusTrial, StatusCancelled, StatusExpired},
		StatusTrial:     {StatusActive, StatusCancelled, StatusExpired},
		StatusActive:    {StatusSuspended, StatusCancelled, StatusExpired},
		StatusSuspended: {StatusActive, StatusCancelled, StatusExpired},
		StatusCancelled: {},
		StatusExpired:   {StatusActive},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}
	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}
