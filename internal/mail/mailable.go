// Package mail renders transactional emails into the shared HTML layout and
// delivers them asynchronously through a pluggable transport.
package mail

import "time"

// Mailable is a fixed-shape email payload. The value itself is the template
// data.
type Mailable interface {
	Subject() string
	Template() string
}

type Welcome struct {
	Name string
}

func (Welcome) Subject() string  { return "Welcome to Gidia" }
func (Welcome) Template() string { return "welcome" }

type GoalAchieved struct {
	Name     string
	Goal     string
	Achieved int
	Target   int
	Unit     string
	Date     time.Time
}

func (m GoalAchieved) Subject() string { return "You hit your " + m.Goal + " goal!" }
func (GoalAchieved) Template() string  { return "goal_achieved" }

type PaymentFailed struct {
	Name     string
	Plan     string
	Amount   string
	FailedAt time.Time
	Reason   string
}

func (PaymentFailed) Subject() string  { return "Your payment didn't go through" }
func (PaymentFailed) Template() string { return "payment_failed" }

type PaymentUpcoming struct {
	Name       string
	Plan       string
	Amount     string
	ChargeDate time.Time
}

func (PaymentUpcoming) Subject() string  { return "Your subscription renews soon" }
func (PaymentUpcoming) Template() string { return "payment_upcoming" }

type RefundProcessed struct {
	Name        string
	Amount      string
	Reference   string
	ProcessedAt time.Time
}

func (RefundProcessed) Subject() string  { return "Your refund has been processed" }
func (RefundProcessed) Template() string { return "refund_processed" }

type PlatformUpdate struct {
	Name       string
	Title      string
	Body       string
	Highlights []string
	LinkURL    string
}

func (m PlatformUpdate) Subject() string { return m.Title }
func (PlatformUpdate) Template() string  { return "platform_update" }

type ProgressUpdate struct {
	Name         string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	DaysLogged   int
	AvgCalories  int
	CalorieGoal  int
	AvgWaterML   int
	WaterGoal    int
	WeightChange *float64
}

func (ProgressUpdate) Subject() string  { return "Your weekly progress" }
func (ProgressUpdate) Template() string { return "progress_update" }

// CaloriePercent is average intake over goal, 0 when no goal is set.
func (m ProgressUpdate) CaloriePercent() int {
	if m.CalorieGoal <= 0 {
		return 0
	}
	return m.AvgCalories * 100 / m.CalorieGoal
}

type AccountDeleted struct {
	Name      string
	DeletedAt time.Time
}

func (AccountDeleted) Subject() string  { return "Your Gidia account has been deleted" }
func (AccountDeleted) Template() string { return "account_deleted" }

type NewFollower struct {
	Name         string
	FollowerName string
	ProfileURL   string
}

func (m NewFollower) Subject() string { return m.FollowerName + " started following you" }
func (NewFollower) Template() string  { return "new_follower" }

// templates lists every mailable template; NewRenderer parses all of them
// up front.
var templates = []string{
	Welcome{}.Template(),
	GoalAchieved{}.Template(),
	PaymentFailed{}.Template(),
	PaymentUpcoming{}.Template(),
	RefundProcessed{}.Template(),
	PlatformUpdate{}.Template(),
	ProgressUpdate{}.Template(),
	AccountDeleted{}.Template(),
	NewFollower{}.Template(),
}
