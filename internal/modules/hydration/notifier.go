package hydration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/google/uuid"
)

// GoalNotifier congratulates a user the first time each day their water
// total reaches the goal: one goal alert and one mail.
type GoalNotifier struct {
	alerts repository.AlertRepository
	users  repository.UserRepository
	mailer services.Mailer
}

func NewGoalNotifier(alerts repository.AlertRepository, users repository.UserRepository, mailer services.Mailer) *GoalNotifier {
	return &GoalNotifier{alerts: alerts, users: users, mailer: mailer}
}

// Crossed reports whether adding a log moved the total from below goal to at
// or above it.
func Crossed(before, after, goal int) bool {
	return before < goal && after >= goal
}

func (n *GoalNotifier) Reached(ctx context.Context, userID uuid.UUID, total, goal int, day time.Time) error {
	already, err := n.alerts.ExistsSince(ctx, userID, models.AlertTypeGoal, day)
	if err != nil {
		return fmt.Errorf("failed to check goal alerts: %w", err)
	}
	if already {
		return nil
	}

	alert := &models.Alert{
		UserID:  userID,
		Type:    models.AlertTypeGoal,
		Title:   "Water goal reached",
		Message: fmt.Sprintf("You drank %d ml today and hit your %d ml goal.", total, goal),
	}
	if err := n.alerts.Create(ctx, alert); err != nil {
		return fmt.Errorf("failed to create goal alert: %w", err)
	}

	user, err := n.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for goal mail: %w", err)
	}

	err = n.mailer.Queue(ctx, user.Email, mail.GoalAchieved{
		Name:     user.Name,
		Goal:     "water",
		Achieved: total,
		Target:   goal,
		Unit:     "ml",
		Date:     day,
	})
	if err != nil {
		slog.Warn("goal mail not queued", "user_id", userID.String(), "error", err)
	}
	return nil
}
