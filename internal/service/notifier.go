package service

import (
	"context"
	"log"
	"time"

	"sunescape/internal/models"
	"sunescape/internal/repository"
)

// notifyTimeout bounds each background notification fan-out.
const notifyTimeout = 30 * time.Second

// Notifier fans application events out to email and push, best-effort.
// Every method returns immediately; delivery runs in a goroutine and
// failures are logged, never surfaced to the request that caused them.
type Notifier struct {
	users *repository.UserRepository
	email *EmailService
	push  *PushService
}

// NewNotifier creates a notifier over the given channels
func NewNotifier(users *repository.UserRepository, email *EmailService, push *PushService) *Notifier {
	return &Notifier{users: users, email: email, push: push}
}

// InviteBroadcast announces a new open stay to every member except the
// one who created it.
func (n *Notifier) InviteBroadcast(creator *models.User, res *models.Reservation) {
	creatorName := creator.DisplayName()
	go n.run("invite broadcast", func(ctx context.Context) {
		sent, failed := 0, 0
		users, err := n.users.ListUsers()
		if err != nil {
			log.Printf("Notification fan-out failed to list users: %v", err)
			return
		}
		for _, u := range users {
			if u.ID == creator.ID {
				continue
			}
			err := n.email.SendInviteEmail(ctx, u.Email, u.DisplayName(), creatorName, res.StartDate, res.EndDate)
			if err != nil {
				log.Printf("Invite email to %s failed: %v", u.Email, err)
				failed++
			} else {
				sent++
			}
		}
		n.pushExcluding(creator.ID,
			"New stay at the house",
			creatorName+" booked "+res.StartDate+" to "+res.EndDate+" and invited everyone.")
		log.Printf("Invite broadcast done: sent=%d failed=%d", sent, failed)
	})
}

// InviteAccepted tells the invite's creator that someone is coming
func (n *Notifier) InviteAccepted(responder *models.User, creator *models.User, res *models.Reservation, rooms int) {
	responderName := responder.DisplayName()
	go n.run("invite accepted", func(ctx context.Context) {
		err := n.email.SendInviteAcceptedEmail(ctx, creator.Email, creator.DisplayName(), responderName, res.StartDate, res.EndDate, rooms)
		if err != nil {
			log.Printf("Invite-accepted email to %s failed: %v", creator.Email, err)
		}
		n.pushToUser(creator.ID,
			responderName+" is coming",
			responderName+" accepted your invite for "+res.StartDate+" to "+res.EndDate+".")
	})
}

// JoinRequested tells a reservation's owner a join request came in
func (n *Notifier) JoinRequested(owner *models.User, req *models.JoinRequest) {
	go n.run("join requested", func(ctx context.Context) {
		err := n.email.SendJoinRequestEmail(ctx, owner.Email, owner.DisplayName(), req.RequesterName, req.StartDate, req.EndDate, req.RoomsNeeded)
		if err != nil {
			log.Printf("Join-request email to %s failed: %v", owner.Email, err)
		}
		n.pushToUser(owner.ID,
			req.RequesterName+" wants to join",
			req.RequesterName+" asked to join your stay "+req.StartDate+" to "+req.EndDate+".")
	})
}

// JoinDecided tells the requester whether they are in
func (n *Notifier) JoinDecided(requester *models.User, req *models.JoinRequest, approved bool) {
	go n.run("join decided", func(ctx context.Context) {
		err := n.email.SendJoinDecisionEmail(ctx, requester.Email, requester.DisplayName(), req.StartDate, req.EndDate, approved)
		if err != nil {
			log.Printf("Join-decision email to %s failed: %v", requester.Email, err)
		}
		verdict := "approved"
		if !approved {
			verdict = "denied"
		}
		n.pushToUser(requester.ID,
			"Your join request was "+verdict,
			"Stay "+req.StartDate+" to "+req.EndDate+": request "+verdict+".")
	})
}

// Welcome greets a new member by email
func (n *Notifier) Welcome(user *models.User) {
	email, name := user.Email, user.DisplayName()
	go n.run("welcome", func(ctx context.Context) {
		if err := n.email.SendWelcomeEmail(ctx, email, name); err != nil {
			log.Printf("Welcome email to %s failed: %v", email, err)
		}
	})
}

// PasswordReset mails a reset link. Unlike the event methods this one is
// synchronous so the login flow can tell the user whether mail went out.
func (n *Notifier) PasswordReset(ctx context.Context, user *models.User, token string) error {
	return n.email.SendPasswordResetEmail(ctx, user.Email, user.DisplayName(), token)
}

// run executes one fan-out under the shared timeout, recovering from
// panics so a bad payload can never take the server down.
func (n *Notifier) run(event string, fn func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Notification fan-out panic (%s): %v", event, r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	fn(ctx)
}

// pushExcluding pushes to every subscription except the given user's
func (n *Notifier) pushExcluding(excludeUserID int64, title, body string) {
	n.pushWhere(title, body, func(sub *models.PushSubscription) bool {
		return sub.UserID != excludeUserID
	})
}

// pushToUser pushes to one user's subscriptions only
func (n *Notifier) pushToUser(userID int64, title, body string) {
	n.pushWhere(title, body, func(sub *models.PushSubscription) bool {
		return sub.UserID == userID
	})
}

func (n *Notifier) pushWhere(title, body string, keep func(*models.PushSubscription) bool) {
	if !n.push.IsEnabled() {
		return
	}
	subs, err := n.users.ListPushSubscriptions()
	if err != nil {
		log.Printf("Push fan-out failed to list subscriptions: %v", err)
		return
	}
	sent, failed := 0, 0
	for _, sub := range subs {
		if !keep(sub) {
			continue
		}
		gone, err := n.push.Send(sub, title, body)
		if gone {
			// Browser dropped the subscription; forget it
			if delErr := n.users.DeletePushSubscription(sub.Endpoint); delErr != nil {
				log.Printf("Failed to prune dead push subscription: %v", delErr)
			}
			continue
		}
		if err != nil {
			log.Printf("Push send failed: %v", err)
			failed++
		} else {
			sent++
		}
	}
	if sent > 0 || failed > 0 {
		log.Printf("Push fan-out done: sent=%d failed=%d", sent, failed)
	}
}
