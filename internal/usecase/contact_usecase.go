package usecase

import (
	"context"
	"time"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/internal/infrastructure/subscription"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

// Contact is a counterpart user the session is allowed to message, decorated
// with presence and conversation state for the contact list.
type Contact struct {
	UserID        string    `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	Role          string    `json:"role"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	OrphanageID   string    `json:"orphanage_id,omitempty"`
	OrphanageName string    `json:"orphanage_name,omitempty"`
	Online        bool      `json:"online"`
	LastSeen      time.Time `json:"last_seen"`
	ChatID        string    `json:"chat_id"`
	LastMessage   string    `json:"last_message,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
	Unread        int       `json:"unread"`
}

// ContactUseCase discovers, per role, the set of users the current session
// may chat with, and resolves one conversation per contact.
type ContactUseCase struct {
	userRepo      repository.UserRepository
	orphanageRepo repository.OrphanageRepository
	paymentRepo   repository.PaymentRepository
	chatRepo      repository.ChatRepository
}

func NewContactUseCase(
	userRepo repository.UserRepository,
	orphanageRepo repository.OrphanageRepository,
	paymentRepo repository.PaymentRepository,
	chatRepo repository.ChatRepository,
) *ContactUseCase {
	return &ContactUseCase{
		userRepo:      userRepo,
		orphanageRepo: orphanageRepo,
		paymentRepo:   paymentRepo,
		chatRepo:      chatRepo,
	}
}

// ResolveContacts builds the contact list for the session. Counterparts are
// deduplicated by user ID no matter how many relationships they share with
// the caller. Any query failure yields an empty list plus the error.
func (uc *ContactUseCase) ResolveContacts(ctx context.Context, session *Session) ([]*Contact, error) {
	var (
		users          []*entity.User
		orphanageNames map[string]string // keyed by counterpart user ID
		err            error
	)

	switch session.Role {
	case entity.RoleDonor:
		users, orphanageNames, err = uc.donorContacts(ctx, session.UserID)
	case entity.RoleAdmin:
		users, orphanageNames, err = uc.adminContacts(ctx, session.UserID)
	case entity.RoleVolunteer:
		users, orphanageNames, err = uc.volunteerContacts(ctx, session.UserID)
	default:
		return nil, errors.BadRequest("Unknown role", nil)
	}
	if err != nil {
		logger.Error("Contact resolution failed for user %s (%s): %v", session.UserID, session.Role, err)
		return nil, err
	}

	seen := make(map[string]bool)
	var contacts []*Contact
	for _, user := range users {
		if user.ID == session.UserID || seen[user.ID] {
			continue
		}
		if user.Status == entity.UserStatusDismissed {
			continue
		}
		seen[user.ID] = true

		chat, err := uc.chatRepo.GetOrCreate(ctx, session.UserID, user.ID)
		if err != nil {
			return nil, err
		}

		contacts = append(contacts, &Contact{
			UserID:        user.ID,
			DisplayName:   user.DisplayName,
			Role:          user.Role,
			PhotoURL:      user.PhotoURL,
			OrphanageID:   user.OrphanageID,
			OrphanageName: orphanageNames[user.ID],
			Online:        user.Online,
			LastSeen:      user.LastSeen,
			ChatID:        chat.ID,
			LastMessage:   chat.LastMessage,
			LastMessageAt: chat.LastMessageAt,
			Unread:        chat.UnreadCount[session.UserID],
		})
	}

	return contacts, nil
}

// donorContacts: admins of every orphanage the donor has paid or sponsored,
// plus fellow donors of those orphanages.
func (uc *ContactUseCase) donorContacts(ctx context.Context, donorID string) ([]*entity.User, map[string]string, error) {
	payments, err := uc.paymentRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, nil, err
	}

	orphanageIDSet := make(map[string]bool)
	for _, p := range payments {
		if p.OrphanageID != "" {
			orphanageIDSet[p.OrphanageID] = true
		}
	}
	if len(orphanageIDSet) == 0 {
		return nil, nil, nil
	}

	orphanageIDs := make([]string, 0, len(orphanageIDSet))
	for id := range orphanageIDSet {
		orphanageIDs = append(orphanageIDs, id)
	}

	orphanages, err := uc.orphanageRepo.GetByIDs(ctx, orphanageIDs)
	if err != nil {
		return nil, nil, err
	}

	adminIDs := make([]string, 0, len(orphanages))
	adminOrphanage := make(map[string]string)
	for _, o := range orphanages {
		if o.AdminID == "" {
			continue
		}
		adminIDs = append(adminIDs, o.AdminID)
		adminOrphanage[o.AdminID] = o.Name
	}

	var users []*entity.User
	if len(adminIDs) > 0 {
		admins, err := uc.userRepo.GetByIDs(ctx, adminIDs)
		if err != nil {
			return nil, nil, err
		}
		users = append(users, admins...)
	}

	// Fellow donors of the same orphanages.
	sharedPayments, err := uc.paymentRepo.ListByOrphanages(ctx, orphanageIDs)
	if err != nil {
		return nil, nil, err
	}

	donorIDSet := make(map[string]bool)
	for _, p := range sharedPayments {
		if p.DonorID != "" && p.DonorID != donorID {
			donorIDSet[p.DonorID] = true
		}
	}
	if len(donorIDSet) > 0 {
		donorIDs := make([]string, 0, len(donorIDSet))
		for id := range donorIDSet {
			donorIDs = append(donorIDs, id)
		}
		donors, err := uc.userRepo.GetByIDs(ctx, donorIDs)
		if err != nil {
			return nil, nil, err
		}
		users = append(users, donors...)
	}

	return users, adminOrphanage, nil
}

// adminContacts: every other admin, plus donors and volunteers tied to this
// admin's orphanage.
func (uc *ContactUseCase) adminContacts(ctx context.Context, adminID string) ([]*entity.User, map[string]string, error) {
	admins, err := uc.userRepo.ListByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}

	users := make([]*entity.User, 0, len(admins))
	users = append(users, admins...)
	orphanageNames := make(map[string]string)

	orphanage, err := uc.orphanageRepo.GetByAdminID(ctx, adminID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			// Admin without an orphanage still sees other admins.
			return users, orphanageNames, nil
		}
		return nil, nil, err
	}

	payments, err := uc.paymentRepo.ListByOrphanage(ctx, orphanage.ID)
	if err != nil {
		return nil, nil, err
	}

	donorIDSet := make(map[string]bool)
	for _, p := range payments {
		if p.DonorID != "" {
			donorIDSet[p.DonorID] = true
		}
	}
	if len(donorIDSet) > 0 {
		donorIDs := make([]string, 0, len(donorIDSet))
		for id := range donorIDSet {
			donorIDs = append(donorIDs, id)
		}
		donors, err := uc.userRepo.GetByIDs(ctx, donorIDs)
		if err != nil {
			return nil, nil, err
		}
		users = append(users, donors...)
	}

	volunteers, err := uc.userRepo.ListByOrphanage(ctx, orphanage.ID, entity.RoleVolunteer)
	if err != nil {
		return nil, nil, err
	}
	users = append(users, volunteers...)

	return users, orphanageNames, nil
}

// volunteerContacts: the admins of the orphanage the volunteer is linked to.
func (uc *ContactUseCase) volunteerContacts(ctx context.Context, volunteerID string) ([]*entity.User, map[string]string, error) {
	volunteer, err := uc.userRepo.GetByID(ctx, volunteerID)
	if err != nil {
		return nil, nil, err
	}
	if volunteer.OrphanageID == "" {
		return nil, nil, nil
	}

	orphanage, err := uc.orphanageRepo.GetByID(ctx, volunteer.OrphanageID)
	if err != nil {
		return nil, nil, err
	}

	admin, err := uc.userRepo.GetByID(ctx, orphanage.AdminID)
	if err != nil {
		return nil, nil, err
	}

	return []*entity.User{admin}, map[string]string{admin.ID: orphanage.Name}, nil
}

// WatchContactPresence attaches one presence watch per contact and tracks
// every handle in the registry, so a refresh tears the previous set down
// before the next set is opened.
func (uc *ContactUseCase) WatchContactPresence(
	ctx context.Context,
	reg *subscription.Registry,
	contacts []*Contact,
	fn func(userID string, online bool, lastSeen time.Time),
) {
	for _, contact := range contacts {
		id := contact.UserID
		cancel, err := uc.userRepo.WatchPresence(ctx, id, func(online bool, lastSeen time.Time) {
			fn(id, online, lastSeen)
		})
		if err != nil {
			logger.Warn("Failed to watch presence for contact %s: %v", id, err)
			continue
		}
		reg.Track(cancel)
	}
}
