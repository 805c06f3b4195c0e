package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// SharingService defines the primary port for board membership.
type SharingService interface {
	// CreateInvite issues an invite code for a board.
	CreateInvite(ctx context.Context, boardID string) (*models.Invite, error)

	// JoinBoard redeems an invite code for the acting user.
	JoinBoard(ctx context.Context, code string) (string, error)

	// ListMembers lists the members of a board.
	ListMembers(ctx context.Context, boardID string) ([]*models.Member, error)

	// RemoveMember removes a non-owner member.
	RemoveMember(ctx context.Context, boardID, userID string) error
}
