package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/kanban/internal/ctxutil"
	coreboard "github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// inviteCodeLength is the number of hex characters of an invite code.
const inviteCodeLength = 12

// SharingServiceImpl implements the SharingService interface.
type SharingServiceImpl struct {
	boardRepo secondary.BoardRepository
	changes   changeRecorder
}

// NewSharingService creates a new SharingService with injected dependencies.
func NewSharingService(boardRepo secondary.BoardRepository, logWriter secondary.LogWriter, logger *zap.Logger) *SharingServiceImpl {
	return &SharingServiceImpl{
		boardRepo: boardRepo,
		changes:   newChangeRecorder(logWriter, logger),
	}
}

// newInviteCode derives a short code from a random UUID.
func newInviteCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:inviteCodeLength]
}

// CreateInvite issues an invite code for a board. The caller must be a member.
func (s *SharingServiceImpl) CreateInvite(ctx context.Context, boardID string) (*models.Invite, error) {
	userID := ctxutil.UserOrLocal(ctx)
	if err := s.requireMember(ctx, boardID, userID); err != nil {
		return nil, err
	}

	record := &secondary.InviteRecord{
		Code:      newInviteCode(),
		BoardID:   boardID,
		CreatedBy: userID,
	}
	if err := s.boardRepo.CreateInvite(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	return &models.Invite{
		Code:      record.Code,
		BoardID:   record.BoardID,
		CreatedBy: record.CreatedBy,
		CreatedAt: record.CreatedAt,
	}, nil
}

// JoinBoard redeems an invite code for the acting user. Joining twice is a no-op.
func (s *SharingServiceImpl) JoinBoard(ctx context.Context, code string) (string, error) {
	invite, err := s.boardRepo.GetInvite(ctx, strings.TrimSpace(code))
	if err != nil {
		return "", err
	}

	userID := ctxutil.UserOrLocal(ctx)
	if _, err := s.boardRepo.GetMember(ctx, invite.BoardID, userID); err == nil {
		return invite.BoardID, nil
	} else if !isNotFound(err) {
		return "", fmt.Errorf("failed to check membership: %w", err)
	}

	if err := s.boardRepo.AddMember(ctx, &secondary.MemberRecord{
		BoardID: invite.BoardID,
		UserID:  userID,
		Role:    models.RoleMember,
	}); err != nil {
		return "", fmt.Errorf("failed to join board: %w", err)
	}

	s.changes.created(ctx, invite.BoardID, models.EntityMember, userID)
	return invite.BoardID, nil
}

// ListMembers lists the members of a board.
func (s *SharingServiceImpl) ListMembers(ctx context.Context, boardID string) ([]*models.Member, error) {
	if _, err := s.boardRepo.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	records, err := s.boardRepo.ListMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	members := make([]*models.Member, len(records))
	for i, r := range records {
		members[i] = recordToMember(r)
	}
	return members, nil
}

// RemoveMember removes a non-owner member. Only the owner may remove someone
// else; any member may remove themselves.
func (s *SharingServiceImpl) RemoveMember(ctx context.Context, boardID, userID string) error {
	member, err := s.boardRepo.GetMember(ctx, boardID, userID)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to get member: %w", err)
	}

	callerID := ctxutil.UserOrLocal(ctx)
	caller, err := s.boardRepo.GetMember(ctx, boardID, callerID)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to get member: %w", err)
	}

	guardCtx := coreboard.RemoveMemberContext{
		BoardID:  boardID,
		UserID:   userID,
		IsMember: member != nil,
		CallerID: callerID,
	}
	if member != nil {
		guardCtx.TargetRole = member.Role
	}
	if caller != nil {
		guardCtx.CallerRole = caller.Role
	}
	if r := coreboard.CanRemoveMember(guardCtx); !r.Allowed {
		if member == nil {
			return missing(r.Reason)
		}
		return forbidden(r.Reason)
	}

	if err := s.boardRepo.RemoveMember(ctx, boardID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	s.changes.deleted(ctx, boardID, models.EntityMember, userID)
	return nil
}

func (s *SharingServiceImpl) requireMember(ctx context.Context, boardID, userID string) error {
	if _, err := s.boardRepo.GetByID(ctx, boardID); err != nil {
		return err
	}
	_, err := s.boardRepo.GetMember(ctx, boardID, userID)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	r := coreboard.CanAccessBoard(coreboard.MembershipContext{
		BoardID:  boardID,
		UserID:   userID,
		IsMember: err == nil,
	})
	if !r.Allowed {
		return forbidden(r.Reason)
	}
	return nil
}

// Ensure SharingServiceImpl implements the interface
var _ primary.SharingService = (*SharingServiceImpl)(nil)
