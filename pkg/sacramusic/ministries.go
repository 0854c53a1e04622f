package sacramusic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/utils"
)

// inviteCodeAttempts is how many fresh codes CreateMinistry draws before
// giving up on a collision.
const inviteCodeAttempts = 5

// ---- ministries ----

// CreateMinistry creates a ministry owned by ownerUID, with the owner as its
// only member, and makes it the owner's current ministry.
func (s *sacraService) CreateMinistry(ctx context.Context, name, ownerUID string) (*models.Ministry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: ministry name is required", ErrInvalidRecord)
	}
	if ownerUID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidRecord)
	}

	code, err := s.freshInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	ministry := &models.Ministry{
		ID:         utils.GenerateUUID(),
		Name:       name,
		OwnerID:    ownerUID,
		InviteCode: code,
		Members:    []string{ownerUID},
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.storage.CreateMinistry(ctx, ministry); err != nil {
		return nil, fmt.Errorf("failed to create ministry: %w", err)
	}
	s.log.Infof("Created ministry %s (%s) owned by %s", ministry.ID, ministry.Name, ownerUID)
	return ministry, nil
}

func (s *sacraService) freshInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return "", fmt.Errorf("generating invite code: %w", err)
		}
		_, err = s.storage.FindMinistryByInviteCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking invite code: %w", err)
		}
		s.log.Debugf("Invite code %s already taken, retrying", code)
	}
	return "", errors.New("could not allocate a unique invite code")
}

// JoinMinistryByCode adds uid to the ministry with the given invite code and
// selects it as the user's current ministry. Codes are case-insensitive.
func (s *sacraService) JoinMinistryByCode(ctx context.Context, code, uid string) (*models.Ministry, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: user is required", ErrInvalidRecord)
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrInvalidInviteCode
	}

	ministry, err := s.storage.FindMinistryByInviteCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidInviteCode
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find ministry: %w", err)
	}

	if err := s.storage.AddMember(ctx, ministry.ID, uid); err != nil {
		return nil, fmt.Errorf("failed to join ministry: %w", err)
	}
	s.log.Infof("User %s joined ministry %s", uid, ministry.ID)
	return s.GetMinistry(ctx, ministry.ID)
}

func (s *sacraService) GetMinistry(ctx context.Context, id string) (*models.Ministry, error) {
	ministry, err := s.storage.GetMinistry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ministry: %w", err)
	}
	return ministry, nil
}

// MinistryMembers returns the profiles of the ministry's members in
// membership order. Members without a stored profile are skipped.
func (s *sacraService) MinistryMembers(ctx context.Context, ministryID string) ([]models.UserProfile, error) {
	ministry, err := s.GetMinistry(ctx, ministryID)
	if err != nil {
		return nil, err
	}
	profiles, err := s.storage.GetUsers(ctx, ministry.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	byUID := make(map[string]models.UserProfile, len(profiles))
	for _, p := range profiles {
		byUID[p.UID] = p
	}
	members := make([]models.UserProfile, 0, len(profiles))
	for _, uid := range ministry.Members {
		if p, ok := byUID[uid]; ok {
			members = append(members, p)
		}
	}
	return members, nil
}

// RemoveMember lets the owner remove another member. The removed user's
// current ministry is cleared in the same transaction.
func (s *sacraService) RemoveMember(ctx context.Context, ministryID, actorUID, memberUID string) error {
	ministry, err := s.GetMinistry(ctx, ministryID)
	if err != nil {
		return err
	}
	if actorUID != ministry.OwnerID {
		return fmt.Errorf("%w: only the owner can remove members", ErrForbidden)
	}
	if memberUID == ministry.OwnerID {
		return fmt.Errorf("%w: the owner cannot be removed", ErrInvalidRecord)
	}
	if !ministry.IsMember(memberUID) {
		return fmt.Errorf("%w: %s is not a member", ErrNotFound, memberUID)
	}

	if err := s.storage.RemoveMember(ctx, ministryID, memberUID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	s.log.Infof("Removed %s from ministry %s", memberUID, ministryID)
	return nil
}

// ---- users ----

func (s *sacraService) GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	profile, err := s.storage.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return profile, nil
}

// SaveUserProfile merges profile into the stored one: empty fields keep
// their stored value.
func (s *sacraService) SaveUserProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	if profile == nil || profile.UID == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrInvalidRecord)
	}

	merged, err := s.storage.GetUser(ctx, profile.UID)
	switch {
	case errors.Is(err, ErrNotFound):
		merged = &models.UserProfile{UID: profile.UID}
	case err != nil:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	mergeString(&merged.Email, profile.Email)
	mergeString(&merged.DisplayName, profile.DisplayName)
	mergeString(&merged.PhotoURL, profile.PhotoURL)
	mergeString(&merged.CurrentMinistryID, profile.CurrentMinistryID)
	if profile.OwnedMinistries != nil {
		merged.OwnedMinistries = profile.OwnedMinistries
	}

	if err := s.storage.PutUser(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return merged, nil
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
