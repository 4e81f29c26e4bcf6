package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/mail"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/pkg/cryptox"
	"github.com/aussiebroadwan/autoescuela/pkg/idx"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
	"github.com/google/uuid"
)

const (
	DefaultInviteTTLDays    = 7
	DefaultShareCodeTTLDays = 7
	DefaultImportTTLDays    = 30
	MaxTTLDays              = 90

	// InvitePath is the web route that accepts a secret or join code.
	InvitePath = "/invitacion/"

	shareCodeAttempts = 5
)

// errHashTaken means the token hash collided with an existing invite. Only
// share codes can realistically hit it.
var errHashTaken = errors.New("token hash already in use")

type InviteService struct {
	Store store.Store
	// Mailer delivers invitation emails. Nil skips delivery.
	Mailer  mail.Mailer
	BaseURL string
	Now     func() time.Time
	// ShareCodes draws join codes. Nil uses cryptox.GenerateShareCode.
	ShareCodes func() (string, error)
}

type CreateInviteInput struct {
	ActorID   string      `json:"actor_id" validate:"required,uuid"`
	SchoolID  string      `json:"school_id" validate:"required,uuid"`
	Recipient string      `json:"recipient" validate:"required,email,max=254"`
	Name      string      `json:"name" validate:"max=200"`
	Role      domain.Role `json:"role" validate:"omitempty,oneof=student admin owner"`
	TTLDays   int         `json:"ttl_days" validate:"gte=0,lte=90"`
}

// IssuedInvite is a freshly issued invite. Secret is the only copy of the
// raw token and is never persisted.
type IssuedInvite struct {
	Invite domain.Invite
	Secret string
	Link   string
}

type ShareCode struct {
	Invite domain.Invite
	Code   string
	Link   string
}

type Redemption struct {
	SchoolID string
	Role     domain.Role
}

type ImportRow struct {
	Name      string `json:"name" validate:"required,max=200"`
	Recipient string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}

type BulkImportInput struct {
	ActorID  string
	SchoolID string
	Rows     []ImportRow
	TTLDays  int
}

// RowError reports a rejected import row. Row is 1-based.
type RowError struct {
	Row  int
	Data ImportRow
	Err  error
}

type BulkImportResult struct {
	CreatedCount int
	Errors       []RowError
}

type issueParams struct {
	schoolID  string
	recipient string
	role      domain.Role
	invitedBy string
	ttl       time.Duration
	// secret is preset for share codes; empty means generate one.
	secret string
}

// issue supersedes every invite for (school, recipient) with a fresh one. The
// delete and insert share one transaction so a reader never sees both or
// neither. Share codes are never superseded: a code that is already stored,
// used or not, fails with errHashTaken.
func (s *InviteService) issue(ctx context.Context, p issueParams) (domain.Invite, string, error) {
	log := slogx.FromContext(ctx)

	if _, err := uuid.Parse(p.schoolID); err != nil {
		return domain.Invite{}, "", invalid("school_id", "must be a UUID")
	}
	if strings.TrimSpace(p.recipient) == "" {
		return domain.Invite{}, "", invalid("recipient", "is required")
	}
	if !p.role.Valid() {
		return domain.Invite{}, "", invalid("role", "must be one of: student admin owner")
	}
	if p.ttl <= 0 {
		return domain.Invite{}, "", invalid("ttl_days", "must be positive")
	}

	secret := p.secret
	if secret == "" {
		var err error
		secret, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			log.Error("failed to generate invite secret", slogx.Err(err))
			return domain.Invite{}, "", fmt.Errorf("generate invite secret: %w", err)
		}
	}

	now := clock(s.Now)
	inv := domain.Invite{
		ID:        idx.NewAt(now).String(),
		SchoolID:  p.schoolID,
		Recipient: p.recipient,
		Role:      p.role,
		TokenHash: cryptox.HashToken(secret),
		InvitedBy: p.invitedBy,
		ExpiresAt: now.Add(p.ttl),
		CreatedAt: now,
	}

	var superseded []string
	err := withTx(ctx, s.Store, "issue invite", func(tx store.Tx) error {
		if p.secret == "" {
			ids, err := supersede(ctx, tx, inv.SchoolID, inv.Recipient)
			if err != nil {
				return err
			}
			superseded = ids
		}

		if err := tx.Invites().CreateInvite(ctx, inv); err != nil {
			switch {
			case errors.Is(err, store.ErrAlreadyExists):
				return errHashTaken
			case errors.Is(err, store.ErrNotFound):
				return ErrSchoolNotFound
			}
			return storageErr("create invite", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStorage) {
			log.Error("failed to issue invite",
				slog.String("school_id", inv.SchoolID),
				slogx.Err(err),
			)
		}
		return domain.Invite{}, "", err
	}

	log.Info("invite issued",
		slog.String("invite_id", inv.ID),
		slog.String("school_id", inv.SchoolID),
		slog.String("role", string(inv.Role)),
		slogx.Secret("token_hash", inv.TokenHash),
		slog.Any("superseded", superseded),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	return inv, secret, nil
}

// supersede deletes every invite for (school, recipient) and returns their IDs.
func supersede(ctx context.Context, tx store.Tx, schoolID, recipient string) ([]string, error) {
	prev, err := tx.Invites().ListInvitesForRecipient(ctx, schoolID, recipient)
	if err != nil {
		return nil, storageErr("list invites", err)
	}
	if len(prev) == 0 {
		return nil, nil
	}
	if _, err := tx.Invites().DeleteInvitesForRecipient(ctx, schoolID, recipient); err != nil {
		return nil, storageErr("delete invites", err)
	}

	ids := make([]string, len(prev))
	for i, inv := range prev {
		ids[i] = inv.ID
	}
	return ids, nil
}

// CreateInvite issues an email invite on behalf of a staff member and sends
// the invitation. Only owners may invite owners.
func (s *InviteService) CreateInvite(ctx context.Context, in CreateInviteInput) (IssuedInvite, error) {
	log := slogx.FromContext(ctx)

	in.Recipient = normalizeEmail(in.Recipient)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return IssuedInvite{}, err
	}
	if in.Role == "" {
		in.Role = domain.RoleStudent
	}
	if in.TTLDays == 0 {
		in.TTLDays = DefaultInviteTTLDays
	}

	actorRole, err := staffRole(ctx, s.Store, in.SchoolID, in.ActorID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			log.Warn("invite attempted by non-staff actor",
				slog.String("school_id", in.SchoolID),
				slog.String("actor_id", in.ActorID),
			)
		}
		return IssuedInvite{}, err
	}
	if in.Role == domain.RoleOwner && actorRole != domain.RoleOwner {
		log.Warn("non-owner attempted to invite an owner",
			slog.String("school_id", in.SchoolID),
			slog.String("actor_id", in.ActorID),
		)
		return IssuedInvite{}, ErrForbidden
	}

	inv, secret, err := s.issue(ctx, issueParams{
		schoolID:  in.SchoolID,
		recipient: in.Recipient,
		role:      in.Role,
		invitedBy: in.ActorID,
		ttl:       days(in.TTLDays),
	})
	if errors.Is(err, errHashTaken) {
		return IssuedInvite{}, storageErr("create invite", err)
	}
	if err != nil {
		return IssuedInvite{}, err
	}

	out := IssuedInvite{Invite: inv, Secret: secret, Link: s.link(secret)}
	s.sendInvite(ctx, inv, in.Name, out.Link)
	return out, nil
}

// GenerateShareCode issues a single-use join code for students. A code that
// collides with an existing one is regenerated.
func (s *InviteService) GenerateShareCode(ctx context.Context, actorID, schoolID string, ttlDays int) (ShareCode, error) {
	log := slogx.FromContext(ctx)

	if err := validateIDs(actorID, schoolID); err != nil {
		return ShareCode{}, err
	}
	if ttlDays < 0 || ttlDays > MaxTTLDays {
		return ShareCode{}, invalid("ttl_days", fmt.Sprintf("must be between 1 and %d", MaxTTLDays))
	}
	if ttlDays == 0 {
		ttlDays = DefaultShareCodeTTLDays
	}

	if _, err := staffRole(ctx, s.Store, schoolID, actorID); err != nil {
		return ShareCode{}, err
	}

	draw := s.ShareCodes
	if draw == nil {
		draw = cryptox.GenerateShareCode
	}

	for attempt := 1; attempt <= shareCodeAttempts; attempt++ {
		code, err := draw()
		if err != nil {
			log.Error("failed to generate share code", slogx.Err(err))
			return ShareCode{}, fmt.Errorf("generate share code: %w", err)
		}

		inv, _, err := s.issue(ctx, issueParams{
			schoolID:  schoolID,
			recipient: domain.ShareCodeRecipient(code),
			role:      domain.RoleStudent,
			invitedBy: actorID,
			ttl:       days(ttlDays),
			secret:    code,
		})
		if errors.Is(err, errHashTaken) {
			log.Debug("share code collision, retrying", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return ShareCode{}, err
		}
		return ShareCode{Invite: inv, Code: code, Link: s.link(code)}, nil
	}

	log.Error("exhausted share code attempts", slog.String("school_id", schoolID))
	return ShareCode{}, storageErr("generate share code", errHashTaken)
}

// RedeemInvite consumes an invite and activates the redeemer's membership.
// Checks run in order: unknown code, already used, expired, already a
// member. A user who is already a member leaves the invite unconsumed. A used
// invite presented by an active member of its school reports ErrAlreadyMember,
// so a student following their own link twice is told they already joined.
func (s *InviteService) RedeemInvite(ctx context.Context, secret, userID string) (Redemption, error) {
	log := slogx.FromContext(ctx)

	if _, err := uuid.Parse(userID); err != nil {
		return Redemption{}, invalid("user_id", "must be a UUID")
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return Redemption{}, invalid("code", "is required")
	}
	if cryptox.IsShareCode(secret) {
		secret = cryptox.NormalizeShareCode(secret)
	}

	hash := cryptox.HashToken(secret)
	inv, err := s.Store.Invites().GetInviteByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("redeem attempted with unknown code", slogx.Secret("token_hash", hash))
			return Redemption{}, ErrInvalidCode
		}
		log.Error("failed to look up invite", slogx.Err(err))
		return Redemption{}, storageErr("get invite", err)
	}

	now := clock(s.Now)
	switch {
	case inv.IsUsed():
		log.Warn("redeem attempted with used invite", slog.String("invite_id", inv.ID))
		member, err := isActiveMember(ctx, s.Store, inv.SchoolID, userID)
		if err != nil {
			log.Error("failed to look up membership", slogx.Err(err))
			return Redemption{}, storageErr("get membership", err)
		}
		if member {
			return Redemption{}, ErrAlreadyMember
		}
		return Redemption{}, ErrAlreadyUsed
	case inv.IsExpired(now):
		log.Warn("redeem attempted with expired invite",
			slog.String("invite_id", inv.ID),
			slog.Time("expires_at", inv.ExpiresAt),
		)
		return Redemption{}, ErrExpired
	}

	m, err := s.Store.Memberships().GetMembership(ctx, inv.SchoolID, userID)
	switch {
	case err == nil && m.IsActive():
		log.Info("redeem attempted by existing member",
			slog.String("invite_id", inv.ID),
			slog.String("school_id", inv.SchoolID),
		)
		return Redemption{}, ErrAlreadyMember
	case err != nil && !errors.Is(err, store.ErrNotFound):
		log.Error("failed to look up membership", slogx.Err(err))
		return Redemption{}, storageErr("get membership", err)
	}

	err = withTx(ctx, s.Store, "redeem invite", func(tx store.Tx) error {
		if err := tx.Invites().MarkInviteUsed(ctx, inv.ID, userID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAlreadyUsed
			}
			return storageErr("mark invite used", err)
		}

		err := tx.Memberships().ActivateMembership(ctx, domain.Membership{
			SchoolID:  inv.SchoolID,
			UserID:    userID,
			Role:      inv.Role,
			Status:    domain.MembershipActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyMember
			}
			return storageErr("activate membership", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStorage) {
			log.Error("failed to redeem invite", slog.String("invite_id", inv.ID), slogx.Err(err))
		} else {
			log.Warn("invite redemption lost", slog.String("invite_id", inv.ID), slogx.Err(err))
		}
		return Redemption{}, err
	}

	log.Info("invite redeemed",
		slog.String("invite_id", inv.ID),
		slog.String("school_id", inv.SchoolID),
		slog.String("user_id", userID),
		slog.String("role", string(inv.Role)),
	)

	return Redemption{SchoolID: inv.SchoolID, Role: inv.Role}, nil
}

// BulkImport issues student invites for a roster. A bad row never aborts the
// batch; it is reported with its 1-based position. Recipients that already
// hold a pending invite are reported instead of superseded.
func (s *InviteService) BulkImport(ctx context.Context, in BulkImportInput) (BulkImportResult, error) {
	log := slogx.FromContext(ctx)

	if err := validateIDs(in.ActorID, in.SchoolID); err != nil {
		return BulkImportResult{}, err
	}
	if len(in.Rows) == 0 {
		return BulkImportResult{}, invalid("rows", "is required")
	}
	if in.TTLDays < 0 || in.TTLDays > MaxTTLDays {
		return BulkImportResult{}, invalid("ttl_days", fmt.Sprintf("must be between 1 and %d", MaxTTLDays))
	}
	if in.TTLDays == 0 {
		in.TTLDays = DefaultImportTTLDays
	}

	if _, err := staffRole(ctx, s.Store, in.SchoolID, in.ActorID); err != nil {
		return BulkImportResult{}, err
	}

	var res BulkImportResult
	rows := make([]ImportRow, len(in.Rows))
	accepted := make([]bool, len(in.Rows))
	firstSeen := make(map[string]int, len(in.Rows))
	var recipients []string

	for i, r := range in.Rows {
		r.Name = strings.TrimSpace(r.Name)
		r.Recipient = normalizeEmail(r.Recipient)
		r.Phone = strings.TrimSpace(r.Phone)
		rows[i] = r

		if err := validateStruct(r); err != nil {
			res.Errors = append(res.Errors, RowError{Row: i + 1, Data: r, Err: err})
			continue
		}
		if _, dup := firstSeen[r.Recipient]; dup {
			res.Errors = append(res.Errors, RowError{Row: i + 1, Data: r, Err: ErrDuplicateInBatch})
			continue
		}
		firstSeen[r.Recipient] = i
		accepted[i] = true
		recipients = append(recipients, r.Recipient)
	}

	now := clock(s.Now)
	pending := make(map[string]bool)
	if len(recipients) > 0 {
		invs, err := s.Store.Invites().ListPendingByRecipients(ctx, in.SchoolID, recipients, now)
		if err != nil {
			log.Error("failed to load pending invites", slogx.Err(err))
			return BulkImportResult{}, storageErr("list pending invites", err)
		}
		for _, inv := range invs {
			pending[inv.Recipient] = true
		}
	}

	var schoolName string
	if s.Mailer != nil {
		schoolName = s.schoolName(ctx, in.SchoolID)
	}

	for i, r := range rows {
		if !accepted[i] {
			continue
		}
		if pending[r.Recipient] {
			res.Errors = append(res.Errors, RowError{Row: i + 1, Data: r, Err: ErrDuplicatePending})
			continue
		}

		inv, secret, err := s.issue(ctx, issueParams{
			schoolID:  in.SchoolID,
			recipient: r.Recipient,
			role:      domain.RoleStudent,
			invitedBy: in.ActorID,
			ttl:       days(in.TTLDays),
		})
		if errors.Is(err, errHashTaken) {
			err = storageErr("create invite", err)
		}
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: i + 1, Data: r, Err: err})
			continue
		}
		res.CreatedCount++

		if s.Mailer != nil {
			s.deliver(ctx, inv, mail.Invite{
				To:         inv.Recipient,
				Name:       r.Name,
				SchoolName: schoolName,
				Role:       string(inv.Role),
				Link:       s.link(secret),
				ExpiresAt:  inv.ExpiresAt,
			})
		}
	}

	slices.SortStableFunc(res.Errors, func(a, b RowError) int { return cmp.Compare(a.Row, b.Row) })

	log.Info("bulk import finished",
		slog.String("school_id", in.SchoolID),
		slog.Int("rows", len(in.Rows)),
		slog.Int("created", res.CreatedCount),
		slog.Int("rejected", len(res.Errors)),
	)
	return res, nil
}

// ListPendingInvites returns unused, unexpired invites of a school.
func (s *InviteService) ListPendingInvites(ctx context.Context, actorID, schoolID string) ([]domain.Invite, error) {
	if err := validateIDs(actorID, schoolID); err != nil {
		return nil, err
	}
	if _, err := staffRole(ctx, s.Store, schoolID, actorID); err != nil {
		return nil, err
	}

	invs, err := s.Store.Invites().ListPendingInvites(ctx, schoolID, clock(s.Now))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invites", slogx.Err(err))
		return nil, storageErr("list pending invites", err)
	}
	return invs, nil
}

// RevokeInvite deletes a pending invite so its secret stops working. Used
// invites report ErrInviteNotFound.
func (s *InviteService) RevokeInvite(ctx context.Context, actorID, schoolID, inviteID string) error {
	log := slogx.FromContext(ctx)

	if err := validateIDs(actorID, schoolID); err != nil {
		return err
	}
	if _, err := idx.Parse(inviteID); err != nil {
		return invalid("invite_id", "is malformed")
	}
	if _, err := staffRole(ctx, s.Store, schoolID, actorID); err != nil {
		return err
	}

	inv, err := s.Store.Invites().GetInviteByID(ctx, schoolID, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		log.Error("failed to look up invite", slogx.Err(err))
		return storageErr("get invite", err)
	}
	// A used invite records how a member joined; only pending ones are revocable.
	if inv.IsUsed() {
		return ErrInviteNotFound
	}

	if err := s.Store.Invites().DeleteInvite(ctx, schoolID, inviteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		log.Error("failed to delete invite", slogx.Err(err))
		return storageErr("delete invite", err)
	}

	log.Info("invite revoked",
		slog.String("invite_id", inviteID),
		slog.Bool("share_code", inv.IsShareCode()),
		slog.String("school_id", schoolID),
		slog.String("actor_id", actorID),
	)
	return nil
}

func (s *InviteService) link(secret string) string {
	return strings.TrimRight(s.BaseURL, "/") + InvitePath + secret
}

func (s *InviteService) sendInvite(ctx context.Context, inv domain.Invite, name, link string) {
	if s.Mailer == nil {
		return
	}
	s.deliver(ctx, inv, mail.Invite{
		To:         inv.Recipient,
		Name:       name,
		SchoolName: s.schoolName(ctx, inv.SchoolID),
		Role:       string(inv.Role),
		Link:       link,
		ExpiresAt:  inv.ExpiresAt,
	})
}

// deliver sends an invitation. Failures are logged and never undo issuance.
func (s *InviteService) deliver(ctx context.Context, inv domain.Invite, m mail.Invite) {
	log := slogx.FromContext(ctx)

	msg, err := mail.InviteMessage(m)
	if err == nil {
		err = s.Mailer.Send(ctx, msg)
	}
	if err != nil {
		log.Warn("failed to send invite email",
			slog.String("invite_id", inv.ID),
			slogx.Err(err),
		)
	}
}

func (s *InviteService) schoolName(ctx context.Context, schoolID string) string {
	school, err := s.Store.Schools().GetSchoolByID(ctx, schoolID)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to load school for email",
			slog.String("school_id", schoolID),
			slogx.Err(err),
		)
		return ""
	}
	return school.Name
}

func validateIDs(actorID, schoolID string) error {
	if _, err := uuid.Parse(actorID); err != nil {
		return invalid("actor_id", "must be a UUID")
	}
	if _, err := uuid.Parse(schoolID); err != nil {
		return invalid("school_id", "must be a UUID")
	}
	return nil
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
