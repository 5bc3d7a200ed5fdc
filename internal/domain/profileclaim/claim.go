package profileclaim

import (
	"strings"

	"provenance/internal/domain/account"
	"provenance/internal/errs"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Resolved() bool {
	return s == StatusApproved || s == StatusRejected
}

var (
	ErrNotSignedIn         = errs.E(errs.KindUnauthorized, "You must be signed in")
	ErrArtistOnly          = errs.E(errs.KindForbidden, "Only artists can claim an artist profile")
	ErrGalleryOnly         = errs.E(errs.KindForbidden, "Only galleries can create artist profiles")
	ErrNotProfileCreator   = errs.E(errs.KindForbidden, "Only the gallery that created this profile can resolve its claims")
	ErrProfileNotFound     = errs.E(errs.KindNotFound, "Artist profile not found")
	ErrClaimNotFound       = errs.E(errs.KindNotFound, "Profile claim not found")
	ErrClaimResolved       = errs.E(errs.KindState, "This claim has already been resolved")
	ErrProfileAlreadyTaken = errs.E(errs.KindConflict, "This artist profile has already been claimed by another artist")
	ErrArtistHasProfile    = errs.E(errs.KindConflict, "Artist already has a claimed artist profile")
	ErrDuplicatePending    = errs.E(errs.KindConflict, "You already have a pending claim for this profile")
	ErrNameRequired        = errs.E(errs.KindInvalid, "Artist profile name is required")
)

// ProfileState is the ownership link of an artist profile.
type ProfileState struct {
	CreatedBy string
	UserID    string
	IsClaimed bool
}

func (p ProfileState) Unclaimed() bool {
	return !p.IsClaimed && strings.TrimSpace(p.UserID) == ""
}

// CheckRequest validates an artist asking to be linked to a profile.
func CheckRequest(actorID string, role account.Role, profile ProfileState, found bool) error {
	if strings.TrimSpace(actorID) == "" {
		return ErrNotSignedIn
	}
	if role != account.RoleArtist {
		return ErrArtistOnly
	}
	if !found {
		return ErrProfileNotFound
	}
	if !profile.Unclaimed() {
		return ErrProfileAlreadyTaken
	}
	return nil
}

// Decision is the outcome of evaluating an approval.
type Decision int

const (
	// DecisionApprove links the profile to the artist.
	DecisionApprove Decision = iota
	// DecisionAutoReject rejects the claim instead; Reason explains why.
	DecisionAutoReject
)

// ApprovalCheck carries what approval looks at.
type ApprovalCheck struct {
	ActorID          string
	ClaimFound       bool
	ClaimStatus      Status
	Profile          ProfileState
	ArtistHasProfile bool
}

// EvaluateApproval walks the approval chain. A non-nil error means nothing may change.
// DecisionAutoReject means the claim must be rejected with Reason and the caller told why.
func EvaluateApproval(in ApprovalCheck) (Decision, *errs.Failure, error) {
	if err := checkResolvable(in.ActorID, in.ClaimFound, in.ClaimStatus, in.Profile); err != nil {
		return 0, nil, err
	}
	if !in.Profile.Unclaimed() {
		return DecisionAutoReject, ErrProfileAlreadyTaken, nil
	}
	if in.ArtistHasProfile {
		return DecisionAutoReject, ErrArtistHasProfile, nil
	}
	return DecisionApprove, nil, nil
}

// EvaluateRejection checks a gallery rejecting a claim.
func EvaluateRejection(actorID string, claimFound bool, status Status, profile ProfileState) error {
	return checkResolvable(actorID, claimFound, status, profile)
}

func checkResolvable(actorID string, claimFound bool, status Status, profile ProfileState) error {
	if strings.TrimSpace(actorID) == "" {
		return ErrNotSignedIn
	}
	if !claimFound {
		return ErrClaimNotFound
	}
	if status != StatusPending {
		return ErrClaimResolved
	}
	if profile.CreatedBy != actorID {
		return ErrNotProfileCreator
	}
	return nil
}
