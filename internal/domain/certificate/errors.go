package certificate

import (
	"errors"

	"provenance/internal/errs"
)

var ErrInvalidStatus = errors.New("invalid certificate status")

var (
	ErrNotSignedIn          = errs.E(errs.KindUnauthorized, "You must be signed in")
	ErrAccountNotFound      = errs.E(errs.KindUnauthorized, "Account not found")
	ErrOnboardingRequired   = errs.E(errs.KindForbidden, "Complete onboarding to choose a role before posting artwork")
	ErrClaimRole            = errs.E(errs.KindForbidden, "Only artists can claim certificates")
	ErrVerifyRole           = errs.E(errs.KindForbidden, "Only collectors and galleries can verify certificates")
	ErrNotOriginalPoster    = errs.E(errs.KindForbidden, "Only the original poster can verify this certificate")
	ErrArtworkNotFound      = errs.E(errs.KindNotFound, "Artwork not found")
	ErrNotClaimable         = errs.E(errs.KindState, "Certificate is not available for claiming")
	ErrNotAwaitingVerify    = errs.E(errs.KindState, "Certificate is not awaiting verification")
	ErrNumberSpaceExhausted = errs.E(errs.KindFatal, "Could not generate a unique certificate number")
)
