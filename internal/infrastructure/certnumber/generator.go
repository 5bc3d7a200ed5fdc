package certnumber

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/domain/certificate"
	"provenance/internal/errs"
	"provenance/internal/ports"
)

var errCollision = errors.New("certificate number collision")

type Options struct {
	Prefix      string
	Length      int
	MaxAttempts int
	// DBFunction names a database function returning a fresh number. Empty skips it.
	DBFunction string
}

// NumberIndex answers whether a certificate number is already used.
type NumberIndex interface {
	CertificateNumberExists(ctx context.Context, number string) (bool, error)
}

// Generator tries the database function first and falls back to random numbers checked
// against the artworks table, giving up after MaxAttempts collisions.
type Generator struct {
	source ports.CertificateNumberSource
	index  NumberIndex
	opts   Options
	random io.Reader
}

var _ ports.CertificateNumberGenerator = (*Generator)(nil)

func New(source ports.CertificateNumberSource, index NumberIndex, opts Options) (*Generator, error) {
	if index == nil {
		return nil, errors.New("certificate number index is required")
	}
	if opts.Prefix == "" {
		opts.Prefix = certificate.DefaultNumberPrefix
	}
	if opts.Length <= 0 {
		opts.Length = certificate.DefaultNumberLength
	}
	if opts.MaxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got %d", opts.MaxAttempts)
	}
	return &Generator{
		source: source,
		index:  index,
		opts:   opts,
		random: rand.Reader,
	}, nil
}

// Generate must not run inside a transaction: a failing database function aborts
// the enclosing transaction on postgres.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "infrastructure.certnumber"))

	if number, ok := g.fromSource(logCtx); ok {
		return number, nil
	}

	attempts := 0
	var number string
	operation := func() error {
		attempts++
		candidate, err := certificate.RandomNumber(g.random, g.opts.Prefix, g.opts.Length)
		if err != nil {
			return backoff.Permanent(err)
		}
		exists, err := g.index.CertificateNumberExists(ctx, candidate)
		if err != nil {
			return backoff.Permanent(err)
		}
		if exists {
			logging.Debug(logCtx, "certificate number collision", slog.String("candidate", candidate), slog.Int("attempt", attempts))
			return errCollision
		}
		number = candidate
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(g.opts.MaxAttempts-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, errCollision) {
			logging.Error(logCtx, "certificate number space exhausted", slog.Int("attempts", attempts))
			return "", certificate.ErrNumberSpaceExhausted.WithCause(fmt.Errorf("%d attempts collided", attempts))
		}
		return "", errs.Wrap(err, "generate certificate number")
	}
	return number, nil
}

// fromSource asks the database function on every call, so a transient failure only costs
// that one number its database origin. A malformed answer counts as a failure.
func (g *Generator) fromSource(ctx context.Context) (string, bool) {
	fn := strings.TrimSpace(g.opts.DBFunction)
	if g.source == nil || fn == "" {
		return "", false
	}

	number, err := g.source.NextCertificateNumber(ctx, fn)
	if err == nil && !certificate.ValidNumber(number, g.opts.Prefix, g.opts.Length) {
		err = fmt.Errorf("database function returned malformed number %q", number)
	}
	if err != nil {
		logging.Warn(ctx, "database certificate number function failed, using client-side generator",
			slog.String("function", fn),
			slog.Any("err", errs.Loggable(err)),
		)
		return "", false
	}
	return number, true
}
