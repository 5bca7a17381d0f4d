// Package engagement owns the vote ledger: per-(voter, target) vote state,
// the target's aggregate vote score, and the author's karma. All three move
// together inside one storage transaction so a vote's effects are
// all-or-nothing.
package engagement

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ideaforge/backend/internal/apperr"
	"github.com/ideaforge/backend/internal/models"
)

// Sentinel errors the storage implementation translates low-level failures
// into. The ledger maps them onto the structured error kinds callers see.
var (
	ErrTargetNotFound = errors.New("vote target not found")
	ErrAuthorNotFound = errors.New("target author not found")
	ErrDuplicateVote  = errors.New("vote already exists for voter and target")
)

// TargetRef names one votable thing: an idea or a comment.
type TargetRef struct {
	Type string // models.TargetIdea or models.TargetComment
	ID   int
}

func (r TargetRef) Valid() bool {
	return r.Type == models.TargetIdea || r.Type == models.TargetComment
}

func (r TargetRef) String() string {
	return fmt.Sprintf("%s/%d", r.Type, r.ID)
}

// TargetInfo is the slice of a target the ledger needs: who wrote it and
// its current score.
type TargetInfo struct {
	AuthorID  int
	VoteScore int
}

// Store is the narrow storage surface the ledger consumes. AddVoteScore and
// AddKarma must be atomic increments at the storage layer, never
// read-modify-write in the application; concurrent casts on one target must
// all land. InTransaction scopes every call made through the passed Store
// to one transaction.
type Store interface {
	Target(ctx context.Context, ref TargetRef) (TargetInfo, error)
	CurrentVote(ctx context.Context, voterID int, ref TargetRef) (Polarity, error)
	CreateVote(ctx context.Context, voterID int, ref TargetRef, p Polarity) error
	UpdateVote(ctx context.Context, voterID int, ref TargetRef, p Polarity) error
	DeleteVote(ctx context.Context, voterID int, ref TargetRef) error
	AddVoteScore(ctx context.Context, ref TargetRef, delta int) (int, error)
	AddKarma(ctx context.Context, userID int, delta int) error
	RecordActivity(ctx context.Context, rec models.ActivityRecord) error
	InTransaction(ctx context.Context, fn func(Store) error) error
}

// VoteResult is what a cast reports back: the target's new score and the
// voter's resulting state. UserVote is nil after a toggle-off.
type VoteResult struct {
	VoteScore int
	UserVote  *Polarity
}

type Ledger struct {
	store     Store
	karma     *KarmaAccumulator
	broadcast Broadcaster
	log       *log.Entry
}

func NewLedger(store Store, karma *KarmaAccumulator, broadcast Broadcaster) *Ledger {
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	return &Ledger{
		store:     store,
		karma:     karma,
		broadcast: broadcast,
		log:       log.WithField("component", "vote_ledger"),
	}
}

// CastVote applies one vote request as a state transition. The existence
// check and the vote-row mutation run in the same transaction as both
// increments; the (voter, target) unique index serializes concurrent casts
// by the same voter, and losing that race is retried once against the
// winner's state.
func (l *Ledger) CastVote(ctx context.Context, voterID int, ref TargetRef, requested Polarity) (VoteResult, error) {
	if !requested.Valid() {
		return VoteResult{}, apperr.Newf(apperr.InvalidArgument, "vote type must be UP or DOWN, got %q", string(requested))
	}
	if !ref.Valid() {
		return VoteResult{}, apperr.Newf(apperr.InvalidArgument, "unknown vote target type %q", ref.Type)
	}

	target, err := l.store.Target(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return VoteResult{}, apperr.Newf(apperr.NotFound, "%s not found", ref.Type)
		}
		return VoteResult{}, apperr.Wrap(apperr.ServiceUnavailable, "storage unavailable", err)
	}
	if target.AuthorID == voterID {
		return VoteResult{}, apperr.New(apperr.Forbidden, "cannot vote own content")
	}

	result, err := l.apply(ctx, voterID, ref, target.AuthorID, requested)
	if errors.Is(err, ErrDuplicateVote) {
		// Lost a same-voter race on create; the row now exists, so one
		// re-read resolves a fresh transition against the winner's state.
		result, err = l.apply(ctx, voterID, ref, target.AuthorID, requested)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrAuthorNotFound):
			return VoteResult{}, apperr.Wrap(apperr.NotFound, "target author missing, vote rolled back", err)
		case errors.Is(err, ErrTargetNotFound):
			return VoteResult{}, apperr.Newf(apperr.NotFound, "%s not found", ref.Type)
		default:
			return VoteResult{}, apperr.Wrap(apperr.ServiceUnavailable, "vote transaction failed", err)
		}
	}

	l.afterCommit(ctx, voterID, ref, result)
	return result, nil
}

func (l *Ledger) apply(ctx context.Context, voterID int, ref TargetRef, authorID int, requested Polarity) (VoteResult, error) {
	var result VoteResult
	err := l.store.InTransaction(ctx, func(tx Store) error {
		existing, err := tx.CurrentVote(ctx, voterID, ref)
		if err != nil {
			return err
		}

		tr := Resolve(existing, requested)
		switch tr.Action {
		case ActionCreate:
			err = tx.CreateVote(ctx, voterID, ref, tr.Result)
		case ActionUpdate:
			err = tx.UpdateVote(ctx, voterID, ref, tr.Result)
		case ActionDelete:
			err = tx.DeleteVote(ctx, voterID, ref)
		}
		if err != nil {
			return err
		}

		newScore, err := tx.AddVoteScore(ctx, ref, tr.Delta)
		if err != nil {
			return err
		}
		if err := l.karma.Apply(ctx, tx, authorID, tr.Delta); err != nil {
			return err
		}

		result.VoteScore = newScore
		if tr.Result != None {
			p := tr.Result
			result.UserVote = &p
		}
		return nil
	})
	return result, err
}

// afterCommit fans the committed result out and appends the activity
// record. Neither failure can undo the vote; they are logged and dropped.
func (l *Ledger) afterCommit(ctx context.Context, voterID int, ref TargetRef, result VoteResult) {
	l.broadcast.VoteChanged(ref, result.VoteScore, result.UserVote)

	if result.UserVote == nil {
		// A toggle-off removes engagement; it contributes nothing to the
		// activity log the recommender reads.
		return
	}
	activityType := models.ActivityVoteUp
	if *result.UserVote == Down {
		activityType = models.ActivityVoteDown
	}
	rec := models.ActivityRecord{
		Type:     activityType,
		UserID:   voterID,
		TargetID: ref.ID,
		Payload:  ref.Type,
	}
	if err := l.store.RecordActivity(ctx, rec); err != nil {
		l.log.WithError(err).WithField("target", ref.String()).Warn("activity record dropped")
	}
}
