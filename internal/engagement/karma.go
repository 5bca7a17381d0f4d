package engagement

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// KarmaStore is the single increment the accumulator needs. The vote
// ledger passes its transaction-scoped store here so karma commits or
// rolls back with the vote.
type KarmaStore interface {
	AddKarma(ctx context.Context, userID int, delta int) error
}

// KarmaAccumulator applies the signed delta a vote transition produced to
// the reputation counter of the voted-on content's author. The delta is
// always identical to the one applied to the target's vote score.
type KarmaAccumulator struct {
	log *log.Entry
}

func NewKarmaAccumulator() *KarmaAccumulator {
	return &KarmaAccumulator{log: log.WithField("component", "karma")}
}

func (k *KarmaAccumulator) Apply(ctx context.Context, s KarmaStore, authorID int, delta int) error {
	if delta == 0 {
		return nil
	}
	if err := s.AddKarma(ctx, authorID, delta); err != nil {
		k.log.WithError(err).WithFields(log.Fields{
			"author_id": authorID,
			"delta":     delta,
		}).Error("karma increment failed")
		return fmt.Errorf("apply karma delta %+d to user %d: %w", delta, authorID, err)
	}
	return nil
}
