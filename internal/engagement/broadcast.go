package engagement

import (
	log "github.com/sirupsen/logrus"
)

// Broadcaster receives committed vote results for fan-out to connected
// clients. It is called after the transaction commits and must not block
// the request path; the realtime transport behind it lives outside this
// package.
type Broadcaster interface {
	VoteChanged(target TargetRef, voteScore int, userVote *Polarity)
}

// NopBroadcaster drops updates. Used when no realtime transport is wired.
type NopBroadcaster struct{}

func (NopBroadcaster) VoteChanged(TargetRef, int, *Polarity) {}

// LogBroadcaster writes vote updates to the structured log. Stands in for
// the realtime channel in development.
type LogBroadcaster struct{}

func (LogBroadcaster) VoteChanged(target TargetRef, voteScore int, userVote *Polarity) {
	state := string(None)
	if userVote != nil {
		state = string(*userVote)
	}
	log.WithFields(log.Fields{
		"target":     target.String(),
		"vote_score": voteScore,
		"user_vote":  state,
	}).Debug("vote changed")
}
