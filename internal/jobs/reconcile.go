// Package jobs runs the scheduled maintenance passes. The only job today
// is counter reconciliation: the incremental vote, comment and bookmark
// counters are the source of truth on the hot path, and this pass corrects
// any drift against the underlying rows.
package jobs

import (
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ideaforge/backend/internal/models"
)

type Reconciler struct {
	db  *gorm.DB
	log *log.Entry
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db, log: log.WithField("component", "reconciler")}
}

// Schedule registers the reconciliation pass on c under the given cron
// expression.
func (r *Reconciler) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, r.Run)
	return err
}

// Run recomputes every derived counter from its source rows. Each statement
// touches only rows that drifted, so a clean database is a no-op.
func (r *Reconciler) Run() {
	r.log.Info("counter reconciliation started")

	for name, stmt := range map[string]string{
		"idea vote scores": `
			UPDATE ideas SET vote_score = COALESCE(v.total, 0)
			FROM (SELECT target_id, SUM(value) AS total FROM votes WHERE target_type = ? GROUP BY target_id) v
			WHERE ideas.id = v.target_id AND ideas.vote_score <> COALESCE(v.total, 0)`,
		"orphaned idea vote scores": `
			UPDATE ideas SET vote_score = 0
			WHERE vote_score <> 0
			AND id NOT IN (SELECT target_id FROM votes WHERE target_type = ?)`,
	} {
		res := r.db.Exec(stmt, models.TargetIdea)
		r.report(name, res)
	}

	res := r.db.Exec(`
		UPDATE comments SET vote_score = COALESCE(v.total, 0)
		FROM (SELECT target_id, SUM(value) AS total FROM votes WHERE target_type = ? GROUP BY target_id) v
		WHERE comments.id = v.target_id AND comments.vote_score <> COALESCE(v.total, 0)`,
		models.TargetComment)
	r.report("comment vote scores", res)

	res = r.db.Exec(`
		UPDATE comments SET vote_score = 0
		WHERE vote_score <> 0
		AND id NOT IN (SELECT target_id FROM votes WHERE target_type = ?)`,
		models.TargetComment)
	r.report("orphaned comment vote scores", res)

	res = r.db.Exec(`
		UPDATE ideas SET comment_count = c.total
		FROM (SELECT idea_id, COUNT(*) AS total FROM comments GROUP BY idea_id) c
		WHERE ideas.id = c.idea_id AND ideas.comment_count <> c.total`)
	r.report("comment counts", res)

	res = r.db.Exec(`
		UPDATE ideas SET comment_count = 0
		WHERE comment_count <> 0 AND id NOT IN (SELECT idea_id FROM comments)`)
	r.report("orphaned comment counts", res)

	res = r.db.Exec(`
		UPDATE ideas SET bookmark_count = b.total
		FROM (SELECT idea_id, COUNT(*) AS total FROM bookmarks GROUP BY idea_id) b
		WHERE ideas.id = b.idea_id AND ideas.bookmark_count <> b.total`)
	r.report("bookmark counts", res)

	res = r.db.Exec(`
		UPDATE ideas SET bookmark_count = 0
		WHERE bookmark_count <> 0 AND id NOT IN (SELECT idea_id FROM bookmarks)`)
	r.report("orphaned bookmark counts", res)

	r.log.Info("counter reconciliation finished")
}

func (r *Reconciler) report(name string, res *gorm.DB) {
	if res.Error != nil {
		r.log.WithError(res.Error).WithField("pass", name).Error("reconciliation pass failed")
		return
	}
	if res.RowsAffected > 0 {
		r.log.WithFields(log.Fields{"pass": name, "corrected": res.RowsAffected}).Warn("counter drift corrected")
	}
}
