package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Rruubeenn23/WebCursor/internal/model"
)

const (
	weekNoteTraining = "Training"
	weekNoteRest     = "Rest"
)

// GenerateWeek upserts seven day plans starting at start, flagging the
// configured weekdays as training days. Existing planned items are kept.
func GenerateWeek(db *sql.DB, userID, start string, trainingDays []time.Weekday) ([]model.DayPlan, error) {
	first, err := parseDate("start date", start)
	if err != nil {
		return nil, err
	}
	training := map[time.Weekday]bool{}
	for _, d := range trainingDays {
		training[d] = true
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin week tx: %w", err)
	}
	plans := make([]model.DayPlan, 0, 7)
	for i := 0; i < 7; i++ {
		day := first.AddDate(0, 0, i)
		isTraining := training[day.Weekday()]
		notes := weekNoteRest
		if isTraining {
			notes = weekNoteTraining
		}
		date := day.Format(dateLayout)
		id, err := ensurePlan(ctx, tx, userID, date, isTraining, &notes)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		plans = append(plans, model.DayPlan{ID: id, UserID: userID, Date: date, TrainingDay: isTraining, Notes: notes})
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit week: %w", err)
	}
	log.WithFields(log.Fields{"user": userID, "start": start}).Debug("week skeleton generated")
	return plans, nil
}
