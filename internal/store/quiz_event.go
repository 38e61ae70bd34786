package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_events
			(sequence, session_id, user_id, action, subject, level,
			 questions_total, correct, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.UserID, data.Action, data.Subject,
		data.Level, data.QuestionsTotal, data.Correct, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuizStatsBySubject(ctx context.Context) ([]QuizStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT subject, COUNT(*), SUM(questions_total), SUM(correct)
		 FROM quiz_events WHERE action = ?
		 GROUP BY subject ORDER BY subject`, QuizCompleted)
	if err != nil {
		return nil, fmt.Errorf("query quiz stats: %w", err)
	}
	defer rows.Close()

	var stats []QuizStats
	for rows.Next() {
		var s QuizStats
		if err := rows.Scan(&s.Subject, &s.Quizzes, &s.QuestionsTotal, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan quiz stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
