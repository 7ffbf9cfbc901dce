package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kovil/hall-booking/internal/model"
)

// AvailabilityRepo provides data access to the hall_dates table, the
// durable record of per-hall, per-date booking status.  It implements
// the availability.Store contract.  All timestamp comparisons are
// performed in UTC; the DSN pins the connection to UTC as well.
//
// Rows are upserted, never deleted: releasing a hold or cancelling a
// booking rewrites the row's state back to AVAILABLE so its timestamps
// keep a trace of past activity.
type AvailabilityRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewAvailabilityRepo returns an AvailabilityRepo bound to the provided
// database.  now may be nil, in which case the wall clock is used.
func NewAvailabilityRepo(db *sql.DB, now func() time.Time) *AvailabilityRepo {
	if now == nil {
		now = time.Now
	}
	return &AvailabilityRepo{db: db, now: now}
}

// DB exposes the underlying handle for callers that manage their own
// transactions.
func (r *AvailabilityRepo) DB() *sql.DB { return r.db }

const recordColumns = `hall_id, DATE_FORMAT(date, '%Y-%m-%d'), state, category, reason, hold_token, hold_expires_at, created_at, updated_at`

// scanRecord reads one hall_dates row and normalises it: a HELD row
// whose expiry has passed is reported AVAILABLE, so lapsed holds stop
// blocking a date without waiting for the background sweep.
func (r *AvailabilityRepo) scanRecord(scan func(dest ...interface{}) error) (model.AvailabilityRecord, error) {
	var (
		rec      model.AvailabilityRecord
		reason   sql.NullString
		category sql.NullString
		token    sql.NullString
		expires  sql.NullTime
	)
	if err := scan(&rec.HallID, &rec.Date, &rec.Status.State, &category, &reason, &token, &expires, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return rec, err
	}
	if category.Valid {
		rec.Status.Category = model.Category(category.String)
	}
	if reason.Valid {
		rec.Status.Reason = reason.String
	}
	if token.Valid {
		rec.HoldToken = token.String
	}
	if expires.Valid {
		t := expires.Time.UTC()
		rec.HoldExpiresAt = &t
	}
	return normalizeRecord(rec, r.now().UTC()), nil
}

// normalizeRecord applies the hold-expiry rule: a HELD record whose
// hold_expires_at is at or before now reads as AVAILABLE.  Booked
// records and live holds pass through untouched.
func normalizeRecord(rec model.AvailabilityRecord, now time.Time) model.AvailabilityRecord {
	if rec.Status.State != model.StateHeld {
		return rec
	}
	if rec.HoldExpiresAt == nil || !rec.HoldExpiresAt.After(now) {
		rec.Status = model.Available()
		rec.HoldToken = ""
		rec.HoldExpiresAt = nil
	}
	return rec
}

// ListRecords returns every availability record, normalised.  Rows that
// have reverted to AVAILABLE (released, cancelled, or lapsed) are
// included so callers can distinguish an untouched date from one with
// history; the index treats both as available.
func (r *AvailabilityRepo) ListRecords(ctx context.Context) ([]model.AvailabilityRecord, error) {
	const q = `SELECT ` + recordColumns + ` FROM hall_dates ORDER BY hall_id, date`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []model.AvailabilityRecord
	for rows.Next() {
		rec, err := r.scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecord returns the record for one (hall, date) key, or (nil, nil)
// when no row exists.  Absence is the open-world default, not an error.
func (r *AvailabilityRepo) GetRecord(ctx context.Context, hallID uint64, date string) (*model.AvailabilityRecord, error) {
	const q = `SELECT ` + recordColumns + ` FROM hall_dates WHERE hall_id = ? AND date = ?`
	rec, err := r.scanRecord(r.db.QueryRowContext(ctx, q, hallID, date).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// PutRecord upserts the record for its (HallID, Date) key.  The insert
// relies on the UNIQUE(hall_id, date) constraint: concurrent writers
// for the same key collapse onto one row, and the resolver's per-key
// lock makes sure only one of them gets here with a stale read.
func (r *AvailabilityRepo) PutRecord(ctx context.Context, rec model.AvailabilityRecord) error {
	const q = `INSERT INTO hall_dates (hall_id, date, state, category, reason, hold_token, hold_expires_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	               state = VALUES(state),
	               category = VALUES(category),
	               reason = VALUES(reason),
	               hold_token = VALUES(hold_token),
	               hold_expires_at = VALUES(hold_expires_at)`
	var expires interface{}
	if rec.HoldExpiresAt != nil {
		expires = rec.HoldExpiresAt.UTC().Format("2006-01-02 15:04:05")
	}
	var category, reason, token interface{}
	if rec.Status.Category != "" {
		category = string(rec.Status.Category)
	}
	if rec.Status.Reason != "" {
		reason = rec.Status.Reason
	}
	if rec.HoldToken != "" {
		token = rec.HoldToken
	}
	state := rec.Status.State
	if state == "" {
		state = model.StateAvailable
	}
	_, err := r.db.ExecContext(ctx, q, rec.HallID, rec.Date, state, category, reason, token, expires)
	return err
}

// ExpireHolds rewrites every lapsed hold back to AVAILABLE and returns
// how many rows were affected.  Reads already normalise expired holds,
// so this sweep exists to keep the table tidy and the index refreshes
// cheap; main runs it on a timer.
func (r *AvailabilityRepo) ExpireHolds(ctx context.Context) (int64, error) {
	const q = `UPDATE hall_dates
	           SET state = 'AVAILABLE', category = NULL, reason = NULL, hold_token = NULL, hold_expires_at = NULL
	           WHERE state = 'HELD' AND hold_expires_at <= UTC_TIMESTAMP()`
	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
