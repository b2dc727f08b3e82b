package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart_fan/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

const (
	insertReadingSQL = `
		INSERT INTO fan_readings (id, created_at, device_id, temp_c, power_w, fan_mode)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectLatestReadingsSQL = `
		SELECT id, created_at, device_id, temp_c, power_w, fan_mode
		FROM fan_readings WHERE device_id = ?
		ORDER BY created_at DESC LIMIT ?
	`
)

// Append stores a reading, filling ID and CreatedAt when empty.
func (r *ReadingSQLite) Append(ctx context.Context, rd models.Reading) error {
	if rd.ID == "" {
		rd.ID = uuid.NewString()
	}
	if rd.CreatedAt.IsZero() {
		rd.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		rd.ID,
		formatTimestamp(rd.CreatedAt),
		strings.TrimSpace(rd.DeviceID),
		rd.TempC,
		rd.PowerW,
		strings.ToUpper(strings.TrimSpace(rd.FanMode)),
	)
	if err != nil {
		return fmt.Errorf("insert reading for %q: %w", rd.DeviceID, err)
	}
	return nil
}

// Latest returns up to limit most recent readings of a device, oldest first.
func (r *ReadingSQLite) Latest(ctx context.Context, deviceID string, limit int) ([]models.Reading, error) {
	rows, err := r.db.QueryContext(ctx, selectLatestReadingsSQL, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("select readings for %q: %w", deviceID, err)
	}
	defer rows.Close()

	out := make([]models.Reading, 0, limit)
	for rows.Next() {
		var (
			rd models.Reading
			ts string
		)
		if err := rows.Scan(&rd.ID, &ts, &rd.DeviceID, &rd.TempC, &rd.PowerW, &rd.FanMode); err != nil {
			return nil, err
		}
		if rd.CreatedAt, err = parseTimestamp(ts); err != nil {
			return nil, fmt.Errorf("reading %s: bad created_at %q: %w", rd.ID, ts, err)
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
