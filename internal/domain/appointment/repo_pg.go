package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `id, patient_id, doctor_id, doctor_name, doctor_image, speciality,
	clinic_address, fee, visit_date, slot_time, status,
	payment_id, payment_method, card_last4, payment_amount, paid_at,
	notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var payID, payMethod, cardLast4 *string
	var payAmount *float64

	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.DoctorName, &a.DoctorImage,
		&a.Speciality, &a.ClinicAddress, &a.Fee, &a.Date, &a.Slot, &a.Status,
		&payID, &payMethod, &cardLast4, &payAmount, &a.PaidAt,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if payID != nil {
		a.Payment = &Payment{PaymentID: *payID}
		if payMethod != nil {
			a.Payment.Method = *payMethod
		}
		if cardLast4 != nil {
			a.Payment.CardLast4 = *cardLast4
		}
		if payAmount != nil {
			a.Payment.Amount = *payAmount
		}
	}
	return &a, nil
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, doctor_name, doctor_image,
			speciality, clinic_address, fee, visit_date, slot_time, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.DoctorID, a.DoctorName, a.DoctorImage,
		a.Speciality, a.ClinicAddress, a.Fee, a.Date, a.Slot, a.Status, a.Notes)

	err := row.Scan(&a.CreatedAt, &a.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		// The partial unique index over active (doctor, date, slot) tuples
		// rejected a concurrent or duplicate booking.
		return ErrSlotTaken
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) list(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM appointment %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		apptCols, where, n+1, n+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return r.list(ctx, `WHERE patient_id = $1`, []interface{}{patientID}, limit, offset)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return r.list(ctx, `WHERE doctor_id = $1`, []interface{}{doctorID}, limit, offset)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return r.list(ctx, ``, nil, limit, offset)
}

func (r *repoPG) Transition(ctx context.Context, id uuid.UUID, from []Status, to Status) (*Appointment, error) {
	a, err := scanAppointment(r.pool.QueryRow(ctx, `
		UPDATE appointment SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
		RETURNING `+apptCols,
		id, to, statusStrings(from)))
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing record from a precondition failure.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrInvalidTransition
	}
	return a, err
}

func (r *repoPG) AttachPayment(ctx context.Context, id uuid.UUID, p Payment) (*Appointment, error) {
	a, err := scanAppointment(r.pool.QueryRow(ctx, `
		UPDATE appointment
		SET status = $2, payment_id = $3, payment_method = $4, card_last4 = $5,
			payment_amount = $6, paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $7
		RETURNING `+apptCols,
		id, StatusConfirmed, p.PaymentID, p.Method, nullable(p.CardLast4), p.Amount, StatusPendingPayment))
	if errors.Is(err, ErrNotFound) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrInvalidTransition
	}
	return a, err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM appointment WHERE id = $1 AND status = ANY($2)`,
		id, statusStrings(TerminalStatuses))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrInvalidTransition
	}
	return nil
}

func (r *repoPG) CompletePast(ctx context.Context, today string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointment SET status = $1, updated_at = NOW()
		WHERE status = $2 AND visit_date < $3`,
		StatusCompleted, StatusConfirmed, today)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) PurgeTerminalBefore(ctx context.Context, cutoff string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM appointment WHERE status = ANY($1) AND visit_date < $2`,
		statusStrings(TerminalStatuses), cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByStatus: make(map[Status]int64)}

	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT patient_id) FROM appointment`).
		Scan(&stats.Appointments, &stats.Patients); err != nil {
		return nil, err
	}
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&stats.Doctors); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM appointment GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s Status
		var n int64
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		stats.ByStatus[s] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	latest, _, err := r.List(ctx, 5, 0)
	if err != nil {
		return nil, err
	}
	stats.Latest = latest
	return stats, nil
}
