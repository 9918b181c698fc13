package postgres

import (
	"context"
	"fmt"

	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, rif, address, phone, email, status,
	plan_status, trial_started_at, trial_length_days, subscription_end,
	created_at, updated_at`

// Create persiste una nueva empresa (plan FREE al registrarse).
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, rif, address, phone, email, status,
			plan_status, trial_started_at, trial_length_days, subscription_end,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.RIF, company.Address,
		company.Phone, company.Email, company.Status,
		company.PlanStatus, company.TrialStartedAt, company.TrialLengthDays,
		company.SubscriptionEnd, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByRIF obtiene una empresa por RIF.
func (r *CompanyRepo) GetByRIF(rif string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE rif = $1`
	return r.scanOne(query, rif)
}

func (r *CompanyRepo) scanOne(query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.RIF, &c.Address, &c.Phone, &c.Email, &c.Status,
		&c.PlanStatus, &c.TrialStartedAt, &c.TrialLengthDays, &c.SubscriptionEnd,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos generales de una empresa (no el plan; ver UpdatePlan).
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, rif = $3, address = $4, phone = $5,
			email = $6, status = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.RIF, company.Address,
		company.Phone, company.Email, company.Status, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePlan escribe el estado de plan completo en una sola sentencia,
// condicionada a que plan_status siga siendo expectedStatus (CAS).
// RowsAffected == 0 con la empresa existente significa que otro escritor
// cambió el plan entre la lectura y esta escritura.
func (r *CompanyRepo) UpdatePlan(company *entity.Company, expectedStatus string) error {
	query := `
		UPDATE companies SET plan_status = $2, trial_started_at = $3,
			trial_length_days = $4, subscription_end = $5, updated_at = $6
		WHERE id = $1 AND plan_status = $7`
	cmd, err := r.q.Exec(context.Background(), query,
		company.ID, company.PlanStatus, company.TrialStartedAt,
		company.TrialLengthDays, company.SubscriptionEnd, company.UpdatedAt,
		expectedStatus,
	)
	if err != nil {
		return fmt.Errorf("update company plan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.exists(company.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

func (r *CompanyRepo) exists(id string) (bool, error) {
	var found bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check company: %w", err)
	}
	return found, nil
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + `
		FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.RIF, &c.Address, &c.Phone, &c.Email, &c.Status,
			&c.PlanStatus, &c.TrialStartedAt, &c.TrialLengthDays, &c.SubscriptionEnd,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
