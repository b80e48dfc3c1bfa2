package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
)

type phaseRepository struct {
	*DB
}

// NewPhaseRepository constructs a [PhaseRepository] on db.
func NewPhaseRepository(db *DB) PhaseRepository {
	return &phaseRepository{DB: db}
}

func (r *phaseRepository) Create(ctx context.Context, phase models.Phase) (models.Phase, error) {
	query, args, err := buildInsertPhaseQuery(r.builder, phase)
	if err != nil {
		return models.Phase{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&phase.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*phaseRepository.Create").Msg("failed to insert phase")
		return models.Phase{}, r.execError(err)
	}

	return phase, nil
}

func (r *phaseRepository) Get(ctx context.Context, id int64) (models.Phase, error) {
	phases, err := r.list(ctx, id)
	if err != nil {
		return models.Phase{}, err
	}
	if len(phases) == 0 {
		return models.Phase{}, ErrNotFound
	}
	return phases[0], nil
}

func (r *phaseRepository) List(ctx context.Context) ([]models.Phase, error) {
	return r.list(ctx)
}

func (r *phaseRepository) list(ctx context.Context, ids ...int64) ([]models.Phase, error) {
	query, args, err := buildSelectPhasesQuery(r.builder, ids...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryAll(ctx, r.DB, "*phaseRepository.list", query, args, func(row rowScanner) (models.Phase, error) {
		var p models.Phase
		err := row.Scan(&p.ID, &p.Name, &p.Position)
		return p, err
	})
}

type customerRepository struct {
	*DB
}

// NewCustomerRepository constructs a [CustomerRepository] on db.
func NewCustomerRepository(db *DB) CustomerRepository {
	return &customerRepository{DB: db}
}

func (r *customerRepository) Create(ctx context.Context, customer models.Customer) (models.Customer, error) {
	customer.CreatedAt = time.Now().UTC()

	query, args, err := buildInsertCustomerQuery(r.builder, customer)
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&customer.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*customerRepository.Create").Msg("failed to insert customer")
		return models.Customer{}, r.execError(err)
	}

	return customer, nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (models.Customer, error) {
	customers, err := r.list(ctx, id)
	if err != nil {
		return models.Customer{}, err
	}
	if len(customers) == 0 {
		return models.Customer{}, ErrNotFound
	}
	return customers[0], nil
}

func (r *customerRepository) List(ctx context.Context) ([]models.Customer, error) {
	return r.list(ctx)
}

func (r *customerRepository) list(ctx context.Context, ids ...int64) ([]models.Customer, error) {
	query, args, err := buildSelectCustomersQuery(r.builder, ids...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryAll(ctx, r.DB, "*customerRepository.list", query, args, func(row rowScanner) (models.Customer, error) {
		var c models.Customer
		err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.CreatedAt)
		return c, err
	})
}

func (r *customerRepository) Update(ctx context.Context, id int64, changes map[string]any) (models.Customer, error) {
	if len(changes) == 0 {
		return r.Get(ctx, id)
	}

	query, args, err := buildUpdateCustomerQuery(r.builder, id, changes)
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := execOne(ctx, r.DB, "*customerRepository.Update", query, args); err != nil {
		return models.Customer{}, err
	}

	return r.Get(ctx, id)
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := buildDeleteByIDQuery(r.builder, tableCustomers, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execOne(ctx, r.DB, "*customerRepository.Delete", query, args)
}

type templateRepository struct {
	*DB
}

// NewTemplateRepository constructs a [TemplateRepository] on db.
func NewTemplateRepository(db *DB) TemplateRepository {
	return &templateRepository{DB: db}
}

func (r *templateRepository) Create(ctx context.Context, template models.Template) (models.Template, error) {
	template.CreatedAt = time.Now().UTC()

	query, args, err := buildInsertTemplateQuery(r.builder, template)
	if err != nil {
		return models.Template{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&template.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*templateRepository.Create").Msg("failed to insert template")
		return models.Template{}, r.execError(err)
	}

	return template, nil
}

func (r *templateRepository) Get(ctx context.Context, id int64) (models.Template, error) {
	templates, err := r.list(ctx, "", id)
	if err != nil {
		return models.Template{}, err
	}
	if len(templates) == 0 {
		return models.Template{}, ErrNotFound
	}
	return templates[0], nil
}

func (r *templateRepository) List(ctx context.Context, kind models.EntityKind) ([]models.Template, error) {
	return r.list(ctx, kind)
}

func (r *templateRepository) list(ctx context.Context, kind models.EntityKind, ids ...int64) ([]models.Template, error) {
	query, args, err := buildSelectTemplatesQuery(r.builder, kind, ids...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryAll(ctx, r.DB, "*templateRepository.list", query, args, func(row rowScanner) (models.Template, error) {
		var (
			t       models.Template
			payload []byte
		)
		err := row.Scan(&t.ID, &t.Name, &t.Kind, &payload, &t.CreatedBy, &t.CreatedAt)
		t.Payload = payload
		return t, err
	})
}

// queryAll runs a SELECT and scans every row with scan.
func queryAll[T any](ctx context.Context, db *DB, funcName, query string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	log := logger.FromContext(ctx)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]T, 0, 16)
	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// execOne runs a DML statement that must touch at least one row.
func execOne(ctx context.Context, db *DB, funcName, query string, args []any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to execute statement")
		return db.execError(err)
	}

	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
