package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/db"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/dberrors"
	"github.com/sdemirtas/registrar/internal/pkg/lifecycle"
	"github.com/sdemirtas/registrar/internal/pkg/logger"
)

// RoleRepository handles role instance database operations for one role
// type, parameterized by a RoleSpec. Tx-scoped methods take a db.Querier;
// the status column is only ever written through SetStatus, which the
// transition service calls inside a transaction.
type RoleRepository struct {
	db   *pgxpool.Pool
	spec RoleSpec
	sb   squirrel.StatementBuilderType
}

// NewRoleRepository creates a RoleRepository for the given spec.
func NewRoleRepository(pool *pgxpool.Pool, spec RoleSpec) *RoleRepository {
	return &RoleRepository{
		db:   pool,
		spec: spec,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Spec returns the repository's role spec.
func (r *RoleRepository) Spec() RoleSpec {
	return r.spec
}

func (r *RoleRepository) baseColumns(alias string) []string {
	pre := ""
	if alias != "" {
		pre = alias + "."
	}
	cols := []string{
		pre + "id", pre + "person_id", pre + "identifier", pre + "category",
		pre + "status", pre + "entry_year", pre + "created_at", pre + "updated_at",
	}
	for _, c := range r.spec.AttrColumns {
		cols = append(cols, pre+c)
	}
	return cols
}

func (r *RoleRepository) scanInstance(row pgx.Row) (*models.RoleInstance, error) {
	role := &models.RoleInstance{Type: r.spec.Type}
	targets := []any{
		&role.ID, &role.PersonID, &role.Identifier, &role.Category,
		&role.Status, &role.EntryYear, &role.CreatedAt, &role.UpdatedAt,
	}
	targets = append(targets, r.spec.attrScanTargets(role)...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return role, nil
}

func (r *RoleRepository) scanView(row pgx.Row) (*models.RoleView, error) {
	view := &models.RoleView{RoleInstance: models.RoleInstance{Type: r.spec.Type}}
	targets := []any{
		&view.ID, &view.PersonID, &view.Identifier, &view.Category,
		&view.Status, &view.EntryYear, &view.CreatedAt, &view.UpdatedAt,
	}
	targets = append(targets, r.spec.attrScanTargets(&view.RoleInstance)...)
	targets = append(targets, &view.FirstName, &view.LastName, &view.Email, &view.PlaceOfBirth, &view.Nationality)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *RoleRepository) viewQuery() squirrel.SelectBuilder {
	cols := r.baseColumns("r")
	cols = append(cols, "p.first_name", "p.last_name", "p.email", "p.place_of_birth", "p.nationality")
	return r.sb.Select(cols...).
		From(r.spec.Table + " r").
		Join("persons p ON p.id = r.person_id")
}

// Create inserts a new role instance with the already generated identifier.
// The initial status is always the lifecycle's start state regardless of
// what the caller set. Identifier collisions surface as
// apperrors.ErrIdentifierExists so the enrollment service can retry
// generation; a missing person surfaces as apperrors.ErrPersonNotFound.
func (r *RoleRepository) Create(ctx context.Context, q db.Querier, role *models.RoleInstance) error {
	role.Status = lifecycle.Initial

	columns := []string{"person_id", "identifier", "category", "status", "entry_year"}
	columns = append(columns, r.spec.AttrColumns...)

	values := []any{role.PersonID, role.Identifier, role.Category, string(role.Status), role.EntryYear}
	values = append(values, r.spec.attrValues(role)...)

	sql, args, err := r.sb.Insert(r.spec.Table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create %s query: %w", r.spec.Type, err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		// The identifier key is the only unique constraint on the role tables.
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("identifier", role.Identifier).Str("roleType", string(r.spec.Type)).Msg("Identifier collision on role insert")
			return apperrors.ErrIdentifierExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPersonNotFound
		}
		return fmt.Errorf("error creating %s role: %w", r.spec.Type, err)
	}

	return nil
}

// FindByIdentifier retrieves a role view by identifier.
func (r *RoleRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.RoleView, error) {
	sql, args, err := r.viewQuery().
		Where(squirrel.Eq{"r.identifier": identifier}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find %s query: %w", r.spec.Type, err)
	}

	view, err := r.scanView(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error retrieving %s role: %w", r.spec.Type, err)
	}

	return view, nil
}

// ListByFilters lists role views matching the filters, ordered by the
// owning person's last then first name.
func (r *RoleRepository) ListByFilters(ctx context.Context, filters models.RoleFilters) ([]*models.RoleView, error) {
	query := r.viewQuery()

	if filters.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filters.Status})
	}
	if filters.Category != "" {
		query = query.Where(squirrel.Eq{"r.category": filters.Category})
	}
	if filters.EntryYear != 0 {
		query = query.Where(squirrel.Eq{"r.entry_year": filters.EntryYear})
	}
	if filters.Text != "" {
		needle := "%" + filters.Text + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"p.first_name": needle},
			squirrel.ILike{"p.last_name": needle},
			squirrel.ILike{"p.email": needle},
			squirrel.ILike{"r.identifier": needle},
		})
	}
	for column, value := range filters.Attrs {
		if value == "" || !r.hasAttrColumn(column) {
			continue
		}
		query = query.Where(squirrel.ILike{"r." + column: "%" + value + "%"})
	}

	sql, args, err := query.
		OrderBy("p.last_name ASC", "p.first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list %s query: %w", r.spec.Type, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing %s roles: %w", r.spec.Type, err)
	}
	defer rows.Close()

	var views []*models.RoleView
	for rows.Next() {
		view, err := r.scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s role row: %w", r.spec.Type, err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s role rows: %w", r.spec.Type, err)
	}

	return views, nil
}

func (r *RoleRepository) hasAttrColumn(column string) bool {
	for _, c := range r.spec.AttrColumns {
		if c == column {
			return true
		}
	}
	return false
}

// ListByPerson retrieves all role instances of this type owned by a person.
func (r *RoleRepository) ListByPerson(ctx context.Context, q db.Querier, personID int64) ([]*models.RoleInstance, error) {
	sql, args, err := r.sb.Select(r.baseColumns("")...).
		From(r.spec.Table).
		Where(squirrel.Eq{"person_id": personID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list-by-person %s query: %w", r.spec.Type, err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing %s roles by person: %w", r.spec.Type, err)
	}
	defer rows.Close()

	var roles []*models.RoleInstance
	for rows.Next() {
		role, err := r.scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s role row: %w", r.spec.Type, err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s role rows: %w", r.spec.Type, err)
	}

	return roles, nil
}

// CurrentStatusForUpdate reads a role's id and current status by identifier,
// locking the row until the transaction ends. Concurrent transitions against
// the same role instance serialize on this lock, so each one is evaluated
// against the state the previous one committed.
func (r *RoleRepository) CurrentStatusForUpdate(ctx context.Context, q db.Querier, identifier string) (int64, lifecycle.Status, error) {
	var (
		id     int64
		status lifecycle.Status
	)
	sql := fmt.Sprintf(`SELECT id, status FROM %s WHERE identifier = $1 FOR UPDATE`, r.spec.Table)
	err := q.QueryRow(ctx, sql, identifier).Scan(&id, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", apperrors.ErrRoleNotFound
		}
		return 0, "", fmt.Errorf("error reading %s status: %w", r.spec.Type, err)
	}
	return id, status, nil
}

// SetStatus updates a role's status by row id. Only the transition service
// calls this, inside the same transaction as the audit write.
func (r *RoleRepository) SetStatus(ctx context.Context, q db.Querier, roleID int64, status lifecycle.Status) error {
	sql := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = now() WHERE id = $2`, r.spec.Table)
	tag, err := q.Exec(ctx, sql, string(status), roleID)
	if err != nil {
		return fmt.Errorf("error updating %s status: %w", r.spec.Type, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRoleNotFound
	}
	return nil
}

// UpdateFields applies a partial update to the role's descriptive fields and
// returns the updated view. Status and identifier are never changed here.
func (r *RoleRepository) UpdateFields(ctx context.Context, identifier string, update models.RoleUpdate) (*models.RoleView, error) {
	set := r.spec.updateSet(update)
	if len(set) == 0 {
		return nil, apperrors.NewValidationError("no updatable fields provided")
	}
	set["updated_at"] = squirrel.Expr("now()")

	sql, args, err := r.sb.Update(r.spec.Table).
		SetMap(set).
		Where(squirrel.Eq{"identifier": identifier}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update %s query: %w", r.spec.Type, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating %s role: %w", r.spec.Type, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrRoleNotFound
	}

	return r.FindByIdentifier(ctx, identifier)
}

// CountByStatus returns the number of role instances per status.
func (r *RoleRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	sql := fmt.Sprintf(`SELECT status, COUNT(*) FROM %s GROUP BY status ORDER BY status`, r.spec.Table)
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("error counting %s roles: %w", r.spec.Type, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning %s status count: %w", r.spec.Type, err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s status counts: %w", r.spec.Type, err)
	}

	return counts, nil
}

// ExistsForPerson checks whether the person owns at least one role instance
// of this type.
func (r *RoleRepository) ExistsForPerson(ctx context.Context, personID int64) (bool, error) {
	var exists bool
	sql := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE person_id = $1)`, r.spec.Table)
	if err := r.db.QueryRow(ctx, sql, personID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking %s role existence: %w", r.spec.Type, err)
	}
	return exists, nil
}
