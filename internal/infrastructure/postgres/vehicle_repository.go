package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `
	v.id::text, v.make, v.model, v.year, v.price, COALESCE(v.plate, ''),
	COALESCE(v.mileage, 0), COALESCE(v.color, ''), COALESCE(v.description, ''),
	v.status, COALESCE(v.photos, '{}'), v.company_id::text, v.created_at, v.updated_at`

// VehicleRepo implementación del puerto VehicleRepository sobre PostgreSQL (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador de persistencia para vehículos.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un nuevo vehículo.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, make, model, year, price, plate, mileage, color, description, status, photos, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Price,
		nullIfEmpty(vehicle.Plate), vehicle.Mileage, nullIfEmpty(vehicle.Color),
		nullIfEmpty(vehicle.Description), vehicle.Status, vehicle.Photos,
		vehicle.CompanyID, vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID. Devuelve nil si no existe.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(),
		`SELECT `+vehicleColumns+` FROM vehicles v WHERE v.id = $1`, id).Scan(
		&v.ID, &v.Make, &v.Model, &v.Year, &v.Price, &v.Plate, &v.Mileage,
		&v.Color, &v.Description, &v.Status, &v.Photos, &v.CompanyID, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// Update sobrescribe los campos mutables del vehículo.
func (r *VehicleRepo) Update(vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $2, model = $3, year = $4, price = $5, plate = $6, mileage = $7,
		    color = $8, description = $9, status = $10, photos = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Price,
		nullIfEmpty(vehicle.Plate), vehicle.Mileage, nullIfEmpty(vehicle.Color),
		nullIfEmpty(vehicle.Description), vehicle.Status, vehicle.Photos, vehicle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// Delete elimina un vehículo por ID.
func (r *VehicleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}

// List lista vehículos según filtro. SoldBySellerID agrega el JOIN con sales
// para que un asesor solo vea los vehículos vendidos que vendió él.
func (r *VehicleRepo) List(filter repository.VehicleFilter) ([]*entity.Vehicle, int, error) {
	from := ` FROM vehicles v`
	where := ` WHERE 1=1`
	args := []any{}

	if filter.SoldBySellerID != "" {
		from += ` JOIN sales s ON s.vehicle_id = v.id`
		args = append(args, filter.SoldBySellerID)
		where += fmt.Sprintf(` AND s.seller_id = $%d`, len(args))
	}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		where += fmt.Sprintf(` AND v.company_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND v.status = $%d`, len(args))
	}
	if filter.Query != "" {
		args = append(args, likePattern(filter.Query))
		n := len(args)
		where += fmt.Sprintf(` AND (v.make ILIKE $%d OR v.model ILIKE $%d OR v.plate ILIKE $%d)`, n, n, n)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY v.created_at DESC LIMIT $%d OFFSET $%d`,
		vehicleColumns, from, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Price, &v.Plate, &v.Mileage,
			&v.Color, &v.Description, &v.Status, &v.Photos, &v.CompanyID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, total, rows.Err()
}
