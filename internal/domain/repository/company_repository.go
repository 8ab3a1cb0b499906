package repository

import (
	"context"

	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

// CompanyRepository define el puerto de lectura de empresas facturadoras.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
