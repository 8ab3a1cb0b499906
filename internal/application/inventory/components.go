package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-core/internal/domain"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

// EffectiveComponent es un componente efectivo a mover por un ítem vendido o
// devuelto: el ítem mismo (multiplicador 1) o una línea de su receta.
type EffectiveComponent struct {
	ItemID     string
	Multiplier decimal.Decimal
}

// ResolveEffectiveComponents expande un ítem a sus componentes efectivos.
// Ítem simple o receta vacía: el ítem mismo con multiplicador 1.
// Ítem compuesto: su receta tal cual, un solo nivel (las recetas anidadas se
// rechazan al configurar, ver ValidateComposition). Función pura, sin efectos.
func ResolveEffectiveComponents(item *entity.Item, components []entity.ItemComponent) []EffectiveComponent {
	if !item.IsComposite || len(components) == 0 {
		return []EffectiveComponent{{ItemID: item.ID, Multiplier: decimal.NewFromInt(1)}}
	}
	effective := make([]EffectiveComponent, 0, len(components))
	for _, c := range components {
		effective = append(effective, EffectiveComponent{
			ItemID:     c.ComponentItemID,
			Multiplier: c.Multiplier,
		})
	}
	return effective
}

// ValidateComposition valida una receta antes de guardarla: multiplicadores
// positivos, componentes existentes y ningún componente compuesto (las recetas
// anidadas no están soportadas; se rechazan aquí en vez de expandirse).
func ValidateComposition(ctx context.Context, itemRepo repository.ItemRepository, components []entity.ItemComponent) error {
	for _, c := range components {
		if !c.Multiplier.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		component, err := itemRepo.GetByID(ctx, c.ComponentItemID)
		if err != nil {
			return err
		}
		if component == nil {
			return domain.ErrItemNotFound
		}
		if component.IsComposite {
			return domain.ErrNestedComposite
		}
	}
	return nil
}
