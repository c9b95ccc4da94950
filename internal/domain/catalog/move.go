package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anbar/anbar-api/internal/domain"
)

// ItemRef referencia tipada a una fila seleccionada.
type ItemRef struct {
	Kind ItemKind
	ID   int64
}

// ParseItemID interpreta "prod_<id>" o "cat_<id>".
func ParseItemID(s string) (ItemRef, error) {
	var kind ItemKind
	var rest string
	switch {
	case strings.HasPrefix(s, productPrefix):
		kind, rest = KindProduct, strings.TrimPrefix(s, productPrefix)
	case strings.HasPrefix(s, categoryPrefix):
		kind, rest = KindCategory, strings.TrimPrefix(s, categoryPrefix)
	default:
		return ItemRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidItemID, s)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return ItemRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidItemID, s)
	}
	return ItemRef{Kind: kind, ID: id}, nil
}

// RejectReason motivo por el que no se mueve una categoría.
type RejectReason string

const (
	RejectSelfMove RejectReason = "self_move"
	RejectCycle    RejectReason = "cycle"
	RejectNotFound RejectReason = "not_found"
)

// CategoryMove resultado por categoría: Reason vacío = aceptada.
type CategoryMove struct {
	CategoryID int64
	Reason     RejectReason
}

// OK indica si la categoría se moverá.
func (m CategoryMove) OK() bool { return m.Reason == "" }

// MovePlan operaciones a aplicar para un movimiento.
type MovePlan struct {
	Target     *int64
	ProductIDs []int64
	Categories []CategoryMove
}

// Accepted ids de categorías que se re-ubican.
func (p MovePlan) Accepted() []int64 {
	var ids []int64
	for _, m := range p.Categories {
		if m.OK() {
			ids = append(ids, m.CategoryID)
		}
	}
	return ids
}

// Rejected categorías descartadas con su motivo.
func (p MovePlan) Rejected() []CategoryMove {
	var out []CategoryMove
	for _, m := range p.Categories {
		if !m.OK() {
			out = append(out, m)
		}
	}
	return out
}

// Empty indica que no hay nada que escribir.
func (p MovePlan) Empty() bool {
	return len(p.ProductIDs) == 0 && len(p.Accepted()) == 0
}

// PlanMove separa productos y categorías y valida cada categoría contra target:
// no puede moverse a sí misma ni dentro de un descendiente propio.
// Los ids repetidos se ignoran.
func PlanMove(ix *Index, itemIDs []string, target *int64) (MovePlan, error) {
	plan := MovePlan{Target: copyID(target)}
	seenProd := make(map[int64]bool)
	seenCat := make(map[int64]bool)
	for _, raw := range itemIDs {
		ref, err := ParseItemID(raw)
		if err != nil {
			return MovePlan{}, err
		}
		if ref.Kind == KindProduct {
			if !seenProd[ref.ID] {
				seenProd[ref.ID] = true
				plan.ProductIDs = append(plan.ProductIDs, ref.ID)
			}
			continue
		}
		if seenCat[ref.ID] {
			continue
		}
		seenCat[ref.ID] = true
		plan.Categories = append(plan.Categories, CategoryMove{
			CategoryID: ref.ID,
			Reason:     checkCategoryMove(ix, ref.ID, target),
		})
	}
	return plan, nil
}

func checkCategoryMove(ix *Index, categoryID int64, target *int64) RejectReason {
	if target != nil && *target == categoryID {
		return RejectSelfMove
	}
	if _, ok := ix.Get(categoryID); !ok {
		return RejectNotFound
	}
	if target != nil && ix.IsDescendant(*target, categoryID) {
		return RejectCycle
	}
	return ""
}

// ValidateReparent comprueba que mover categoryID bajo parentID no genera ciclo.
func ValidateReparent(ix *Index, categoryID int64, parentID *int64) error {
	switch checkCategoryMove(ix, categoryID, parentID) {
	case RejectSelfMove, RejectCycle:
		return domain.ErrCycle
	case RejectNotFound:
		return domain.ErrNotFound
	}
	return nil
}
