package catalog

import (
	"context"
	"fmt"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/ports"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/catalog"
	"github.com/anbar/anbar-api/pkg/logger"
)

// MoveUseCase mueve productos y categorías seleccionados a una carpeta destino.
type MoveUseCase struct {
	store   *Store
	tx      ports.TxRunner
	log     *logger.Logger
	metrics Metrics
}

// NewMoveUseCase construye el caso de uso. metrics puede ser nil.
func NewMoveUseCase(store *Store, tx ports.TxRunner, log *logger.Logger, metrics Metrics) *MoveUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MoveUseCase{store: store, tx: tx, log: log.Component("catalog_move"), metrics: metrics}
}

// Move planifica contra la foto vigente y aplica todo en una transacción:
// un UPDATE por lote para productos y uno por categoría aceptada. Las
// categorías rechazadas (auto-movimiento, ciclo, inexistente) se informan
// en la respuesta sin abortar el resto.
func (uc *MoveUseCase) Move(ctx context.Context, in dto.MoveItemsRequest) (*dto.MoveItemsResponse, error) {
	if len(in.ItemIDs) == 0 {
		return nil, fmt.Errorf("%w: item_ids vacío", domain.ErrInvalidInput)
	}
	snap, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if t := in.TargetCategoryID; t != nil {
		if _, ok := snap.Index.Get(*t); !ok {
			return nil, fmt.Errorf("%w: categoría destino %d", domain.ErrNotFound, *t)
		}
	}
	plan, err := catalog.PlanMove(snap.Index, in.ItemIDs, in.TargetCategoryID)
	if err != nil {
		return nil, err
	}

	out := &dto.MoveItemsResponse{
		MovedProducts:   []int64{},
		MovedCategories: []int64{},
		Rejected:        []dto.MoveRejection{},
	}
	for _, r := range plan.Rejected() {
		uc.metrics.MoveRejected(string(r.Reason))
		ev := uc.log.Warn().Int64("category_id", r.CategoryID).Str("reason", string(r.Reason))
		if plan.Target != nil {
			ev = ev.Int64("target_id", *plan.Target)
		}
		ev.Msg("categoría no movida")
		out.Rejected = append(out.Rejected, dto.MoveRejection{CategoryID: r.CategoryID, Reason: string(r.Reason)})
	}
	if plan.Empty() {
		return out, nil
	}

	accepted := plan.Accepted()
	err = uc.tx.Run(ctx, func(repos ports.Repos) error {
		if plan.Target != nil {
			target, err := repos.Categories.GetByID(ctx, *plan.Target)
			if err != nil {
				return err
			}
			if target == nil {
				return fmt.Errorf("%w: categoría destino %d", domain.ErrNotFound, *plan.Target)
			}
		}
		if len(plan.ProductIDs) > 0 {
			if _, err := repos.Products.MoveToCategory(ctx, plan.ProductIDs, plan.Target); err != nil {
				return err
			}
		}
		for _, id := range accepted {
			if err := repos.Categories.UpdateParent(ctx, id, plan.Target); err != nil {
				return err
			}
		}
		return nil
	})
	uc.store.Invalidate()
	if err != nil {
		return nil, err
	}

	out.MovedProducts = append(out.MovedProducts, plan.ProductIDs...)
	out.MovedCategories = append(out.MovedCategories, accepted...)
	uc.log.Info().Int("products", len(plan.ProductIDs)).Int("categories", len(accepted)).Msg("elementos movidos")
	return out, nil
}
