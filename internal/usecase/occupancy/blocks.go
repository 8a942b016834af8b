package occupancy

import (
	"context"

	"github.com/Soulinho/pandawok-project/internal/audit"
	domain "github.com/Soulinho/pandawok-project/internal/domain/occupancy"
	"github.com/Soulinho/pandawok-project/internal/models"
)

type BlockTableInput struct {
	TableID   uint
	Reason    string
	Date      string
	StartTime string
	EndTime   string
	ActorID   *uint
}

type BlockTable struct {
	deps Deps
}

func NewBlockTable(deps Deps) *BlockTable {
	return &BlockTable{deps: deps}
}

// Execute reserves a time window on a table for non-guest use. Table status is
// unchanged.
func (uc *BlockTable) Execute(ctx context.Context, in BlockTableInput) (*models.TableBlock, error) {
	block, err := domain.NewBlock(in.TableID, in.Reason, in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	block.CreatedBy = in.ActorID
	block.CreatedAt = uc.deps.now()

	err = uc.deps.withTables(ctx, []uint{in.TableID}, func(tx domain.Repository) error {
		if _, err := tx.LockTable(ctx, in.TableID); err != nil {
			return err
		}
		return tx.CreateBlock(ctx, block)
	})
	if err != nil {
		return nil, err
	}

	uc.deps.record(in.ActorID, "table_blocked", in.TableID, map[string]any{
		"block_id": block.ID,
		"reason":   block.Reason,
		"date":     block.Date,
		"start":    block.StartTime,
		"end":      block.EndTime,
	})

	return block, nil
}

// ======================================================
// LIST / REMOVE
// ======================================================

type ListBlocks struct {
	repo domain.Repository
}

func NewListBlocks(repo domain.Repository) *ListBlocks {
	return &ListBlocks{repo: repo}
}

func (uc *ListBlocks) Execute(ctx context.Context, tableID uint) ([]models.TableBlock, error) {
	if _, err := uc.repo.GetTable(ctx, tableID); err != nil {
		return nil, err
	}
	return uc.repo.ListBlocks(ctx, tableID)
}

type RemoveBlock struct {
	deps Deps
}

func NewRemoveBlock(deps Deps) *RemoveBlock {
	return &RemoveBlock{deps: deps}
}

func (uc *RemoveBlock) Execute(ctx context.Context, blockID string, actorID *uint) error {
	block, err := uc.deps.Repo.GetBlock(ctx, blockID)
	if err != nil {
		return err
	}

	err = uc.deps.withTables(ctx, []uint{block.TableID}, func(tx domain.Repository) error {
		return tx.DeleteBlock(ctx, blockID)
	})
	if err != nil {
		return err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "table_unblocked",
		Entity:   "table_block",
		EntityID: block.ID,
		Metadata: map[string]any{"table_id": block.TableID},
	})
	return nil
}
