package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/metrics"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

// OrderingService keeps links in per-bucket position order and collections in
// per-owner position order. Writes are issued one row at a time, in order, and
// are not wrapped in a transaction: a failed write does not stop the ones
// after it. When anything failed the board is re-fetched from the store so the
// caller sees what was actually persisted.
type OrderingService struct {
	store ports.Store
	log   zerolog.Logger
}

func NewOrderingService(store ports.Store, log zerolog.Logger) *OrderingService {
	return &OrderingService{store: store, log: log.With().Str("component", "ordering").Logger()}
}

func (s *OrderingService) Board(ctx context.Context, userID string) (*domain.Board, error) {
	links, err := s.store.ListLinks(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	collections, err := s.store.ListCollections(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return domain.NewBoard(links, collections), nil
}

func (s *OrderingService) ReorderWithinBucket(ctx context.Context, userID string, bucket domain.BucketID, draggedID, targetID string) (*domain.BoardUpdate, error) {
	board, err := s.Board(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draggedID == targetID {
		return &domain.BoardUpdate{Board: board}, nil
	}
	return s.reorderLinks(ctx, userID, board, bucket, draggedID, targetID)
}

func (s *OrderingService) MoveToBucket(ctx context.Context, userID, linkID string, dest domain.BucketID) (*domain.BoardUpdate, error) {
	board, err := s.Board(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.moveLink(ctx, userID, board, linkID, dest)
}

func (s *OrderingService) ReorderBuckets(ctx context.Context, userID, draggedID, targetID string) (*domain.BoardUpdate, error) {
	board, err := s.Board(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draggedID == targetID {
		return &domain.BoardUpdate{Board: board}, nil
	}
	return s.reorderCollections(ctx, userID, board, draggedID, targetID)
}

// UngroupBucket moves every link of the collection to the ungrouped bucket.
// Positions are kept as they are.
func (s *OrderingService) UngroupBucket(ctx context.Context, userID, collectionID string) (*domain.BoardUpdate, error) {
	board, err := s.Board(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := board.Collection(collectionID); !ok {
		return nil, fmt.Errorf("ungroup %s: %w", collectionID, domain.ErrCollectionNotFound)
	}

	if _, err := s.store.UngroupLinks(ctx, userID, collectionID); err != nil {
		return nil, fmt.Errorf("ungroup %s: %w", collectionID, err)
	}
	board.Ungroup(collectionID)
	return &domain.BoardUpdate{Board: board}, nil
}

// DeleteBucket ungroups the collection's links, then removes the collection.
func (s *OrderingService) DeleteBucket(ctx context.Context, userID, collectionID string) (*domain.BoardUpdate, error) {
	board, err := s.Board(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := board.Collection(collectionID); !ok {
		return nil, fmt.Errorf("delete %s: %w", collectionID, domain.ErrCollectionNotFound)
	}

	if _, err := s.store.UngroupLinks(ctx, userID, collectionID); err != nil {
		return nil, fmt.Errorf("ungroup %s: %w", collectionID, err)
	}
	if err := s.store.DeleteCollection(ctx, userID, collectionID); err != nil {
		return nil, fmt.Errorf("delete %s: %w", collectionID, err)
	}
	board.RemoveCollection(collectionID)
	return &domain.BoardUpdate{Board: board}, nil
}

// Drop applies the drop-target policy for draggedID released over overID.
// Unresolvable combinations are no-ops without writes.
func (s *OrderingService) Drop(ctx context.Context, userID, draggedID, overID string) (*domain.BoardUpdate, error) {
	board, err := s.Board(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draggedID == overID || overID == "" {
		return &domain.BoardUpdate{Board: board}, nil
	}

	if link, ok := board.Link(draggedID); ok {
		if overID == domain.UngroupedSentinel {
			return s.moveLink(ctx, userID, board, draggedID, domain.Ungrouped)
		}
		if _, ok := board.Collection(overID); ok {
			return s.moveLink(ctx, userID, board, draggedID, domain.BucketID(overID))
		}
		if over, ok := board.Link(overID); ok {
			if over.Bucket() == link.Bucket() {
				return s.reorderLinks(ctx, userID, board, link.Bucket(), draggedID, overID)
			}
			return s.moveLink(ctx, userID, board, draggedID, over.Bucket())
		}
		return &domain.BoardUpdate{Board: board}, nil
	}

	if _, ok := board.Collection(draggedID); ok {
		if _, ok := board.Collection(overID); ok {
			return s.reorderCollections(ctx, userID, board, draggedID, overID)
		}
		return &domain.BoardUpdate{Board: board}, nil
	}

	return nil, fmt.Errorf("drag item %s: %w", draggedID, domain.ErrLinkNotFound)
}

// Renumber rewrites every bucket and the collection list densely from 0,
// keeping the current order. Used to repair drift left by moves and
// interrupted batches. Links pointing at a collection that no longer exists
// are ungrouped and placed after the ungrouped links.
func (s *OrderingService) Renumber(ctx context.Context, userID string) (*domain.BoardUpdate, error) {
	board, err := s.Board(ctx, userID)
	if err != nil {
		return nil, err
	}

	var report domain.SyncReport
	ungrouped := board.BucketLinks(domain.Ungrouped)
	for _, l := range board.OrphanLinks() {
		i := report.Pending(domain.RowKindLink, l.ID, nil)
		err := s.store.SetLinkCollection(ctx, userID, l.ID, nil)
		report.Resolve(i, err)
		countWrite(domain.RowKindLink, err)
		if err != nil {
			continue
		}
		if link, ok := board.Link(l.ID); ok {
			link.CollectionID = nil
		}
		ungrouped = append(ungrouped, l)
	}
	board.ApplyLinkOrder(ungrouped)
	s.writeLinkPositions(ctx, userID, ungrouped, &report)

	for _, c := range board.SortedCollections() {
		ordered := board.BucketLinks(domain.BucketID(c.ID))
		board.ApplyLinkOrder(ordered)
		s.writeLinkPositions(ctx, userID, ordered, &report)
	}

	ordered := board.SortedCollections()
	board.ApplyCollectionOrder(ordered)
	s.writeCollectionPositions(ctx, userID, ordered, &report)

	return s.finish(ctx, userID, board, report)
}

func (s *OrderingService) reorderLinks(ctx context.Context, userID string, board *domain.Board, bucket domain.BucketID, draggedID, targetID string) (*domain.BoardUpdate, error) {
	seq := board.BucketLinks(bucket)
	from, to := -1, -1
	for i, l := range seq {
		switch l.ID {
		case draggedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from == -1 || to == -1 {
		return nil, fmt.Errorf("reorder in bucket %q: %w", bucket, domain.ErrLinkNotFound)
	}

	ordered := domain.ArrayMove(seq, from, to)
	board.ApplyLinkOrder(ordered)

	var report domain.SyncReport
	s.writeLinkPositions(ctx, userID, ordered, &report)
	return s.finish(ctx, userID, board, report)
}

// moveLink changes only the bucket of the link. Its position is carried over
// unchanged and neither bucket is renumbered.
func (s *OrderingService) moveLink(ctx context.Context, userID string, board *domain.Board, linkID string, dest domain.BucketID) (*domain.BoardUpdate, error) {
	link, ok := board.Link(linkID)
	if !ok {
		return nil, fmt.Errorf("move %s: %w", linkID, domain.ErrLinkNotFound)
	}
	if dest != domain.Ungrouped {
		if _, ok := board.Collection(string(dest)); !ok {
			return nil, fmt.Errorf("move %s to %s: %w", linkID, dest, domain.ErrCollectionNotFound)
		}
	}
	if link.Bucket() == dest {
		return &domain.BoardUpdate{Board: board}, nil
	}

	link.CollectionID = dest.CollectionID()

	var report domain.SyncReport
	i := report.Pending(domain.RowKindLink, linkID, nil)
	err := s.store.SetLinkCollection(ctx, userID, linkID, dest.CollectionID())
	report.Resolve(i, err)
	countWrite(domain.RowKindLink, err)

	return s.finish(ctx, userID, board, report)
}

func (s *OrderingService) reorderCollections(ctx context.Context, userID string, board *domain.Board, draggedID, targetID string) (*domain.BoardUpdate, error) {
	seq := board.SortedCollections()
	from, to := -1, -1
	for i, c := range seq {
		switch c.ID {
		case draggedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from == -1 || to == -1 {
		return nil, fmt.Errorf("reorder collections: %w", domain.ErrCollectionNotFound)
	}

	ordered := domain.ArrayMove(seq, from, to)
	board.ApplyCollectionOrder(ordered)

	var report domain.SyncReport
	s.writeCollectionPositions(ctx, userID, ordered, &report)
	return s.finish(ctx, userID, board, report)
}

func (s *OrderingService) writeLinkPositions(ctx context.Context, userID string, ordered []domain.Link, report *domain.SyncReport) {
	for pos, l := range ordered {
		p := pos
		i := report.Pending(domain.RowKindLink, l.ID, &p)
		err := s.store.UpdateLinkPosition(ctx, userID, l.ID, pos)
		report.Resolve(i, err)
		countWrite(domain.RowKindLink, err)
	}
}

func (s *OrderingService) writeCollectionPositions(ctx context.Context, userID string, ordered []domain.Collection, report *domain.SyncReport) {
	for pos, c := range ordered {
		p := pos
		i := report.Pending(domain.RowKindCollection, c.ID, &p)
		err := s.store.UpdateCollectionPosition(ctx, userID, c.ID, pos)
		report.Resolve(i, err)
		countWrite(domain.RowKindCollection, err)
	}
}

// finish returns the optimistic board when every write landed. Otherwise it
// logs the failed rows and replaces the board with a fresh read.
func (s *OrderingService) finish(ctx context.Context, userID string, board *domain.Board, report domain.SyncReport) (*domain.BoardUpdate, error) {
	failed := report.Failed()
	if len(failed) == 0 {
		return &domain.BoardUpdate{Board: board, Sync: report}, nil
	}

	for _, row := range failed {
		s.log.Error().
			Str("user_id", userID).
			Str("kind", row.Kind).
			Str("id", row.ID).
			Str("error", row.Error).
			Msg("position write failed")
	}

	update := &domain.BoardUpdate{Board: board, Sync: report}
	fresh, err := s.Board(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("reconcile failed, board may be stale")
	} else {
		update.Board = fresh
		update.Reconciled = true
		metrics.Reconciles.Inc()
	}
	return update, &domain.PartialSyncError{Report: report}
}

func countWrite(kind string, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	metrics.PositionWrites.WithLabelValues(kind, result).Inc()
}
