package opponent

import (
	"github.com/dolthub/swiss"
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const queueSizeHint = 16

// Strategy hunts with random shots until it scores a hit, then works through the
// orthogonal neighbours of its hits until the queue runs dry.
type Strategy struct {
	rnd        domain.Random
	candidates []domain.Coord
	queued     *swiss.Map[domain.Coord, struct{}]
	logger     *zap.Logger
}

func New(rnd domain.Random, logger *zap.Logger) *Strategy {
	return &Strategy{
		rnd:    rnd,
		queued: swiss.NewMap[domain.Coord, struct{}](queueSizeHint),
		logger: logger,
	}
}

func (s *Strategy) Attack(board *domain.Board) (domain.Shot, error) {
	target, ok := s.nextCandidate(board)
	if ok {
		s.logger.Debug("target phase", zap.Stringer("coord", target), zap.Int("pending", len(s.candidates)))
	} else {
		legal := board.LegalTargets()
		if len(legal) == 0 {
			return domain.Shot{}, ErrNoTargets
		}
		target = legal[s.rnd.Intn(len(legal))]
		s.logger.Debug("hunt phase", zap.Stringer("coord", target))
	}
	shot, err := board.ReceiveAttack(target)
	if err != nil {
		return domain.Shot{}, errors.WithMessage(err, "receive attack")
	}
	if shot.Outcome == domain.OutcomeHit {
		s.enqueue(board, target.Orthogonals())
	}
	return shot, nil
}

// Pending returns a copy of the queued candidates, head first.
func (s *Strategy) Pending() []domain.Coord {
	return append([]domain.Coord(nil), s.candidates...)
}

func (s *Strategy) Reset() {
	s.candidates = nil
	s.queued.Clear()
}

// nextCandidate pops queued coordinates until one is still worth firing at.
func (s *Strategy) nextCandidate(board *domain.Board) (domain.Coord, bool) {
	for len(s.candidates) > 0 {
		var head domain.Coord
		head, s.candidates = s.candidates[0], s.candidates[1:]
		s.queued.Delete(head)
		if board.Cell(head).IsLegalTarget() {
			return head, true
		}
	}
	return domain.Coord{}, false
}

func (s *Strategy) enqueue(board *domain.Board, coords []domain.Coord) {
	for _, c := range coords {
		if s.queued.Has(c) || !board.Cell(c).IsLegalTarget() {
			continue
		}
		s.queued.Put(c, struct{}{})
		s.candidates = append(s.candidates, c)
	}
}
